package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

const appDirName = "snipexec"

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Default returns a configuration usable without any file on disk.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		WorkDir: DefaultWorkDir(),
		Level:   "bloc",
		Log:     LogSettings{Level: "info"},
	}
}

// DefaultWorkDir returns <user cache dir>/snipexec, or a directory under the
// system temp dir when no cache dir is known.
func DefaultWorkDir() string {
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, appDirName)
	}
	return filepath.Join(os.TempDir(), appDirName)
}

// DefaultPath returns the conventional location of the configuration file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, appDirName, "config.yaml")
}

// Load returns Default() for an empty path and ParseConfig(path) otherwise.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return ParseConfig(path)
}

// ParseConfig loads a configuration file from disk, fills unset fields with
// defaults, validates it and returns the result.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, snipexecerrors.NewParseError(path, 0, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, snipexecerrors.NewParseError(path, extractLine(err), err)
	}

	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	defaults := Default()
	if cfg.WorkDir == "" {
		cfg.WorkDir = defaults.WorkDir
	} else {
		cfg.WorkDir = os.ExpandEnv(cfg.WorkDir)
	}
	if cfg.Level == "" {
		cfg.Level = defaults.Level
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
