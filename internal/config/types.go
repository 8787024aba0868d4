package config

import (
	"time"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
)

// CurrentVersion is the schema version written by Default.
const CurrentVersion = "1.0"

// Config represents the snipexec configuration document.
type Config struct {
	Version string `yaml:"version" validate:"required,semver"`
	// WorkDir is the root under which each interpreter gets its scratch directory.
	WorkDir string `yaml:"work_dir,omitempty"`
	// Level is the operating support level requested for every run.
	Level   string `yaml:"level,omitempty" validate:"omitempty,support_level"`
	Timeout int    `yaml:"timeout,omitempty" validate:"min=0,max=3600"`
	// Interpreters maps a language tag to the preferred interpreter name.
	Interpreters map[string]string `yaml:"interpreters,omitempty" validate:"omitempty,dive,keys,required,endkeys,required,interpreter_name"`
	// Levels caps the operating level of individual interpreters.
	Levels map[string]string `yaml:"levels,omitempty" validate:"omitempty,dive,keys,required,interpreter_name,endkeys,required,support_level"`
	Log    LogSettings       `yaml:"log,omitempty"`
}

// LogSettings configures the logger built by the CLI. HumanReadable is a
// pointer so an omitted key keeps the console format.
type LogSettings struct {
	Level         string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	HumanReadable *bool  `yaml:"human_readable,omitempty"`
}

// IsHumanReadable reports whether logs use the console format. Unset means
// true.
func (l LogSettings) IsHumanReadable() bool {
	return l.HumanReadable == nil || *l.HumanReadable
}

// DefaultLevel returns the configured operating level, or Bloc when unset.
func (c *Config) DefaultLevel() interpreter.SupportLevel {
	if c == nil || c.Level == "" {
		return interpreter.Bloc
	}
	level, err := interpreter.ParseSupportLevel(c.Level)
	if err != nil {
		return interpreter.Bloc
	}
	return level
}

// LevelFor returns the operating level for the named interpreter: the
// requested level lowered to any per-interpreter override.
func (c *Config) LevelFor(name string, requested interpreter.SupportLevel) interpreter.SupportLevel {
	if c == nil {
		return requested
	}
	raw, ok := c.Levels[name]
	if !ok {
		return requested
	}
	override, err := interpreter.ParseSupportLevel(raw)
	if err != nil {
		return requested
	}
	return requested.Clamp(override)
}

// TimeoutDuration converts Timeout to a duration; zero means no limit.
func (c *Config) TimeoutDuration() time.Duration {
	if c == nil || c.Timeout <= 0 {
		return 0
	}
	return time.Duration(c.Timeout) * time.Second
}
