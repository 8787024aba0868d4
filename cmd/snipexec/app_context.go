package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexisbeaulieu97/snipexec/internal/app/runner"
	"github.com/alexisbeaulieu97/snipexec/internal/config"
	"github.com/alexisbeaulieu97/snipexec/internal/history"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters"
	"github.com/alexisbeaulieu97/snipexec/internal/logger"
	"github.com/alexisbeaulieu97/snipexec/internal/registry"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *registry.Registry
	History  *history.Store
	Runner   *runner.Service
}

func newAppContext(flags *rootFlags, stderr io.Writer) (*AppContext, error) {
	cfg, err := config.Load(resolveConfigPath(flags.configPath))
	if err != nil {
		return nil, newCommandError("load configuration", flags.configPath, err, "Fix the reported field or pass --config with another file.")
	}
	if dir := strings.TrimSpace(flags.workDir); dir != "" {
		cfg.WorkDir = dir
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Log.IsHumanReadable(), Writer: stderr})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	reg := registry.New(registry.DefaultConfig(), log)
	if err := registerInterpreters(reg); err != nil {
		return nil, newCommandError("prepare interpreters", "validating fallbacks", err, "Set CI=false to disable strict fallback checks while investigating.")
	}

	app := &AppContext{
		Config:   cfg,
		Logger:   log,
		Registry: reg,
	}

	store, err := history.NewStore(history.PathFor(cfg.WorkDir))
	if err != nil {
		log.Warn(fmt.Sprintf("run history disabled: %v", err))
	} else {
		app.History = store
	}

	opts := []runner.Option{runner.WithLogger(log)}
	if app.History != nil {
		opts = append(opts, runner.WithHistory(app.History))
	}
	app.Runner = runner.NewService(reg, cfg, opts...)

	return app, nil
}

func registerInterpreters(reg *registry.Registry) error {
	if err := reg.RegisterAll(interpreters.Builtin()); err != nil {
		return err
	}
	return reg.ValidateFallbacks()
}

// resolveConfigPath returns explicit when set, otherwise the default
// location if a file exists there, otherwise "".
func resolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	path := config.DefaultPath()
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
