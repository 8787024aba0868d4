// Package runner is the application service behind `snipexec run`: it picks
// the interpreter, composes the operating level, bounds the run in time and
// turns the pipeline outcome into a model.RunResult.
package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/snipexec/internal/config"
	"github.com/alexisbeaulieu97/snipexec/internal/history"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/logger"
	"github.com/alexisbeaulieu97/snipexec/internal/model"
	"github.com/alexisbeaulieu97/snipexec/internal/registry"
	"github.com/alexisbeaulieu97/snipexec/pkg/diff"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

// Service coordinates snippet runs.
type Service struct {
	registry *registry.Registry
	config   *config.Config
	history  *history.Store
	logger   *logger.Logger
	now      func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithHistory records every run in store.
func WithHistory(store *history.Store) Option {
	return func(s *Service) {
		s.history = store
	}
}

// WithLogger sets the logger handed to the pipeline.
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// NewService constructs a runner over reg. A nil cfg means config.Default().
func NewService(reg *registry.Registry, cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Service{
		registry: reg,
		config:   cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request describes one snippet run.
type Request struct {
	// Language is the filetype tag used to pick an interpreter.
	Language string
	// Interpreter forces a specific interpreter by name.
	Interpreter string
	Line        string
	Bloc        string
	Filepath    string
	// Level overrides the configured operating level when non-empty.
	Level string
	// WorkDir overrides the configured work directory when non-empty.
	WorkDir string
	// ShowBoilerplate fills RunResult.Boilerplate with a diff between the
	// snippet and the program that was built.
	ShowBoilerplate bool
}

// Run resolves an interpreter for req and executes the snippet. The returned
// error is the run's error; the result is populated whenever an interpreter
// was resolved.
func (s *Service) Run(ctx context.Context, req Request) (model.RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	desc, err := s.resolve(req)
	if err != nil {
		return model.RunResult{}, err
	}

	level, err := s.level(desc, req.Level)
	if err != nil {
		return model.RunResult{}, err
	}

	language := req.Language
	if language == "" && len(desc.Languages) > 0 {
		language = desc.Languages[0]
	}

	workDir := req.WorkDir
	if workDir == "" {
		workDir = s.config.WorkDir
	}

	data := interpreter.DataHolder{
		CurrentLine: req.Line,
		CurrentBloc: req.Bloc,
		WorkDir:     workDir,
		Filepath:    req.Filepath,
		Filetype:    language,
	}

	if timeout := s.config.TimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx = logger.WithContext(ctx, s.logger)
	ctx, trace := interpreter.WithTrace(ctx)

	log := s.logger.WithFields(map[string]any{
		"interpreter":   desc.Name,
		"language":      language,
		"support_level": level.String(),
	})
	log.Debug("starting run")

	start := s.now()
	output, runErr := interpreter.Run(ctx, desc, data, level)

	result := model.NewRunResult(desc.Name, language, level.String(), output, runErr)
	result.Delegated = trace.Hops()
	if req.ShowBoilerplate {
		result.Boilerplate = boilerplateDiff(trace)
	}
	result.Timestamp = start
	result.Duration = s.now().Sub(start)

	if result.Succeeded() {
		log.Info(fmt.Sprintf("run succeeded in %s", result.Duration))
	} else {
		log.Error(runErr, fmt.Sprintf("run finished with status %s", result.Status))
	}

	if s.history != nil {
		if err := s.history.Record(result); err != nil {
			log.Warn(fmt.Sprintf("failed to record run history: %v", err))
		}
	}

	return result, runErr
}

func (s *Service) resolve(req Request) (interpreter.Descriptor, error) {
	if s.registry == nil {
		return interpreter.Descriptor{}, snipexecerrors.NewInterpreterError("", fmt.Errorf("no interpreter registry configured"))
	}

	if name := strings.TrimSpace(req.Interpreter); name != "" {
		desc, err := s.registry.Get(name)
		if err != nil {
			return interpreter.Descriptor{}, err
		}
		if req.Language != "" && !desc.Supports(req.Language) {
			s.logger.Warn(fmt.Sprintf("interpreter '%s' does not declare language '%s'", name, req.Language))
		}
		return desc, nil
	}

	if strings.TrimSpace(req.Language) == "" {
		return interpreter.Descriptor{}, snipexecerrors.NewValidationError("language", "a language or an interpreter name is required", nil)
	}

	return s.registry.Resolve(req.Language, s.config.Interpreters)
}

// level applies, in order: the request or configured default, the
// per-interpreter override, and the interpreter's own maximum.
func (s *Service) level(desc interpreter.Descriptor, requested string) (interpreter.SupportLevel, error) {
	level := s.config.DefaultLevel()
	if requested != "" {
		parsed, err := interpreter.ParseSupportLevel(requested)
		if err != nil {
			return interpreter.Unsupported, snipexecerrors.NewValidationError("level", err.Error(), err)
		}
		level = parsed
	}

	level = s.config.LevelFor(desc.Name, level)
	return level.Clamp(desc.MaxLevel), nil
}

func boilerplateDiff(trace *interpreter.Trace) string {
	staged, ok := trace.Staged()
	if !ok {
		return ""
	}
	return diff.Unified(staged.Snippet, staged.Program, "snippet", staged.Interpreter+" program")
}
