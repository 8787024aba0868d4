package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

// Status classifies the outcome of a run.
type Status string

const (
	// StatusSuccess marks a run whose program exited cleanly.
	StatusSuccess Status = "success"
	// StatusCompilationFailed marks a run stopped by the compiler.
	StatusCompilationFailed Status = "compilation_failed"
	// StatusRuntimeFailed marks a program that exited non-zero.
	StatusRuntimeFailed Status = "runtime_failed"
	// StatusEnvironmentFailed marks a run aborted by a broken environment.
	StatusEnvironmentFailed Status = "environment_failed"
	// StatusInterrupted marks a run cancelled or timed out.
	StatusInterrupted Status = "interrupted"
	// StatusFailed covers every other error.
	StatusFailed Status = "failed"
)

// Icon returns the Unicode icon for the status.
func (s Status) Icon() string {
	switch s {
	case StatusSuccess:
		return "🟢"
	case StatusCompilationFailed, StatusRuntimeFailed:
		return "🔴"
	case StatusInterrupted:
		return "🟡"
	case StatusEnvironmentFailed:
		return "⛔"
	default:
		return "⚪"
	}
}

// IconFallback returns an ASCII marker when Unicode is not supported.
func (s Status) IconFallback() string {
	switch s {
	case StatusSuccess:
		return "[OK]"
	case StatusCompilationFailed, StatusRuntimeFailed:
		return "[XX]"
	case StatusInterrupted:
		return "[!!]"
	case StatusEnvironmentFailed:
		return "[ENV]"
	default:
		return "[??]"
	}
}

// Color returns the lipgloss color for the status.
func (s Status) Color() lipgloss.Color {
	switch s {
	case StatusSuccess:
		return lipgloss.Color("42") // green
	case StatusInterrupted:
		return lipgloss.Color("226") // yellow
	case StatusCompilationFailed, StatusRuntimeFailed, StatusEnvironmentFailed:
		return lipgloss.Color("196") // red
	default:
		return lipgloss.Color("250") // light gray
	}
}

func (s Status) String() string {
	return string(s)
}

// Classify maps a pipeline error onto a Status.
func Classify(err error) Status {
	var (
		compErr    *snipexecerrors.CompilationError
		runtimeErr *snipexecerrors.RuntimeError
	)

	switch {
	case err == nil:
		return StatusSuccess
	case snipexecerrors.IsFatal(err):
		return StatusEnvironmentFailed
	case errors.As(err, &compErr):
		return StatusCompilationFailed
	case errors.As(err, &runtimeErr):
		return StatusRuntimeFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusInterrupted
	default:
		return StatusFailed
	}
}

// RunResult captures the outcome of executing one snippet.
type RunResult struct {
	Interpreter string        `json:"interpreter"`
	Language    string        `json:"language,omitempty"`
	Level       string        `json:"level"`
	Status      Status        `json:"status"`
	Output      string        `json:"output"`
	Err         error         `json:"-"`
	Error       string        `json:"error,omitempty"`
	Delegated   []string      `json:"delegated,omitempty"`
	Boilerplate string        `json:"boilerplate,omitempty"`
	Duration    time.Duration `json:"duration"`
	Timestamp   time.Time     `json:"timestamp"`
}

// NewRunResult fills Status and Error from err.
func NewRunResult(interpreter, language, level, output string, err error) RunResult {
	result := RunResult{
		Interpreter: interpreter,
		Language:    language,
		Level:       level,
		Status:      Classify(err),
		Output:      output,
		Err:         err,
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// Succeeded reports whether the run produced output without error.
func (r RunResult) Succeeded() bool {
	return r.Err == nil
}

// FinalInterpreter returns the interpreter that actually executed the
// snippet, following any delegation.
func (r RunResult) FinalInterpreter() string {
	if len(r.Delegated) > 0 {
		return r.Delegated[len(r.Delegated)-1]
	}
	return r.Interpreter
}

// Summary returns a one-line description suitable for listings.
func (r RunResult) Summary() string {
	text := r.Output
	if r.Err != nil || r.Error != "" {
		text = r.Error
	}
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	const maxSummary = 60
	if len([]rune(line)) > maxSummary {
		line = string([]rune(line)[:maxSummary-3]) + "..."
	}
	return line
}
