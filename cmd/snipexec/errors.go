package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/snipexec/internal/model"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitFatal   = 2
)

var (
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	if e.context == "" {
		return fmt.Sprintf("Failed to %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.cause, e.suggestion)
	}
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// reportedError marks an error whose details were already written out.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

func isReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}

// exitCode maps an error to the process exit status: 2 when the environment
// is broken, 1 for every other failure.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if snipexecerrors.IsFatal(err) {
		return exitFatal
	}
	return exitFailure
}

// renderError formats err for the terminal. Snippet failures show the
// toolchain's own diagnostics below a one-line header.
func renderError(err error, styled bool) string {
	header, body := describeError(err)

	if styled {
		header = failureStyle.Render(header)
	}

	var b strings.Builder
	b.WriteString(header)
	if body != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(body, "\n"))
	}

	if hint := hintFor(err); hint != "" {
		b.WriteString("\n")
		if styled {
			hint = hintStyle.Render(hint)
		}
		b.WriteString(hint)
	}
	return b.String()
}

func describeError(err error) (string, string) {
	var (
		compErr    *snipexecerrors.CompilationError
		runtimeErr *snipexecerrors.RuntimeError
		envErr     *snipexecerrors.EnvironmentError
		stopped    *snipexecerrors.InterruptedError
	)

	switch {
	case errors.As(err, &compErr):
		return fmt.Sprintf("compilation failed [%s]", compErr.Interpreter), compErr.Diagnostics
	case errors.As(err, &runtimeErr):
		return fmt.Sprintf("runtime error [%s] (exit status %d)", runtimeErr.Interpreter, runtimeErr.ExitCode), runtimeErr.Stderr
	case errors.As(err, &stopped):
		return fmt.Sprintf("interrupted [%s]: %s: %v", stopped.Interpreter, stopped.Command, stopped.Err), stopped.Stdout + stopped.Stderr
	case errors.As(err, &envErr):
		return fmt.Sprintf("environment error [%s]: %s", envErr.Interpreter, envErr.Op), fmt.Sprint(envErr.Err)
	default:
		return err.Error(), ""
	}
}

func hintFor(err error) string {
	switch model.Classify(err) {
	case model.StatusEnvironmentFailed:
		return "Hint: check that the toolchain is installed and on PATH and that the work directory is writable"
	case model.StatusInterrupted:
		return "Hint: raise 'timeout' in the configuration file to allow longer runs"
	default:
		return ""
	}
}

func supportsStyling(file *os.File) bool {
	return file != nil && term.IsTerminal(int(file.Fd()))
}
