package errors

import (
	stdErrors "errors"
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EnvironmentError reports a broken execution environment: the scratch
// directory could not be created, the toolchain could not be spawned, or an
// interpreter failed to read its own input. Runs that hit it are aborted.
type EnvironmentError struct {
	Interpreter string
	Op          string
	Err         error
}

// NewEnvironmentError constructs an EnvironmentError.
func NewEnvironmentError(interpreter, op string, err error) error {
	return &EnvironmentError{Interpreter: interpreter, Op: op, Err: err}
}

func (e *EnvironmentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Interpreter != "" {
		return fmt.Sprintf("environment error [%s]: %s: %v", e.Interpreter, e.Op, e.Err)
	}
	return fmt.Sprintf("environment error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *EnvironmentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CompilationError reports a non-zero exit from the external compiler.
// Diagnostics holds whatever the compiler wrote to stderr and may be empty.
type CompilationError struct {
	Interpreter string
	Diagnostics string
}

// NewCompilationError constructs a CompilationError.
func NewCompilationError(interpreter, diagnostics string) error {
	return &CompilationError{Interpreter: interpreter, Diagnostics: diagnostics}
}

func (e *CompilationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Diagnostics == "" {
		return fmt.Sprintf("compilation error [%s]", e.Interpreter)
	}
	return fmt.Sprintf("compilation error [%s]: %s", e.Interpreter, e.Diagnostics)
}

// RuntimeError reports a non-zero exit from the interpreter or compiled
// binary. Stderr is kept verbatim.
type RuntimeError struct {
	Interpreter string
	Stderr      string
	ExitCode    int
}

// NewRuntimeError constructs a RuntimeError.
func NewRuntimeError(interpreter, stderr string, exitCode int) error {
	return &RuntimeError{Interpreter: interpreter, Stderr: stderr, ExitCode: exitCode}
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stderr == "" {
		return fmt.Sprintf("runtime error [%s]: exit status %d", e.Interpreter, e.ExitCode)
	}
	return fmt.Sprintf("runtime error [%s]: %s", e.Interpreter, e.Stderr)
}

// InterruptedError reports a toolchain process stopped because the run was
// cancelled or ran out of time. Stdout and Stderr keep what the process wrote
// before it was killed. Err is the context error.
type InterruptedError struct {
	Interpreter string
	Command     string
	Stdout      string
	Stderr      string
	Err         error
}

// NewInterruptedError constructs an InterruptedError.
func NewInterruptedError(interpreter, command, stdout, stderr string, err error) error {
	return &InterruptedError{Interpreter: interpreter, Command: command, Stdout: stdout, Stderr: stderr, Err: err}
}

func (e *InterruptedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("interrupted [%s]: %s: %v", e.Interpreter, e.Command, e.Err)
}

// Unwrap exposes the context error.
func (e *InterruptedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InterpreterError indicates issues within interpreter registration or lookup.
type InterpreterError struct {
	Interpreter string
	Message     string
	Err         error
}

// NewInterpreterError constructs an InterpreterError for the given interpreter name.
func NewInterpreterError(interpreter string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &InterpreterError{Interpreter: interpreter, Message: message, Err: err}
}

func (e *InterpreterError) Error() string {
	if e == nil {
		return ""
	}
	if e.Interpreter != "" {
		return fmt.Sprintf("interpreter error [%s]: %s", e.Interpreter, e.Message)
	}
	return fmt.Sprintf("interpreter error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *InterpreterError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsFatal reports whether err signals a broken environment rather than a
// problem with the snippet itself.
func IsFatal(err error) bool {
	var envErr *EnvironmentError
	return stdErrors.As(err, &envErr)
}
