package internalexec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

// Result captures what a toolchain process wrote and how it exited.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports a zero exit status.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// waitDelay bounds how long Wait keeps reading pipes after the process group
// was killed, in case a descendant escaped the group and still holds them.
const waitDelay = 500 * time.Millisecond

// Stream selects which captured stream a successful run reports as output.
type Stream int

const (
	Stdout Stream = iota
	// Stderr is for tools that print user-visible output on stderr even on
	// success, such as a headless editor.
	Stderr
)

// Capture runs cmd to completion and records stdout and stderr verbatim.
// Writers already set on cmd still receive the output. A non-zero exit is
// reported through Result.ExitCode; the returned error is reserved for
// processes that could not be started or waited on.
func Capture(cmd *exec.Cmd) (Result, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	if cmd.Stdout != nil {
		cmd.Stdout = io.MultiWriter(cmd.Stdout, &stdoutBuf)
	} else {
		cmd.Stdout = &stdoutBuf
	}
	if cmd.Stderr != nil {
		cmd.Stderr = io.MultiWriter(cmd.Stderr, &stderrBuf)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	res := Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}

// Compile invokes a compiler. A non-zero exit becomes a CompilationError
// carrying the compiler's stderr.
func Compile(ctx context.Context, interpreter, name string, args ...string) error {
	res, err := run(ctx, interpreter, name, args...)
	if err != nil {
		return err
	}
	if !res.Success() {
		return snipexecerrors.NewCompilationError(interpreter, res.Stderr)
	}
	return nil
}

// Execute invokes a program and returns the selected stream on success. A
// non-zero exit becomes a RuntimeError carrying stderr. When the context ends
// first, the partial selected stream is returned with an InterruptedError.
func Execute(ctx context.Context, interpreter string, output Stream, name string, args ...string) (string, error) {
	res, err := run(ctx, interpreter, name, args...)
	selected := res.Stdout
	if output == Stderr {
		selected = res.Stderr
	}
	if err != nil {
		var interrupted *snipexecerrors.InterruptedError
		if errors.As(err, &interrupted) {
			return selected, err
		}
		return "", err
	}
	if !res.Success() {
		return "", snipexecerrors.NewRuntimeError(interpreter, res.Stderr, res.ExitCode)
	}
	return selected, nil
}

func run(ctx context.Context, interpreter, name string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	startProcessGroup(cmd)
	cmd.Cancel = func() error {
		if err := killProcessGroup(cmd); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return err
		}
		return nil
	}
	cmd.WaitDelay = waitDelay

	res, err := Capture(cmd)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, snipexecerrors.NewInterruptedError(interpreter, name, res.Stdout, res.Stderr, ctxErr)
	}
	if err != nil {
		return res, snipexecerrors.NewEnvironmentError(interpreter, "start "+name, err)
	}
	return res, nil
}
