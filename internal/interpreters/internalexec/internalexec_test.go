package internalexec

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}
}

func TestCapture_Success(t *testing.T) {
	skipOnWindows(t)

	result, err := Capture(exec.Command("echo", "hello world"))
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", result.Stdout)
	assert.Equal(t, "", result.Stderr)
	assert.True(t, result.Success())
}

func TestCapture_NonZeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)

	result, err := Capture(exec.Command("sh", "-c", "echo 'error message' >&2; exit 3"))
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "error message\n", result.Stderr)
}

func TestCapture_TeesIntoExistingWriters(t *testing.T) {
	skipOnWindows(t)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd := exec.Command("sh", "-c", "echo 'normal output'; echo 'error message' >&2")
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	result, err := Capture(cmd)
	require.NoError(t, err)
	assert.Equal(t, "normal output\n", result.Stdout)
	assert.Equal(t, "error message\n", result.Stderr)
	assert.Equal(t, "normal output\n", stdoutBuf.String())
	assert.Equal(t, "error message\n", stderrBuf.String())
}

func TestCapture_KeepsOutputVerbatim(t *testing.T) {
	skipOnWindows(t)

	result, err := Capture(exec.Command("printf", "  hello\nworld\n\t"))
	require.NoError(t, err)
	assert.Equal(t, "  hello\nworld\n\t", result.Stdout)
}

func TestCapture_CommandNotFound(t *testing.T) {
	result, err := Capture(exec.Command("this-command-does-not-exist"))
	require.Error(t, err)
	assert.Empty(t, result.Stdout)
}

func TestCompile(t *testing.T) {
	skipOnWindows(t)

	require.NoError(t, Compile(context.Background(), "fake", "true"))

	err := Compile(context.Background(), "fake", "sh", "-c", "echo 'main.c:1: error' >&2; exit 1")
	var compErr *snipexecerrors.CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "fake", compErr.Interpreter)
	assert.Equal(t, "main.c:1: error\n", compErr.Diagnostics)
}

func TestExecuteSelectsStream(t *testing.T) {
	skipOnWindows(t)

	script := "echo out; echo err >&2"

	out, err := Execute(context.Background(), "fake", Stdout, "sh", "-c", script)
	require.NoError(t, err)
	assert.Equal(t, "out\n", out)

	out, err = Execute(context.Background(), "fake", Stderr, "sh", "-c", script)
	require.NoError(t, err)
	assert.Equal(t, "err\n", out)
}

func TestExecuteFailureCarriesStderr(t *testing.T) {
	skipOnWindows(t)

	_, err := Execute(context.Background(), "fake", Stdout, "sh", "-c", "echo partial; echo 'bad thing' >&2; exit 2")
	var runtimeErr *snipexecerrors.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Equal(t, "bad thing\n", runtimeErr.Stderr)
	assert.Equal(t, 2, runtimeErr.ExitCode)
}

func TestExecuteMissingBinaryIsFatal(t *testing.T) {
	_, err := Execute(context.Background(), "fake", Stdout, "this-command-does-not-exist")
	require.True(t, snipexecerrors.IsFatal(err))
}

func TestExecuteHonorsContext(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Execute(ctx, "fake", Stdout, "sleep", "5")
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, snipexecerrors.IsFatal(err))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecuteTimeoutStopsDescendantsAndKeepsOutput(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	out, err := Execute(ctx, "fake", Stdout, "sh", "-c", "echo partial-out; echo diag-before-hang >&2; sleep 5; echo never")
	elapsed := time.Since(start)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, "partial-out\n", out)

	var interrupted *snipexecerrors.InterruptedError
	require.ErrorAs(t, err, &interrupted)
	assert.Equal(t, "fake", interrupted.Interpreter)
	assert.Equal(t, "partial-out\n", interrupted.Stdout)
	assert.Equal(t, "diag-before-hang\n", interrupted.Stderr)
	assert.False(t, snipexecerrors.IsFatal(err))
}

func TestCompileTimeoutStopsDescendants(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Compile(ctx, "fake", "sh", "-c", "sleep 5 & wait")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
