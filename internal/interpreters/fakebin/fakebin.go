// Package fakebin installs stand-in toolchain scripts on PATH so interpreter
// tests run without real compilers.
package fakebin

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// Install writes each script into a fresh directory and prepends that
// directory to PATH for the duration of the test. Tests calling it cannot
// run in parallel.
func Install(t *testing.T, scripts map[string]string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}

	binDir := t.TempDir()
	for name, content := range scripts {
		WriteScript(t, binDir, name, content)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return binDir
}

// WriteScript writes an executable file.
func WriteScript(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o755))
}

// Lua stands in for the lua binary: it echoes the argument of every
// print("...") line and fails on a line starting with error(.
const Lua = `#!/bin/sh
if grep -q '^error(' "$1"; then
  echo "lua: $1:1: boom" >&2
  exit 1
fi
sed -n 's/^print("\(.*\)")$/\1/p' "$1"
`

// Nvim stands in for `nvim --headless -c "luafile FILE" -c q!`. Like the real
// editor it reports print output on stderr.
const Nvim = `#!/bin/sh
file="${3#luafile }"
if grep -q '^error(' "$file"; then
  echo "E5113: Error while calling lua chunk: $file:1: boom" >&2
  exit 1
fi
sed -n 's/^print("\(.*\)")$/\1/p' "$file" >&2
sed -n 's/^vim.print("\(.*\)")$/\1/p' "$file" >&2
`
