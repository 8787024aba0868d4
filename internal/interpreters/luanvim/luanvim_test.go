package luanvim

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/fakebin"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/lua"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

func installToolchain(t *testing.T) {
	t.Helper()
	fakebin.Install(t, map[string]string{"lua": fakebin.Lua, "nvim": fakebin.Nvim})
}

func TestLuaNvim_Metadata(t *testing.T) {
	t.Parallel()

	meta := Descriptor().Metadata
	require.NoError(t, meta.Validate())
	require.Equal(t, "lua-nvim", meta.Name)
	require.Equal(t, []string{lua.Name}, meta.FallsBackTo)
	require.Equal(t, interpreter.Bloc, meta.MaxLevel)
}

func TestLuaNvim_RunsNeovimSnippetsHeadless(t *testing.T) {
	installToolchain(t)

	root := t.TempDir()
	data := interpreter.DataHolder{
		CurrentBloc: "print(\"hello\")\nvim.api.nvim_command(\"echo 1\")\n",
		WorkDir:     root,
	}

	out, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	require.NoError(t, err)
	require.Equal(t, "hello\n", out, "headless nvim output comes from stderr")
	require.FileExists(t, filepath.Join(root, Name, "main.lua"))
	require.NoFileExists(t, filepath.Join(root, lua.Name, "main.lua"))
}

func TestLuaNvim_PlainLuaFallsBackToLuaOriginal(t *testing.T) {
	installToolchain(t)

	data := interpreter.DataHolder{CurrentBloc: "print(\"plain\")\n", WorkDir: t.TempDir()}

	direct, directErr := interpreter.Run(context.Background(), lua.Descriptor(), data, interpreter.Bloc)
	require.NoError(t, directErr)

	out, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	require.NoError(t, err)
	require.Equal(t, direct, out)
	require.Equal(t, "plain\n", out)
	require.NoFileExists(t, filepath.Join(data.WorkDir, Name, "main.lua"), "build stage must be skipped")
}

func TestLuaNvim_FallbackKeepsLevel(t *testing.T) {
	installToolchain(t)

	data := interpreter.DataHolder{
		CurrentBloc: "print(\"from bloc\")\n",
		CurrentLine: "print(\"from line\")",
		WorkDir:     t.TempDir(),
	}

	out, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Line)
	require.NoError(t, err)
	require.Equal(t, "from line", strings.TrimSpace(out))
}

func TestLuaNvim_FallbackSurfacesDelegateErrorUnmodified(t *testing.T) {
	installToolchain(t)

	data := interpreter.DataHolder{CurrentLine: "error(\"boom\")", WorkDir: t.TempDir()}

	_, directErr := interpreter.Run(context.Background(), lua.Descriptor(), data, interpreter.Line)
	_, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Line)

	var runtimeErr *snipexecerrors.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	require.Equal(t, lua.Name, runtimeErr.Interpreter)
	require.Equal(t, directErr, err)
}

func TestLuaNvim_FallbackDecisionUsesFetchedCode(t *testing.T) {
	t.Parallel()

	it, err := New(interpreter.DataHolder{
		CurrentBloc: "vim.api.nvim_buf_get_lines(0, 0, -1, false)",
		WorkDir:     t.TempDir(),
	}, interpreter.Bloc)
	require.NoError(t, err)
	require.NoError(t, it.FetchCode())

	_, delegated, err := it.Fallback(context.Background())
	require.NoError(t, err)
	require.False(t, delegated)
}

func TestLuaNvim_RuntimeError(t *testing.T) {
	installToolchain(t)

	data := interpreter.DataHolder{CurrentBloc: "error(\"boom\")\n-- nvim\n", WorkDir: t.TempDir()}

	_, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	var runtimeErr *snipexecerrors.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	require.Equal(t, Name, runtimeErr.Interpreter)
	require.Contains(t, runtimeErr.Stderr, "E5113")
}
