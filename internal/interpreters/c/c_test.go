package c

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/fakebin"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

// fakeGCC mimics `gcc SRC -o OUT`. A dangling "+;" is treated as a syntax
// error; printf calls produce a binary that prints "42".
const fakeGCC = `#!/bin/sh
src="$1"
out="$3"
if grep -q '+;' "$src"; then
  echo "$src:5:3: error: expected expression before ';' token" >&2
  exit 1
fi
printf '#!/bin/sh\n' > "$out"
if grep -q 'printf' "$src"; then
  printf 'echo 42\n' >> "$out"
fi
if grep -q 'abort' "$src"; then
  printf 'echo "Aborted" >&2\nexit 134\n' >> "$out"
fi
chmod +x "$out"
`

func TestC_AddBoilerplateBuildsTranslationUnit(t *testing.T) {
	t.Parallel()

	it, err := New(interpreter.DataHolder{
		CurrentBloc: "#include <math.h>\n#include <stdio.h>\nprintf(\"%f\", sqrt(2.0));",
		WorkDir:     t.TempDir(),
	}, interpreter.Bloc)
	require.NoError(t, err)
	require.NoError(t, it.FetchCode())
	require.NoError(t, it.AddBoilerplate())

	want := "#include <stdio.h>\n" +
		"#include <stdlib.h>\n" +
		"#include <math.h>\n" +
		"int main() {\n" +
		"printf(\"%f\", sqrt(2.0));\n" +
		"return 0;\n}\n"
	require.Equal(t, want, it.Code())
}

func TestC_AddBoilerplateIsDeterministic(t *testing.T) {
	t.Parallel()

	data := interpreter.DataHolder{CurrentBloc: "#include <string.h>\nint x = 1;", WorkDir: t.TempDir()}

	first, err := New(data, interpreter.Bloc)
	require.NoError(t, err)
	second, err := New(data, interpreter.Bloc)
	require.NoError(t, err)

	for _, it := range []interpreter.Interpreter{first, second} {
		require.NoError(t, it.FetchCode())
		require.NoError(t, it.AddBoilerplate())
	}
	require.Equal(t, first.Code(), second.Code())
}

func TestC_SilentSnippetSucceedsWithEmptyOutput(t *testing.T) {
	fakebin.Install(t, map[string]string{"gcc": fakeGCC})

	root := t.TempDir()
	data := interpreter.DataHolder{CurrentBloc: "1+1;", CurrentLine: "", WorkDir: root}

	out, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	require.NoError(t, err)
	require.Empty(t, out)

	src, err := os.ReadFile(filepath.Join(root, Name, "main.c"))
	require.NoError(t, err)
	require.Contains(t, string(src), "int main() {\n1+1;\nreturn 0;\n}\n")
}

func TestC_PrintingSnippet(t *testing.T) {
	fakebin.Install(t, map[string]string{"gcc": fakeGCC})

	data := interpreter.DataHolder{CurrentLine: `printf("%d\n", 42);`, WorkDir: t.TempDir()}

	out, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Line)
	require.NoError(t, err)
	require.Equal(t, "42\n", out)
}

func TestC_SyntaxErrorNeverExecutes(t *testing.T) {
	fakebin.Install(t, map[string]string{"gcc": fakeGCC})

	root := t.TempDir()
	data := interpreter.DataHolder{CurrentBloc: "1+;", WorkDir: root}

	_, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	var compErr *snipexecerrors.CompilationError
	require.ErrorAs(t, err, &compErr)
	require.Contains(t, compErr.Diagnostics, "expected expression")
	require.NoFileExists(t, filepath.Join(root, Name, "main"))
}

func TestC_RuntimeFailure(t *testing.T) {
	fakebin.Install(t, map[string]string{"gcc": fakeGCC})

	data := interpreter.DataHolder{CurrentBloc: "abort();", WorkDir: t.TempDir()}

	_, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	var runtimeErr *snipexecerrors.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	require.Equal(t, "Aborted\n", runtimeErr.Stderr)
	require.Equal(t, 134, runtimeErr.ExitCode)
}

func TestC_MissingCompilerIsFatal(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	data := interpreter.DataHolder{CurrentBloc: "1+1;", WorkDir: t.TempDir()}

	_, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	require.True(t, snipexecerrors.IsFatal(err))
}
