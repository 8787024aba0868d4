package python3

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/fakebin"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

const fakePython = `#!/bin/sh
if grep -q 'raise' "$1"; then
  echo "Traceback (most recent call last):" >&2
  echo "ValueError: boom" >&2
  exit 1
fi
sed -n 's/^print("\(.*\)")$/\1/p' "$1"
`

func TestPython3_Metadata(t *testing.T) {
	t.Parallel()

	meta := Descriptor().Metadata
	require.NoError(t, meta.Validate())
	require.True(t, meta.Supports("python"))
	require.True(t, meta.Supports("py"))
}

func TestPython3_Run(t *testing.T) {
	fakebin.Install(t, map[string]string{"python3": fakePython})

	data := interpreter.DataHolder{CurrentLine: `print("hi")`, WorkDir: t.TempDir()}

	out, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	require.NoError(t, err)
	require.Equal(t, "hi", strings.TrimSpace(out))
}

func TestPython3_Traceback(t *testing.T) {
	fakebin.Install(t, map[string]string{"python3": fakePython})

	data := interpreter.DataHolder{CurrentBloc: "raise ValueError('boom')\n", WorkDir: t.TempDir()}

	_, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	var runtimeErr *snipexecerrors.RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	require.Equal(t, "Traceback (most recent call last):\nValueError: boom\n", runtimeErr.Stderr)
}

func TestPython3_EmptySnippetStillRuns(t *testing.T) {
	fakebin.Install(t, map[string]string{"python3": fakePython})

	data := interpreter.DataHolder{CurrentLine: "   ", WorkDir: t.TempDir()}

	out, err := interpreter.Run(context.Background(), Descriptor(), data, interpreter.Bloc)
	require.NoError(t, err)
	require.Empty(t, out)
}
