package interpreters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

// Every shipped interpreter must honor the same construction and staging
// rules, independent of its toolchain.

func TestContract_ConstructionIsRepeatable(t *testing.T) {
	t.Parallel()

	for _, desc := range Builtin() {
		desc := desc
		t.Run(desc.Name, func(t *testing.T) {
			t.Parallel()

			data := interpreter.DataHolder{WorkDir: t.TempDir(), CurrentLine: "x"}
			for i := 0; i < 3; i++ {
				it, err := desc.New(data, interpreter.Bloc)
				require.NoError(t, err, "construction %d", i)
				require.Equal(t, desc.Metadata.Name, it.Metadata().Name)
			}
			require.DirExists(t, filepath.Join(data.WorkDir, desc.Name))
		})
	}
}

func TestContract_EmptyContextFetchesEmptyBuffer(t *testing.T) {
	t.Parallel()

	for _, desc := range Builtin() {
		desc := desc
		t.Run(desc.Name, func(t *testing.T) {
			t.Parallel()

			it, err := desc.New(interpreter.DataHolder{WorkDir: t.TempDir()}, interpreter.Bloc)
			require.NoError(t, err)
			require.NoError(t, it.FetchCode())
			require.Empty(t, it.Code())
		})
	}
}

func TestContract_LevelNeverExceedsMax(t *testing.T) {
	t.Parallel()

	for _, desc := range Builtin() {
		desc := desc
		t.Run(desc.Name, func(t *testing.T) {
			t.Parallel()

			it, err := desc.New(interpreter.DataHolder{WorkDir: t.TempDir()}, interpreter.File)
			require.NoError(t, err)
			require.LessOrEqual(t, it.CurrentLevel(), desc.MaxLevel)

			it.SetCurrentLevel(interpreter.File)
			require.LessOrEqual(t, it.CurrentLevel(), desc.MaxLevel)

			it.SetCurrentLevel(interpreter.Line)
			require.Equal(t, interpreter.Line, it.CurrentLevel())
		})
	}
}

func TestContract_BoilerplateIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, desc := range Builtin() {
		desc := desc
		t.Run(desc.Name, func(t *testing.T) {
			t.Parallel()

			data := interpreter.DataHolder{WorkDir: t.TempDir(), CurrentBloc: "#include <math.h>\nx = 1\n"}
			stage := func() string {
				it, err := desc.New(data, interpreter.Bloc)
				require.NoError(t, err)
				require.NoError(t, it.FetchCode())
				require.NoError(t, it.AddBoilerplate())
				return it.Code()
			}

			first := stage()
			require.NotEmpty(t, first)
			require.Equal(t, first, stage())
		})
	}
}

func TestContract_UnusableWorkDirIsEnvironmentError(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	for _, desc := range Builtin() {
		desc := desc
		t.Run(desc.Name, func(t *testing.T) {
			t.Parallel()

			for _, workDir := range []string{"", "  ", blocker} {
				_, err := desc.New(interpreter.DataHolder{WorkDir: workDir}, interpreter.Bloc)
				var envErr *snipexecerrors.EnvironmentError
				require.ErrorAs(t, err, &envErr, "work dir %q", workDir)
				require.Equal(t, desc.Name, envErr.Interpreter)
				require.True(t, snipexecerrors.IsFatal(err))
			}
		})
	}
}
