package interpreters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/snipexec/internal/registry"
)

func TestBuiltinRegistersAndValidatesStrictly(t *testing.T) {
	t.Parallel()

	reg := registry.New(&registry.Config{FallbackPolicy: registry.PolicyStrict}, nil)
	require.NoError(t, reg.RegisterAll(Builtin()))
	require.NoError(t, reg.ValidateFallbacks())
	require.Empty(t, reg.Disabled())

	order, err := reg.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, order, len(Builtin()))

	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}
	for _, desc := range Builtin() {
		for _, target := range desc.FallsBackTo {
			require.Less(t, position[target], position[desc.Name], "%s must come after its fallback %s", desc.Name, target)
		}
	}
}

func TestBuiltinCoversShippedLanguages(t *testing.T) {
	t.Parallel()

	reg := registry.New(&registry.Config{FallbackPolicy: registry.PolicyStrict}, nil)
	require.NoError(t, reg.RegisterAll(Builtin()))

	for _, lang := range []string{"rust", "rs", "c", "lua", "python", "py"} {
		require.NotEmpty(t, reg.ForLanguage(lang), lang)
	}
	require.Len(t, reg.ForLanguage("lua"), 2)
}
