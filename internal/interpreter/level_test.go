package interpreter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSupportLevelOrdering(t *testing.T) {
	t.Parallel()

	ordered := []SupportLevel{Unsupported, Line, Bloc, Import, File}
	for i := 1; i < len(ordered); i++ {
		require.True(t, ordered[i].AtLeast(ordered[i-1]))
		require.False(t, ordered[i-1].AtLeast(ordered[i]))
	}
}

func TestParseSupportLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]SupportLevel{
		"unsupported": Unsupported,
		"line":        Line,
		"Bloc":        Bloc,
		" block ":     Bloc,
		"IMPORT":      Import,
		"file":        File,
	}
	for input, want := range cases {
		got, err := ParseSupportLevel(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseSupportLevel("project")
	require.Error(t, err)
	require.Contains(t, err.Error(), "project")
}

func TestSupportLevelClamp(t *testing.T) {
	t.Parallel()

	require.Equal(t, Bloc, File.Clamp(Bloc))
	require.Equal(t, Line, Line.Clamp(Bloc))
	require.Equal(t, Unsupported, Bloc.Clamp(Unsupported))
	require.Equal(t, Unsupported, SupportLevel(-4).Clamp(File))
}

func TestSupportLevelText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "bloc", Bloc.String())
	require.Equal(t, "SupportLevel(42)", SupportLevel(42).String())

	data, err := json.Marshal(map[string]SupportLevel{"level": Import})
	require.NoError(t, err)
	require.JSONEq(t, `{"level":"import"}`, string(data))

	var decoded struct {
		Level SupportLevel `json:"level"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"level":"line"}`), &decoded))
	require.Equal(t, Line, decoded.Level)
	require.Error(t, json.Unmarshal([]byte(`{"level":"galaxy"}`), &decoded))
}
