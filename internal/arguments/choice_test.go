package arguments

import (
	"testing"

	"github.com/footprint-tools/cmdtree/internal/usage"
	"github.com/stretchr/testify/require"
)

func TestBoolean_Parse(t *testing.T) {
	for input, want := range map[string]bool{"true": true, "FALSE": false, "True x": true} {
		res, err := Boolean().Parse(input)
		require.NoError(t, err, input)
		require.Equal(t, want, res.Value, input)
	}

	_, err := Boolean().Parse("yes")
	requireKind(t, err, usage.KindInvalidBoolean, 3)
	require.EqualError(t, err, `Invalid boolean "yes"`)

	require.Equal(t, []string{"true", "false"}, Boolean().Suggestions())
}

func TestEnumeration_Parse(t *testing.T) {
	mode := Enumeration("auto", "always", "never")

	res, err := mode.Parse("never again")
	require.NoError(t, err)
	require.Equal(t, "never", res.Value)
	require.Equal(t, 5, res.CharRead)

	_, err = mode.Parse("sometimes")
	requireKind(t, err, usage.KindInvalidEnumeration, 9)

	got := mode.Suggestions()
	require.Equal(t, []string{"auto", "always", "never"}, got)
	got[0] = "changed"
	require.Equal(t, "auto", mode.Suggestions()[0])
}
