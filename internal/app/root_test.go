package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	want := map[string][]string{
		"seed":         nil,
		"assessment":   {"create", "steps", "show"},
		"report":       {"generate", "show", "commentary"},
		"score":        {"adoption", "role"},
		"weights":      {"show", "set"},
		"capabilities": {"list"},
		"rationalize":  {"run", "export", "apply"},
		"mcp":          nil,
	}
	for name, subs := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		require.Equal(t, name, cmd.Name())
		for _, sub := range subs {
			c, _, err := rootCmd.Find([]string{name, sub})
			require.NoError(t, err, "%s %s", name, sub)
			assert.Equal(t, sub, c.Name())
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, f := range []string{"config", "json", "no-color", "verbose", "metrics-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(f), f)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42", "report")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(bad, "report")
		assert.Error(t, err, bad)
	}
}
