package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand("1.0.0", "abc", "today")

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["serve"])
	require.True(t, names["bot"])
	require.True(t, names["version"])
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand("1.0.0", "abc", "today")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "thurianx 1.0.0 (abc) built on today")
}
