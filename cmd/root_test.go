package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"version"})
	defer RootCmd.SetArgs(nil)

	require.NoError(t, RootCmd.Execute())
	assert.Equal(t, "dPaste v"+Version+"\n", out.String())
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{{"serve"}, {"doc", "put"}, {"doc", "get"}, {"doc", "raw"}, {"doc", "health"}, {"doc", "perf"}} {
		c, _, err := RootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}
