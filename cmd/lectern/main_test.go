package main

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoot_Commands(t *testing.T) {
	root := newRoot()

	names := make([]string, 0, len(root.Commands))
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"view", "print", "keys", "check"}, names)

	for _, name := range []string{"config", "prefs", "log-level", "log-file", "release", "track", "url", "file"} {
		found := false
		for _, f := range root.Flags {
			if slices.Contains(f.Names(), name) {
				found = true
			}
		}
		assert.True(t, found, "root flag %q", name)
	}
}

func TestNewRoot_UnknownCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := newRoot().Run(context.Background(), []string{"lectern", "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "bogus"`)
}
