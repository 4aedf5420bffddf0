package main

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSearchSubcommand(t *testing.T) {
	cmd := newRootCommand()
	sub, _, err := cmd.Find([]string{"search"})
	require.NoError(t, err)
	require.Equal(t, "search", sub.Name())
}

func TestSearchCommandRequiresPattern(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"search"})
	cmd.SetOutput(ioutil.Discard)
	_, err := cmd.ExecuteC()
	require.Error(t, err)
}

func TestRootCommandBareInvocationRunsSearch(t *testing.T) {
	cmd := newRootCommand()
	sub, args, err := cmd.Find([]string{"needle", "/tmp/does-not-matter"})
	require.NoError(t, err)
	require.Equal(t, cmd, sub, "a pattern that isn't a subcommand name must dispatch to root's own RunE")
	require.Equal(t, []string{"needle", "/tmp/does-not-matter"}, args)
}
