package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkTargetSinglePath(t *testing.T) {
	f, err := ioutil.TempFile("", "pgrep-walk-*.txt")
	require.NoError(t, err)
	f.Close()
	defer os.Remove(f.Name())

	files, err := walkTarget(f.Name())
	require.NoError(t, err)
	require.Equal(t, []string{f.Name()}, files)
}

func TestWalkTargetDirectorySkipsDotfiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "pgrep-walk-dir-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, ".hidden"), []byte("b"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, ".git", "config"), []byte("c"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o644))

	files, err := walkTarget(dir)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub", "b.txt"),
	}, files)
}
