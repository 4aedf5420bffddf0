package main

import (
	"context"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	f, err := ioutil.TempFile("", "pgrep-search-*.txt")
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(content)
	require.NoError(t, err)
	return f.Name()
}

func TestRunSearchPrintsMatchingLines(t *testing.T) {
	path := writeTempFile(t, "the quick brown fox\njumps over the lazy dog\nfoxes are quick\n")
	defer os.Remove(path)

	out := captureStdout(t, func() {
		err := runSearch(context.Background(), searchOptions{workers: 1, readers: 1, color: "never"}, []string{"fox", path})
		require.NoError(t, err)
	})
	require.Equal(t, "the quick brown fox\nfoxes are quick\n", out)
}

func TestRunSearchLineNumberAndCount(t *testing.T) {
	path := writeTempFile(t, "alpha\nbeta\nalpha\n")
	defer os.Remove(path)

	out := captureStdout(t, func() {
		err := runSearch(context.Background(), searchOptions{workers: 1, readers: 1, color: "never", lineNumber: true}, []string{"alpha", path})
		require.NoError(t, err)
	})
	require.Equal(t, "1:alpha\n3:alpha\n", out)

	out = captureStdout(t, func() {
		err := runSearch(context.Background(), searchOptions{workers: 1, readers: 1, color: "never", count: true}, []string{"alpha", path})
		require.NoError(t, err)
	})
	require.Equal(t, "2\n", out)
}

func TestRunSearchFilesWithMatches(t *testing.T) {
	hit := writeTempFile(t, "needle here\n")
	defer os.Remove(hit)
	miss := writeTempFile(t, "nothing of interest\n")
	defer os.Remove(miss)

	out := captureStdout(t, func() {
		err := runSearch(context.Background(), searchOptions{workers: 1, readers: 1, color: "never", filesWithHits: true}, []string{"needle", hit, miss})
		require.NoError(t, err)
	})
	require.Equal(t, hit+"\n", out)
}

func TestIsASCIIPattern(t *testing.T) {
	require.True(t, isASCIIPattern("hello"))
	require.False(t, isASCIIPattern("héllo"))
}
