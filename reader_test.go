package pgrep

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// reconstruct drains r and concatenates every chunk's bytes in the order
// Next returns them, verifying P1: byte-exact reconstruction.
func reconstruct(t *testing.T, r Reader) []byte {
	t.Helper()
	var out []byte
	lastIndex := int64(-1)
	for {
		c, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.Greater(t, int64(c.Index), lastIndex)
		lastIndex = int64(c.Index)
		out = append(out, c.Bytes...)
		c.Release()
	}
	return out
}

func TestStreamReaderReconstructsInput(t *testing.T) {
	content := strings.Repeat("the quick brown fox jumps\n", 500) + "trailing without newline"
	r := NewStreamReader(strings.NewReader(content), 97)
	require.Equal(t, []byte(content), reconstruct(t, r))
}

func TestStreamReaderEmptyInput(t *testing.T) {
	r := NewStreamReader(strings.NewReader(""), 64)
	_, err := r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestStreamReaderNeverSplitsALine(t *testing.T) {
	content := "aaaaaaaaaa\nbb\nccccccccccccccccccc\n"
	r := NewStreamReader(strings.NewReader(content), 8)
	for {
		c, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.True(t, c.Bytes[len(c.Bytes)-1] == '\n' || r.done)
	}
}

func TestMmapReaderReconstructsInput(t *testing.T) {
	content := strings.Repeat("line of text here\n", 1000)
	dir := t.TempDir()
	name := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))

	r, err := NewMmapReader(name, 137)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, []byte(content), reconstruct(t, r))
}

func TestMmapReaderEmptyFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(name, nil, 0o644))

	r, err := NewMmapReader(name, 64)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestMmapReaderNotFound(t *testing.T) {
	_, err := NewMmapReader("/nonexistent/path/does/not/exist", 64)
	require.Error(t, err)
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestMultiReaderHandsOutRangesInOrder(t *testing.T) {
	content := "0123456789"
	dir := t.TempDir()
	name := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))

	ranges := []LineRange{{Start: 0, End: 4}, {Start: 4, End: 7}, {Start: 7, End: 10}}
	r, err := NewMultiReader(name, ranges, 2)
	require.NoError(t, err)

	var out []byte
	for i := 0; ; i++ {
		c, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.EqualValues(t, i, c.Index)
		out = append(out, c.Bytes...)
	}
	require.Equal(t, content, string(out))
}
