package pgrep

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineCounterCountsDistinctLines(t *testing.T) {
	c := &DataChunk{Bytes: []byte("foo foo\nbar\nfoo\n")}
	o := &Options{Pattern: "foo", Count: true}
	require.NoError(t, o.Validate())
	lc := newLineCounter(o)

	matches, err := lc.Search(c)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, m := range matches {
		require.EqualValues(t, unrequested, m.BytePosition)
		require.EqualValues(t, unrequested, m.LineNumber)
	}
}

func TestLineCounterIgnoreCase(t *testing.T) {
	c := &DataChunk{Bytes: []byte("Foo\nfoo\nFOO\n")}
	o := &Options{Pattern: "foo", Count: true, IgnoreCase: true}
	require.NoError(t, o.Validate())
	lc := newLineCounter(o)

	matches, err := lc.Search(c)
	require.NoError(t, err)
	require.Len(t, matches, 3)
}

func TestOptionsValidateForcesOffsetsUnderCount(t *testing.T) {
	o := &Options{Pattern: "x", Count: true, LineNumber: true, ByteOffset: true}
	require.NoError(t, o.Validate())
	require.False(t, o.LineNumber)
	require.False(t, o.ByteOffset)
}

func TestNewSearcherDispatchesCountToLineCounter(t *testing.T) {
	o := &Options{Pattern: "x", Count: true}
	require.NoError(t, o.Validate())
	s, err := NewSearcher(o)
	require.NoError(t, err)
	_, ok := s.(*LineCounter)
	require.True(t, ok)
}
