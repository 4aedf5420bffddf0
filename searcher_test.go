package pgrep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func chunkFor(t *testing.T, text string) *DataChunk {
	t.Helper()
	c := &DataChunk{Bytes: []byte(text)}
	require.NoError(t, NewlineIndexer{}.Process(c))
	return c
}

func TestLiteralSearcherFullLine(t *testing.T) {
	lines := []string{"no match here", "with Sherlock", "the lazy dog"}
	text := strings.Join(lines, "\n") + "\n"
	c := chunkFor(t, text)

	o := &Options{Pattern: "Sherlock", LineNumber: true, ByteOffset: true}
	require.NoError(t, o.Validate())
	s := newLiteralSearcher(o)

	matches, err := s.Search(c)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, int64(2), matches[0].LineNumber)
	require.Equal(t, int64(len(lines[0])+1), matches[0].BytePosition)
	require.Equal(t, lines[1], matches[0].Text)
}

func TestLiteralSearcherIgnoreCase(t *testing.T) {
	c := chunkFor(t, "Hello World\nhello world\n")
	o := &Options{Pattern: "hello", IgnoreCase: true, Locale: LocaleASCII}
	require.NoError(t, o.Validate())
	s := newLiteralSearcher(o)

	matches, err := s.Search(c)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestLiteralSearcherOnlyMatchingNonOverlapping(t *testing.T) {
	// "aaa" admits exactly one non-overlapping "aa" occurrence per line
	// (matching at [0,1] consumes the only pair of adjacent a's available
	// before the next independent scan position); see SPEC_FULL.md §6 for
	// why this differs from the illustrative count in the source material.
	c := chunkFor(t, "aaa\naaa\n")
	o := &Options{Pattern: "aa", OnlyMatching: true, LineNumber: true, ByteOffset: true}
	require.NoError(t, o.Validate())
	s := newLiteralSearcher(o)

	matches, err := s.Search(c)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.Equal(t, int64(0), matches[0].BytePosition)
	require.Equal(t, int64(1), matches[0].LineNumber)
	require.Equal(t, int64(4), matches[1].BytePosition)
	require.Equal(t, int64(2), matches[1].LineNumber)
}

func TestLiteralSearcherOnlyMatchingFourA(t *testing.T) {
	// A 4-byte line does admit two non-overlapping "aa" matches.
	c := chunkFor(t, "aaaa\n")
	o := &Options{Pattern: "aa", OnlyMatching: true}
	require.NoError(t, o.Validate())
	s := newLiteralSearcher(o)

	matches, err := s.Search(c)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestLiteralSearcherDedupesRepeatedMatchOnSameLine(t *testing.T) {
	c := chunkFor(t, "foo foo foo\n")
	o := &Options{Pattern: "foo"}
	require.NoError(t, o.Validate())
	s := newLiteralSearcher(o)

	matches, err := s.Search(c)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "foo foo foo", matches[0].Text)
}

func TestLiteralSearcherUnrequestedFieldsStayUnset(t *testing.T) {
	c := chunkFor(t, "match\n")
	o := &Options{Pattern: "match"}
	require.NoError(t, o.Validate())
	s := newLiteralSearcher(o)

	matches, err := s.Search(c)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.EqualValues(t, unrequested, matches[0].BytePosition)
	require.EqualValues(t, unrequested, matches[0].LineNumber)
}

func TestUsesRegexSelection(t *testing.T) {
	cases := []struct {
		opts Options
		want bool
	}{
		{Options{Pattern: "literal text"}, false},
		{Options{Pattern: "a.b"}, true},
		{Options{Pattern: "a.b", FixedString: true}, false},
		{Options{Pattern: "literal", IgnoreCase: true, Locale: LocaleUTF8}, true},
		{Options{Pattern: "literal", IgnoreCase: true, Locale: LocaleASCII}, false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, usesRegex(&c.opts), c.opts.Pattern)
	}
}
