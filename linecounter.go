package pgrep

import "bytes"

// LineCounter implements the counting-mode search path (Options.Count):
// it reports how many lines contain at least one occurrence without ever
// materializing a Match's text, line number, or byte offset, and without
// requiring the chunk's NewlineIndex to have been built -- per the open
// question decision in SPEC_FULL.md §6, a counting pipeline skips the
// NewlineIndexer stage entirely and finds each matching line's boundaries
// on demand instead of from a precomputed index.
type LineCounter struct {
	pattern     []byte
	patternFold []byte
	ignoreCase  bool
}

var _ Searcher = (*LineCounter)(nil)

func newLineCounter(o *Options) *LineCounter {
	c := &LineCounter{pattern: []byte(o.Pattern), ignoreCase: o.IgnoreCase}
	if c.ignoreCase {
		c.patternFold = asciiLower([]byte(o.Pattern))
	}
	return c
}

// Search returns one Match per matching line, with every field left
// unrequested; callers in counting mode only ever consult len(matches).
func (c *LineCounter) Search(chunk *DataChunk) ([]Match, error) {
	var matches []Match
	lastLineStart := -1
	b := chunk.Bytes
	off := c.indexFrom(b, 0)
	for off >= 0 {
		lineStart := lineStartBefore(b, off)
		if lineStart != lastLineStart {
			matches = append(matches, Match{BytePosition: unrequested, LineNumber: unrequested})
			lastLineStart = lineStart
		}
		lineEnd := lineEndAfter(b, off)
		if lineEnd >= len(b) {
			break
		}
		off = c.indexFrom(b, lineEnd+1)
	}
	return matches, nil
}

func (c *LineCounter) indexFrom(b []byte, from int) int {
	if from > len(b) {
		return -1
	}
	var i int
	if c.ignoreCase {
		i = indexFold(b[from:], c.pattern, c.patternFold)
	} else {
		i = bytes.Index(b[from:], c.pattern)
	}
	if i < 0 {
		return -1
	}
	return from + i
}

func lineStartBefore(b []byte, off int) int {
	i := bytes.LastIndexByte(b[:off], '\n')
	return i + 1
}

func lineEndAfter(b []byte, off int) int {
	i := bytes.IndexByte(b[off:], '\n')
	if i < 0 {
		return len(b)
	}
	return off + i
}
