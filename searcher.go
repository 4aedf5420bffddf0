package pgrep

import "bytes"

// Searcher scans a single chunk and returns the matches it contains, in
// ascending byte-position order. Implementations must not retain Bytes past
// the call: the chunk may be released immediately after Search returns.
type Searcher interface {
	Search(c *DataChunk) ([]Match, error)
}

// NewSearcher selects the Searcher implementation for o, per spec §4.4:
// a literal ASCII-only search takes the fast path; anything needing full
// Unicode case-folding or actual regex metacharacters goes through the
// regex engine.
func NewSearcher(o *Options) (Searcher, error) {
	if usesRegex(o) {
		return newRegexSearcher(o)
	}
	if o.Count {
		return newLineCounter(o), nil
	}
	return newLiteralSearcher(o), nil
}

// usesRegex reports whether o requires the regex engine: either the pattern
// was not pinned literal and contains a metacharacter, or case-insensitive
// matching was requested under full Unicode folding.
func usesRegex(o *Options) bool {
	if o.FixedString {
		return o.IgnoreCase && o.Locale == LocaleUTF8
	}
	return hasRegexMeta(o.Pattern) || (o.IgnoreCase && o.Locale == LocaleUTF8)
}

const regexMetaChars = `\.+*?()|[]{}^$`

func hasRegexMeta(s string) bool {
	return bytes.ContainsAny([]byte(s), regexMetaChars)
}

// literalSearcher implements the ASCII literal fast path: a plain substring
// scan, with an optional byte-wise ASCII case fold. It never needs the regex
// engine and never allocates beyond the returned Match slice.
type literalSearcher struct {
	pattern      []byte
	patternFold  []byte // ASCII-lowercased pattern, set iff ignoreCase
	ignoreCase   bool
	onlyMatching bool
	lineNumber   bool
	byteOffset   bool
}

var _ Searcher = (*literalSearcher)(nil)

func newLiteralSearcher(o *Options) *literalSearcher {
	s := &literalSearcher{
		pattern:      []byte(o.Pattern),
		ignoreCase:   o.IgnoreCase,
		onlyMatching: o.OnlyMatching,
		lineNumber:   o.LineNumber,
		byteOffset:   o.ByteOffset,
	}
	if s.ignoreCase {
		s.patternFold = asciiLower([]byte(o.Pattern))
	}
	return s
}

func (s *literalSearcher) Search(c *DataChunk) ([]Match, error) {
	if s.onlyMatching {
		return s.searchOnlyMatching(c)
	}
	return s.searchFullLine(c)
}

// searchFullLine emits at most one Match per line, at the first occurrence
// found in that line, per spec §3 ("Match is deduplicated by line start in
// full-line mode") and P5.
func (s *literalSearcher) searchFullLine(c *DataChunk) ([]Match, error) {
	var matches []Match
	lastLineStart := -1
	for off := s.indexFrom(c.Bytes, 0); off >= 0; {
		lineNumber, lineStart := c.lineNumberFor(off)
		if lineStart != lastLineStart {
			lineEnd := c.lineEnd(lineStart)
			line := c.Bytes[lineStart:lineEnd]
			// Trim a trailing '\r' so CRLF input doesn't leak into Text.
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			matches = append(matches, Match{
				BytePosition: position(c, int64(lineStart), s.byteOffset),
				LineNumber:   lineNumberOrUnrequested(lineNumber, s.lineNumber),
				Text:         string(line),
			})
			lastLineStart = lineStart
		}
		next := c.lineEnd(lineStart)
		if next >= len(c.Bytes) {
			break
		}
		next++ // step past the '\n'
		off = s.indexFrom(c.Bytes, next)
	}
	return matches, nil
}

// searchOnlyMatching emits one Match per non-overlapping occurrence, per P6.
func (s *literalSearcher) searchOnlyMatching(c *DataChunk) ([]Match, error) {
	var matches []Match
	for off := s.indexFrom(c.Bytes, 0); off >= 0; {
		end := off + len(s.pattern)
		lineNumber, _ := c.lineNumberFor(off)
		matches = append(matches, Match{
			BytePosition: position(c, int64(off), s.byteOffset),
			LineNumber:   lineNumberOrUnrequested(lineNumber, s.lineNumber),
			Text:         string(c.Bytes[off:end]),
		})
		off = s.indexFrom(c.Bytes, end)
	}
	return matches, nil
}

// indexFrom returns the byte offset of the next occurrence of the pattern in
// b at or after from, or -1 if there is none. Matching advances by the full
// match length on a hit, the standard non-overlapping definition used by
// P6 and by grep -o.
func (s *literalSearcher) indexFrom(b []byte, from int) int {
	if from > len(b) {
		return -1
	}
	var i int
	if s.ignoreCase {
		i = indexFold(b[from:], s.pattern, s.patternFold)
	} else {
		i = bytes.Index(b[from:], s.pattern)
	}
	if i < 0 {
		return -1
	}
	return from + i
}

// indexFold finds pat (already known in both its original and ASCII-folded
// form) within b case-insensitively, by folding each candidate window.
func indexFold(b, pat, patFold []byte) int {
	if len(pat) == 0 {
		return 0
	}
	for i := 0; i+len(pat) <= len(b); i++ {
		if asciiEqualFold(b[i:i+len(pat)], pat, patFold) {
			return i
		}
	}
	return -1
}

func asciiEqualFold(window, pat, patFold []byte) bool {
	for i, c := range window {
		if asciiLowerByte(c) != patFold[i] {
			return false
		}
	}
	return true
}

func asciiLower(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = asciiLowerByte(c)
	}
	return out
}

func asciiLowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func position(c *DataChunk, localOffset int64, requested bool) int64 {
	if !requested {
		return unrequested
	}
	return c.ActualOffset + localOffset
}

func lineNumberOrUnrequested(n int64, requested bool) int64 {
	if !requested {
		return unrequested
	}
	return n
}
