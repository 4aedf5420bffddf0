package pgrep

import "regexp"

// regexSearcher implements the regex search path: used whenever the pattern
// is not pinned literal and contains a metacharacter, or whenever
// case-insensitive matching needs full Unicode folding (spec §4.4). Go's
// regexp package (RE2-derived) is the closest available equivalent to the
// original's RE2 binding; see DESIGN.md for why no alternative engine from
// the retrieved pack was used instead.
type regexSearcher struct {
	re           *regexp.Regexp
	onlyMatching bool
	lineNumber   bool
	byteOffset   bool
	countOnly    bool
}

var _ Searcher = (*regexSearcher)(nil)

func newRegexSearcher(o *Options) (*regexSearcher, error) {
	pattern := o.Pattern
	if o.FixedString {
		pattern = regexp.QuoteMeta(pattern)
	}
	if o.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, BadPatternError{Pattern: o.Pattern, Err: err}
	}
	return &regexSearcher{
		re:           re,
		onlyMatching: o.OnlyMatching,
		lineNumber:   o.LineNumber,
		byteOffset:   o.ByteOffset,
		countOnly:    o.Count,
	}, nil
}

func (s *regexSearcher) Search(c *DataChunk) ([]Match, error) {
	if s.countOnly {
		return s.searchCount(c)
	}
	if s.onlyMatching {
		return s.searchOnlyMatching(c)
	}
	return s.searchFullLine(c)
}

func (s *regexSearcher) searchFullLine(c *DataChunk) ([]Match, error) {
	var matches []Match
	lastLineStart := -1
	b := c.Bytes
	for _, loc := range s.re.FindAllIndex(b, -1) {
		off := loc[0]
		lineNumber, lineStart := c.lineNumberFor(off)
		if lineStart == lastLineStart {
			continue
		}
		lineEnd := c.lineEnd(lineStart)
		line := b[lineStart:lineEnd]
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
	return matches, nil
}

func (s *regexSearcher) searchOnlyMatching(c *DataChunk) ([]Match, error) {
	var matches []Match
	for _, loc := range s.re.FindAllIndex(c.Bytes, -1) {
		off, end := loc[0], loc[1]
		lineNumber, _ := c.lineNumberFor(off)
		matches = append(matches, Match{
			BytePosition: position(c, int64(off), s.byteOffset),
			LineNumber:   lineNumberOrUnrequested(lineNumber, s.lineNumber),
			Text:         string(c.Bytes[off:end]),
		})
	}
	return matches, nil
}

// searchCount mirrors LineCounter's on-demand line-boundary lookup, so a
// regex-mode counting pipeline also skips the NewlineIndexer stage.
func (s *regexSearcher) searchCount(c *DataChunk) ([]Match, error) {
	var matches []Match
	lastLineStart := -1
	b := c.Bytes
	for _, loc := range s.re.FindAllIndex(b, -1) {
		off := loc[0]
		lineStart := lineStartBefore(b, off)
		if lineStart == lastLineStart {
			continue
		}
		matches = append(matches, Match{BytePosition: unrequested, LineNumber: unrequested})
		lastLineStart = lineStart
	}
	return matches, nil
}
