package pgrep

// Match is a single search result. BytePosition and LineNumber are -1 when
// not requested by Options, per spec §3.
type Match struct {
	// BytePosition is the absolute file offset: the line's start offset in
	// full-line mode, or the occurrence's start offset in only-matching
	// mode.
	BytePosition int64

	// LineNumber is the 1-based line number containing the match.
	LineNumber int64

	// Text is either the full line (full-line mode) or the matched
	// substring (only-matching mode).
	Text string
}

// unrequested is the sentinel value for an offset or line number that the
// caller did not ask for.
const unrequested = -1
