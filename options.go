package pgrep

import "github.com/pkg/errors"

// Locale selects the case-folding behavior used by a case-insensitive
// search.
type Locale int

const (
	// LocaleASCII folds only the ASCII letters A-Z/a-z. Used by the literal
	// SIMD-style fast path.
	LocaleASCII Locale = iota
	// LocaleUTF8 delegates full Unicode case-folding to the regex engine.
	LocaleUTF8
)

// Color selects whether the streaming sink's consumer should emit ANSI SGR
// sequences around output fields.
type Color int

const (
	ColorOff Color = iota
	ColorOn
)

// DefaultBlockSize is the target chunk size the Reader reads before
// extending to the next line boundary.
const DefaultBlockSize = 16 << 20 // 16 MiB

// Options configures a pipeline. It is immutable once passed to New: none
// of its fields may change after construction.
type Options struct {
	// Pattern is the search pattern: a literal string unless FixedString is
	// false and the pattern contains regex metacharacters.
	Pattern string

	// FixedString forces literal matching even if Pattern looks like a
	// regular expression.
	FixedString bool

	// IgnoreCase enables case-insensitive matching.
	IgnoreCase bool

	// LineNumber requests 1-based line numbers on each Match.
	LineNumber bool

	// ByteOffset requests absolute byte offsets on each Match.
	ByteOffset bool

	// OnlyMatching switches from full-line mode (one Match per matching
	// line) to only-matching mode (one Match per occurrence).
	OnlyMatching bool

	// Count switches the pipeline to counting mode: only the number of
	// matching lines is tracked, not their content. Implies LineNumber and
	// ByteOffset are both false regardless of their settings.
	Count bool

	// Locale controls case-folding semantics for IgnoreCase.
	Locale Locale

	// UseMmap selects the memory-mapped Reader variant. true means mmap,
	// literally -- see SPEC_FULL.md §6 on the source's inverted polarity.
	UseMmap bool

	// WorkerThreads is the number of searcher worker goroutines. Must be
	// >= 1.
	WorkerThreads int

	// ReaderThreads is the number of line-aligned ranges the multi-reader
	// variant splits a file into. Must be >= 1. The Executor calls the
	// Reader from a single goroutine, so those ranges are read one after
	// another, not concurrently. The streamed and mmap readers and stdin
	// do not use it.
	ReaderThreads int

	// Color controls ANSI SGR decoration of the streaming sink's output.
	Color Color

	// BlockSize overrides DefaultBlockSize when non-zero.
	BlockSize int
}

// Validate checks the invariants Options must satisfy before a pipeline can
// be constructed, and fills in defaults for zero-valued fields.
func (o *Options) Validate() error {
	if o.Pattern == "" {
		return errors.New("pattern must not be empty")
	}
	if o.Count {
		// Preserve the force-off reading from spec §9's open question: a
		// counting pipeline never materializes line numbers or offsets.
		o.LineNumber = false
		o.ByteOffset = false
	}
	if o.WorkerThreads == 0 {
		o.WorkerThreads = 1
	}
	if o.WorkerThreads < 1 {
		return errors.New("worker_threads must be >= 1")
	}
	if o.ReaderThreads == 0 {
		o.ReaderThreads = 1
	}
	if o.ReaderThreads < 1 {
		return errors.New("reader_threads must be >= 1")
	}
	if o.BlockSize == 0 {
		o.BlockSize = DefaultBlockSize
	}
	return nil
}

// needsLineMapping reports whether the pipeline requires the NewlineIndexer
// to run, per spec §4.3: line numbers always need it; full-line mode also
// needs it to find each line's boundaries for line-start deduplication
// (P5), even when LineNumber itself was not requested. Counting mode never
// needs it: LineCounter and the regex searcher's count path find line
// boundaries on demand via lineStartBefore/lineEndAfter instead.
func (o *Options) needsLineMapping() bool {
	if o.Count {
		return false
	}
	return o.LineNumber || !o.OnlyMatching
}
