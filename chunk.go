package pgrep

// ChunkIndex is the monotonic sequence number a Reader assigns to each
// chunk it emits, in emission order. It is the sole ordering key used by
// the Sink.
type ChunkIndex uint64

// DataChunk is a contiguous, line-aligned slice of the input plus the
// metadata needed to map matches found in it back to absolute file
// positions.
//
// A chunk always ends either at EOF or immediately after a '\n'; it never
// splits a line across a chunk boundary.
type DataChunk struct {
	// Bytes holds the chunk's content. For a memory-mapped reader this is
	// a slice view into the map and must not be mutated in place; any
	// processor that needs to transform the bytes (e.g. ASCII lower-casing
	// for the case-insensitive fast path) must first copy into a private
	// buffer.
	Bytes []byte

	// OriginalOffset is the absolute byte offset of the chunk's first byte
	// in the raw (possibly compressed) source.
	OriginalOffset int64

	// ActualOffset is the absolute byte offset of the chunk's first byte
	// in the post-processing (logical, decompressed) stream. Equal to
	// OriginalOffset when no decompression took place.
	ActualOffset int64

	// Index is this chunk's position in the reader's emission order.
	Index ChunkIndex

	// NewlineIndex holds the local (chunk-relative) byte offsets of every
	// '\n' in Bytes, in strictly increasing order. It is nil until a
	// NewlineIndexer processor has run over the chunk.
	NewlineIndex []int

	// release is called exactly once, by the stage that last touches the
	// chunk, when the chunk is no longer needed. For a memory-mapped chunk
	// this drops a reference on the underlying mapping (see reader_mmap.go);
	// for every other reader it is nil.
	release func()
}

// Size returns the number of bytes currently held by the chunk.
func (c *DataChunk) Size() int { return len(c.Bytes) }

// Release returns the chunk's resources, if any, to its owner. Safe to call
// on a chunk with no associated resources.
func (c *DataChunk) Release() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
}

// lineNumberFor returns the 1-based line number of the line containing
// localOffset (a byte offset relative to the start of Bytes), using the
// chunk's newline index. It is the caller's responsibility to have run the
// NewlineIndexer first; lineStart reports the chunk-relative start of that
// line's bytes. The line number counts from the start of the chunk, not of
// the file; Executor.Run adds the lines of the preceding chunks.
func (c *DataChunk) lineNumberFor(localOffset int) (lineNumber int64, lineStart int) {
	// The number of newlines strictly before localOffset equals the number
	// of completed lines before the one containing localOffset.
	n := sortedCountLessThan(c.NewlineIndex, localOffset)
	if n == 0 {
		return 1, 0
	}
	return int64(n) + 1, c.NewlineIndex[n-1] + 1
}

// lineEnd returns the chunk-relative offset one past the last byte of the
// line starting at lineStart (i.e. the index of the line's trailing '\n',
// or len(Bytes) if the line has no terminator because it's the final,
// unterminated line of the file).
func (c *DataChunk) lineEnd(lineStart int) int {
	n := sortedCountLessThan(c.NewlineIndex, lineStart)
	if n < len(c.NewlineIndex) && c.NewlineIndex[n] >= lineStart {
		return c.NewlineIndex[n]
	}
	return len(c.Bytes)
}

// sortedCountLessThan returns the number of elements in the sorted slice s
// that are strictly less than v, via binary search.
func sortedCountLessThan(s []int, v int) int {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := (lo + hi) / 2
		if s[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
