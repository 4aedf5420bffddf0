package pgrep

import "bytes"

// InplaceProcessor transforms a chunk before it reaches the Searcher. Each
// processor takes ownership of the chunk and returns it (or an error,
// which ends the Executor's run).
type InplaceProcessor interface {
	Process(c *DataChunk) error
}

// ProcessorFunc adapts a plain function to InplaceProcessor.
type ProcessorFunc func(c *DataChunk) error

func (f ProcessorFunc) Process(c *DataChunk) error { return f(c) }

// NewlineIndexer computes DataChunk.NewlineIndex by scanning Bytes for '\n'.
// It is stateless and safe to share across workers; each call operates only
// on the chunk passed to it.
type NewlineIndexer struct{}

var _ InplaceProcessor = NewlineIndexer{}

func (NewlineIndexer) Process(c *DataChunk) error {
	c.NewlineIndex = scanNewlines(c.Bytes)
	return nil
}

// scanNewlines returns the sorted, chunk-local byte offsets of every '\n'
// in b. The result is identical to what a byte-at-a-time scalar scan would
// produce; bytes.IndexByte is implemented with vectorized assembly in the
// Go runtime for exactly this reason.
func scanNewlines(b []byte) []int {
	var idx []int
	off := 0
	for {
		i := bytes.IndexByte(b[off:], '\n')
		if i < 0 {
			break
		}
		idx = append(idx, off+i)
		off += i + 1
	}
	return idx
}
