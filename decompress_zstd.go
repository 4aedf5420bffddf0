//go:build !datadog

package pgrep

import "github.com/klauspost/compress/zstd"

// decoder is shared read-only across workers; zstd.Decoder is safe for
// concurrent use once constructed, same caching pattern the teacher uses
// for its own compressor/decompressor pair.
var decoder, _ = zstd.NewReader(nil)

// Decompressor is the InplaceProcessor hook for "meta-file" formats per
// spec §1/§4.3: it replaces a chunk's bytes with their decompressed form,
// sets ActualOffset to the running offset into the decompressed stream,
// and leaves OriginalOffset (the chunk's position in the raw, compressed
// source) untouched. A single Decompressor instance must not be shared
// across concurrent chunks, since LogicalOffset advances per call; the
// processor chain runs on one goroutine ahead of the worker pool, so this
// holds as long as a fresh Decompressor isn't constructed per chunk.
type Decompressor struct {
	// LogicalOffset is the running offset into the decompressed stream.
	LogicalOffset int64
}

var _ InplaceProcessor = (*Decompressor)(nil)

func (d *Decompressor) Process(c *DataChunk) error {
	out, err := decoder.DecodeAll(c.Bytes, nil)
	if err != nil {
		return IoError{Op: "decompress chunk", Err: err}
	}
	c.Bytes = out
	c.ActualOffset = d.LogicalOffset
	d.LogicalOffset += int64(len(out))
	return nil
}
