//go:build datadog

package pgrep

import "github.com/DataDog/zstd"

// Decompressor is the DataDog-backed build of the decompression seam, kept
// as a sibling file behind a build tag the same way the teacher keeps
// compress.go and compress_klauspost.go as alternates for the same
// contract.
type Decompressor struct {
	LogicalOffset int64
}

var _ InplaceProcessor = (*Decompressor)(nil)

func (d *Decompressor) Process(c *DataChunk) error {
	out, err := zstd.Decompress(nil, c.Bytes)
	if err != nil {
		return IoError{Op: "decompress chunk", Err: err}
	}
	c.Bytes = out
	c.ActualOffset = d.LogicalOffset
	d.LogicalOffset += int64(len(out))
	return nil
}
