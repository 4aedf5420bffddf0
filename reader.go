package pgrep

import (
	"bufio"
	"io"
	"os"
)

// Reader produces an ordered, finite sequence of DataChunks whose bytes,
// concatenated in Index order, reconstruct the input byte-for-byte. Next
// returns io.EOF exactly once processing is complete, and keeps returning
// io.EOF on every subsequent call.
type Reader interface {
	Next() (*DataChunk, error)
	Close() error
}

// StreamReader reads sequentially from an io.Reader, extending each block
// read to the next line boundary. It is the only variant valid for stdin
// (spec §4.2).
type StreamReader struct {
	br        *bufio.Reader
	closer    io.Closer
	blockSize int

	index  ChunkIndex
	offset int64
	done   bool
}

var _ Reader = (*StreamReader)(nil)

// NewStreamReader wraps an arbitrary io.Reader. If r also implements
// io.Closer, Close on the returned StreamReader closes it.
func NewStreamReader(r io.Reader, blockSize int) *StreamReader {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	sr := &StreamReader{br: bufio.NewReaderSize(r, blockSize), blockSize: blockSize}
	if c, ok := r.(io.Closer); ok {
		sr.closer = c
	}
	return sr
}

// NewFileStreamReader opens name and wraps it in a StreamReader.
func NewFileStreamReader(name string, blockSize int) (*StreamReader, error) {
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError{Path: name, Err: err}
		}
		return nil, IoError{Op: "open " + name, Err: err}
	}
	sr := NewStreamReader(f, blockSize)
	sr.closer = f
	return sr, nil
}

// Next reads the next line-aligned chunk. Chunk sizing per spec §4.2: read
// at least blockSize bytes, then extend to the next '\n' so lines are never
// split; the trailing partial line at EOF forms the final chunk even
// without a terminating '\n'.
func (r *StreamReader) Next() (*DataChunk, error) {
	if r.done {
		return nil, io.EOF
	}

	buf := make([]byte, r.blockSize)
	n, err := io.ReadFull(r.br, buf)
	buf = buf[:n]

	switch {
	case err == nil:
		// Filled the whole block; extend to the next newline so the chunk
		// never splits a line.
		rest, rerr := r.br.ReadBytes('\n')
		buf = append(buf, rest...)
		if rerr != nil {
			if rerr != io.EOF {
				r.done = true
				return nil, IoError{Op: "read", Err: rerr}
			}
			r.done = true
		}
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		r.done = true
	default:
		r.done = true
		return nil, IoError{Op: "read", Err: err}
	}

	if len(buf) == 0 {
		return nil, io.EOF
	}

	c := &DataChunk{
		Bytes:          buf,
		OriginalOffset: r.offset,
		ActualOffset:   r.offset,
		Index:          r.index,
	}
	r.offset += int64(len(buf))
	r.index++
	return c, nil
}

func (r *StreamReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
