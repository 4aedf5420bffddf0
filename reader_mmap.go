package pgrep

import (
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// mmapHandle is a reference-counted view of one memory-mapped file. The
// mapping is released with unix.Munmap only once every chunk slicing it has
// called Release, matching spec §5's "resource release" requirement and
// §9's "memory-map safety" design note.
type mmapHandle struct {
	data []byte
	refs int64
}

func (h *mmapHandle) acquire() { atomic.AddInt64(&h.refs, 1) }

func (h *mmapHandle) release() {
	if atomic.AddInt64(&h.refs, -1) == 0 {
		unix.Munmap(h.data)
	}
}

// MmapReader maps a regular file read-only and slices it into line-aligned
// chunks without copying. Workers must not mutate the returned bytes; any
// processor that would mutate them (e.g. ASCII lower-casing) must first
// copy into a private buffer, per spec §4.2 and §9.
type MmapReader struct {
	f         *os.File
	h         *mmapHandle
	blockSize int

	pos    int64
	index  ChunkIndex
	done   bool
	closed bool
}

var _ Reader = (*MmapReader)(nil)

// NewMmapReader maps name read-only. Rejected at construction for stdin by
// the caller (spec §4.2: "only the streamed single-reader variant is valid"
// for stdin) -- this constructor only ever receives a regular file path.
func NewMmapReader(name string, blockSize int) (*MmapReader, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError{Path: name, Err: err}
		}
		return nil, IoError{Op: "open " + name, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, IoError{Op: "stat " + name, Err: err}
	}
	size := info.Size()
	if size == 0 {
		// unix.Mmap rejects a zero-length mapping; an empty file produces
		// zero chunks, same as the streamed reader.
		f.Close()
		return &MmapReader{blockSize: blockSize, done: true, closed: true}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, IoError{Op: "mmap " + name, Err: err}
	}
	return &MmapReader{
		f:         f,
		h:         &mmapHandle{data: data, refs: 1},
		blockSize: blockSize,
	}, nil
}

func (r *MmapReader) Next() (*DataChunk, error) {
	if r.done {
		return nil, io.EOF
	}
	data := r.h.data
	if r.pos >= int64(len(data)) {
		r.done = true
		return nil, io.EOF
	}

	end := r.pos + int64(r.blockSize)
	if end >= int64(len(data)) {
		end = int64(len(data))
	} else {
		// Extend to the next newline so the chunk never splits a line.
		for end < int64(len(data)) && data[end-1] != '\n' {
			end++
		}
	}

	r.h.acquire()
	c := &DataChunk{
		Bytes:          data[r.pos:end],
		OriginalOffset: r.pos,
		ActualOffset:   r.pos,
		Index:          r.index,
		release:        r.h.release,
	}
	r.pos = end
	r.index++
	if r.pos >= int64(len(data)) {
		r.done = true
	}
	return c, nil
}

func (r *MmapReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.h.release()
	return r.f.Close()
}
