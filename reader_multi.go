package pgrep

import (
	"io"
	"os"
	"sync"
)

// LineRange is a precomputed, line-aligned byte range within a file,
// supplied by an external index (spec §4.2: "when those boundaries are
// supplied by an external index").
type LineRange struct {
	Start int64
	End   int64 // exclusive
}

// MultiReader serves precomputed ranges of a file, opening a fresh
// filehandle for each one, grounded on chop.go's one-filehandle-per-worker
// pattern. Next may be called from several goroutines at once. Chunk
// indices are assigned in the order partitions are handed out, not in the
// order the reads complete, per spec §4.2.
type MultiReader struct {
	name    string
	ranges  []LineRange
	readers int

	mu   sync.Mutex
	next int // index into ranges of the next partition to hand out
}

var _ Reader = (*MultiReader)(nil)

// NewMultiReader constructs a reader that will serve ranges across up to
// readerThreads concurrent filehandles. It is rejected at construction for
// stdin by the caller, mirroring the mmap restriction in spec §4.2.
func NewMultiReader(name string, ranges []LineRange, readerThreads int) (*MultiReader, error) {
	if readerThreads < 1 {
		readerThreads = 1
	}
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError{Path: name, Err: err}
		}
		return nil, IoError{Op: "stat " + name, Err: err}
	}
	return &MultiReader{name: name, ranges: ranges, readers: readerThreads}, nil
}

// Next hands out the next range in order and reads it with a fresh
// filehandle. Because ranges are handed out under a single mutex in array
// order, ChunkIndex assignment stays monotonic even though the ReadAt
// calls that follow may complete out of order when Next runs on several
// goroutines.
func (r *MultiReader) Next() (*DataChunk, error) {
	r.mu.Lock()
	if r.next >= len(r.ranges) {
		r.mu.Unlock()
		return nil, io.EOF
	}
	i := r.next
	rng := r.ranges[i]
	r.next++
	r.mu.Unlock()

	f, err := os.Open(r.name)
	if err != nil {
		return nil, IoError{Op: "open " + r.name, Err: err}
	}
	defer f.Close()

	buf := make([]byte, rng.End-rng.Start)
	if _, err := f.ReadAt(buf, rng.Start); err != nil && err != io.EOF {
		return nil, IoError{Op: "read " + r.name, Err: err}
	}

	return &DataChunk{
		Bytes:          buf,
		OriginalOffset: rng.Start,
		ActualOffset:   rng.Start,
		Index:          ChunkIndex(i),
	}, nil
}

func (r *MultiReader) Close() error { return nil }

// PartitionFile splits name into roughly partitions-many line-aligned
// ranges suitable for NewMultiReader, each extended forward from an even
// byte split to the next '\n' so no range ever starts or ends mid-line
// (P2). It only seeks and reads small lookahead windows, never the whole
// file, since a MultiReader's whole point is avoiding a single sequential
// scan of a large input.
func PartitionFile(name string, partitions int) ([]LineRange, error) {
	if partitions < 1 {
		partitions = 1
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, IoError{Op: "open " + name, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, IoError{Op: "stat " + name, Err: err}
	}
	size := info.Size()
	if size == 0 {
		return []LineRange{{Start: 0, End: 0}}, nil
	}
	if int64(partitions) > size {
		partitions = int(size)
	}

	boundaries := make([]int64, 0, partitions+1)
	boundaries = append(boundaries, 0)
	for i := 1; i < partitions; i++ {
		target := size * int64(i) / int64(partitions)
		off, err := nextLineStart(f, target, size)
		if err != nil {
			return nil, err
		}
		if off > boundaries[len(boundaries)-1] && off < size {
			boundaries = append(boundaries, off)
		}
	}
	boundaries = append(boundaries, size)

	ranges := make([]LineRange, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		ranges = append(ranges, LineRange{Start: boundaries[i], End: boundaries[i+1]})
	}
	return ranges, nil
}

// nextLineStart returns the offset of the first byte after the next '\n'
// at or after from, reading forward in small windows rather than the
// whole file. It returns size if no further newline is found.
func nextLineStart(f *os.File, from, size int64) (int64, error) {
	const window = 64 << 10
	buf := make([]byte, window)
	for pos := from; pos < size; pos += window {
		n, err := f.ReadAt(buf, pos)
		if err != nil && err != io.EOF {
			return 0, IoError{Op: "read " + f.Name(), Err: err}
		}
		for i := 0; i < n; i++ {
			if buf[i] == '\n' {
				return pos + int64(i) + 1, nil
			}
		}
	}
	return size, nil
}
