package pgrep

import "sync/atomic"

// CountingSink only tracks how many matches were found; it never buffers a
// chunk's results and therefore needs no reordering at all -- chunk order
// is irrelevant to a sum. Used for Options.Count.
type CountingSink struct {
	closed int32
	n      int64
}

var _ Sink = (*CountingSink)(nil)

func NewCountingSink() *CountingSink { return &CountingSink{} }

func (s *CountingSink) Accept(_ ChunkIndex, matches []Match) error {
	if atomic.LoadInt32(&s.closed) != 0 {
		return sinkClosedError{state: SinkClosed}
	}
	atomic.AddInt64(&s.n, int64(len(matches)))
	return nil
}

func (s *CountingSink) Close() error {
	atomic.StoreInt32(&s.closed, 1)
	return nil
}

// Count returns the running total. Safe to call concurrently with Accept.
func (s *CountingSink) Count() int64 { return atomic.LoadInt64(&s.n) }
