package pgrep

import (
	"sync"

	"github.com/boljen/go-bitmap"
)

// Emit is called once per chunk, strictly in ChunkIndex order, with that
// chunk's matches.
type Emit func(index ChunkIndex, matches []Match) error

// OrderedSink reassembles out-of-order worker results into ChunkIndex order
// before handing them to Emit, per spec §4.5. Results that arrive ahead of
// the next expected index are held in a bounded pending buffer; once the
// buffer is full, Accept blocks the calling worker until the next expected
// chunk arrives and the buffer drains, providing the back-pressure spec §5
// requires.
//
// The back-pressure check uses the pending map's length. Slot occupancy
// (index modulo capacity) is also mirrored in a bitmap, which Accept and
// drainLocked keep up to date but never consult.
//
// Emit runs with the sink's mutex held, so one chunk's emission finishes
// before the next one starts.
type OrderedSink struct {
	emit     Emit
	capacity int

	mu       sync.Mutex
	cond     *sync.Cond
	occupied bitmap.Bitmap
	pending  map[ChunkIndex][]Match
	next     ChunkIndex
	state    SinkState
	err      error
}

var _ Sink = (*OrderedSink)(nil)

// NewOrderedSink constructs a sink with a pending-buffer capacity of
// queueCapacity+workerThreads, per spec §5's bound on in-flight reordering
// state.
func NewOrderedSink(emit Emit, queueCapacity, workerThreads int) *OrderedSink {
	capacity := queueCapacity + workerThreads
	if capacity < 1 {
		capacity = 1
	}
	s := &OrderedSink{
		emit:     emit,
		capacity: capacity,
		occupied: bitmap.New(capacity),
		pending:  make(map[ChunkIndex][]Match, capacity),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *OrderedSink) slot(index ChunkIndex) int {
	return int(uint64(index) % uint64(s.capacity))
}

// Accept buffers a chunk's matches and emits every contiguous run starting
// at the next expected index that has become available. It blocks while the
// pending buffer is full and the chunk is not the one the sink is currently
// waiting on.
func (s *OrderedSink) Accept(index ChunkIndex, matches []Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.state == SinkOpen && index != s.next && len(s.pending) >= s.capacity {
		s.cond.Wait()
	}
	if s.state != SinkOpen {
		return sinkClosedError{state: s.state}
	}

	s.pending[index] = matches
	s.occupied.Set(s.slot(index), true)

	return s.drainLocked()
}

// drainLocked emits every buffered chunk starting at s.next, in order,
// until the next expected chunk is missing from the buffer. Must be called
// with s.mu held.
func (s *OrderedSink) drainLocked() error {
	for {
		m, ok := s.pending[s.next]
		if !ok {
			break
		}
		delete(s.pending, s.next)
		s.occupied.Set(s.slot(s.next), false)
		idx := s.next
		s.next++
		err := s.emit(idx, m)
		if err != nil {
			s.err = err
			s.state = SinkClosed
			s.cond.Broadcast()
			return err
		}
	}
	s.cond.Broadcast()
	return nil
}

// Close transitions the sink to DRAINING, flushes the contiguous run still
// buffered from the next expected index, and marks it CLOSED. Buffered
// results that sit after a gap (a chunk that never arrived) are not
// emitted.
func (s *OrderedSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SinkClosed {
		return s.err
	}
	s.state = SinkDraining
	if err := s.drainLocked(); err != nil && s.err == nil {
		s.err = err
	}
	s.state = SinkClosed
	s.cond.Broadcast()
	return s.err
}
