package pgrep

// ContainerSink collects every Match into a single in-memory, index-ordered
// slice. Used by New's in-process API (spec §6's embeddable-library surface)
// where the caller wants a result value rather than a streaming callback.
type ContainerSink struct {
	ordered *OrderedSink
	matches []Match
}

var _ Sink = (*ContainerSink)(nil)

func NewContainerSink(queueCapacity, workerThreads int) *ContainerSink {
	s := &ContainerSink{}
	s.ordered = NewOrderedSink(func(_ ChunkIndex, m []Match) error {
		s.matches = append(s.matches, m...)
		return nil
	}, queueCapacity, workerThreads)
	return s
}

func (s *ContainerSink) Accept(index ChunkIndex, matches []Match) error {
	return s.ordered.Accept(index, matches)
}

func (s *ContainerSink) Close() error { return s.ordered.Close() }

// Matches returns the accumulated, index-ordered result. Only valid after
// Close has returned successfully.
func (s *ContainerSink) Matches() []Match { return s.matches }
