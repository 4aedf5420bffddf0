package pgrep

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Executor wires a Reader, the configured InplaceProcessor chain and
// Searcher, and a Sink into a running pipeline, per spec §4.1. Grounded on
// chop.go/assemble.go's channel+WaitGroup worker pool, generalized to use
// golang.org/x/sync/errgroup for cancel-on-first-error propagation instead
// of the teacher's hand-rolled mutex-guarded error variable.
type Executor struct {
	opts       *Options
	reader     Reader
	processors []InplaceProcessor
	searcher   Searcher
	sink       Sink
	progress   ProgressBar
}

// NewExecutor constructs a pipeline from already-built components. Most
// callers use New instead, which builds the processor chain and Searcher
// from Options. progress may be nil to disable progress reporting.
func NewExecutor(opts *Options, reader Reader, processors []InplaceProcessor, searcher Searcher, sink Sink, progress ProgressBar) *Executor {
	return &Executor{opts: opts, reader: reader, processors: processors, searcher: searcher, sink: sink, progress: progress}
}

// New validates opts, builds the processor chain and Searcher it implies,
// and returns an Executor ready to run against reader and sink. progress
// may be nil.
func New(opts *Options, reader Reader, sink Sink, progress ProgressBar) (*Executor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	searcher, err := NewSearcher(opts)
	if err != nil {
		return nil, err
	}
	var procs []InplaceProcessor
	if opts.needsLineMapping() {
		procs = append(procs, NewlineIndexer{})
	}
	return NewExecutor(opts, reader, procs, searcher, sink, progress), nil
}

// Run drains the reader on one goroutine, running each chunk through the
// processor chain before handing it to a bounded queue; opts.WorkerThreads
// goroutines pull from that queue, search each chunk, and forward the
// result to sink. It blocks until the reader is exhausted, a stage fails,
// or ctx is cancelled, then closes sink exactly once. A Searcher error on
// one chunk is logged and that chunk contributes no matches; the run goes
// on, and Run returns the first such error once the pipeline has finished.
func (e *Executor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if e.progress != nil {
		e.progress.SetTotal(0) // chunk count is unknown until the reader is exhausted
		e.progress.Start()
	}

	// The Searcher numbers lines within a chunk; the reader goroutine sees
	// chunks in index order, so it records how many lines precede each one.
	type queuedChunk struct {
		c        *DataChunk
		lineBase int64
	}
	queueCapacity := e.opts.WorkerThreads * 2
	queue := make(chan queuedChunk, queueCapacity)
	var linesBefore int64

	var (
		searchErrOnce sync.Once
		searchErr     error
	)

	g.Go(func() error {
		defer close(queue)
		defer e.reader.Close()
		for {
			c, err := e.reader.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			for _, p := range e.processors {
				if err := p.Process(c); err != nil {
					c.Release()
					return err
				}
			}
			q := queuedChunk{c: c, lineBase: linesBefore}
			linesBefore += int64(len(c.NewlineIndex))
			select {
			case queue <- q:
			case <-ctx.Done():
				c.Release()
				return ctx.Err()
			}
		}
	})

	for i := 0; i < e.opts.WorkerThreads; i++ {
		g.Go(func() error {
			for {
				select {
				case q, ok := <-queue:
					if !ok {
						return nil
					}
					matches, err := e.searcher.Search(q.c)
					index := q.c.Index
					q.c.Release()
					if err != nil {
						Log.WithField("chunk", index).WithError(err).Warn("search failed; chunk yields no matches")
						searchErrOnce.Do(func() { searchErr = err })
						matches = nil
					}
					for i := range matches {
						if matches[i].LineNumber != unrequested {
							matches[i].LineNumber += q.lineBase
						}
					}
					if e.progress != nil {
						e.progress.Increment()
					}
					if err := e.sink.Accept(index, matches); err != nil {
						return err
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	runErr := g.Wait()
	closeErr := e.sink.Close()
	if e.progress != nil {
		e.progress.Finish()
	}

	if runErr != nil {
		if runErr == context.Canceled {
			return CancelledError{}
		}
		return runErr
	}
	if closeErr != nil {
		return closeErr
	}
	return searchErr
}
