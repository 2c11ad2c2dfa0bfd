// SPDX-License-Identifier: MIT

package parallel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrClosed is returned by For after Close.
	ErrClosed = errors.New("parallel: pool is closed")

	// ErrWorkerPanic wraps a panic recovered inside a loop body.
	ErrWorkerPanic = errors.New("parallel: worker panicked")

	// ErrWorkers is returned by NewPool for a non-positive worker count.
	ErrWorkers = errors.New("parallel: worker count must be > 0")
)

// Body is the loop body run by worker w over [lo, hi).
type Body func(worker, lo, hi int)

// task is one worker's share of a For call.
type task struct {
	body Body
	r    Range
	wg   *sync.WaitGroup
	errs []error // one slot per worker; slot w is written only by worker w
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger for pool lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// Pool is a fixed set of persistent workers.
type Pool struct {
	workers int
	queues  []chan task
	g       errgroup.Group // joins the workers; loop bodies report through For
	log     *slog.Logger

	mu     sync.Mutex // serializes For and Close
	closed bool
}

// NewPool starts workers goroutines that live until Close.
func NewPool(workers int, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("NewPool(%d): %w", workers, ErrWorkers)
	}
	p := &Pool{
		workers: workers,
		queues:  make([]chan task, workers),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, set := range opts {
		set(p)
	}
	for w := 0; w < workers; w++ {
		q := make(chan task, 1)
		p.queues[w] = q
		id := w
		// loop never fails: panics are recovered per task and returned by For.
		p.g.Go(func() error {
			p.loop(id, q)
			return nil
		})
	}
	p.log.Debug("worker pool started", "workers", workers)

	return p, nil
}

// Workers returns the fixed worker count.
func (p *Pool) Workers() int { return p.workers }

func (p *Pool) loop(w int, q <-chan task) {
	for t := range q {
		t.errs[w] = runTask(w, t)
		t.wg.Done()
	}
}

func runTask(w int, t task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("worker %d range [%d,%d): %v: %w", w, t.r.Lo, t.r.Hi, rec, ErrWorkerPanic)
		}
	}()
	if t.r.Len() > 0 {
		t.body(w, t.r.Lo, t.r.Hi)
	}

	return nil
}

// For runs body over [0,n) split by Partition(n, Workers()) and blocks until
// every worker has finished its range.
//
// Errors: ErrClosed, ErrWorkerPanic (joined across workers).
func (p *Pool) For(n int, body Body) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	parts := Partition(n, p.workers)
	errs := make([]error, p.workers)
	var wg sync.WaitGroup
	wg.Add(p.workers)
	for w, r := range parts {
		p.queues[w] <- task{body: body, r: r, wg: &wg, errs: errs}
	}
	wg.Wait() // barrier

	return errors.Join(errs...)
}

// Close stops the workers and waits for them. Safe to call more than once.
// Worker failures surface from For; Close only joins and returns nil.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for _, q := range p.queues {
		close(q)
	}
	err := p.g.Wait()
	p.log.Debug("worker pool stopped", "workers", p.workers)

	return err
}
