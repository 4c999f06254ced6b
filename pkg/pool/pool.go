// Package pool runs blocking jobs on a fixed set of long-lived workers.
//
// The request-accepting goroutines of the HTTP server must stay responsive,
// so disk reads and compression are handed to this pool and awaited through
// a single-resolution future. Jobs are accepted in submission order but may
// complete in any order; once a worker picks a job up it runs to completion
// with no preemption, cancellation or timeout.
package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrQueueFull is returned by Submit when a bounded queue is at
	// capacity. Callers translate it into a retry-later response.
	ErrQueueFull = errors.New("worker pool queue is full")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("worker pool is closed")
)

// Job produces a value of type T, performing arbitrary blocking work.
type Job[T any] func() (T, error)

// Future is the handle returned by Submit. It resolves exactly once, when
// the job finishes.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Wait blocks until the job resolves or ctx is done.
//
// Cancelling ctx abandons the wait only: the job itself keeps running on its
// worker and its result is discarded.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) resolve(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Pool is a fixed-size worker pool. Construct with New; the zero value is
// not usable.
type Pool[T any] struct {
	submit   chan *job[T]
	maxQueue int

	queued atomic.Int64

	mu     sync.RWMutex
	closed bool

	wg sync.WaitGroup
}

type job[T any] struct {
	run    Job[T]
	future *Future[T]
}

// New creates a pool with the given number of workers, started immediately.
//
// maxQueue bounds the number of jobs waiting in the queue; the one job
// already dequeued and awaiting a worker does not count against it. Zero
// means unbounded, in which case Submit never rejects and memory is the
// only limit. workers < 1 is treated as 1.
func New[T any](workers, maxQueue int) *Pool[T] {
	if workers < 1 {
		workers = 1
	}

	p := &Pool[T]{
		submit:   make(chan *job[T]),
		maxQueue: maxQueue,
	}

	work := make(chan *job[T])

	// Feeder goroutine: owns the backlog slice, so the queue can grow
	// without blocking Submit and without a lock on the hot path. The head
	// job is dequeued, and decounted, before the handoff is offered: the
	// counter never lags behind a handoff, so admission checks in Submit see
	// a value that only ever undercounts by the single job in hand.
	go func() {
		var backlog []*job[T]
		var head *job[T]
		for {
			if head == nil && len(backlog) > 0 {
				head = backlog[0]
				backlog = backlog[1:]
				p.queued.Add(-1)
			}

			var out chan *job[T]
			if head != nil {
				out = work
			}

			select {
			case j, ok := <-p.submit:
				if !ok {
					// Drain the job in hand and the backlog, then stop the
					// workers.
					if head != nil {
						work <- head
					}
					for _, j := range backlog {
						work <- j
					}
					close(work)
					return
				}
				backlog = append(backlog, j)
			case out <- head:
				head = nil
			}
		}
	}()

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for j := range work {
				j.future.resolve(j.run())
			}
		}()
	}

	return p
}

// Submit queues a job and returns its future.
//
// Jobs enter the queue in submission order. With a bounded queue, Submit
// fails fast with ErrQueueFull instead of blocking the caller.
func (p *Pool[T]) Submit(run Job[T]) (*Future[T], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrClosed
	}

	for {
		n := p.queued.Load()
		if p.maxQueue > 0 && n >= int64(p.maxQueue) {
			return nil, ErrQueueFull
		}
		if p.queued.CompareAndSwap(n, n+1) {
			break
		}
	}

	j := &job[T]{
		run:    run,
		future: &Future[T]{done: make(chan struct{})},
	}
	p.submit <- j
	return j.future, nil
}

// QueueDepth reports the number of jobs waiting in the queue. A job already
// dequeued for dispatch but not yet running is not counted. Meant for
// observability; the value is already stale when read.
func (p *Pool[T]) QueueDepth() int {
	return int(p.queued.Load())
}

// Close stops accepting jobs and waits for queued and running jobs to
// finish. Safe to call once; Submit calls racing with Close get ErrClosed.
func (p *Pool[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.submit)
	p.wg.Wait()
}
