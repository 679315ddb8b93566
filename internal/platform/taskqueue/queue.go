// Package taskqueue runs tasks one at a time, in submission order, on a
// single worker goroutine whose context is cancelled when the queue closes.
package taskqueue

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("task queue closed")

// Task receives the queue's context, which is cancelled by Close.
type Task func(ctx context.Context) error

type job struct {
	run    Task
	result chan error
}

type Queue struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending []job
	closed  bool

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

func New(parent context.Context) *Queue {
	ctx, cancel := context.WithCancel(parent)
	q := &Queue{
		ctx:    ctx,
		cancel: cancel,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go q.worker()
	return q
}

// Submit enqueues task without blocking and returns a channel that receives
// its result. Submitting from inside a running task is safe; the new task
// runs after the current one.
func (q *Queue) Submit(task Task) <-chan error {
	result := make(chan error, 1)
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		result <- ErrClosed
		return result
	}
	q.pending = append(q.pending, job{run: task, result: result})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return result
}

// Do submits task and waits for its result or for ctx to end. Tasks must not
// call Do on their own queue.
func (q *Queue) Do(ctx context.Context, task Task) error {
	select {
	case err := <-q.Submit(task):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the queue context, fails every task that has not started
// with ErrClosed and waits for the worker to exit.
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		q.cancel()
	})
	<-q.done
}

func (q *Queue) worker() {
	defer close(q.done)
	for {
		select {
		case <-q.ctx.Done():
			q.drain()
			return
		case <-q.wake:
			for {
				j, ok := q.next()
				if !ok {
					break
				}
				if q.ctx.Err() != nil {
					j.result <- ErrClosed
					continue
				}
				j.result <- j.run(q.ctx)
			}
		}
	}
}

func (q *Queue) next() (job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return job{}, false
	}
	j := q.pending[0]
	q.pending = q.pending[1:]
	return j, true
}

// drain closes the queue and fails everything still pending. It also runs
// when the parent context ends without Close.
func (q *Queue) drain() {
	q.mu.Lock()
	q.closed = true
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, j := range pending {
		j.result <- ErrClosed
	}
}
