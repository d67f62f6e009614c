package worker

import (
	"context"
	"sync"
)

// Task is a unit of work executed by the pool
type Task[R any] func(ctx context.Context) R

// Pool runs tasks concurrently on a fixed number of workers. Results
// are collected unordered as workers finish; callers that need
// positional results should carry an index inside R and merge after
// Wait.
type Pool[R any] struct {
	workers     int
	tasks       chan Task[R]
	results     chan R
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
	collected   []R
	collectDone chan struct{}
}

// NewPool creates a pool bound to ctx with the given number of workers
func NewPool[R any](ctx context.Context, workers int) *Pool[R] {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool[R]{
		workers:     workers,
		tasks:       make(chan Task[R], workers*2), // Buffered to prevent blocking
		results:     make(chan R, workers*2),
		ctx:         ctx,
		cancel:      cancel,
		collectDone: make(chan struct{}),
	}
}

// Start launches the workers and the result collector. Results are
// drained as they arrive so Submit never deadlocks against a full
// result buffer.
func (p *Pool[R]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go p.collect()
}

func (p *Pool[R]) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			result := task(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

func (p *Pool[R]) collect() {
	for result := range p.results {
		p.collected = append(p.collected, result)
	}
	close(p.collectDone)
}

// Submit queues a task for execution. Tasks submitted after the pool's
// context is cancelled are dropped.
func (p *Pool[R]) Submit(task Task[R]) {
	select {
	case <-p.ctx.Done():
		return
	case p.tasks <- task:
	}
}

// Wait closes the queue, waits for the workers to drain it, and returns
// all collected results. Must follow Start.
func (p *Pool[R]) Wait() []R {
	close(p.tasks)
	p.wg.Wait()
	p.closeResults()
	<-p.collectDone

	p.cancel()
	return p.collected
}

// Shutdown cancels outstanding work and releases the workers
func (p *Pool[R]) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool[R]) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
