package executor

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
)

type taskResult struct {
	text string
	err  error
}

type task struct {
	run    func() (string, error)
	result chan taskResult
}

// pool runs blocking inference calls on a bounded set of workers so update
// handling never waits on a model call directly. Submissions beyond the pool
// size queue up; the queue itself is bounded to the pool size.
type pool struct {
	size  int
	tasks chan task
}

func NewPool(size int) *pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &pool{
		size:  size,
		tasks: make(chan task, size),
	}
}

func (p *pool) Name() string { return "inference_pool" }

func (p *pool) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", p.Name(), "size", p.size)
	defer slog.Info("Worker stopped", "name", p.Name())

	var wg sync.WaitGroup
	wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t := <-p.tasks:
					text, err := t.run()
					t.result <- taskResult{text: text, err: err}
				}
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

// Submit queues run and waits for its result. The wait is bounded by ctx;
// a run that is already executing keeps its worker busy until it returns,
// but the caller gets ctx.Err() as soon as the deadline passes.
func (p *pool) Submit(ctx context.Context, run func() (string, error)) (string, error) {
	t := task{run: run, result: make(chan taskResult, 1)}

	select {
	case p.tasks <- t:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-t.result:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
