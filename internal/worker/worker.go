package worker

import (
	"context"
	"sync"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool defines a fixed-size worker pool. It bounds how many tasks run at once.
type Pool interface {
	Submit(Task)
	// SubmitContext waits for a free worker or for ctx to end, whichever comes first.
	SubmitContext(ctx context.Context, t Task) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

func (p *pool) Submit(t Task) {
	p.jobs <- t
}

func (p *pool) SubmitContext(ctx context.Context, t Task) error {
	select {
	case p.jobs <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
