package imagegen

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrent = 4

// Runner owns the background generation tasks. Each submitted lesson gets
// one task, and cross-lesson concurrency is bounded so a burst of lesson
// creations cannot flood the provider. The server hands the runner its
// lifetime context, which keeps shutdown explicit instead of relying on
// detached goroutines.
type Runner struct {
	worker *Worker
	group  *errgroup.Group
	ctx    context.Context
}

// NewRunner creates a Runner whose tasks stop at ctx cancellation.
// maxConcurrent <= 0 uses the default (4).
func NewRunner(ctx context.Context, worker *Worker, maxConcurrent int) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	return &Runner{worker: worker, group: g, ctx: gCtx}
}

// Submit schedules a generation pass for the lesson. When the runner is at
// capacity, Submit blocks until a slot frees: backpressure on lesson
// creation rather than an unbounded task pile.
func (r *Runner) Submit(lessonID string) {
	r.group.Go(func() error {
		r.worker.Run(r.ctx, lessonID)
		return nil
	})
}

// Wait blocks until all submitted tasks have finished. Called during server
// shutdown after the context is cancelled; workers notice at their next
// frame boundary.
func (r *Runner) Wait() {
	_ = r.group.Wait()
}
