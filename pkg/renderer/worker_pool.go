package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerPanic is returned when a task panics inside a worker
var ErrWorkerPanic = errors.New("render worker panicked")

// PixelTask is one unit of work: every sample of a single pixel
type PixelTask struct {
	Index int // Flat index into the pixel buffer, also the sampler stream
	X, Y  int // Column and row, row 0 at the top
}

// WorkerPool drains a queue of independent tasks on a fixed number of goroutines.
// A pool is built per render and holds no state between runs.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run feeds tasks to the workers and blocks until all of them have completed.
// The first failing task cancels dispatch of the rest and its error is returned.
// Cancelling ctx stops dispatch too; tasks already running finish first.
func (wp *WorkerPool) Run(ctx context.Context, tasks []PixelTask, work func(PixelTask) error) error {
	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan PixelTask)

	g.Go(func() error {
		defer close(taskQueue)
		for _, task := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case taskQueue <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for task := range taskQueue {
				if err := runTask(work, task); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// runTask turns a panic in work into an error so one bad pixel fails the render
// instead of the process
func runTask(work func(PixelTask) error, task PixelTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: pixel (%d, %d): %v", ErrWorkerPanic, task.X, task.Y, r)
		}
	}()
	return work(task)
}
