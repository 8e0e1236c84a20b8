package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row    int         // Image-plane row, 0 at the bottom
	Pixels []core.Vec3 // Destination slice, owned by this task only
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row     int
	Samples int
	Error   error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	renderer    *RowRenderer
	seed        int64
	taskQueue   chan RowTask
	resultQueue chan RowResult
	numWorkers  int
	wg          sync.WaitGroup
	onRowDone   func()
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so that submission never blocks.
func NewWorkerPool(renderer *RowRenderer, seed int64, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		renderer:    renderer,
		seed:        seed,
		taskQueue:   make(chan RowTask, maxTasks),
		resultQueue: make(chan RowResult, maxTasks),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// Stop closes the task queue, waits for workers to finish and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result; ok is false once the pool is stopped and drained
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if err := ctx.Err(); err != nil {
			wp.resultQueue <- RowResult{Row: task.Row, Error: err}
			continue
		}

		// Each row draws from its own stream, so output does not depend on scheduling
		sampler := core.NewSeededSampler(wp.seed, int64(task.Row))
		wp.renderer.RenderRow(task.Row, task.Pixels, sampler)
		if wp.onRowDone != nil {
			wp.onRowDone()
		}

		wp.resultQueue <- RowResult{
			Row:     task.Row,
			Samples: len(task.Pixels) * wp.renderer.samples,
		}
	}
}
