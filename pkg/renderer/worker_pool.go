package renderer

import (
	"math/rand"
	"runtime"
	"sync"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	Buffer *PixelBuffer // Shared output buffer; tiles never overlap
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID   int
	WorkerID int
	Samples  int
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks.
// Its random generator is never shared with another goroutine.
type Worker struct {
	ID          int
	renderer    *TileRenderer
	seed        int64
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers == 0 uses the CPU count; queueSize bounds the buffered tasks and results.
// A zero seed gives every worker an entropy-seeded generator.
func NewWorkerPool(tr *TileRenderer, numWorkers, queueSize int, seed int64) (*WorkerPool, error) {
	if numWorkers < 0 {
		return nil, errorsmod.Wrapf(core.ErrInvalidThreads, "%d workers", numWorkers)
	}
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			renderer:    tr,
			seed:        seed,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp, nil
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	// Created here so the generator lives and dies with this goroutine
	random := rand.New(rand.NewSource(rand.Int63()))
	sampler := core.NewRandomSampler(random)

	for task := range w.taskQueue {
		if w.seed != 0 {
			random.Seed(tileSeed(w.seed, task.Tile.ID))
		}

		samples := w.renderer.RenderTileBounds(task.Tile.Bounds, task.Buffer, sampler)

		w.resultQueue <- TileResult{
			TileID:   task.Tile.ID,
			WorkerID: w.ID,
			Samples:  samples,
		}
	}
}
