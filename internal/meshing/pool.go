package meshing

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"voxeltree/internal/voxel"
	"voxeltree/internal/world"
)

// Mode selects the mesher a job runs.
type Mode uint8

const (
	ModeOctree Mode = iota
	ModeGreedy
)

func (m Mode) String() string {
	if m == ModeGreedy {
		return "greedy"
	}
	return "octree"
}

// ParseMode resolves a mesher by name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "octree", "":
		return ModeOctree, nil
	case "greedy":
		return ModeGreedy, nil
	}
	return ModeOctree, errors.Errorf("unknown mesher %q (want octree or greedy)", s)
}

// MeshJob represents a meshing job request. The tree is only read; it
// must not be mutated until the result arrives.
type MeshJob struct {
	Coord   world.ChunkCoord
	Tree    *world.Tree
	LOD     int8
	Mode    Mode
	Outside SolidFunc
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord world.ChunkCoord
	Mesh  *Mesh
	Error error
}

// WorkerPool manages goroutines for mesh generation
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *zap.Logger
}

// NewWorkerPool creates a new mesh worker pool. A nil logger discards
// output.
func NewWorkerPool(workers int, queueSize int, logger *zap.Logger) *WorkerPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  max(workers, 1),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
	}

	// Start worker goroutines
	for i := range pool.workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued or the
// pool shuts down.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	logger := p.logger.With(zap.Int("worker", id))

	for {
		select {
		case job := <-p.jobQueue:
			result := MeshResult{Coord: job.Coord}
			result.Mesh, result.Error = Build(job)
			if result.Error != nil {
				logger.Warn("mesh failed", zap.Stringer("coord", job.Coord), zap.Error(result.Error))
			} else {
				logger.Debug("meshed chunk",
					zap.Stringer("coord", job.Coord),
					zap.Stringer("mode", job.Mode),
					zap.Int("quads", result.Mesh.Quads()))
			}

			// Send result back
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Build runs a job's mesher on the calling goroutine.
func Build(job MeshJob) (*Mesh, error) {
	if job.Tree == nil {
		return nil, errors.Errorf("mesh %v: no tree", job.Coord)
	}
	switch job.Mode {
	case ModeGreedy:
		return BuildGreedyMesh(voxel.NewSparse(job.Tree), job.Coord, job.Outside), nil
	default:
		return BuildOctreeMesh(job.Tree, job.Coord, job.LOD, job.Outside), nil
	}
}

// Shutdown stops the workers and waits for them. Queued jobs that were
// not started are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}
