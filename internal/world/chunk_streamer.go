package world

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voxeltree/internal/profiling"
)

// Generated is a worker's result. Tree ownership moves with the value:
// the worker never touches it again after sending.
type Generated struct {
	Coord ChunkCoord
	Tree  *Tree
	Err   error
}

// StreamStats counts what the installer has seen so far.
type StreamStats struct {
	Installed int
	Skipped   int
	Failed    int
}

// ChunkStreamer manages asynchronous chunk generation and loading.
type ChunkStreamer struct {
	jobs       chan ChunkCoord
	results    chan Generated
	pending    map[ChunkCoord]struct{}
	pendingMu  sync.Mutex
	drained    *sync.Cond
	maxPending int
	closed     bool
	stats      StreamStats

	maxJobsPerCall int

	// Cached terrain heights per column (chunkX, chunkZ) -> maxChunkY
	heightCache   map[[2]int]int
	heightCacheMu sync.RWMutex

	workers       int
	workersWG     sync.WaitGroup
	installerDone chan struct{}
	closeOnce     sync.Once

	// Dependencies
	store  *ChunkStore
	gen    ChunkGenerator
	logger *zap.Logger
}

// NewChunkStreamer starts workers generator goroutines and one installer
// that moves finished trees into store. A nil logger discards output.
func NewChunkStreamer(store *ChunkStore, gen ChunkGenerator, workers int, logger *zap.Logger) *ChunkStreamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers = max(workers, 1)
	cs := &ChunkStreamer{
		jobs:           make(chan ChunkCoord, 4096),
		results:        make(chan Generated, workers),
		pending:        make(map[ChunkCoord]struct{}),
		maxJobsPerCall: 2048,
		maxPending:     16384,
		heightCache:    make(map[[2]int]int),
		workers:        workers,
		installerDone:  make(chan struct{}),
		store:          store,
		gen:            gen,
		logger:         logger,
	}
	cs.drained = sync.NewCond(&cs.pendingMu)

	cs.workersWG.Add(workers)
	for range workers {
		go cs.worker()
	}
	go cs.installer()

	return cs
}

// Close stops accepting requests, lets the workers finish what is queued
// and waits for the installer to drain.
func (cs *ChunkStreamer) Close() {
	cs.closeOnce.Do(func() {
		cs.pendingMu.Lock()
		cs.closed = true
		close(cs.jobs)
		cs.pendingMu.Unlock()

		cs.workersWG.Wait()
		close(cs.results)
		<-cs.installerDone
	})
}

func (cs *ChunkStreamer) worker() {
	defer cs.workersWG.Done()
	for coord := range cs.jobs {
		if cs.store.HasChunk(coord) {
			cs.results <- Generated{Coord: coord}
			continue
		}
		tree, err := Generate(cs.gen, coord)
		cs.results <- Generated{Coord: coord, Tree: tree, Err: err}
	}
}

// installer is the only goroutine that adds streamed trees to the store.
func (cs *ChunkStreamer) installer() {
	defer close(cs.installerDone)
	for res := range cs.results {
		cs.install(res)
	}
}

func (cs *ChunkStreamer) install(res Generated) {
	outcome := &cs.stats.Installed
	switch {
	case res.Err != nil:
		cs.logger.Error("chunk generation failed", zap.Stringer("coord", res.Coord), zap.Error(res.Err))
		outcome = &cs.stats.Failed
	case res.Tree == nil || !cs.store.AddChunk(res.Coord, res.Tree):
		outcome = &cs.stats.Skipped
	default:
		cs.logger.Debug("chunk installed",
			zap.Stringer("coord", res.Coord),
			zap.Int("nodes", res.Tree.NodeCount()),
			zap.Int("leaves", res.Tree.LeafCount()))
	}

	cs.pendingMu.Lock()
	*outcome++
	delete(cs.pending, res.Coord)
	if len(cs.pending) == 0 {
		cs.drained.Broadcast()
	}
	cs.pendingMu.Unlock()
}

// Flush blocks until every accepted request has been installed or has
// failed.
func (cs *ChunkStreamer) Flush() {
	defer profiling.Track("world.Flush")()
	cs.pendingMu.Lock()
	for len(cs.pending) > 0 {
		cs.drained.Wait()
	}
	cs.pendingMu.Unlock()
}

// Pending is the number of requests not yet installed.
func (cs *ChunkStreamer) Pending() int {
	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	return len(cs.pending)
}

// Stats returns the installer counters.
func (cs *ChunkStreamer) Stats() StreamStats {
	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	return cs.stats
}

// Request queues one chunk without blocking and reports whether it was
// accepted. Loaded, already pending or over-cap chunks are refused.
func (cs *ChunkStreamer) Request(coord ChunkCoord) bool {
	// already present?
	if cs.store.HasChunk(coord) {
		return false
	}

	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	if cs.closed {
		return false
	}
	if _, ok := cs.pending[coord]; ok {
		return false
	}
	if cs.maxPending > 0 && len(cs.pending) >= cs.maxPending {
		return false
	}

	select {
	case cs.jobs <- coord:
		cs.pending[coord] = struct{}{}
		return true
	default:
		// queue full
		return false
	}
}

// RequestAround queues chunk columns in rings of growing radius around
// chunk (cx, cz) and returns how many chunks were accepted.
func (cs *ChunkStreamer) RequestAround(cx, cz, radius int) int {
	defer profiling.Track("world.RequestAround")()
	jobsPushed := 0

	for r := 0; r <= radius; r++ {
		if jobsPushed >= cs.maxJobsPerCall {
			break
		}

		if r == 0 {
			jobsPushed += cs.enqueueColumn(cx, cz)
			continue
		}

		x0, x1 := cx-r, cx+r
		z0, z1 := cz-r, cz+r

		for xk := x0; xk <= x1; xk++ {
			jobsPushed += cs.enqueueColumn(xk, z0)
		}
		for zk := z0 + 1; zk <= z1-1; zk++ {
			jobsPushed += cs.enqueueColumn(x1, zk)
		}
		for xk := x1; xk >= x0; xk-- {
			jobsPushed += cs.enqueueColumn(xk, z1)
		}
		for zk := z1 - 1; zk >= z0+1; zk-- {
			jobsPushed += cs.enqueueColumn(x0, zk)
		}
	}
	return jobsPushed
}

// columnTop is the highest chunk Y worth generating for a column. Without
// a HeightProvider only the ground layer is generated.
func (cs *ChunkStreamer) columnTop(chunkX, chunkZ int) int {
	hp, ok := cs.gen.(HeightProvider)
	if !ok {
		return 0
	}

	key := [2]int{chunkX, chunkZ}
	cs.heightCacheMu.RLock()
	cached, ok := cs.heightCache[key]
	cs.heightCacheMu.RUnlock()
	if ok {
		return cached
	}

	worldX := chunkX*ChunkSize + ChunkSize/2
	worldZ := chunkZ*ChunkSize + ChunkSize/2
	maxChunkY := max(floorDiv(hp.HeightAt(worldX, worldZ), ChunkSize), 0)
	cs.heightCacheMu.Lock()
	cs.heightCache[key] = maxChunkY
	cs.heightCacheMu.Unlock()
	return maxChunkY
}

// enqueueColumn enqueues all needed Y-chunks for a column.
func (cs *ChunkStreamer) enqueueColumn(chunkX, chunkZ int) int {
	enq := 0
	for cy := 0; cy <= cs.columnTop(chunkX, chunkZ); cy++ {
		if cs.Request(ChunkCoord{X: chunkX, Y: cy, Z: chunkZ}) {
			enq++
		}
	}
	return enq
}

// GenerateRegion generates and installs coords on the caller's
// goroutine, at most workers at a time. Every generator failure is
// reported; successful chunks are installed regardless.
func (cs *ChunkStreamer) GenerateRegion(ctx context.Context, coords []ChunkCoord) error {
	defer profiling.Track("world.GenerateRegion")()
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	g.SetLimit(cs.workers)
	for _, coord := range coords {
		if cs.store.HasChunk(coord) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tree, err := Generate(cs.gen, coord)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
				return nil
			}
			cs.store.AddChunk(coord, tree)
			return nil
		})
	}
	return multierr.Append(errs, g.Wait())
}

// EvictFarChunks removes chunks outside the given radius around chunk
// (cx, cz).
func (cs *ChunkStreamer) EvictFarChunks(cx, cz, radius int) int {
	// Delegate physical removal to Store
	removed := cs.store.EvictFarChunks(cx, cz, radius)

	// Prune height cache entries outside radius
	cs.heightCacheMu.Lock()
	for key := range cs.heightCache {
		dx := key[0] - cx
		dz := key[1] - cz
		if dx*dx+dz*dz > radius*radius {
			delete(cs.heightCache, key)
		}
	}
	cs.heightCacheMu.Unlock()

	if removed > 0 {
		cs.logger.Debug("evicted chunks", zap.Int("count", removed))
	}
	return removed
}
