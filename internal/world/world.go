package world

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// World ties a chunk store to the streamer that fills it.
type World struct {
	store    *ChunkStore
	streamer *ChunkStreamer
	gen      ChunkGenerator
	logger   *zap.Logger
}

// New creates a world that generates chunks with gen on workers
// goroutines.
func New(gen ChunkGenerator, workers int, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewChunkStore()
	return &World{
		store:    store,
		streamer: NewChunkStreamer(store, gen, workers, logger.Named("streamer")),
		gen:      gen,
		logger:   logger,
	}
}

// Close stops background generation.
func (w *World) Close() {
	w.streamer.Close()
}

// Store exposes the underlying chunk store.
func (w *World) Store() *ChunkStore {
	return w.store
}

// Streamer exposes the chunk streamer.
func (w *World) Streamer() *ChunkStreamer {
	return w.streamer
}

// Get returns the block at world coordinates; unloaded chunks read as air.
func (w *World) Get(x, y, z int) BlockID {
	return w.store.Get(x, y, z)
}

// IsAir checks if the block at the specified world coordinates is air.
func (w *World) IsAir(x, y, z int) bool {
	return w.store.IsAir(x, y, z)
}

// Set edits a single block. Edits below y=0 are refused.
func (w *World) Set(x, y, z int, id BlockID) error {
	if y < 0 {
		return errors.Errorf("set block at y=%d: below world floor", y)
	}
	if err := w.store.Set(x, y, z, id); err != nil {
		return errors.Wrapf(err, "set block (%d,%d,%d)", x, y, z)
	}
	return nil
}

// chunkColumn converts a world position to its chunk column.
func chunkColumn(pos mgl32.Vec3) (int, int) {
	cx := floorDiv(int(math.Floor(float64(pos.X()))), ChunkSize)
	cz := floorDiv(int(math.Floor(float64(pos.Z()))), ChunkSize)
	return cx, cz
}

// StreamAround queues generation of every column within radius chunks
// of pos. It does not wait; see Flush.
func (w *World) StreamAround(pos mgl32.Vec3, radius int) int {
	cx, cz := chunkColumn(pos)
	n := w.streamer.RequestAround(cx, cz, radius)
	w.logger.Debug("stream around", zap.Int("cx", cx), zap.Int("cz", cz), zap.Int("radius", radius), zap.Int("queued", n))
	return n
}

// Flush waits for all queued chunks.
func (w *World) Flush() {
	w.streamer.Flush()
}

// GenerateAround synchronously generates the ground layer of every
// column in the square of the given radius around pos.
func (w *World) GenerateAround(ctx context.Context, pos mgl32.Vec3, radius int) error {
	cx, cz := chunkColumn(pos)
	coords := make([]ChunkCoord, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			coords = append(coords, ChunkCoord{X: cx + dx, Z: cz + dz})
		}
	}
	return w.streamer.GenerateRegion(ctx, coords)
}

// EvictFar drops chunks farther than radius chunks from pos.
func (w *World) EvictFar(pos mgl32.Vec3, radius int) int {
	cx, cz := chunkColumn(pos)
	return w.streamer.EvictFarChunks(cx, cz, radius)
}
