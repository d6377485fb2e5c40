package world

import (
	"sync"

	"voxeltree/internal/profiling"
	"voxeltree/internal/voxel"
)

// Tree is the per-chunk voxel content.
type Tree = voxel.Octree[BlockID]

// ChunkWithCoord pairs an installed tree with its coordinate.
type ChunkWithCoord struct {
	Coord ChunkCoord
	Tree  *Tree
}

// ChunkStore owns every installed chunk tree. Installed trees are never
// mutated: Set swaps in an edited copy, so a tree returned by GetChunk or
// GetAllChunks stays a stable snapshot for lock-free readers.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Tree
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove or block edit

	// Per-column index for fast XZ radius queries: (chunkX,chunkZ) -> set of chunkY
	colIndex map[[2]int]map[int]struct{}
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks:   make(map[ChunkCoord]*Tree),
		colIndex: make(map[[2]int]map[int]struct{}),
	}
}

func (cs *ChunkStore) indexLocked(coord ChunkCoord) {
	key := [2]int{coord.X, coord.Z}
	col := cs.colIndex[key]
	if col == nil {
		col = make(map[int]struct{})
		cs.colIndex[key] = col
	}
	col[coord.Y] = struct{}{}
}

func (cs *ChunkStore) unindexLocked(coord ChunkCoord) {
	key := [2]int{coord.X, coord.Z}
	if col, ok := cs.colIndex[key]; ok {
		delete(col, coord.Y)
		if len(col) == 0 {
			delete(cs.colIndex, key)
		}
	}
}

// AddChunk installs a generated tree. The store takes ownership; it
// reports false and drops the tree if the coordinate is already taken.
func (cs *ChunkStore) AddChunk(coord ChunkCoord, tree *Tree) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; ok {
		return false
	}
	cs.chunks[coord] = tree
	cs.modCount++
	cs.indexLocked(coord)
	return true
}

// RemoveChunk drops a chunk and reports whether it existed.
func (cs *ChunkStore) RemoveChunk(coord ChunkCoord) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; !ok {
		return false
	}
	delete(cs.chunks, coord)
	cs.modCount++
	cs.unindexLocked(coord)
	return true
}

// HasChunk checks if a chunk exists.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// GetChunk returns the installed tree, or nil.
func (cs *ChunkStore) GetChunk(coord ChunkCoord) *Tree {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.chunks[coord]
}

// Len is the number of installed chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Get returns the block at the given world coordinates. Missing chunks
// read as air.
func (cs *ChunkStore) Get(x, y, z int) BlockID {
	id, _ := cs.GetLOD(x, y, z, 0)
	return id
}

// GetLOD reads the block governing world voxel (x, y, z) at the given
// detail level; a coarse leaf answers for every voxel inside it. scale is
// clamped to [0, ChunkScale]. The second result is false if the chunk is
// not loaded.
func (cs *ChunkStore) GetLOD(x, y, z int, scale int8) (BlockID, bool) {
	coord, lx, ly, lz := ChunkOf(x, y, z)
	scale = min(max(scale, 0), ChunkScale)
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	tree, ok := cs.chunks[coord]
	if !ok {
		return BlockAir, false
	}
	id, err := tree.Get(voxel.At(lx, ly, lz, 0).AtScale(scale))
	if err != nil {
		return BlockAir, false
	}
	return id, true
}

// IsAir checks if the block at the specified world coordinates is air.
func (cs *ChunkStore) IsAir(x, y, z int) bool {
	return cs.Get(x, y, z) == BlockAir
}

// Set writes a block at world coordinates, creating an empty chunk tree
// if needed. The chunk is replaced by an edited copy; earlier readers
// keep the tree they were given.
func (cs *ChunkStore) Set(x, y, z int, id BlockID) error {
	coord, lx, ly, lz := ChunkOf(x, y, z)
	pos := voxel.At(lx, ly, lz, 0)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	tree, ok := cs.chunks[coord]
	if !ok {
		if id == BlockAir {
			return nil
		}
		tree = NewChunkTree()
		if err := tree.Set(pos, id); err != nil {
			return err
		}
		cs.chunks[coord] = tree
		cs.indexLocked(coord)
		cs.modCount++
		return nil
	}
	if cur, err := tree.Get(pos); err != nil {
		return err
	} else if cur == id {
		return nil
	}
	next := tree.Clone()
	if err := next.Set(pos, id); err != nil {
		return err
	}
	cs.chunks[coord] = next
	cs.modCount++
	return nil
}

// GetAllChunks returns every installed chunk.
func (cs *ChunkStore) GetAllChunks() []ChunkWithCoord {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	chunks := make([]ChunkWithCoord, 0, len(cs.chunks))
	for coord, tree := range cs.chunks {
		chunks = append(chunks, ChunkWithCoord{Coord: coord, Tree: tree})
	}
	return chunks
}

// AppendChunksInRadiusXZ appends all loaded chunks within a radius (in chunks)
// around a center chunk coordinate (cx, cz) into dst and returns the resulting slice.
func (cs *ChunkStore) AppendChunksInRadiusXZ(cx, cz, radius int, dst []ChunkWithCoord) []ChunkWithCoord {
	defer profiling.Track("world.AppendChunksInRadiusXZ")()
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			xk, zk := cx+dx, cz+dz
			for y := range cs.colIndex[[2]int{xk, zk}] {
				coord := ChunkCoord{X: xk, Y: y, Z: zk}
				dst = append(dst, ChunkWithCoord{Coord: coord, Tree: cs.chunks[coord]})
			}
		}
	}
	return dst
}

// GetModCount returns the current modification count.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// EvictFarChunks removes chunks outside the given radius from the store.
// Returns number of removed chunks.
func (cs *ChunkStore) EvictFarChunks(cx, cz, radius int) int {
	defer profiling.Track("world.EvictFarChunks")()
	removed := 0
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for coord := range cs.chunks {
		dx, dz := coord.X-cx, coord.Z-cz
		if dx*dx+dz*dz > radius*radius {
			delete(cs.chunks, coord)
			cs.unindexLocked(coord)
			cs.modCount++
			removed++
		}
	}
	return removed
}
