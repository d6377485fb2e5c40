package world

import (
	"fmt"

	"voxeltree/internal/voxel"
)

const (
	// ChunkScale is the root scale of every chunk tree.
	ChunkScale int8 = 6
	// ChunkSize is the chunk edge in voxels.
	ChunkSize = 1 << ChunkScale
)

// ChunkCoord addresses a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("chunk(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Origin is the world position of the chunk's minimum corner.
func (c ChunkCoord) Origin() (x, y, z int) {
	return c.X * ChunkSize, c.Y * ChunkSize, c.Z * ChunkSize
}

// ChunkOf splits a world position into its chunk and chunk-local position.
func ChunkOf(x, y, z int) (ChunkCoord, int, int, int) {
	c := ChunkCoord{X: floorDiv(x, ChunkSize), Y: floorDiv(y, ChunkSize), Z: floorDiv(z, ChunkSize)}
	return c, mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize)
}

// NewChunkTree returns an all-air tree sized for one chunk.
func NewChunkTree() *voxel.Octree[BlockID] {
	return voxel.New(BlockAir, ChunkScale)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
