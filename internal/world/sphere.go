package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxeltree/internal/voxel"
)

// SphereGenerator places a stone ball of radius 15 centred at
// (ChunkSize/2, ChunkSize/2, ChunkSize/2) in every chunk, so the whole
// ball lies inside one chunk instead of one octant of it landing in each
// of eight neighbours. It is mostly useful for exercising the mesher and
// the octree on a curved surface.
type SphereGenerator struct {
	seed   int64
	radius float32
}

// NewSphereGenerator creates a sphere generator. The seed is unused but
// kept so every generator is built the same way.
func NewSphereGenerator(seed int64) *SphereGenerator {
	return &SphereGenerator{seed: seed, radius: 15}
}

func (g *SphereGenerator) Populate(tree *voxel.Octree[BlockID], _ ChunkCoord) error {
	const half = float32(ChunkSize / 2)
	center := mgl32.Vec3{half, half, half}
	for x := range ChunkSize {
		for y := range ChunkSize {
			for z := range ChunkSize {
				pos := mgl32.Vec3{float32(x), float32(y), float32(z)}
				if pos.Sub(center).Len() < g.radius {
					if err := tree.Set(voxel.At(x, y, z, 0), BlockStone); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
