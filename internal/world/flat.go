package world

import "voxeltree/internal/voxel"

// FlatGenerator fills every column to the same height: bedrock at y=0,
// dirt above it and a single grass layer on top.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a flat generator with its surface at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return g.height
}

func (g *FlatGenerator) blockAt(worldY int) BlockID {
	switch {
	case worldY < 0 || worldY > g.height:
		return BlockAir
	case worldY == 0:
		return BlockBedrock
	case worldY == g.height:
		return BlockGrass
	default:
		return BlockDirt
	}
}

func (g *FlatGenerator) Populate(tree *voxel.Octree[BlockID], coord ChunkCoord) error {
	_, oy, _ := coord.Origin()
	for ly := range ChunkSize {
		id := g.blockAt(oy + ly)
		if id == BlockAir {
			continue
		}
		for lx := range ChunkSize {
			for lz := range ChunkSize {
				if err := tree.Set(voxel.At(lx, ly, lz, 0), id); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
