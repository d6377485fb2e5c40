package world

import (
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/pkg/errors"

	"voxeltree/internal/profiling"
	"voxeltree/internal/voxel"
)

// ChunkGenerator paints one chunk's content into an empty tree through
// level-0 writes. Generators hold no tree state of their own and must be
// safe for concurrent use on different trees.
type ChunkGenerator interface {
	Populate(tree *voxel.Octree[BlockID], coord ChunkCoord) error
}

// HeightProvider is implemented by generators that can bound terrain
// height per column, letting the streamer skip chunks that would stay
// empty.
type HeightProvider interface {
	HeightAt(worldX, worldZ int) int
}

// Generate builds a fresh chunk tree with gen and hands it to the caller.
func Generate(gen ChunkGenerator, coord ChunkCoord) (*voxel.Octree[BlockID], error) {
	defer profiling.Track("world.Generate")()
	tree := NewChunkTree()
	if err := gen.Populate(tree, coord); err != nil {
		return nil, errors.Wrapf(err, "generate %v", coord)
	}
	return tree, nil
}

// GeneratorNames lists the names NewGenerator accepts.
var GeneratorNames = []string{"flat", "sphere", "heightmap", "density"}

// NewGenerator returns the generator registered under name.
func NewGenerator(name string, seed int64) (ChunkGenerator, error) {
	switch strings.ToLower(name) {
	case "flat":
		return NewFlatGenerator(8), nil
	case "sphere":
		return NewSphereGenerator(seed), nil
	case "heightmap", "perlin":
		return NewHeightmapGenerator(seed), nil
	case "density":
		return NewDensityGenerator(seed), nil
	}
	return nil, errors.Errorf("unknown generator %q (want one of %s)", name, strings.Join(GeneratorNames, ", "))
}

// HeightmapGenerator builds terrain from a 2D Perlin heightmap. A second
// Perlin field, seeded with seed*51, picks the block type per column.
type HeightmapGenerator struct {
	seed       int64
	scale      float64
	offset     float64
	baseHeight int
	amp        float64
	height     *perlin.Perlin

	blockScale float64
	blocks     *perlin.Perlin
}

// NewHeightmapGenerator creates a heightmap generator with default settings.
func NewHeightmapGenerator(seed int64) *HeightmapGenerator {
	return &HeightmapGenerator{
		seed:       seed,
		scale:      0.008126,
		offset:     0.26378,
		baseHeight: 0,
		amp:        32,
		height:     newNoise(seed, 4),
		blockScale: 0.043647,
		blocks:     newNoise(seed*51, 1),
	}
}

// HeightAt computes the surface height (block Y) at world X,Z.
func (g *HeightmapGenerator) HeightAt(worldX, worldZ int) int {
	x := (float64(worldX) + g.offset) * g.scale
	z := (float64(worldZ) + g.offset) * g.scale
	n := unit(g.height.Noise2D(x, z))
	return int(math.Floor(float64(g.baseHeight) + n*g.amp))
}

// BlockAt picks the column's block from stone, dirt and grass.
func (g *HeightmapGenerator) BlockAt(worldX, worldZ int) BlockID {
	v := unit(g.blocks.Noise2D(float64(worldX)*g.blockScale, float64(worldZ)*g.blockScale))
	id := BlockID(v*3) + BlockStone
	return min(id, BlockGrass)
}

func (g *HeightmapGenerator) Populate(tree *voxel.Octree[BlockID], coord ChunkCoord) error {
	ox, oy, oz := coord.Origin()
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			h := g.HeightAt(ox+lx, oz+lz)
			top := min(h-oy, ChunkSize-1)
			if top < 0 {
				continue
			}
			id := g.BlockAt(ox+lx, oz+lz)
			for ly := 0; ly <= top; ly++ {
				if err := tree.Set(voxel.At(lx, ly, lz, 0), id); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
