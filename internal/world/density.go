package world

import (
	"github.com/aquilax/go-perlin"

	"voxeltree/internal/voxel"
)

// DensityGenerator generates 3D terrain using density fields instead of heightmaps.
// This enables overhangs, floating formations, and underground voids.
type DensityGenerator struct {
	seed             int64
	scale            float64 // noise frequency (default: 1/64)
	baseHeight       int     // target surface level (default: 48)
	gradientStrength float64 // altitude density gradient (default: 24)
	noise            *perlin.Perlin
}

// NewDensityGenerator creates a 3D density-based terrain generator.
func NewDensityGenerator(seed int64) *DensityGenerator {
	return &DensityGenerator{
		seed:             seed,
		scale:            1.0 / 64.0,
		baseHeight:       48,
		gradientStrength: 24.0,
		noise:            newNoise(seed, 4),
	}
}

// density is positive inside solid ground.
func (g *DensityGenerator) density(worldX, worldY, worldZ int) float64 {
	n := signed(g.noise.Noise3D(float64(worldX)*g.scale, float64(worldY)*g.scale, float64(worldZ)*g.scale))
	// Higher altitude pulls density down.
	return n + (float64(g.baseHeight)-float64(worldY))/g.gradientStrength
}

// HeightAt is an upper bound: above it the gradient outweighs any noise.
func (g *DensityGenerator) HeightAt(_, _ int) int {
	return g.baseHeight + int(g.gradientStrength)
}

// Populate samples density on a coarse lattice and trilinearly
// interpolates between samples.
func (g *DensityGenerator) Populate(tree *voxel.Octree[BlockID], coord ChunkCoord) error {
	const (
		xStep = 4
		yStep = 8
		zStep = 4
		nx    = ChunkSize/xStep + 1
		ny    = ChunkSize/yStep + 1
		nz    = ChunkSize/zStep + 1
	)
	ox, oy, oz := coord.Origin()

	localMaxY := min(g.HeightAt(0, 0)+1-oy, ChunkSize)
	if localMaxY <= 0 {
		return nil
	}

	samples := make([]float64, nx*ny*nz)
	idx := func(x, y, z int) int { return (x*ny+y)*nz + z }
	for sx := range nx {
		for sy := range ny {
			for sz := range nz {
				samples[idx(sx, sy, sz)] = g.density(ox+sx*xStep, oy+sy*yStep, oz+sz*zStep)
			}
		}
	}

	for cx := range nx - 1 {
		for cz := range nz - 1 {
			for cy := range ny - 1 {
				startY := cy * yStep
				if startY >= localMaxY {
					break
				}
				d000, d100 := samples[idx(cx, cy, cz)], samples[idx(cx+1, cy, cz)]
				d010, d110 := samples[idx(cx, cy+1, cz)], samples[idx(cx+1, cy+1, cz)]
				d001, d101 := samples[idx(cx, cy, cz+1)], samples[idx(cx+1, cy, cz+1)]
				d011, d111 := samples[idx(cx, cy+1, cz+1)], samples[idx(cx+1, cy+1, cz+1)]
				limitY := min(startY+yStep, localMaxY)

				for lx := range xStep {
					tx := float64(lx) / xStep
					d00, d01 := lerp(d000, d100, tx), lerp(d001, d101, tx)
					d10, d11 := lerp(d010, d110, tx), lerp(d011, d111, tx)
					for lz := range zStep {
						tz := float64(lz) / zStep
						bottom, top := lerp(d00, d01, tz), lerp(d10, d11, tz)
						for ly := startY; ly < limitY; ly++ {
							if lerp(bottom, top, float64(ly-startY)/yStep) <= 0 {
								continue
							}
							id := BlockStone
							if oy+ly == 0 {
								id = BlockBedrock
							}
							x, z := cx*xStep+lx, cz*zStep+lz
							if err := tree.Set(voxel.At(x, ly, z, 0), id); err != nil {
								return err
							}
						}
					}
				}
			}
		}
	}
	return nil
}
