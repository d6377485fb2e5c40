package meshing

import (
	"github.com/RoaringBitmap/roaring"

	"voxeltree/internal/profiling"
	"voxeltree/internal/voxel"
	"voxeltree/internal/world"
)

// Occupancy returns the set of solid cells of src, indexed like
// voxel.Dense: x*Y*Z + y*Z + z.
func Occupancy(src voxel.Storage[world.BlockID]) *roaring.Bitmap {
	ext := src.Extent()
	bm := roaring.New()
	for x := range ext.X {
		for y := range ext.Y {
			for z := range ext.Z {
				id, err := src.Get(x, y, z)
				if err == nil && id.IsSolid() {
					bm.Add(uint32(cellIndex(ext, x, y, z)))
				}
			}
		}
	}
	bm.RunOptimize()
	return bm
}

func cellIndex(ext voxel.Extent, x, y, z int) int {
	return x*ext.Y*ext.Z + y*ext.Z + z
}

// greedyMesher holds one volume's lookups while its six directions are
// meshed.
type greedyMesher struct {
	src     voxel.Storage[world.BlockID]
	ext     voxel.Extent
	solid   *roaring.Bitmap
	outside SolidFunc
	origin  [3]int
	mesh    *Mesh
}

// BuildGreedyMesh builds a greedy-meshed quad list for any storage
// backend. Coplanar visible faces of the same block are merged into
// maximal rectangles. coord places the volume in the world; outside
// decides face visibility across the volume's border.
func BuildGreedyMesh(src voxel.Storage[world.BlockID], coord world.ChunkCoord, outside SolidFunc) *Mesh {
	defer profiling.Track("meshing.BuildGreedyMesh")()
	ox, oy, oz := coord.Origin()
	g := &greedyMesher{
		src:     src,
		ext:     src.Extent(),
		solid:   Occupancy(src),
		outside: outside,
		origin:  [3]int{ox, oy, oz},
		mesh:    &Mesh{},
	}
	if g.solid.IsEmpty() {
		return g.mesh
	}
	for f := range NumFaces {
		g.direction(f)
	}
	return g.mesh
}

func (g *greedyMesher) size(axis int) int {
	switch axis {
	case 0:
		return g.ext.X
	case 1:
		return g.ext.Y
	}
	return g.ext.Z
}

// solidAt answers for volume-local coordinates, consulting outside for
// cells beyond the extent.
func (g *greedyMesher) solidAt(p [3]int) bool {
	if g.ext.Contains(p[0], p[1], p[2]) {
		return g.solid.Contains(uint32(cellIndex(g.ext, p[0], p[1], p[2])))
	}
	if g.outside == nil {
		return false
	}
	return g.outside(g.origin[0]+p[0], g.origin[1]+p[1], g.origin[2]+p[2])
}

// direction performs 2D greedy meshing for the faces looking along f,
// one layer at a time.
func (g *greedyMesher) direction(f Face) {
	d := f.Axis()
	u, v := (d+1)%3, (d+2)%3
	su, sv := g.size(u), g.size(v)
	mask := make([]world.BlockID, su*sv)

	for layer := range g.size(d) {
		// Mask of visible faces in this layer, by block.
		visible := 0
		for a := range su {
			for b := range sv {
				var p [3]int
				p[d], p[u], p[v] = layer, a, b
				mask[a*sv+b] = world.BlockAir
				if !g.solidAt(p) {
					continue
				}
				q := p
				q[d] += f.Sign()
				if g.solidAt(q) {
					continue
				}
				id, err := g.src.Get(p[0], p[1], p[2])
				if err != nil {
					continue
				}
				mask[a*sv+b] = id
				visible++
			}
		}
		if visible == 0 {
			continue
		}

		plane := g.origin[d] + layer
		if f.Sign() > 0 {
			plane++
		}

		// Greedy merge over mask.
		for i := range mask {
			id := mask[i]
			if id == world.BlockAir {
				continue
			}
			a0, b0 := i/sv, i%sv
			width := 1
			for b1 := b0 + 1; b1 < sv && mask[a0*sv+b1] == id; b1++ {
				width++
			}
			height := 1
		grow:
			for a1 := a0 + 1; a1 < su; a1++ {
				for b1 := b0; b1 < b0+width; b1++ {
					if mask[a1*sv+b1] != id {
						break grow
					}
				}
				height++
			}

			g.mesh.addQuad(f, plane,
				g.origin[u]+a0, g.origin[u]+a0+height,
				g.origin[v]+b0, g.origin[v]+b0+width,
				id.Color())

			// zero-out mask region
			for aa := a0; aa < a0+height; aa++ {
				for bb := b0; bb < b0+width; bb++ {
					mask[aa*sv+bb] = world.BlockAir
				}
			}
		}
	}
}
