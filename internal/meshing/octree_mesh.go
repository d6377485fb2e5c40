package meshing

import (
	"voxeltree/internal/profiling"
	"voxeltree/internal/voxel"
	"voxeltree/internal/world"
)

type coverage uint8

const (
	coverMixed coverage = iota
	coverSolid
	coverOpen
)

func coverageOf(solid bool) coverage {
	if solid {
		return coverSolid
	}
	return coverOpen
}

// octreeMesher emits one quad per visible leaf face. A face whose
// neighbourhood is mixed is split along with the octree until either the
// neighbour side is uniform or the detail floor is reached.
type octreeMesher struct {
	tree    *world.Tree
	lod     int8
	outside SolidFunc
	origin  [3]int
	mesh    *Mesh
}

// BuildOctreeMesh meshes a chunk tree straight from its leaves. Leaves
// finer than lod are read as one cube, so raising lod trades detail for
// fewer quads. Positions are in world space.
func BuildOctreeMesh(tree *world.Tree, coord world.ChunkCoord, lod int8, outside SolidFunc) *Mesh {
	defer profiling.Track("meshing.BuildOctreeMesh")()
	ox, oy, oz := coord.Origin()
	b := &octreeMesher{
		tree:    tree,
		lod:     max(lod, 0),
		outside: outside,
		origin:  [3]int{ox, oy, oz},
		mesh:    &Mesh{},
	}
	tree.LeavesAt(b.lod, func(c voxel.Cube, id world.BlockID) bool {
		if !id.IsSolid() {
			return true
		}
		for f := range NumFaces {
			b.face(c, f, id)
		}
		return true
	})
	return b.mesh
}

func (b *octreeMesher) face(c voxel.Cube, f Face, id world.BlockID) {
	floor := c.Scale <= b.lod
	switch b.cover(c, f, floor) {
	case coverSolid:
		return
	case coverOpen:
		b.emit(c, f, id)
		return
	}

	// Split the face into the four children touching it.
	d := f.Axis()
	side := 0
	if f.Sign() > 0 {
		side = 1
	}
	for o := range uint8(8) {
		off := [3]int{}
		off[0], off[1], off[2] = voxel.OctantOffset(o)
		if off[d] == side {
			b.face(c.Child(o), f, id)
		}
	}
}

// cover classifies the cells across face f of c. At the detail floor a
// mixed neighbour inside the tree is resolved with an LOD read and a mixed
// neighbour outside it counts as open.
func (b *octreeMesher) cover(c voxel.Cube, f Face, floor bool) coverage {
	dx, dy, dz := f.Dir()
	e := c.Edge()
	n := voxel.Cube{X: c.X + dx*e, Y: c.Y + dy*e, Z: c.Z + dz*e, Scale: c.Scale}
	if p := n.Pos(); p.InBounds(b.tree.Scale()) {
		id, uniform, err := b.tree.Lookup(p)
		if err != nil {
			return coverOpen
		}
		if uniform || floor {
			return coverageOf(id.IsSolid())
		}
		return coverMixed
	}
	if b.outside == nil {
		return coverOpen
	}

	// Scan the single layer of world cells touching the face.
	d := f.Axis()
	u, v := (d+1)%3, (d+2)%3
	lo := [3]int{b.origin[0] + c.X, b.origin[1] + c.Y, b.origin[2] + c.Z}
	var cell [3]int
	cell[d] = lo[d] - 1
	if f.Sign() > 0 {
		cell[d] = lo[d] + e
	}
	solid, open := 0, 0
	for a := lo[u]; a < lo[u]+e; a++ {
		for bb := lo[v]; bb < lo[v]+e; bb++ {
			cell[u], cell[v] = a, bb
			if b.outside(cell[0], cell[1], cell[2]) {
				solid++
			} else {
				open++
			}
			if solid > 0 && open > 0 {
				if floor {
					return coverOpen
				}
				return coverMixed
			}
		}
	}
	return coverageOf(open == 0)
}

func (b *octreeMesher) emit(c voxel.Cube, f Face, id world.BlockID) {
	d := f.Axis()
	u, v := (d+1)%3, (d+2)%3
	e := c.Edge()
	lo := [3]int{b.origin[0] + c.X, b.origin[1] + c.Y, b.origin[2] + c.Z}
	plane := lo[d]
	if f.Sign() > 0 {
		plane += e
	}
	b.mesh.addQuad(f, plane, lo[u], lo[u]+e, lo[v], lo[v]+e, id.Color())
}
