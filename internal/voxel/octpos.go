package voxel

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxScale bounds the root scale of a tree so that every level-0
// coordinate fits comfortably in an int on all platforms.
const MaxScale = 30

// ErrOutOfBounds is returned when a position cannot be addressed inside a
// tree (or storage) of the given extent.
var ErrOutOfBounds = errors.New("voxel: position out of bounds")

// OctPos is an integer coordinate expressed at a resolution level.
// Scale 0 addresses single voxels; each step up halves the resolution,
// so the cell (X, Y, Z) at Scale s covers the level-0 voxels
// [X<<s, (X+1)<<s) along x, and likewise for y and z.
type OctPos struct {
	X, Y, Z int
	Scale   int8
}

// At builds an OctPos.
func At(x, y, z int, scale int8) OctPos {
	return OctPos{X: x, Y: y, Z: z, Scale: scale}
}

// AtScale re-expresses p at another level. Going coarser drops the low
// bits; going finer lands on the minimum corner of the cell.
func (p OctPos) AtScale(scale int8) OctPos {
	d := int(scale) - int(p.Scale)
	switch {
	case d > 0:
		return OctPos{X: p.X >> d, Y: p.Y >> d, Z: p.Z >> d, Scale: scale}
	case d < 0:
		return OctPos{X: p.X << -d, Y: p.Y << -d, Z: p.Z << -d, Scale: scale}
	}
	return p
}

func (p OctPos) String() string {
	return fmt.Sprintf("(%d,%d,%d)@%d", p.X, p.Y, p.Z, p.Scale)
}

// Octant packs one half-selection per axis into a child index:
// bit 0 is x, bit 1 is y, bit 2 is z.
func Octant(dx, dy, dz int) uint8 {
	return uint8(dx&1) | uint8(dy&1)<<1 | uint8(dz&1)<<2
}

// OctantOffset is the inverse of Octant.
func OctantOffset(o uint8) (dx, dy, dz int) {
	return int(o & 1), int(o>>1) & 1, int(o>>2) & 1
}

// InBounds reports whether p addresses a cell of a tree with the given
// root scale.
func (p OctPos) InBounds(rootScale int8) bool {
	if p.Scale < 0 || p.Scale > rootScale {
		return false
	}
	limit := 1 << uint(rootScale-p.Scale)
	return p.X >= 0 && p.X < limit &&
		p.Y >= 0 && p.Y < limit &&
		p.Z >= 0 && p.Z < limit
}

// Path returns the octant selectors leading from the root of a tree with
// the given scale to the node covering p, root first. A position at the
// root's own scale yields an empty path.
func Path(rootScale int8, p OctPos) ([]uint8, error) {
	if rootScale < 0 || rootScale > MaxScale || !p.InBounds(rootScale) {
		return nil, errors.Wrapf(ErrOutOfBounds, "%v in tree of scale %d", p, rootScale)
	}
	depth := int(rootScale - p.Scale)
	path := make([]uint8, depth)
	for i := range depth {
		bit := uint(depth - 1 - i)
		path[i] = Octant(p.X>>bit, p.Y>>bit, p.Z>>bit)
	}
	return path, nil
}
