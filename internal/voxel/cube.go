package voxel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Cube is an axis-aligned cube of voxels: its minimum corner in level-0
// voxel units and its edge as a power of two.
type Cube struct {
	X, Y, Z int
	Scale   int8
}

// Edge is the cube's edge length in voxels.
func (c Cube) Edge() int {
	return 1 << uint(c.Scale)
}

// Volume is the number of voxels in the cube.
func (c Cube) Volume() int {
	e := c.Edge()
	return e * e * e
}

// Pos is the cube expressed as an addressable position.
func (c Cube) Pos() OctPos {
	return OctPos{X: c.X >> uint(c.Scale), Y: c.Y >> uint(c.Scale), Z: c.Z >> uint(c.Scale), Scale: c.Scale}
}

// Child returns the sub-cube in octant o.
func (c Cube) Child(o uint8) Cube {
	half := c.Edge() >> 1
	dx, dy, dz := OctantOffset(o)
	return Cube{X: c.X + dx*half, Y: c.Y + dy*half, Z: c.Z + dz*half, Scale: c.Scale - 1}
}

// Contains reports whether the level-0 voxel (x, y, z) lies inside c.
func (c Cube) Contains(x, y, z int) bool {
	e := c.Edge()
	return x >= c.X && x < c.X+e &&
		y >= c.Y && y < c.Y+e &&
		z >= c.Z && z < c.Z+e
}

// Bounds returns the cube's corners in voxel space.
func (c Cube) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	e := float32(c.Edge())
	lo := mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
	return lo, lo.Add(mgl32.Vec3{e, e, e})
}

func (c Cube) String() string {
	return fmt.Sprintf("cube(%d,%d,%d edge %d)", c.X, c.Y, c.Z, c.Edge())
}
