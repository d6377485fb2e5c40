package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per interleaved vertex
// (pos.xyz + normal.xyz + uv + color.rgb).
const VertexStride = 11

// Vertex is one corner of a quad in world space.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
	Color    mgl32.Vec3
}

// Mesh is an indexed triangle list built from quads: four vertices and
// six indices per quad.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// SolidFunc reports whether the world voxel at (x, y, z) hides the faces
// of its neighbours. Meshers call it for cells outside the volume being
// meshed; a nil SolidFunc treats everything outside as air.
type SolidFunc func(x, y, z int) bool

// Face is one of the six axis-aligned cube faces.
type Face uint8

const (
	FaceEast   Face = iota // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceSouth              // +Z
	FaceNorth              // -Z

	NumFaces
)

var faceNames = [NumFaces]string{"east", "west", "top", "bottom", "south", "north"}

func (f Face) String() string {
	if f < NumFaces {
		return faceNames[f]
	}
	return "face(?)"
}

// Axis is the index of the axis the face is perpendicular to.
func (f Face) Axis() int {
	return int(f) / 2
}

// Sign is +1 for faces looking along the positive axis, -1 otherwise.
func (f Face) Sign() int {
	if f%2 == 0 {
		return 1
	}
	return -1
}

// Dir is the unit step from a cell to its neighbour across f.
func (f Face) Dir() (dx, dy, dz int) {
	var d [3]int
	d[f.Axis()] = f.Sign()
	return d[0], d[1], d[2]
}

// Normal is Dir as a float vector.
func (f Face) Normal() mgl32.Vec3 {
	dx, dy, dz := f.Dir()
	return mgl32.Vec3{float32(dx), float32(dy), float32(dz)}
}

// faceForNormal maps an axis-aligned unit normal back to its face.
func faceForNormal(n mgl32.Vec3) Face {
	for f := range NumFaces {
		if f.Normal().ApproxEqual(n) {
			return f
		}
	}
	return NumFaces
}

// addQuad appends the rectangle lying in the plane axis(f) = plane that
// spans [u0,u1] x [v0,v1] on the two remaining axes, in cyclic order. The
// winding is counter-clockwise seen from outside.
func (m *Mesh) addQuad(f Face, plane, u0, u1, v0, v1 int, color mgl32.Vec3) {
	d := f.Axis()
	u, v := (d+1)%3, (d+2)%3
	corner := func(a, b int) mgl32.Vec3 {
		var p [3]float32
		p[d] = float32(plane)
		p[u] = float32(a)
		p[v] = float32(b)
		return mgl32.Vec3{p[0], p[1], p[2]}
	}
	w, h := float32(u1-u0), float32(v1-v0)
	quad := [4]Vertex{
		{Position: corner(u0, v0), UV: mgl32.Vec2{0, 0}},
		{Position: corner(u1, v0), UV: mgl32.Vec2{w, 0}},
		{Position: corner(u1, v1), UV: mgl32.Vec2{w, h}},
		{Position: corner(u0, v1), UV: mgl32.Vec2{0, h}},
	}
	if f.Sign() < 0 {
		quad[1], quad[3] = quad[3], quad[1]
	}

	base := uint32(len(m.Vertices))
	normal := f.Normal()
	for _, vtx := range quad {
		vtx.Normal = normal
		vtx.Color = color
		m.Vertices = append(m.Vertices, vtx)
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
}

// Quads is the number of quads in the mesh.
func (m *Mesh) Quads() int {
	return len(m.Indices) / 6
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// Interleave appends the vertices to dst in VertexStride floats each.
func (m *Mesh) Interleave(dst []float32) []float32 {
	for _, v := range m.Vertices {
		dst = append(dst,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
			v.Color[0], v.Color[1], v.Color[2],
		)
	}
	return dst
}

// SurfaceArea sums quad areas per face direction. Two meshes of the same
// voxels agree on it however their quads are merged.
func (m *Mesh) SurfaceArea() [NumFaces]float32 {
	var area [NumFaces]float32
	for q := 0; q+3 < len(m.Vertices); q += 4 {
		p0 := m.Vertices[q].Position
		a := m.Vertices[q+1].Position.Sub(p0)
		b := m.Vertices[q+3].Position.Sub(p0)
		if f := faceForNormal(m.Vertices[q].Normal); f < NumFaces {
			area[f] += a.Cross(b).Len()
		}
	}
	return area
}
