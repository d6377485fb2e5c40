// Package voxel implements sparse voxel octrees and the flat storage
// contract shared by octree-backed and dense array-backed voxel grids.
//
// An Octree starts as a single leaf and subdivides lazily as writes land
// on non-uniform content. After every write the path just walked is
// re-examined bottom-up and any branch whose eight children became equal
// leaves is merged back, so node count tracks surface complexity rather
// than volume. Reads stop at the first leaf they reach, which makes a
// coarse leaf the answer for every finer position inside it.
//
// Trees carry no locks. A tree has one owner at a time; hand it to
// another goroutine by sending it on a channel and dropping your copy.
package voxel

import (
	"github.com/pkg/errors"
)

// Octree is a sparse voxel octree covering 2^scale voxels per axis.
type Octree[T comparable] struct {
	root  Node[T]
	scale int8
}

// New returns a tree whose every voxel holds def. The tree holds exactly
// one node regardless of scale.
func New[T comparable](def T, scale int8) *Octree[T] {
	if scale < 0 {
		scale = 0
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	return &Octree[T]{root: Leaf(def), scale: scale}
}

// Scale is the root level of the tree.
func (t *Octree[T]) Scale() int8 {
	return t.scale
}

// Size is the edge length of the tree in level-0 voxels.
func (t *Octree[T]) Size() int {
	return 1 << uint(t.scale)
}

// Root exposes the root node for read-only traversal.
func (t *Octree[T]) Root() *Node[T] {
	return &t.root
}

func (t *Octree[T]) check(p OctPos) error {
	if !p.InBounds(t.scale) {
		return errors.Wrapf(ErrOutOfBounds, "%v in tree of scale %d", p, t.scale)
	}
	return nil
}

// Set stores v for the cell addressed by p. Leaves on the way are
// subdivided one level at a time; afterwards ancestors that became
// uniform are merged, stopping at the first one that is not. A failed
// Set leaves the tree untouched.
func (t *Octree[T]) Set(p OctPos, v T) error {
	if err := t.check(p); err != nil {
		return err
	}
	var stack [MaxScale]*Node[T]
	depth := int(t.scale - p.Scale)
	n := &t.root
	for i := range depth {
		if n.IsLeaf() {
			if n.value == v {
				return nil
			}
			n.subdivide()
		}
		stack[i] = n
		bit := uint(depth - 1 - i)
		n = &n.children[Octant(p.X>>bit, p.Y>>bit, p.Z>>bit)]
	}
	n.setLeaf(v)
	for i := depth - 1; i >= 0; i-- {
		if !stack[i].collapse() {
			break
		}
	}
	return nil
}

// Get returns the value governing the cell addressed by p. The walk ends
// at the first leaf, even above p's level. If p's level is reached inside
// a branch, the walk continues through the minimum-corner octant, so
// Get(c@L) equals Get(c<<L @0).
func (t *Octree[T]) Get(p OctPos) (T, error) {
	v, _, err := t.Lookup(p)
	return v, err
}

// Lookup is Get that also reports whether the whole cell at p is covered
// by one leaf, at p's level or above.
func (t *Octree[T]) Lookup(p OctPos) (T, bool, error) {
	if err := t.check(p); err != nil {
		var zero T
		return zero, false, err
	}
	depth := int(t.scale - p.Scale)
	n := &t.root
	for i := range depth {
		if n.IsLeaf() {
			return n.value, true, nil
		}
		bit := uint(depth - 1 - i)
		n = &n.children[Octant(p.X>>bit, p.Y>>bit, p.Z>>bit)]
	}
	if n.IsLeaf() {
		return n.value, true, nil
	}
	return n.descendMin(), false, nil
}

// Fill resets the tree to a single leaf of v.
func (t *Octree[T]) Fill(v T) {
	t.root.setLeaf(v)
}

// Clone returns a deep copy that shares no nodes with t.
func (t *Octree[T]) Clone() *Octree[T] {
	return &Octree[T]{root: t.root.clone(), scale: t.scale}
}

// NodeCount counts branches and leaves.
func (t *Octree[T]) NodeCount() int {
	n, _, _ := t.root.count()
	return n
}

// LeafCount counts leaves only.
func (t *Octree[T]) LeafCount() int {
	_, l, _ := t.root.count()
	return l
}

// Depth is the number of levels between the root and its deepest leaf.
func (t *Octree[T]) Depth() int {
	_, _, d := t.root.count()
	return d
}

// Compact reports whether no branch in the tree has eight equal leaves.
func (t *Octree[T]) Compact() bool {
	return t.root.compact()
}

// Leaves calls fn for every leaf with the cube it covers, in octant
// order. Traversal stops when fn returns false.
func (t *Octree[T]) Leaves(fn func(Cube, T) bool) {
	t.LeavesAt(0, fn)
}

// LeavesAt is Leaves with a detail floor: a branch at minScale is
// reported as one cube carrying the value Get would return for it.
func (t *Octree[T]) LeavesAt(minScale int8, fn func(Cube, T) bool) {
	visit(&t.root, Cube{Scale: t.scale}, minScale, fn)
}

func visit[T comparable](n *Node[T], c Cube, minScale int8, fn func(Cube, T) bool) bool {
	if n.IsLeaf() {
		return fn(c, n.value)
	}
	if c.Scale <= minScale {
		return fn(c, n.descendMin())
	}
	for o := range uint8(8) {
		if !visit(&n.children[o], c.Child(o), minScale, fn) {
			return false
		}
	}
	return true
}
