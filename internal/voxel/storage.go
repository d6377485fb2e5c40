package voxel

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Extent is the size of a storage along each axis.
type Extent struct {
	X, Y, Z int
}

// Cubic returns an extent of n along every axis.
func Cubic(n int) Extent {
	return Extent{X: n, Y: n, Z: n}
}

// Volume is the number of cells in the extent.
func (e Extent) Volume() int {
	return e.X * e.Y * e.Z
}

// Contains reports whether (x, y, z) is a cell of the extent.
func (e Extent) Contains(x, y, z int) bool {
	return x >= 0 && x < e.X && y >= 0 && y < e.Y && z >= 0 && z < e.Z
}

// Storage is a flat, position-addressed grid of T. Callers such as
// generators and meshers only need this contract and do not care whether
// the cells live in an array or an octree.
type Storage[T comparable] interface {
	// Get returns the value at (x, y, z).
	Get(x, y, z int) (T, error)
	// Set stores v at (x, y, z).
	Set(x, y, z int, v T) error
	// Init resizes the storage, leaving every cell at the zero value of T.
	Init(size Extent)
	// InitFill resizes the storage with every cell set to fill.
	InitFill(size Extent, fill T)
	// Extent is the current size.
	Extent() Extent
}

// Backend selects a Storage implementation.
type Backend uint8

const (
	BackendDense Backend = iota
	BackendSparse
)

func (b Backend) String() string {
	switch b {
	case BackendDense:
		return "dense"
	case BackendSparse:
		return "sparse"
	default:
		return fmt.Sprintf("backend(%d)", uint8(b))
	}
}

// ParseBackend maps a backend name to its value.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dense", "array":
		return BackendDense, nil
	case "sparse", "octree", "svo":
		return BackendSparse, nil
	}
	return 0, errors.Errorf("voxel: unknown storage backend %q", s)
}

// NewStorage returns an empty storage of the chosen backend. Call Init or
// InitFill before use.
func NewStorage[T comparable](b Backend) Storage[T] {
	if b == BackendSparse {
		return &Sparse[T]{}
	}
	return &Dense[T]{}
}

func outOfBounds(x, y, z int, e Extent) error {
	return errors.Wrapf(ErrOutOfBounds, "(%d,%d,%d) outside %dx%dx%d", x, y, z, e.X, e.Y, e.Z)
}

// Dense keeps every cell in one flat slice.
type Dense[T comparable] struct {
	cells []T
	size  Extent
}

func (d *Dense[T]) index(x, y, z int) int {
	return x*d.size.Y*d.size.Z + y*d.size.Z + z
}

func (d *Dense[T]) Get(x, y, z int) (T, error) {
	if !d.size.Contains(x, y, z) {
		var zero T
		return zero, outOfBounds(x, y, z, d.size)
	}
	return d.cells[d.index(x, y, z)], nil
}

func (d *Dense[T]) Set(x, y, z int, v T) error {
	if !d.size.Contains(x, y, z) {
		return outOfBounds(x, y, z, d.size)
	}
	d.cells[d.index(x, y, z)] = v
	return nil
}

func (d *Dense[T]) Init(size Extent) {
	d.size = size
	d.cells = make([]T, size.Volume())
}

func (d *Dense[T]) InitFill(size Extent, fill T) {
	d.Init(size)
	for i := range d.cells {
		d.cells[i] = fill
	}
}

func (d *Dense[T]) Extent() Extent {
	return d.size
}

// Sparse stores cells in an octree big enough to cover its extent.
// Initialisation is O(1) whatever the size.
type Sparse[T comparable] struct {
	tree *Octree[T]
	size Extent
}

// NewSparse adopts tree as the backing store; the extent is the tree's
// full cube.
func NewSparse[T comparable](tree *Octree[T]) *Sparse[T] {
	return &Sparse[T]{tree: tree, size: Cubic(tree.Size())}
}

// ScaleFor returns the smallest tree scale whose cube covers size.
func ScaleFor(size Extent) int8 {
	m := max(size.X, size.Y, size.Z, 1)
	return int8(bits.Len(uint(m - 1)))
}

func (s *Sparse[T]) Get(x, y, z int) (T, error) {
	if !s.size.Contains(x, y, z) {
		var zero T
		return zero, outOfBounds(x, y, z, s.size)
	}
	return s.tree.Get(At(x, y, z, 0))
}

func (s *Sparse[T]) Set(x, y, z int, v T) error {
	if !s.size.Contains(x, y, z) {
		return outOfBounds(x, y, z, s.size)
	}
	return s.tree.Set(At(x, y, z, 0), v)
}

func (s *Sparse[T]) Init(size Extent) {
	var zero T
	s.InitFill(size, zero)
}

func (s *Sparse[T]) InitFill(size Extent, fill T) {
	s.size = size
	s.tree = New(fill, ScaleFor(size))
}

func (s *Sparse[T]) Extent() Extent {
	return s.size
}

// Tree returns the backing octree.
func (s *Sparse[T]) Tree() *Octree[T] {
	return s.tree
}
