package voxel

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageBackendsAgree(t *testing.T) {
	size := Extent{X: 12, Y: 7, Z: 9}
	backends := []Backend{BackendDense, BackendSparse}
	stores := make([]Storage[uint16], len(backends))
	for i, b := range backends {
		stores[i] = NewStorage[uint16](b)
		stores[i].InitFill(size, 3)
		assert.Equal(t, size, stores[i].Extent(), b.String())
	}

	rng := rand.New(rand.NewSource(11))
	for range 2000 {
		x, y, z := rng.Intn(size.X), rng.Intn(size.Y), rng.Intn(size.Z)
		v := uint16(rng.Intn(4))
		for _, s := range stores {
			require.NoError(t, s.Set(x, y, z, v))
		}
	}

	for x := range size.X {
		for y := range size.Y {
			for z := range size.Z {
				want, err := stores[0].Get(x, y, z)
				require.NoError(t, err)
				got, err := stores[1].Get(x, y, z)
				require.NoError(t, err)
				require.Equal(t, want, got, "(%d,%d,%d)", x, y, z)
			}
		}
	}
}

func TestStorageBounds(t *testing.T) {
	for _, b := range []Backend{BackendDense, BackendSparse} {
		t.Run(b.String(), func(t *testing.T) {
			s := NewStorage[int](b)
			s.Init(Extent{X: 5, Y: 5, Z: 5})

			v, err := s.Get(4, 4, 4)
			require.NoError(t, err)
			assert.Equal(t, 0, v)

			// A sparse storage of extent 5 is backed by an 8^3 tree; the
			// padding cells are still out of bounds.
			for _, c := range [][3]int{{5, 0, 0}, {0, 5, 0}, {0, 0, 5}, {-1, 0, 0}, {7, 7, 7}} {
				err := s.Set(c[0], c[1], c[2], 1)
				assert.True(t, errors.Is(err, ErrOutOfBounds), "%v", c)
				_, err = s.Get(c[0], c[1], c[2])
				assert.True(t, errors.Is(err, ErrOutOfBounds), "%v", c)
			}
		})
	}
}

func TestSparseInitIsConstantSize(t *testing.T) {
	s := NewStorage[uint8](BackendSparse).(*Sparse[uint8])
	s.InitFill(Cubic(1024), 9)
	assert.Equal(t, 1, s.Tree().NodeCount())
	assert.Equal(t, int8(10), s.Tree().Scale())

	v, err := s.Get(1023, 0, 511)
	require.NoError(t, err)
	assert.Equal(t, uint8(9), v)
}

func TestNewSparseAdoptsTree(t *testing.T) {
	tree := New(uint8(0), 3)
	require.NoError(t, tree.Set(At(1, 2, 3, 0), 5))
	s := NewSparse(tree)
	assert.Equal(t, Cubic(8), s.Extent())
	v, err := s.Get(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), v)
	require.NoError(t, s.Set(1, 2, 3, 0))
	assert.Equal(t, 1, tree.NodeCount())
}

func TestScaleFor(t *testing.T) {
	tests := []struct {
		size Extent
		want int8
	}{
		{Cubic(1), 0},
		{Cubic(2), 1},
		{Cubic(3), 2},
		{Cubic(64), 6},
		{Extent{X: 16, Y: 256, Z: 16}, 8},
		{Extent{X: 65, Y: 1, Z: 1}, 7},
		{Extent{}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScaleFor(tt.size), "%+v", tt.size)
	}
}

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{
		"dense": BackendDense, "Array": BackendDense,
		"sparse": BackendSparse, " octree ": BackendSparse, "svo": BackendSparse,
	} {
		got, err := ParseBackend(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseBackend("btree")
	assert.Error(t, err)
}

func TestDenseInitFill(t *testing.T) {
	var d Dense[int]
	d.InitFill(Cubic(3), 4)
	for x := range 3 {
		v, err := d.Get(x, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	}
	d.Init(Cubic(2))
	v, err := d.Get(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func BenchmarkStorageFill(b *testing.B) {
	for _, backend := range []Backend{BackendDense, BackendSparse} {
		b.Run(backend.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := NewStorage[uint8](backend)
				s.InitFill(Cubic(64), 0)
				for x := range 64 {
					for z := range 64 {
						for y := range 20 {
							_ = s.Set(x, y, z, 1)
						}
					}
				}
			}
		})
	}
}
