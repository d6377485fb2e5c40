package voxel

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSelectors(t *testing.T) {
	tests := []struct {
		name  string
		scale int8
		pos   OctPos
		want  []uint8
	}{
		{"root", 3, At(0, 0, 0, 3), []uint8{}},
		{"origin", 3, At(0, 0, 0, 0), []uint8{0, 0, 0}},
		{"far corner", 3, At(7, 7, 7, 0), []uint8{7, 7, 7}},
		{"x only", 3, At(4, 0, 0, 0), []uint8{1, 0, 0}},
		{"y only", 3, At(0, 2, 0, 0), []uint8{0, 2, 0}},
		{"z only", 3, At(0, 0, 1, 0), []uint8{0, 0, 4}},
		{"mixed", 3, At(3, 3, 3, 0), []uint8{0, 7, 7}},
		{"coarse", 3, At(1, 0, 1, 1), []uint8{0, 5}},
		{"one level", 3, At(1, 1, 0, 2), []uint8{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Path(tt.scale, tt.pos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, int(tt.scale-tt.pos.Scale))
		})
	}
}

func TestPathOutOfBounds(t *testing.T) {
	for _, p := range []OctPos{
		At(8, 0, 0, 0),
		At(0, 8, 0, 0),
		At(0, 0, 8, 0),
		At(-1, 0, 0, 0),
		At(4, 0, 0, 1),
		At(1, 0, 0, 3),
		At(0, 0, 0, 4),
		At(0, 0, 0, -1),
	} {
		_, err := Path(3, p)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "%v should be rejected", p)
	}
}

func TestOctantRoundTrip(t *testing.T) {
	for o := range uint8(8) {
		dx, dy, dz := OctantOffset(o)
		assert.Equal(t, o, Octant(dx, dy, dz))
	}
	assert.Equal(t, uint8(1), Octant(1, 0, 0))
	assert.Equal(t, uint8(2), Octant(0, 1, 0))
	assert.Equal(t, uint8(4), Octant(0, 0, 1))
}

func TestAtScale(t *testing.T) {
	p := At(5, 6, 7, 0)
	assert.Equal(t, At(2, 3, 3, 1), p.AtScale(1))
	assert.Equal(t, At(0, 0, 0, 3), p.AtScale(3))
	assert.Equal(t, At(4, 6, 6, 0), p.AtScale(1).AtScale(0))
	assert.Equal(t, p, p.AtScale(0))
	assert.Equal(t, "(5,6,7)@0", p.String())
}
