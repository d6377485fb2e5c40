package physics_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxeltree/internal/physics"
	"voxeltree/internal/world"
)

func TestRaycast(t *testing.T) {
	// Create an empty world
	w := world.NewChunkStore()

	// Place a block at (5, 0, 0)
	require.NoError(t, w.Set(5, 0, 0, world.BlockStone))

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	result := physics.Raycast(start, dir, 0.1, 10, w)
	require.True(t, result.Hit)
	assert.Equal(t, [3]int{5, 0, 0}, result.HitPosition)
	assert.Equal(t, [3]int{4, 0, 0}, result.AdjacentPosition)
	assert.Equal(t, [3]int{-1, 0, 0}, result.Normal())
	assert.Equal(t, world.BlockStone, result.Block)
	// Ray starts at X=0.5 and enters the block at X=5.
	assert.InDelta(t, 4.5, result.Distance, 1e-4)

	// Out of reach.
	assert.False(t, physics.Raycast(start, dir, 0.1, 4, w).Hit)
	// Wrong direction.
	assert.False(t, physics.Raycast(start, mgl32.Vec3{0, 1, 0}, 0.1, 10, w).Hit)
	// No direction at all.
	assert.False(t, physics.Raycast(start, mgl32.Vec3{}, 0.1, 10, w).Hit)
}

func TestRaycastCases(t *testing.T) {
	w := world.NewChunkStore()
	for _, c := range [][3]int{{2, 2, 0}, {0, 3, 0}, {-4, 0, 0}} {
		require.NoError(t, w.Set(c[0], c[1], c[2], world.BlockStone))
	}
	require.NoError(t, w.Set(2, 0, 0, world.BlockWater))
	require.NoError(t, w.Set(7, 0, 0, world.BlockDirt))

	tests := []struct {
		name      string
		start     mgl32.Vec3
		direction mgl32.Vec3
		maxDist   float32
		hit       [3]int
		adjacent  [3]int
		distance  float32
	}{
		{
			name:      "diagonal",
			start:     mgl32.Vec3{0.5, 0.2, 0.5},
			direction: mgl32.Vec3{1, 1, 0},
			maxDist:   5,
			hit:       [3]int{2, 2, 0},
			adjacent:  [3]int{2, 1, 0},
			distance:  1.8 * 1.4142135,
		},
		{
			name:      "straight down",
			start:     mgl32.Vec3{0.5, 10.5, 0.5},
			direction: mgl32.Vec3{0, -1, 0},
			maxDist:   10,
			hit:       [3]int{0, 3, 0},
			adjacent:  [3]int{0, 4, 0},
			distance:  6.5,
		},
		{
			name:      "negative coordinates",
			start:     mgl32.Vec3{-0.5, 0.5, 0.5},
			direction: mgl32.Vec3{-1, 0, 0},
			maxDist:   5,
			hit:       [3]int{-4, 0, 0},
			adjacent:  [3]int{-3, 0, 0},
			distance:  2.5,
		},
		{
			name:      "through water",
			start:     mgl32.Vec3{0.5, 0.5, 0.5},
			direction: mgl32.Vec3{1, 0, 0},
			maxDist:   10,
			hit:       [3]int{7, 0, 0},
			adjacent:  [3]int{6, 0, 0},
			distance:  6.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := physics.Raycast(tt.start, tt.direction, 0, tt.maxDist, w)
			require.True(t, res.Hit)
			assert.Equal(t, tt.hit, res.HitPosition)
			assert.Equal(t, tt.adjacent, res.AdjacentPosition)
			assert.InDelta(t, tt.distance, res.Distance, 1e-3)
		})
	}
}

func TestRaycastSkipsStartCellBeforeMinDist(t *testing.T) {
	w := world.NewChunkStore()
	require.NoError(t, w.Set(0, 0, 0, world.BlockStone))
	require.NoError(t, w.Set(3, 0, 0, world.BlockStone))

	res := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, physics.MinReachDistance, physics.MaxReachDistance, w)
	require.True(t, res.Hit)
	assert.Equal(t, [3]int{3, 0, 0}, res.HitPosition)

	res = physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 0, physics.MaxReachDistance, w)
	assert.Equal(t, [3]int{0, 0, 0}, res.HitPosition)
}

func TestSurfaceY(t *testing.T) {
	w := world.New(world.NewFlatGenerator(5), 2, nil)
	defer w.Close()
	w.StreamAround(mgl32.Vec3{}, 0)
	w.Flush()

	y, ok := physics.SurfaceY(w, 10, 20, 60, 64)
	require.True(t, ok)
	assert.Equal(t, 5, y)

	_, ok = physics.SurfaceY(w, 10, 20, 60, 20)
	assert.False(t, ok)
}

func BenchmarkRaycast(b *testing.B) {
	w := world.NewChunkStore()
	// Build a simple wall
	for x := range 16 {
		for y := range 16 {
			_ = w.Set(x, y, 5, world.BlockStone)
		}
	}
	start := mgl32.Vec3{0, 8, 0}
	dir := mgl32.Vec3{0, 0, 1}
	b.ResetTimer()
	for range b.N {
		_ = physics.Raycast(start, dir, 0.1, 10.0, w)
	}
}
