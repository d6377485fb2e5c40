package world

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWorldStreamAndEdit(t *testing.T) {
	w := New(NewFlatGenerator(5), 4, zaptest.NewLogger(t))
	defer w.Close()

	// (-10, 70) lies in chunk column (-1, 1).
	n := w.StreamAround(mgl32.Vec3{-10, 30, 70}, 1)
	assert.Equal(t, 9, n)
	w.Flush()
	assert.Equal(t, 9, w.Store().Len())
	assert.True(t, w.Store().HasChunk(ChunkCoord{X: -2, Z: 2}))

	assert.Equal(t, BlockGrass, w.Get(-10, 5, 70))
	assert.Equal(t, BlockBedrock, w.Get(-100, 0, 100))
	assert.True(t, w.IsAir(-10, 6, 70))

	require.NoError(t, w.Set(-10, 6, 70, BlockStone))
	assert.Equal(t, BlockStone, w.Get(-10, 6, 70))
	require.NoError(t, w.Set(-10, 5, 70, BlockAir))
	assert.True(t, w.IsAir(-10, 5, 70))

	require.Error(t, w.Set(0, -1, 0, BlockStone))
}

func TestWorldGenerateAroundAndEvict(t *testing.T) {
	w := New(NewSphereGenerator(0), 2, zaptest.NewLogger(t))
	defer w.Close()

	require.NoError(t, w.GenerateAround(context.Background(), mgl32.Vec3{}, 1))
	assert.Equal(t, 9, w.Store().Len())
	c := ChunkSize / 2
	assert.Equal(t, BlockStone, w.Get(ChunkSize+c, c, -ChunkSize+c))

	removed := w.EvictFar(mgl32.Vec3{ChunkSize * 10, 0, 0}, 2)
	assert.Equal(t, 9, removed)
	assert.Zero(t, w.Store().Len())
}
