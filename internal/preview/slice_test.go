package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxeltree/internal/voxel"
	"voxeltree/internal/world"
)

func sphere(t *testing.T) *world.Tree {
	t.Helper()
	tree, err := world.Generate(world.NewSphereGenerator(0), world.ChunkCoord{})
	require.NoError(t, err)
	return tree
}

func TestSliceSizeAndColours(t *testing.T) {
	img, err := Slice(sphere(t), world.ChunkSize/2, Options{Zoom: 4})
	require.NoError(t, err)
	assert.Equal(t, world.ChunkSize*4, img.Bounds().Dx())
	assert.Equal(t, world.ChunkSize*4, img.Bounds().Dy())

	c := world.ChunkSize / 2 * 4
	assert.Equal(t, blockColor(world.BlockStone), img.RGBAAt(c+1, c+2))
	assert.Equal(t, Background, img.RGBAAt(1, 1))
	assert.Equal(t, Background, img.RGBAAt(img.Bounds().Dx()-1, img.Bounds().Dy()-1))
}

func TestSliceRejectsOutOfRange(t *testing.T) {
	_, err := Slice(sphere(t), world.ChunkSize, Options{})
	assert.Error(t, err)
	_, err = Slice(sphere(t), -1, Options{})
	assert.Error(t, err)
}

func TestSliceLOD(t *testing.T) {
	tree := world.NewChunkTree()
	require.NoError(t, tree.Set(voxel.At(0, 0, 0, 0), world.BlockDirt))

	fine, err := Slice(tree, 0, Options{Zoom: 1})
	require.NoError(t, err)
	assert.Equal(t, Background, fine.RGBAAt(1, 1))

	// At LOD 1 the 2x2x2 cell resolves its minimum corner.
	coarse, err := Slice(tree, 1, Options{Zoom: 1, LOD: 1})
	require.NoError(t, err)
	assert.Equal(t, blockColor(world.BlockDirt), coarse.RGBAAt(1, 1))
	assert.Equal(t, Background, coarse.RGBAAt(2, 2))
}

func TestSliceOutlineAndLabel(t *testing.T) {
	tree := world.NewChunkTree()
	tree.Fill(world.BlockStone)

	plain, err := Slice(tree, 0, Options{Zoom: 2})
	require.NoError(t, err)
	outlined, err := Slice(tree, 0, Options{Zoom: 2, Outline: true})
	require.NoError(t, err)
	// The single root leaf is framed on the image border.
	assert.Equal(t, outlineColor, outlined.RGBAAt(0, 10))
	assert.Equal(t, blockColor(world.BlockStone), outlined.RGBAAt(10, 10))
	assert.NotEqual(t, plain.Pix, outlined.Pix)

	labelled, err := Slice(tree, 0, Options{Zoom: 2, Label: "y=0"})
	require.NoError(t, err)
	assert.NotEqual(t, plain.Pix, labelled.Pix)
}

func TestWritePNG(t *testing.T) {
	img, err := Slice(sphere(t), 20, Options{Zoom: 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
