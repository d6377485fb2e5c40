// Package preview renders horizontal slices of chunk trees to images for
// eyeballing generator output and octree structure.
package preview

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"voxeltree/internal/voxel"
	"voxeltree/internal/world"
)

// Background is the colour of air cells.
var Background = color.RGBA{R: 20, G: 20, B: 30, A: 255}

var outlineColor = color.RGBA{A: 255}

// Options controls Slice.
type Options struct {
	// Zoom is the edge of one voxel in pixels.
	Zoom int
	// LOD reads the slice at a coarser detail level.
	LOD int8
	// Outline draws the border of every leaf cube the slice cuts.
	Outline bool
	// Label is drawn in the top-left corner when non-empty.
	Label string
}

// Slice renders the layer y of tree seen from above: image X is voxel X,
// image Y is voxel Z.
func Slice(tree *world.Tree, y int, opts Options) (*image.RGBA, error) {
	size := tree.Size()
	if y < 0 || y >= size {
		return nil, errors.Errorf("slice y=%d outside tree of size %d", y, size)
	}
	zoom := max(opts.Zoom, 1)

	src := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := range size {
		for z := range size {
			id, err := tree.Get(voxel.At(x, y, z, 0).AtScale(opts.LOD))
			if err != nil {
				return nil, errors.Wrapf(err, "slice y=%d lod %d", y, opts.LOD)
			}
			src.SetRGBA(x, z, blockColor(id))
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size*zoom, size*zoom))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	if opts.Outline && zoom > 1 {
		tree.LeavesAt(opts.LOD, func(c voxel.Cube, _ world.BlockID) bool {
			if y >= c.Y && y < c.Y+c.Edge() {
				outline(dst, image.Rect(c.X, c.Z, c.X+c.Edge(), c.Z+c.Edge()), zoom)
			}
			return true
		})
	}
	if opts.Label != "" {
		label(dst, opts.Label)
	}
	return dst, nil
}

func blockColor(id world.BlockID) color.RGBA {
	if id.IsAir() {
		return Background
	}
	r, g, b := id.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// outline draws the one-pixel border of r, given in voxels.
func outline(dst *image.RGBA, r image.Rectangle, zoom int) {
	px := image.Rect(r.Min.X*zoom, r.Min.Y*zoom, r.Max.X*zoom-1, r.Max.Y*zoom-1)
	for x := px.Min.X; x <= px.Max.X; x++ {
		dst.SetRGBA(x, px.Min.Y, outlineColor)
		dst.SetRGBA(x, px.Max.Y, outlineColor)
	}
	for y := px.Min.Y; y <= px.Max.Y; y++ {
		dst.SetRGBA(px.Min.X, y, outlineColor)
		dst.SetRGBA(px.Max.X, y, outlineColor)
	}
}

func label(dst *image.RGBA, text string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 4+basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "encode png")
}
