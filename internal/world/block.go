package world

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// BlockID identifies the content of one voxel. The zero value is air and
// is the default every chunk tree starts from.
type BlockID uint8

const (
	BlockAir BlockID = iota
	BlockStone
	BlockDirt
	BlockGrass
	BlockSand
	BlockBedrock
	BlockWater

	numBlocks
)

type blockDef struct {
	name  string
	color [3]uint8
	solid bool
}

var blockDefs = [numBlocks]blockDef{
	BlockAir:     {"air", [3]uint8{0, 0, 0}, false},
	BlockStone:   {"stone", [3]uint8{125, 125, 125}, true},
	BlockDirt:    {"dirt", [3]uint8{134, 96, 67}, true},
	BlockGrass:   {"grass", [3]uint8{95, 159, 53}, true},
	BlockSand:    {"sand", [3]uint8{219, 207, 163}, true},
	BlockBedrock: {"bedrock", [3]uint8{60, 60, 60}, true},
	BlockWater:   {"water", [3]uint8{48, 92, 196}, false},
}

func (b BlockID) def() blockDef {
	if b >= numBlocks {
		return blockDef{name: fmt.Sprintf("block(%d)", uint8(b)), color: [3]uint8{255, 0, 255}, solid: true}
	}
	return blockDefs[b]
}

func (b BlockID) String() string {
	return b.def().name
}

// IsAir reports whether b is empty space.
func (b BlockID) IsAir() bool {
	return b == BlockAir
}

// IsSolid reports whether b occludes its neighbours' faces.
func (b BlockID) IsSolid() bool {
	return b.def().solid
}

// RGB is the block's display colour.
func (b BlockID) RGB() (r, g, bl uint8) {
	c := b.def().color
	return c[0], c[1], c[2]
}

// Color is the block's display colour in [0,1].
func (b BlockID) Color() mgl32.Vec3 {
	r, g, bl := b.RGB()
	return mgl32.Vec3{float32(r) / 255, float32(g) / 255, float32(bl) / 255}
}

// ParseBlockID resolves a block by name.
func ParseBlockID(name string) (BlockID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, d := range blockDefs {
		if d.name == name {
			return BlockID(i), nil
		}
	}
	return BlockAir, errors.Errorf("unknown block %q", name)
}
