package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxeltree/internal/profiling"
	"voxeltree/internal/world"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// BlockSource is anything that can answer a world-space block lookup.
// Both world.World and world.ChunkStore qualify.
type BlockSource interface {
	Get(x, y, z int) world.BlockID
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Block            world.BlockID
	Distance         float32
	Hit              bool
}

// Normal is the unit step from the hit cell to the cell the ray came
// from, i.e. the face that was hit.
func (r RaycastResult) Normal() [3]int {
	return [3]int{
		r.AdjacentPosition[0] - r.HitPosition[0],
		r.AdjacentPosition[1] - r.HitPosition[1],
		r.AdjacentPosition[2] - r.HitPosition[2],
	}
}

// Raycast walks the voxel grid cell by cell from start along direction and
// returns the first solid block entered between minDist and maxDist. Cell
// (x, y, z) spans [x, x+1) on each axis. Non-solid blocks such as water
// are passed through.
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, src BlockSource) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()

	inf := float32(math.Inf(1))
	var (
		cell   [3]int
		step   [3]int
		tMax   [3]float32
		tDelta [3]float32
	)
	for i := range 3 {
		cell[i] = int(math.Floor(float64(start[i])))
		switch d := dir[i]; {
		case d > 0:
			step[i] = 1
			tDelta[i] = 1 / d
			tMax[i] = (float32(cell[i]+1) - start[i]) / d
		case d < 0:
			step[i] = -1
			tDelta[i] = -1 / d
			tMax[i] = (start[i] - float32(cell[i])) / -d
		default:
			tDelta[i], tMax[i] = inf, inf
		}
	}

	lastEmptyPos := cell
	dist := float32(0)
	for dist <= maxDist {
		if dist >= minDist {
			if id := src.Get(cell[0], cell[1], cell[2]); id.IsSolid() {
				return RaycastResult{
					HitPosition:      cell,
					AdjacentPosition: lastEmptyPos,
					Block:            id,
					Distance:         dist,
					Hit:              true,
				}
			}
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		lastEmptyPos = cell
		cell[axis] += step[axis]
		dist = tMax[axis]
		tMax[axis] += tDelta[axis]
	}

	return RaycastResult{}
}

// SurfaceY drops a ray from fromY down through the centre of column
// (x, z) and returns the Y of the first solid block, searching at most
// depth blocks.
func SurfaceY(src BlockSource, x, z, fromY, depth int) (int, bool) {
	start := mgl32.Vec3{float32(x) + 0.5, float32(fromY) + 0.5, float32(z) + 0.5}
	res := Raycast(start, mgl32.Vec3{0, -1, 0}, 0, float32(depth), src)
	if !res.Hit {
		return 0, false
	}
	return res.HitPosition[1], true
}
