package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseRangeAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	a, b := newNoise(42, 4), newNoise(42, 4)

	for range 1000 {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100

		for name, v := range map[string]float64{
			"unit2":   unit(a.Noise2D(x, z)),
			"unit3":   unit(a.Noise3D(x, y, z)),
			"signed3": signed(a.Noise3D(x, y, z)),
		} {
			if v < -1 || v > 1 || (name != "signed3" && v < 0) {
				t.Fatalf("%s(%f,%f,%f) = %f out of range", name, x, y, z, v)
			}
		}
		assert.Equal(t, a.Noise3D(x, y, z), b.Noise3D(x, y, z))
	}
}

func TestNoiseSeedsDiffer(t *testing.T) {
	a, b := newNoise(100, 1), newNoise(200, 1)
	differ := false
	for i := range 20 {
		x := 0.37 + float64(i)*1.13
		if a.Noise2D(x, 0.71) != b.Noise2D(x, 0.71) {
			differ = true
		}
	}
	assert.True(t, differ)
}

func TestNoiseContinuity(t *testing.T) {
	n := newNoise(42, 1)
	assert.Less(t, math.Abs(n.Noise3D(1.3, 1.2, 1.1)-n.Noise3D(1.31, 1.2, 1.1)), 0.1)
	assert.Less(t, math.Abs(n.Noise2D(5.4, 5.4)-n.Noise2D(5.4, 5.41)), 0.1)
}

func TestUnitAndSignedClamp(t *testing.T) {
	assert.Equal(t, 0.0, unit(-3))
	assert.Equal(t, 1.0, unit(3))
	assert.Equal(t, 0.5, unit(0))
	assert.Equal(t, -1.0, signed(-1.5))
	assert.Equal(t, 0.25, signed(0.25))
}
