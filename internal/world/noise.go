package world

import (
	"github.com/aquilax/go-perlin"
)

// Perlin fields halve the amplitude and double the frequency per octave.
const (
	noiseAlpha = 2
	noiseBeta  = 2
)

// newNoise returns a seeded Perlin field summing octaves layers. The
// field only reads its tables after construction, so generators share it
// across goroutines.
func newNoise(seed int64, octaves int) *perlin.Perlin {
	return perlin.NewPerlin(noiseAlpha, noiseBeta, int32(max(octaves, 1)), seed)
}

// unit maps a Perlin sample from about [-1,1] onto [0,1].
func unit(v float64) float64 {
	return min(max(v/2+0.5, 0), 1)
}

// signed clamps a Perlin sample to [-1,1].
func signed(v float64) float64 {
	return min(max(v, -1), 1)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
