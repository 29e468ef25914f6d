// Map seeding using layered simplex noise.
// Every hex within the radius gets one entry of a palette, picked by a noise
// field so neighboring hexes tend to share the same tile.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds map seeding parameters.
type GenConfig struct {
	Radius      int32   // Hex grid radius
	Seed        int64   // Random seed (0 = random)
	Octaves     int     // Noise layers
	Frequency   float64 // Base sampling frequency
	Persistence float64 // Amplitude falloff per octave
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:      8,
		Seed:        0,
		Octaves:     4,
		Frequency:   0.08,
		Persistence: 0.5,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius:      3,
		Seed:        42,
		Octaves:     2,
		Frequency:   0.2,
		Persistence: 0.5,
	}
}

// Generate fills every hex within cfg.Radius with a palette entry.
// An empty palette yields an empty map.
func Generate[T any](cfg GenConfig, palette []T) *Map[T] {
	m := NewMap[T](cfg.Radius)
	if len(palette) == 0 {
		return m
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	noise := opensimplex.NewNormalized(seed)

	for _, coord := range Zero.Range(cfg.Radius) {
		// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
		x := float64(coord.Q) + float64(coord.R)*0.5
		y := float64(coord.R) * math.Sqrt(3.0) / 2.0

		v := octaveNoise(noise, x, y, cfg.Octaves, cfg.Frequency, cfg.Persistence)
		idx := int(v * float64(len(palette)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(palette) {
			idx = len(palette) - 1
		}
		m.Tiles[coord] = palette[idx]
	}

	return m
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
