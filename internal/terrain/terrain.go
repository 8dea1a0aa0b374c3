// Package terrain generates the scalar fields the rest of the pipeline
// consumes: a fractal height map plus moisture and temperature maps, and
// the biome classification derived from the three.
// Uses layered opensimplex noise.
package terrain

import (
	"errors"

	opensimplex "github.com/ojrac/opensimplex-go"
)

var (
	// ErrDimensions indicates a requested grid with no rows or columns.
	ErrDimensions = errors.New("terrain: width and height must be at least 1")
	// ErrScale indicates a non-positive noise scale.
	ErrScale = errors.New("terrain: scale must be greater than zero")
)

// GenConfig holds height map generation parameters.
type GenConfig struct {
	Width       int     // Grid width in cells
	Height      int     // Grid height in cells
	Seed        int64   // Noise seed
	Scale       float64 // Noise zoom; smaller values zoom in
	Octaves     int     // Number of noise layers
	Persistence float64 // Amplitude multiplier per octave
	Lacunarity  float64 // Frequency multiplier per octave
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       256,
		Height:      256,
		Seed:        0,
		Scale:       80.0,
		Octaves:     5,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// SmallTestConfig returns a tiny grid for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:       32,
		Height:      32,
		Seed:        42,
		Scale:       12.0,
		Octaves:     3,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// HeightMap generates a height × width grid of fractal noise, min-max
// normalized to [0,1]. A perfectly flat raw field normalizes to all
// zeros rather than dividing by zero.
func HeightMap(cfg GenConfig) ([][]float64, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, ErrDimensions
	}
	if cfg.Scale <= 0 {
		return nil, ErrScale
	}

	noise := opensimplex.New(cfg.Seed)
	elev := make([][]float64, cfg.Height)

	minVal := 0.0
	maxVal := 0.0
	first := true
	for y := 0; y < cfg.Height; y++ {
		elev[y] = make([]float64, cfg.Width)
		for x := 0; x < cfg.Width; x++ {
			v := octaveNoise(noise, float64(x), float64(y), cfg)
			elev[y][x] = v
			if first || v < minVal {
				minVal = v
			}
			if first || v > maxVal {
				maxVal = v
			}
			first = false
		}
	}

	span := maxVal - minVal
	for y := range elev {
		for x := range elev[y] {
			if span == 0 {
				elev[y][x] = 0
			} else {
				elev[y][x] = (elev[y][x] - minVal) / span
			}
		}
	}
	return elev, nil
}

// octaveNoise layers multiple noise frequencies for natural-looking terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, cfg GenConfig) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := 1.0

	for i := 0; i < cfg.Octaves; i++ {
		sx := x / cfg.Scale * frequency
		sy := y / cfg.Scale * frequency
		total += noise.Eval2(sx, sy) * amplitude

		amplitude *= cfg.Persistence
		frequency *= cfg.Lacunarity
	}
	return total
}

// checkShape validates a non-empty rectangular grid and returns its size.
func checkShape(grid [][]float64) (h, w int, err error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return 0, 0, ErrDimensions
	}
	h, w = len(grid), len(grid[0])
	for _, row := range grid {
		if len(row) != w {
			return 0, 0, ErrDimensions
		}
	}
	return h, w, nil
}
