// Package render turns biome and elevation grids into shaded color
// images: base biome colors, slope shading against a light direction,
// a river overlay, and bilinear upscaling for display.
package render

import (
	"github.com/talgya/terraflow/internal/terrain"
)

// RGB holds a color as floats so shading and interpolation stay exact
// until the final image conversion clamps to bytes.
type RGB struct {
	R, G, B float64
}

// riverColor paints river cells over their biome base color.
var riverColor = RGB{R: 52, G: 120, B: 198}

// BiomeColor returns the base color for a biome. Unknown values render
// as black, which makes classification gaps visible instead of silent.
func BiomeColor(b terrain.Biome) RGB {
	switch b {
	case terrain.BiomeOcean:
		return RGB{R: 0, G: 105, B: 148}
	case terrain.BiomeBeach:
		return RGB{R: 238, G: 214, B: 175}
	case terrain.BiomeGrassland:
		return RGB{R: 124, G: 252, B: 0}
	case terrain.BiomeForest:
		return RGB{R: 34, G: 139, B: 34}
	case terrain.BiomeDesert:
		return RGB{R: 210, G: 180, B: 140}
	case terrain.BiomeSwamp:
		return RGB{R: 47, G: 79, B: 79}
	case terrain.BiomeTundra:
		return RGB{R: 176, G: 196, B: 222}
	case terrain.BiomeMountain:
		return RGB{R: 139, G: 137, B: 137}
	case terrain.BiomeSnow:
		return RGB{R: 255, G: 250, B: 250}
	default:
		return RGB{}
	}
}

// ColorGrid maps a biome grid to its base colors.
func ColorGrid(biomes [][]terrain.Biome) [][]RGB {
	colors := make([][]RGB, len(biomes))
	for y, row := range biomes {
		colors[y] = make([]RGB, len(row))
		for x, b := range row {
			colors[y][x] = BiomeColor(b)
		}
	}
	return colors
}

// OverlayRivers paints river-mask cells onto a color grid in place.
// Ocean cells keep their color — a river ends where the sea begins.
func OverlayRivers(colors [][]RGB, biomes [][]terrain.Biome, rivers [][]bool) {
	for y := range colors {
		for x := range colors[y] {
			if rivers[y][x] && biomes[y][x] != terrain.BiomeOcean {
				colors[y][x] = riverColor
			}
		}
	}
}
