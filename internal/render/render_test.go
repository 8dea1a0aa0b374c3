package render_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/terraflow/internal/hydrology"
	"github.com/talgya/terraflow/internal/render"
	"github.com/talgya/terraflow/internal/terrain"
)

func TestColorGrid_KnownBiomes(t *testing.T) {
	biomes := [][]terrain.Biome{
		{terrain.BiomeOcean, terrain.BiomeForest},
	}
	colors := render.ColorGrid(biomes)
	require.Equal(t, render.RGB{R: 0, G: 105, B: 148}, colors[0][0])
	require.Equal(t, render.RGB{R: 34, G: 139, B: 34}, colors[0][1])
}

func TestOverlayRivers_SkipsOcean(t *testing.T) {
	biomes := [][]terrain.Biome{
		{terrain.BiomeOcean, terrain.BiomeGrassland},
	}
	colors := render.ColorGrid(biomes)
	ocean := colors[0][0]
	grass := colors[0][1]

	render.OverlayRivers(colors, biomes, hydrology.RiverMask{{true, true}})
	require.Equal(t, ocean, colors[0][0], "ocean keeps its color under a river mask")
	require.NotEqual(t, grass, colors[0][1], "land river cell gets repainted")
}

func TestShading_FlatTerrain(t *testing.T) {
	elev := [][]float64{
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
	}
	shade := render.Shading(elev, render.DefaultLight())

	// Flat ground has normal (0,0,1); the dot with the normalized
	// (-1,-1,1) light is 1/sqrt(3) everywhere.
	want := 1.0 / math.Sqrt(3)
	for _, row := range shade {
		for _, v := range row {
			require.InDelta(t, want, v, 1e-9)
		}
	}
}

func TestShading_SlopeFacingLight(t *testing.T) {
	// With light from the northwest, a slope rising to the east tilts
	// its normal back toward the light and renders brighter than the
	// mirrored slope falling away from it.
	rising := [][]float64{{0.0, 0.5, 1.0}}
	falling := [][]float64{{1.0, 0.5, 0.0}}

	bright := render.Shading(rising, render.DefaultLight())
	dim := render.Shading(falling, render.DefaultLight())
	require.Greater(t, bright[0][1], dim[0][1])
}

func TestBlend_StrengthBounds(t *testing.T) {
	colors := [][]render.RGB{{{R: 100, G: 100, B: 100}}}
	shade := [][]float64{{0.0}}

	unshaded := render.Blend(colors, shade, 0.0)
	require.Equal(t, colors[0][0], unshaded[0][0])

	full := render.Blend(colors, shade, 1.0)
	require.Equal(t, render.RGB{}, full[0][0], "full-strength shading in darkness blacks out the cell")
}

func TestUpscale_Dimensions(t *testing.T) {
	colors := [][]render.RGB{
		{{R: 0}, {R: 255}},
		{{R: 255}, {R: 0}},
	}

	same := render.Upscale(colors, 1)
	require.Len(t, same, 2)

	up := render.Upscale(colors, 4)
	require.Len(t, up, 8)
	require.Len(t, up[0], 8)

	// Corners of the upscaled grid sample the source corners exactly.
	require.Equal(t, colors[0][0], up[0][0])
	require.Equal(t, colors[0][1], up[0][7])
	require.Equal(t, colors[1][0], up[7][0])
	require.Equal(t, colors[1][1], up[7][7])
}

func TestUpscale_UniformStaysUniform(t *testing.T) {
	c := render.RGB{R: 12, G: 34, B: 56}
	colors := [][]render.RGB{{c, c}, {c, c}}
	up := render.Upscale(colors, 3)
	for _, row := range up {
		for _, v := range row {
			require.Equal(t, c, v)
		}
	}
}

func TestToImage_Clamps(t *testing.T) {
	img := render.ToImage([][]render.RGB{{{R: -10, G: 300, B: 128}}})
	c := img.RGBAAt(0, 0)
	require.EqualValues(t, 0, c.R)
	require.EqualValues(t, 255, c.G)
	require.EqualValues(t, 128, c.B)
	require.EqualValues(t, 255, c.A)
}

func TestCompose_FullPipeline(t *testing.T) {
	elev := [][]float64{
		{0.9, 0.5},
		{0.5, 0.1},
	}
	biomes := [][]terrain.Biome{
		{terrain.BiomeMountain, terrain.BiomeGrassland},
		{terrain.BiomeGrassland, terrain.BiomeOcean},
	}
	rivers := hydrology.RiverMask{
		{false, true},
		{true, false},
	}

	opts := render.DefaultOptions()
	opts.Scale = 2
	img := render.Compose(biomes, elev, rivers, opts)

	bounds := img.Bounds()
	require.Equal(t, 4, bounds.Dx())
	require.Equal(t, 4, bounds.Dy())
}
