package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/talgya/terraflow/internal/hydrology"
	"github.com/talgya/terraflow/internal/terrain"
)

// Options controls map composition.
type Options struct {
	Light    LightDir // Shading light direction
	Strength float64  // Shading strength, 0..1
	Scale    int      // Bilinear upscale factor; <=1 keeps native size
}

// DefaultOptions returns the standard render settings.
func DefaultOptions() Options {
	return Options{
		Light:    DefaultLight(),
		Strength: 0.6,
		Scale:    4,
	}
}

// Upscale bilinearly interpolates a color grid by an integer factor.
// A factor of one or less returns the input unchanged.
func Upscale(colors [][]RGB, scale int) [][]RGB {
	if scale <= 1 {
		return colors
	}
	h := len(colors)
	if h == 0 {
		return colors
	}
	w := len(colors[0])
	newH, newW := h*scale, w*scale

	out := make([][]RGB, newH)
	for i := 0; i < newH; i++ {
		out[i] = make([]RGB, newW)
		// Sample positions span the source grid inclusively.
		sy := position(i, newH, h)
		y0 := int(math.Floor(sy))
		y1 := y0 + 1
		if y1 > h-1 {
			y1 = h - 1
		}
		fy := sy - float64(y0)

		for j := 0; j < newW; j++ {
			sx := position(j, newW, w)
			x0 := int(math.Floor(sx))
			x1 := x0 + 1
			if x1 > w-1 {
				x1 = w - 1
			}
			fx := sx - float64(x0)

			top := lerp(colors[y0][x0], colors[y0][x1], fx)
			bottom := lerp(colors[y1][x0], colors[y1][x1], fx)
			out[i][j] = lerp(top, bottom, fy)
		}
	}
	return out
}

// position maps an output index onto the source axis, covering
// [0, src-1] evenly across the output extent.
func position(i, outLen, srcLen int) float64 {
	if outLen == 1 {
		return 0
	}
	return float64(i) * float64(srcLen-1) / float64(outLen-1)
}

func lerp(a, b RGB, f float64) RGB {
	return RGB{
		R: a.R*(1-f) + b.R*f,
		G: a.G*(1-f) + b.G*f,
		B: a.B*(1-f) + b.B*f,
	}
}

// ToImage converts a color grid into an RGBA image, clamping channels
// to [0,255].
func ToImage(colors [][]RGB) *image.RGBA {
	h := len(colors)
	w := 0
	if h > 0 {
		w = len(colors[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := colors[y][x]
			img.SetRGBA(x, y, color.RGBA{
				R: clamp8(c.R),
				G: clamp8(c.G),
				B: clamp8(c.B),
				A: 255,
			})
		}
	}
	return img
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Compose builds the final map image: biome colors, river overlay,
// slope shading, then upscaling.
func Compose(biomes [][]terrain.Biome, elev [][]float64, rivers hydrology.RiverMask, opts Options) *image.RGBA {
	colors := ColorGrid(biomes)
	if rivers != nil {
		OverlayRivers(colors, biomes, rivers)
	}
	shaded := Blend(colors, Shading(elev, opts.Light), opts.Strength)
	return ToImage(Upscale(shaded, opts.Scale))
}

// WritePNG encodes an image to a PNG file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
