package render

import "math"

// LightDir is a light direction vector for shading. Default light comes
// from the northwest, slightly overhead.
type LightDir struct {
	X, Y, Z float64
}

// DefaultLight returns the standard northwest light.
func DefaultLight() LightDir {
	return LightDir{X: -1, Y: -1, Z: 1}
}

// Shading derives per-cell light intensity in [0,1] from the elevation
// gradient: surface normals from central differences, dotted with the
// normalized light direction and clamped at zero.
func Shading(elev [][]float64, light LightDir) [][]float64 {
	h := len(elev)
	if h == 0 {
		return nil
	}
	w := len(elev[0])

	norm := math.Sqrt(light.X*light.X + light.Y*light.Y + light.Z*light.Z)
	if norm == 0 {
		norm = 1
	}
	lx, ly, lz := light.X/norm, light.Y/norm, light.Z/norm

	shade := make([][]float64, h)
	for y := 0; y < h; y++ {
		shade[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			gy := gradient(elev, y, x, h, w, true)
			gx := gradient(elev, y, x, h, w, false)

			// Surface normal (-gx, -gy, 1), normalized.
			nlen := math.Sqrt(gx*gx + gy*gy + 1)
			nx, ny, nz := -gx/nlen, -gy/nlen, 1/nlen

			dot := nx*lx + ny*ly + nz*lz
			if dot < 0 {
				dot = 0
			}
			if dot > 1 {
				dot = 1
			}
			shade[y][x] = dot
		}
	}
	return shade
}

// gradient estimates the partial derivative at one cell: central
// difference in the interior, one-sided at the borders, zero along an
// axis of length one.
func gradient(elev [][]float64, y, x, h, w int, alongY bool) float64 {
	if alongY {
		switch {
		case h == 1:
			return 0
		case y == 0:
			return elev[1][x] - elev[0][x]
		case y == h-1:
			return elev[h-1][x] - elev[h-2][x]
		default:
			return (elev[y+1][x] - elev[y-1][x]) / 2
		}
	}
	switch {
	case w == 1:
		return 0
	case x == 0:
		return elev[y][1] - elev[y][0]
	case x == w-1:
		return elev[y][w-1] - elev[y][w-2]
	default:
		return (elev[y][x+1] - elev[y][x-1]) / 2
	}
}

// Blend darkens colors by the shading mask. strength 0 keeps the base
// colors, 1 applies full shading; the factor is (1-s) + s*shade.
func Blend(colors [][]RGB, shade [][]float64, strength float64) [][]RGB {
	out := make([][]RGB, len(colors))
	for y, row := range colors {
		out[y] = make([]RGB, len(row))
		for x, c := range row {
			s := shade[y][x]
			if s < 0 {
				s = 0
			}
			if s > 1 {
				s = 1
			}
			f := (1 - strength) + strength*s
			out[y][x] = RGB{R: c.R * f, G: c.G * f, B: c.B * f}
		}
	}
	return out
}
