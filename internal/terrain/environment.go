package terrain

import opensimplex "github.com/ojrac/opensimplex-go"

// Default scales and seed offsets for the climate fields. The offsets
// keep the layers decorrelated from the elevation noise while staying
// deterministic for a given world seed.
const (
	DefaultMoistureScale    = 100.0
	DefaultTemperatureScale = 150.0

	MoistureSeedOffset    = 1
	TemperatureSeedOffset = 2
)

// MoistureMap generates a moisture field aligned with elev, values in [0,1].
func MoistureMap(elev [][]float64, scale float64, seed int64) ([][]float64, error) {
	return noiseField(elev, scale, seed)
}

// TemperatureMap generates a temperature field aligned with elev, values in [0,1].
func TemperatureMap(elev [][]float64, scale float64, seed int64) ([][]float64, error) {
	return noiseField(elev, scale, seed)
}

// noiseField samples single-octave normalized noise at the resolution of
// the reference grid.
func noiseField(ref [][]float64, scale float64, seed int64) ([][]float64, error) {
	h, w, err := checkShape(ref)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, ErrScale
	}

	noise := opensimplex.NewNormalized(seed)
	field := make([][]float64, h)
	for y := 0; y < h; y++ {
		field[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			field[y][x] = noise.Eval2(float64(x)/scale, float64(y)/scale)
		}
	}
	return field, nil
}
