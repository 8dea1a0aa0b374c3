package terrain

// Biome classifies a cell by elevation, moisture, and temperature.
type Biome uint8

const (
	BiomeOcean     Biome = iota // Below sea level
	BiomeBeach                  // Narrow band just above sea level
	BiomeGrassland              // Temperate default
	BiomeForest                 // Wet, mid elevation
	BiomeDesert                 // Dry and hot
	BiomeSwamp                  // Wet lowland
	BiomeTundra                 // Cold
	BiomeMountain               // High elevation
	BiomeSnow                   // Highest elevation
)

// ClimateConfig holds the classification thresholds.
type ClimateConfig struct {
	SeaLevel    float64 // Elevation below which a cell is ocean
	BeachBand   float64 // Elevation band above sea level classified as beach
	MountainLvl float64 // Elevation above which a cell is mountain
	SnowLvl     float64 // Elevation above which a mountain is snow-capped
}

// DefaultClimateConfig returns thresholds tuned for normalized [0,1] fields.
func DefaultClimateConfig() ClimateConfig {
	return ClimateConfig{
		SeaLevel:    0.30,
		BeachBand:   0.03,
		MountainLvl: 0.75,
		SnowLvl:     0.88,
	}
}

// Classify derives a biome grid from aligned elevation, moisture, and
// temperature fields. All three grids must share a shape.
func Classify(elev, moisture, temp [][]float64, cfg ClimateConfig) ([][]Biome, error) {
	h, w, err := checkShape(elev)
	if err != nil {
		return nil, err
	}
	for _, other := range [][][]float64{moisture, temp} {
		oh, ow, err := checkShape(other)
		if err != nil {
			return nil, err
		}
		if oh != h || ow != w {
			return nil, ErrDimensions
		}
	}

	biomes := make([][]Biome, h)
	for y := 0; y < h; y++ {
		biomes[y] = make([]Biome, w)
		for x := 0; x < w; x++ {
			biomes[y][x] = deriveBiome(elev[y][x], moisture[y][x], temp[y][x], cfg)
		}
	}
	return biomes, nil
}

// deriveBiome determines the biome for one cell's environmental values.
func deriveBiome(e, m, t float64, cfg ClimateConfig) Biome {
	if e < cfg.SeaLevel {
		return BiomeOcean
	}
	if e < cfg.SeaLevel+cfg.BeachBand {
		return BiomeBeach
	}
	if e > cfg.SnowLvl {
		return BiomeSnow
	}
	if e > cfg.MountainLvl {
		return BiomeMountain
	}
	if t < 0.25 {
		return BiomeTundra
	}
	if m < 0.25 && t > 0.5 {
		return BiomeDesert
	}
	if m > 0.7 && e < 0.45 {
		return BiomeSwamp
	}
	if m > 0.45 {
		return BiomeForest
	}
	return BiomeGrassland
}

// BiomeName returns a human-readable name for a biome.
func BiomeName(b Biome) string {
	switch b {
	case BiomeOcean:
		return "Ocean"
	case BiomeBeach:
		return "Beach"
	case BiomeGrassland:
		return "Grassland"
	case BiomeForest:
		return "Forest"
	case BiomeDesert:
		return "Desert"
	case BiomeSwamp:
		return "Swamp"
	case BiomeTundra:
		return "Tundra"
	case BiomeMountain:
		return "Mountain"
	case BiomeSnow:
		return "Snow"
	default:
		return "Unknown"
	}
}

// BiomeCounts returns the distribution of biomes across a grid.
func BiomeCounts(biomes [][]Biome) map[Biome]int {
	counts := make(map[Biome]int)
	for _, row := range biomes {
		for _, b := range row {
			counts[b]++
		}
	}
	return counts
}
