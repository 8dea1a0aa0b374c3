// Package world runs the full synthesis pipeline and holds the grids it
// produces: elevation, climate fields, hydrology, and biomes.
package world

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/terraflow/internal/config"
	"github.com/talgya/terraflow/internal/hydrology"
	"github.com/talgya/terraflow/internal/terrain"
)

// World bundles one generated world: the elevation snapshot and every
// grid derived from it. All grids share the same shape; the derived
// ones are recomputed from scratch whenever elevation changes, never
// patched in place.
type World struct {
	ID   string
	Seed int64

	Elevation   [][]float64
	Moisture    [][]float64
	Temperature [][]float64

	Directions   hydrology.DirectionGrid
	Accumulation [][]float64
	Rivers       hydrology.RiverMask
	Basins       hydrology.BasinGrid

	Biomes [][]terrain.Biome

	RiverThreshold float64
}

// Generate synthesizes a complete world from the configuration. A zero
// seed picks a random one; any other seed is fully deterministic.
func Generate(cfg config.Config) (*World, error) {
	seed := cfg.World.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	gen := cfg.GenConfig()
	gen.Seed = seed

	elev, err := terrain.HeightMap(gen)
	if err != nil {
		return nil, fmt.Errorf("height map: %w", err)
	}
	moist, err := terrain.MoistureMap(elev, cfg.World.MoistureScale, seed+terrain.MoistureSeedOffset)
	if err != nil {
		return nil, fmt.Errorf("moisture map: %w", err)
	}
	temp, err := terrain.TemperatureMap(elev, cfg.World.TemperatureScale, seed+terrain.TemperatureSeedOffset)
	if err != nil {
		return nil, fmt.Errorf("temperature map: %w", err)
	}

	acc, dirs, err := hydrology.Accumulate(elev)
	if err != nil {
		return nil, fmt.Errorf("flow accumulation: %w", err)
	}
	rivers := hydrology.Rivers(acc, cfg.Rivers.Threshold)
	basins := hydrology.Basins(dirs)

	biomes, err := terrain.Classify(elev, moist, temp, cfg.ClimateConfig())
	if err != nil {
		return nil, fmt.Errorf("biome classification: %w", err)
	}

	return &World{
		ID:             uuid.NewString(),
		Seed:           seed,
		Elevation:      elev,
		Moisture:       moist,
		Temperature:    temp,
		Directions:     dirs,
		Accumulation:   acc,
		Rivers:         rivers,
		Basins:         basins,
		Biomes:         biomes,
		RiverThreshold: cfg.Rivers.Threshold,
	}, nil
}

// Width returns the grid width.
func (w *World) Width() int {
	if len(w.Elevation) == 0 {
		return 0
	}
	return len(w.Elevation[0])
}

// Height returns the grid height.
func (w *World) Height() int {
	return len(w.Elevation)
}

// BasinCount returns the number of distinct drainage basins.
func (w *World) BasinCount() int {
	max := -1
	for _, row := range w.Basins {
		for _, id := range row {
			if id > max {
				max = id
			}
		}
	}
	return max + 1
}

// RiverCells returns how many cells the river mask marks.
func (w *World) RiverCells() int {
	n := 0
	for _, row := range w.Rivers {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// String returns a one-line summary.
func (w *World) String() string {
	return fmt.Sprintf("World(%s, %dx%d, seed=%d, basins=%d, river_cells=%d)",
		w.ID, w.Width(), w.Height(), w.Seed, w.BasinCount(), w.RiverCells())
}
