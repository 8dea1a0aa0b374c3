// Package config loads the terraflow run configuration from YAML with
// sensible defaults for every field.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/terraflow/internal/render"
	"github.com/talgya/terraflow/internal/terrain"
)

// Config is the full run configuration.
type Config struct {
	World   WorldSpec   `yaml:"world"`
	Climate ClimateSpec `yaml:"climate"`
	Rivers  RiverSpec   `yaml:"rivers"`
	Render  RenderSpec  `yaml:"render"`
	Output  OutputSpec  `yaml:"output"`
}

// WorldSpec holds field generation parameters.
type WorldSpec struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Seed             int64   `yaml:"seed"` // 0 = random
	Scale            float64 `yaml:"scale"`
	Octaves          int     `yaml:"octaves"`
	Persistence      float64 `yaml:"persistence"`
	Lacunarity       float64 `yaml:"lacunarity"`
	MoistureScale    float64 `yaml:"moisture_scale"`
	TemperatureScale float64 `yaml:"temperature_scale"`
}

// ClimateSpec holds biome classification thresholds.
type ClimateSpec struct {
	SeaLevel    float64 `yaml:"sea_level"`
	BeachBand   float64 `yaml:"beach_band"`
	MountainLvl float64 `yaml:"mountain_level"`
	SnowLvl     float64 `yaml:"snow_level"`
}

// RiverSpec holds river extraction parameters. A threshold below 1.0 is
// a fraction of the maximum flow accumulation; 1.0 and above is an
// absolute accumulation value. Any scalar is valid.
type RiverSpec struct {
	Threshold float64 `yaml:"threshold"`
}

// RenderSpec holds map rendering parameters.
type RenderSpec struct {
	Scale    int        `yaml:"scale"`
	Strength float64    `yaml:"shade_strength"`
	Light    [3]float64 `yaml:"light"`
}

// OutputSpec holds output destinations.
type OutputSpec struct {
	MapPath string `yaml:"map_path"`
	DBPath  string `yaml:"db_path"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	gen := terrain.DefaultGenConfig()
	climate := terrain.DefaultClimateConfig()
	opts := render.DefaultOptions()

	return Config{
		World: WorldSpec{
			Width:            gen.Width,
			Height:           gen.Height,
			Seed:             gen.Seed,
			Scale:            gen.Scale,
			Octaves:          gen.Octaves,
			Persistence:      gen.Persistence,
			Lacunarity:       gen.Lacunarity,
			MoistureScale:    terrain.DefaultMoistureScale,
			TemperatureScale: terrain.DefaultTemperatureScale,
		},
		Climate: ClimateSpec{
			SeaLevel:    climate.SeaLevel,
			BeachBand:   climate.BeachBand,
			MountainLvl: climate.MountainLvl,
			SnowLvl:     climate.SnowLvl,
		},
		Rivers: RiverSpec{Threshold: 0.02},
		Render: RenderSpec{
			Scale:    opts.Scale,
			Strength: opts.Strength,
			Light:    [3]float64{opts.Light.X, opts.Light.Y, opts.Light.Z},
		},
		Output: OutputSpec{
			MapPath: "map.png",
			DBPath:  "data/terraflow.db",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path just
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with. The
// river threshold is deliberately unrestricted.
func (c Config) Validate() error {
	if c.World.Width < 1 || c.World.Height < 1 {
		return errors.New("config: world width and height must be at least 1")
	}
	if c.World.Scale <= 0 || c.World.MoistureScale <= 0 || c.World.TemperatureScale <= 0 {
		return errors.New("config: noise scales must be greater than zero")
	}
	if c.World.Octaves < 1 {
		return errors.New("config: octaves must be at least 1")
	}
	if c.Render.Scale < 1 {
		return errors.New("config: render scale must be at least 1")
	}
	if c.Render.Strength < 0 || c.Render.Strength > 1 {
		return errors.New("config: shade strength must be within [0,1]")
	}
	return nil
}

// GenConfig converts the world section for the terrain generator.
func (c Config) GenConfig() terrain.GenConfig {
	return terrain.GenConfig{
		Width:       c.World.Width,
		Height:      c.World.Height,
		Seed:        c.World.Seed,
		Scale:       c.World.Scale,
		Octaves:     c.World.Octaves,
		Persistence: c.World.Persistence,
		Lacunarity:  c.World.Lacunarity,
	}
}

// ClimateConfig converts the climate section for biome classification.
func (c Config) ClimateConfig() terrain.ClimateConfig {
	return terrain.ClimateConfig{
		SeaLevel:    c.Climate.SeaLevel,
		BeachBand:   c.Climate.BeachBand,
		MountainLvl: c.Climate.MountainLvl,
		SnowLvl:     c.Climate.SnowLvl,
	}
}

// RenderOptions converts the render section for map composition.
func (c Config) RenderOptions() render.Options {
	return render.Options{
		Light:    render.LightDir{X: c.Render.Light[0], Y: c.Render.Light[1], Z: c.Render.Light[2]},
		Strength: c.Render.Strength,
		Scale:    c.Render.Scale,
	}
}
