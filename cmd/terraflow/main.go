// Command terraflow generates a procedural world — elevation, climate,
// hydrology, biomes — renders it to a shaded PNG, and stores it in
// SQLite. With -serve it also exposes the stored worlds over HTTP.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/talgya/terraflow/internal/api"
	"github.com/talgya/terraflow/internal/config"
	"github.com/talgya/terraflow/internal/persistence"
	"github.com/talgya/terraflow/internal/render"
	"github.com/talgya/terraflow/internal/terrain"
	"github.com/talgya/terraflow/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (empty = defaults)")
		seed       = flag.Int64("seed", 0, "world seed override (0 = config value)")
		mapPath    = flag.String("out", "", "map PNG path override")
		dbPath     = flag.String("db", "", "SQLite path override")
		servePort  = flag.Int("serve", 0, "HTTP API port (0 = generate and exit)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *mapPath != "" {
		cfg.Output.MapPath = *mapPath
	}
	if *dbPath != "" {
		cfg.Output.DBPath = *dbPath
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output.DBPath), 0755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(cfg.Output.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Output.DBPath)

	slog.Info("generating world",
		"width", cfg.World.Width,
		"height", cfg.World.Height,
		"cells", humanize.Comma(int64(cfg.World.Width)*int64(cfg.World.Height)),
		"seed", cfg.World.Seed,
	)
	wld, err := world.Generate(cfg)
	if err != nil {
		slog.Error("world generation failed", "error", err)
		os.Exit(1)
	}

	for biome, count := range terrain.BiomeCounts(wld.Biomes) {
		slog.Info("biome", "type", terrain.BiomeName(biome), "count", count)
	}
	slog.Info("hydrology",
		"basins", wld.BasinCount(),
		"river_cells", wld.RiverCells(),
		"river_threshold", wld.RiverThreshold,
	)

	img := render.Compose(wld.Biomes, wld.Elevation, wld.Rivers, cfg.RenderOptions())
	if err := render.WritePNG(cfg.Output.MapPath, img); err != nil {
		slog.Error("map render failed", "error", err)
		os.Exit(1)
	}
	if st, err := os.Stat(cfg.Output.MapPath); err == nil {
		slog.Info("map written", "path", cfg.Output.MapPath, "size", humanize.Bytes(uint64(st.Size())))
	}

	if err := db.SaveWorld(wld); err != nil {
		slog.Error("world save failed", "error", err)
		os.Exit(1)
	}
	slog.Info("world ready", "id", wld.ID, "seed", wld.Seed)

	if *servePort > 0 {
		server := &api.Server{
			DB:     db,
			Port:   *servePort,
			Render: cfg.RenderOptions(),
		}
		server.Start()
		slog.Info("serving", "url", fmt.Sprintf("http://localhost:%d/api/v1/worlds", *servePort))
		select {}
	}
}
