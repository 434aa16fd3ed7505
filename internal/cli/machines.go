package cli

import (
	"io"
	"log/slog"

	"github.com/cebarrett/Silents-Mechanisms/internal/config"
	"github.com/cebarrett/Silents-Mechanisms/internal/generator"
	"github.com/cebarrett/Silents-Mechanisms/internal/item"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
)

// machines bundles everything built from one configuration.
type machines struct {
	cfg   *config.Config
	items *item.Registry
	types *world.TileTypes
}

// loadMachines resolves the configuration at path, or the defaults when
// path is empty, and builds the item and tile registries from it.
func loadMachines(path string, logger *slog.Logger) (*machines, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}

	items, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	types, err := cfg.TileTypes(items, generator.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &machines{cfg: cfg, items: items, types: types}, nil
}

// newLogger builds the process logger: text to w, debug when verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
