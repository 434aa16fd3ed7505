package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cebarrett/Silents-Mechanisms/internal/engine"
	"github.com/cebarrett/Silents-Mechanisms/internal/harness"
	"github.com/cebarrett/Silents-Mechanisms/internal/store"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database  string
	World     string
	Ticks     int
	Layout    string
	Config    string
	SaveEvery int64

	// IDs overrides the tile ID generator for new layouts (for testing).
	IDs world.IDGenerator
}

// RunSummary is the result of a run.
type RunSummary struct {
	World string `json:"world"`
	From  int64  `json:"from"`
	Tick  int64  `json:"tick"`
	Tiles int    `json:"tiles"`
	Lit   int    `json:"lit"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tick a saved world",
		Long: `Advance a world by a number of ticks and save it.

The world is loaded from the database. Pass --layout to build a new world
from a layout file instead; this replaces any save with the same name.

Example:
  mechanisms run --db ./world.db --layout ./layout.yaml --ticks 200
  mechanisms run --db ./world.db --ticks 1000 --config ./fast.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorld(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.World, "world", engine.DefaultWorldName, "world name")
	cmd.Flags().IntVar(&opts.Ticks, "ticks", 20, "number of ticks to run")
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "create the world from a layout YAML file")
	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE configuration file")
	cmd.Flags().Int64Var(&opts.SaveEvery, "save-every", -1, "autosave interval in ticks (-1 uses the config value)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runWorld(opts *RunOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	if opts.Ticks < 0 {
		return formatter.fail(ExitCommandError, ErrCodeConfig, fmt.Sprintf("--ticks must not be negative, got %d", opts.Ticks), nil)
	}

	m, err := loadMachines(opts.Config, logger)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConfig, "failed to load configuration", err)
	}
	saveEvery := m.cfg.Engine.SaveEvery
	if opts.SaveEvery >= 0 {
		saveEvery = opts.SaveEvery
	}

	logger.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	engineOpts := []engine.Option{
		engine.WithStore(st, opts.World),
		engine.WithSaveEvery(saveEvery),
		engine.WithLogger(logger),
	}

	var eng *engine.Engine
	if opts.Layout != "" {
		eng, err = newWorldFromLayout(opts, m, engineOpts)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeLayout, "failed to build layout", err)
		}
	} else {
		eng, err = engine.Load(ctx, st, opts.World, m.types, engineOpts...)
		if errors.Is(err, store.ErrWorldNotFound) {
			return formatter.fail(ExitCommandError, ErrCodeNotFound,
				fmt.Sprintf("world %q not found; pass --layout to create it", opts.World), nil)
		}
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeStore, "failed to load world", err)
		}
	}

	from := eng.Clock().Current()
	logger.Info("running", "world", opts.World, "from", from, "ticks", opts.Ticks)
	runErr := eng.Run(ctx, opts.Ticks)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return formatter.fail(ExitFailure, ErrCodeStore, "run failed", runErr)
	}

	// The run context may be cancelled by now; the final save must still land.
	if err := eng.Save(context.WithoutCancel(ctx)); err != nil {
		return formatter.fail(ExitFailure, ErrCodeStore, "failed to save world", err)
	}

	summary := summarize(eng, opts.World, from)
	return formatter.Success(summary, func(w io.Writer) {
		fmt.Fprintf(w, "World %q: tick %d -> %d, %d tile(s), %d lit\n",
			summary.World, summary.From, summary.Tick, summary.Tiles, summary.Lit)
		if errors.Is(runErr, context.Canceled) {
			fmt.Fprintln(w, "Stopped early; progress saved.")
		}
	})
}

func newWorldFromLayout(opts *RunOptions, m *machines, engineOpts []engine.Option) (*engine.Engine, error) {
	layout, err := harness.LoadLayout(opts.Layout)
	if err != nil {
		return nil, err
	}

	var worldOpts []world.Option
	if opts.IDs != nil {
		worldOpts = append(worldOpts, world.WithIDGenerator(opts.IDs))
	}
	w := world.New(worldOpts...)
	if err := layout.Place(w, m.types, m.items); err != nil {
		return nil, err
	}

	mirror, err := w.Mirror(m.types)
	if err != nil {
		return nil, err
	}
	return engine.New(w, m.types, append(engineOpts, engine.WithMirror(mirror))...)
}

func summarize(eng *engine.Engine, name string, from int64) RunSummary {
	s := RunSummary{World: name, From: from, Tick: eng.Clock().Current()}
	for _, p := range eng.World().Tiles() {
		s.Tiles++
		if eng.World().BlockState(p.Pos).Lit {
			s.Lit++
		}
	}
	return s
}
