package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cebarrett/Silents-Mechanisms/internal/engine"
	"github.com/cebarrett/Silents-Mechanisms/internal/generator"
	"github.com/cebarrett/Silents-Mechanisms/internal/store"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Database string
	World    string
	Config   string
}

// TileInfo describes one saved tile. Fields is the container data view in
// index order.
type TileInfo struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	Pos    string   `json:"pos"`
	Lit    bool     `json:"lit"`
	Debug  []string `json:"debug"`
	Fields []int    `json:"fields,omitempty"`
}

// WorldReport is the inspect output for one world.
type WorldReport struct {
	World string     `json:"world"`
	Tick  int64      `json:"tick"`
	Tiles []TileInfo `json:"tiles"`
}

type debugger interface {
	DebugText() []string
}

type fielded interface {
	Fields() generator.Fields
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show saved worlds and machine state",
		Long: `List the worlds in a database, or show every machine of one world.

Example:
  mechanisms inspect --db ./world.db
  mechanisms inspect --db ./world.db --world world --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.World, "world", "", "world to show (lists worlds when empty)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "CUE configuration file")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runInspect(opts *InspectOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	if opts.World == "" {
		worlds, err := st.ListWorlds(ctx)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeStore, "failed to list worlds", err)
		}
		return formatter.Success(worlds, func(w io.Writer) {
			if len(worlds) == 0 {
				fmt.Fprintln(w, "No worlds saved.")
				return
			}
			for _, wi := range worlds {
				fmt.Fprintf(w, "%s\ttick %d\t%d tile(s)", wi.Name, wi.Tick, wi.Tiles)
				kinds := make([]string, 0, len(wi.Kinds))
				for _, k := range slices.Sorted(maps.Keys(wi.Kinds)) {
					kinds = append(kinds, fmt.Sprintf("%s=%d", k, wi.Kinds[k]))
				}
				if len(kinds) > 0 {
					fmt.Fprintf(w, "\t%s", strings.Join(kinds, " "))
				}
				fmt.Fprintln(w)
			}
		})
	}

	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	m, err := loadMachines(opts.Config, logger)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeConfig, "failed to load configuration", err)
	}

	eng, err := engine.Load(ctx, st, opts.World, m.types, engine.WithLogger(logger))
	if errors.Is(err, store.ErrWorldNotFound) {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("world %q not found", opts.World), nil)
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeStore, "failed to load world", err)
	}

	report := WorldReport{World: opts.World, Tick: eng.Clock().Current(), Tiles: []TileInfo{}}
	for _, p := range eng.World().Tiles() {
		info := TileInfo{
			ID:    p.ID,
			Kind:  p.Tile.Kind(),
			Pos:   p.Pos.String(),
			Lit:   eng.World().BlockState(p.Pos).Lit,
			Debug: []string{},
		}
		if d, ok := p.Tile.(debugger); ok {
			info.Debug = d.DebugText()
		}
		if f, ok := p.Tile.(fielded); ok {
			view := f.Fields()
			for i := range view.Size() {
				info.Fields = append(info.Fields, view.Get(i))
			}
		}
		report.Tiles = append(report.Tiles, info)
	}

	return formatter.Success(report, func(w io.Writer) {
		fmt.Fprintf(w, "World %q at tick %d\n", report.World, report.Tick)
		for _, t := range report.Tiles {
			lit := ""
			if t.Lit {
				lit = " [lit]"
			}
			fmt.Fprintf(w, "\n%s %s %s%s\n", t.Pos, t.Kind, t.ID, lit)
			if len(t.Debug) > 0 {
				fmt.Fprintf(w, "  %s\n", strings.Join(t.Debug, "\n  "))
			}
		}
	})
}
