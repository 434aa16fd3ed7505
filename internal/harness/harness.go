package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cebarrett/Silents-Mechanisms/internal/config"
	"github.com/cebarrett/Silents-Mechanisms/internal/engine"
	"github.com/cebarrett/Silents-Mechanisms/internal/generator"
	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// MachineRecord is one machine as seen at the end of a tick.
type MachineRecord struct {
	Kind  string
	Pos   geom.Pos
	Lit   bool
	State nbt.Compound
}

// TickRecord is the trace entry for one tick.
type TickRecord struct {
	Tick     int64
	Machines []MachineRecord
	Updated  []geom.Pos
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool

	// Trace has one entry per tick, in order.
	Trace []TickRecord

	// Errors contains assertion failure messages.
	Errors []string

	server *world.World
	mirror *world.World
}

// AddError records a failure.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario in a fresh world and evaluates its assertions.
//
// Tile IDs come from a sequence generator and logs are discarded, so the
// same scenario always produces the same trace.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with cancellation.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	cfg, err := loadConfig(scenario.Config)
	if err != nil {
		return nil, err
	}
	items, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("build items: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	types, err := cfg.TileTypes(items, generator.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	server := world.New(world.WithIDGenerator(world.NewSequenceGenerator("tile")))
	layout := Layout{Machines: scenario.Machines}
	if err := layout.Place(server, types, items); err != nil {
		return nil, fmt.Errorf("place layout: %w", err)
	}

	mirror, err := server.Mirror(types)
	if err != nil {
		return nil, fmt.Errorf("build mirror: %w", err)
	}

	eng, err := engine.New(server, types, engine.WithMirror(mirror), engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Pass:   true,
		Trace:  make([]TickRecord, 0, scenario.Ticks),
		Errors: []string{},
		server: server,
		mirror: mirror,
	}
	for i := 0; i < scenario.Ticks; i++ {
		step, err := eng.Step(ctx)
		if err != nil {
			return nil, fmt.Errorf("tick %d: %w", i+1, err)
		}
		result.Trace = append(result.Trace, TickRecord{
			Tick:     step.Tick,
			Machines: recordMachines(server),
			Updated:  step.Updated,
		})
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// recordMachines captures every machine's sync record in position order.
func recordMachines(w *world.World) []MachineRecord {
	tiles := w.Tiles()
	out := make([]MachineRecord, 0, len(tiles))
	for _, p := range tiles {
		out = append(out, MachineRecord{
			Kind:  p.Tile.Kind(),
			Pos:   p.Pos,
			Lit:   w.BlockState(p.Pos).Lit,
			State: stateOf(p.Tile),
		})
	}
	return out
}

func stateOf(te world.TileEntity) nbt.Compound {
	if s, ok := te.(world.Syncable); ok {
		return s.UpdateTag()
	}
	return te.Save(nbt.NewCompound())
}
