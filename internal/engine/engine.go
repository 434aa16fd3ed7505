package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cebarrett/Silents-Mechanisms/internal/store"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// DefaultWorldName is the save name used when none is configured.
const DefaultWorldName = "world"

// Engine is the tick loop over one authoritative world and its mirror.
type Engine struct {
	world  *world.World
	mirror *world.World
	types  *world.TileTypes
	clock  *Clock
	logger *slog.Logger

	store     *store.Store
	name      string
	saveEvery int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithMirror attaches a client mirror. It must be a remote world.
func WithMirror(m *world.World) Option {
	return func(e *Engine) { e.mirror = m }
}

// WithStore enables Save and autosave under the given world name.
func WithStore(s *store.Store, name string) Option {
	return func(e *Engine) {
		e.store = s
		if name != "" {
			e.name = name
		}
	}
}

// WithSaveEvery saves after every n ticks. Zero disables autosave.
func WithSaveEvery(n int64) Option {
	return func(e *Engine) { e.saveEvery = n }
}

// WithClock resumes from an existing clock.
func WithClock(c *Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine over w. types is needed to restore or mirror tiles.
func New(w *world.World, types *world.TileTypes, opts ...Option) (*Engine, error) {
	if w == nil {
		return nil, fmt.Errorf("engine: world is required")
	}
	if w.IsRemote() {
		return nil, fmt.Errorf("engine: cannot drive a remote world")
	}
	e := &Engine{
		world:  w,
		types:  types,
		clock:  NewClock(),
		logger: slog.Default(),
		name:   DefaultWorldName,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.mirror != nil && !e.mirror.IsRemote() {
		return nil, fmt.Errorf("engine: mirror world must be remote")
	}
	if e.saveEvery < 0 {
		return nil, fmt.Errorf("engine: save interval must not be negative, got %d", e.saveEvery)
	}
	return e, nil
}

// World returns the authoritative world.
func (e *Engine) World() *world.World { return e.world }

// Mirror returns the client mirror, or nil.
func (e *Engine) Mirror() *world.World { return e.mirror }

// Clock returns the tick clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Name returns the save name.
func (e *Engine) Name() string { return e.name }

// StepResult describes one tick.
type StepResult struct {
	Tick    int64
	Ticked  int
	Updated []geom.Pos
}

// Step runs one world tick and syncs the mirror.
func (e *Engine) Step(ctx context.Context) (StepResult, error) {
	if err := ctx.Err(); err != nil {
		return StepResult{}, err
	}

	res := StepResult{Tick: e.clock.Next()}
	res.Ticked = e.world.TickAll()
	res.Updated = e.world.DrainUpdates()

	for _, pos := range res.Updated {
		e.syncPos(res.Tick, pos)
	}

	if e.store != nil && e.saveEvery > 0 && res.Tick%e.saveEvery == 0 {
		if err := e.Save(ctx); err != nil {
			return res, fmt.Errorf("autosave at tick %d: %w", res.Tick, err)
		}
	}
	return res, nil
}

// syncPos forwards the server state at pos to the mirror.
func (e *Engine) syncPos(tick int64, pos geom.Pos) {
	state := e.world.BlockState(pos)
	if e.mirror == nil {
		return
	}

	if prev := e.mirror.BlockState(pos); prev.Lit != state.Lit {
		e.logger.Debug("lit changed", "tick", tick, "pos", pos, "lit", state.Lit)
	}
	e.mirror.SetBlockState(pos, state)

	src, ok := e.world.TileEntity(pos)
	if !ok {
		return
	}
	dst, ok := e.mirror.TileEntity(pos)
	if !ok {
		return
	}
	from, ok := src.(world.Syncable)
	if !ok {
		return
	}
	if to, ok := dst.(world.Syncable); ok {
		to.OnDataPacket(from.UpdateTag())
	}
}

// Run steps ticks times, stopping early if ctx is cancelled.
func (e *Engine) Run(ctx context.Context, ticks int) error {
	if ticks < 0 {
		return fmt.Errorf("engine: tick count must not be negative, got %d", ticks)
	}
	start := e.clock.Current()
	for i := 0; i < ticks; i++ {
		if _, err := e.Step(ctx); err != nil {
			return fmt.Errorf("tick %d: %w", e.clock.Current(), err)
		}
	}
	e.logger.Debug("run complete", "from", start, "to", e.clock.Current())
	return nil
}

// Save writes the current world under the engine's save name.
func (e *Engine) Save(ctx context.Context) error {
	if e.store == nil {
		return fmt.Errorf("engine: no store configured")
	}
	records := Snapshot(e.world)
	if err := e.store.SaveWorld(ctx, e.name, e.clock.Current(), records); err != nil {
		return err
	}
	e.logger.Info("world saved", "world", e.name, "tick", e.clock.Current(), "tiles", len(records))
	return nil
}
