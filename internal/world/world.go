package world

import (
	"fmt"
	"slices"

	"github.com/cebarrett/Silents-Mechanisms/internal/energy"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// Placement is a tile together with where it lives.
type Placement struct {
	ID   string
	Pos  geom.Pos
	Tile TileEntity
}

// World is a sparse block grid with tile entities.
// It is not safe for concurrent use; the engine drives it from one goroutine.
type World struct {
	remote  bool
	ids     IDGenerator
	blocks  map[geom.Pos]BlockState
	tiles   map[geom.Pos]Placement
	updates map[geom.Pos]struct{}
}

// Option configures a World.
type Option func(*World)

// WithRemote marks the world as a client mirror.
func WithRemote() Option {
	return func(w *World) { w.remote = true }
}

// WithIDGenerator replaces the default UUIDv7 tile ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(w *World) { w.ids = g }
}

// New creates an empty world.
func New(opts ...Option) *World {
	w := &World{
		ids:     UUIDv7Generator{},
		blocks:  make(map[geom.Pos]BlockState),
		tiles:   make(map[geom.Pos]Placement),
		updates: make(map[geom.Pos]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// IsRemote implements Level.
func (w *World) IsRemote() bool { return w.remote }

// BlockState implements Level. Unset positions are air.
func (w *World) BlockState(pos geom.Pos) BlockState {
	return w.blocks[pos]
}

// SetBlockState replaces the state at pos without scheduling a resync.
func (w *World) SetBlockState(pos geom.Pos, s BlockState) {
	if s.IsAir() {
		delete(w.blocks, pos)
		return
	}
	w.blocks[pos] = s
}

// NotifyBlockUpdate implements Level: it applies updated and marks pos for a
// client resync.
func (w *World) NotifyBlockUpdate(pos geom.Pos, _, updated BlockState) {
	w.SetBlockState(pos, updated)
	w.updates[pos] = struct{}{}
}

// DrainUpdates returns positions notified since the last call, in
// position order, and forgets them.
func (w *World) DrainUpdates() []geom.Pos {
	if len(w.updates) == 0 {
		return nil
	}
	out := make([]geom.Pos, 0, len(w.updates))
	for p := range w.updates {
		out = append(out, p)
	}
	clear(w.updates)
	slices.SortFunc(out, geom.Pos.Compare)
	return out
}

// EnergyAt implements energy.Lookup through the tile's EnergyHolder.
func (w *World) EnergyAt(pos geom.Pos, side geom.Direction) (energy.Storage, bool) {
	p, ok := w.tiles[pos]
	if !ok {
		return nil, false
	}
	holder, ok := p.Tile.(EnergyHolder)
	if !ok {
		return nil, false
	}
	return holder.Energy(side)
}

// Place puts block and te at pos, replacing anything there, and returns the
// new tile ID.
func (w *World) Place(pos geom.Pos, block string, te TileEntity) string {
	return w.PlaceWithID(pos, block, te, w.ids.Generate())
}

// PlaceWithID is Place with a caller-chosen ID, used when loading saves.
func (w *World) PlaceWithID(pos geom.Pos, block string, te TileEntity, id string) string {
	w.detach(pos)
	w.SetBlockState(pos, BlockState{Block: block})
	if te != nil {
		te.SetLevel(w, pos)
		w.tiles[pos] = Placement{ID: id, Pos: pos, Tile: te}
	}
	return id
}

// PlaceNew constructs a tile of type tt at pos.
func (w *World) PlaceNew(pos geom.Pos, tt TileType) (TileEntity, string) {
	te := tt.New()
	return te, w.Place(pos, tt.Block, te)
}

// Remove deletes the block and tile at pos. The tile is invalidated and
// detached from the world.
func (w *World) Remove(pos geom.Pos) {
	w.detach(pos)
	delete(w.blocks, pos)
	delete(w.updates, pos)
}

func (w *World) detach(pos geom.Pos) {
	p, ok := w.tiles[pos]
	if !ok {
		return
	}
	if inv, ok := p.Tile.(Invalidator); ok {
		inv.Invalidate()
	}
	p.Tile.SetLevel(nil, pos)
	delete(w.tiles, pos)
}

// TileEntity returns the tile at pos.
func (w *World) TileEntity(pos geom.Pos) (TileEntity, bool) {
	p, ok := w.tiles[pos]
	return p.Tile, ok
}

// Tiles returns every placement in position order.
func (w *World) Tiles() []Placement {
	out := make([]Placement, 0, len(w.tiles))
	for _, p := range w.tiles {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Placement) int { return a.Pos.Compare(b.Pos) })
	return out
}

// TickAll ticks every Ticker tile once in position order. A remote world
// never ticks.
func (w *World) TickAll() int {
	if w.remote {
		return 0
	}
	n := 0
	for _, p := range w.Tiles() {
		if t, ok := p.Tile.(Ticker); ok {
			t.Tick()
			n++
		}
	}
	return n
}

// Mirror builds a remote copy of w with freshly constructed tiles of the same
// kinds and IDs, each loaded from the source tile's update tag.
func (w *World) Mirror(types *TileTypes) (*World, error) {
	m := New(WithRemote(), WithIDGenerator(w.ids))
	for pos, s := range w.blocks {
		m.blocks[pos] = s
	}
	for _, p := range w.Tiles() {
		tt, ok := types.Lookup(p.Tile.Kind())
		if !ok {
			return nil, fmt.Errorf("mirror %s: unknown tile kind %q", p.Pos, p.Tile.Kind())
		}
		te := tt.New()
		te.SetLevel(m, p.Pos)
		m.tiles[p.Pos] = Placement{ID: p.ID, Pos: p.Pos, Tile: te}
		if src, ok := p.Tile.(Syncable); ok {
			if dst, ok := te.(Syncable); ok {
				dst.OnDataPacket(src.UpdateTag())
			}
		}
	}
	return m, nil
}
