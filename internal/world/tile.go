package world

import (
	"github.com/cebarrett/Silents-Mechanisms/internal/energy"
	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// BlockState is the visible state of a block.
type BlockState struct {
	Block string
	Lit   bool
}

// WithLit returns a copy with the lit property set.
func (s BlockState) WithLit(lit bool) BlockState {
	s.Lit = lit
	return s
}

// IsAir reports whether no block is present.
func (s BlockState) IsAir() bool { return s.Block == "" }

// Level is what a tile entity may ask of the world it lives in.
type Level interface {
	energy.Lookup

	// IsRemote is true on a client mirror, which must never run game logic.
	IsRemote() bool
	BlockState(pos geom.Pos) BlockState
	NotifyBlockUpdate(pos geom.Pos, old, updated BlockState)
}

// TileEntity is per-block state owned by a World.
type TileEntity interface {
	Kind() string
	SetLevel(level Level, pos geom.Pos)
	Save(tags nbt.Compound) nbt.Compound
	Load(tags nbt.Compound)
}

// Ticker is implemented by tiles that run once per world tick.
type Ticker interface {
	Tick()
}

// Syncable is implemented by tiles whose state is mirrored to clients.
type Syncable interface {
	UpdateTag() nbt.Compound
	OnDataPacket(tags nbt.Compound)
}

// Invalidator is implemented by tiles that release capabilities when their
// block is removed or replaced.
type Invalidator interface {
	Invalidate()
}

// EnergyHolder is implemented by tiles exposing an energy capability.
type EnergyHolder interface {
	Energy(side geom.Direction) (energy.Storage, bool)
}
