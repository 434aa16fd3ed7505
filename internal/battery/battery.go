// Package battery implements a passive energy buffer block.
//
// A battery accepts and releases energy on every face and never pushes on
// its own; it is the usual sink next to a generator.
package battery

import (
	"fmt"
	"math"

	"github.com/cebarrett/Silents-Mechanisms/internal/energy"
	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/syncvar"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

const (
	Kind  = "battery_box"
	Block = "mechanisms:battery_box"
)

// Defaults for a battery box.
const (
	DefaultCapacity    = 1_000_000
	DefaultMaxTransfer = 500
)

// Config holds battery constants.
type Config struct {
	Capacity    int `json:"capacity"`
	MaxTransfer int `json:"maxTransfer"`
}

// DefaultConfig returns the stock battery constants.
func DefaultConfig() Config {
	return Config{Capacity: DefaultCapacity, MaxTransfer: DefaultMaxTransfer}
}

// Validate rejects non-positive constants.
func (c Config) Validate() error {
	if c.Capacity <= 0 || c.MaxTransfer <= 0 {
		return fmt.Errorf("battery capacity and maxTransfer must be positive, got %d/%d", c.Capacity, c.MaxTransfer)
	}
	if c.Capacity > math.MaxInt32 || c.MaxTransfer > math.MaxInt32 {
		return fmt.Errorf("battery capacity and maxTransfer must fit in 32 bits, got %d/%d", c.Capacity, c.MaxTransfer)
	}
	return nil
}

// Battery is a tile entity wrapping one energy.Store.
type Battery struct {
	store *energy.Store
	level world.Level
	pos   geom.Pos
	vars  syncvar.Table
}

// New creates an empty battery.
func New(cfg Config) *Battery {
	b := &Battery{store: energy.NewStore(cfg.Capacity, cfg.MaxTransfer, cfg.MaxTransfer, 0)}
	b.vars = syncvar.Table{
		syncvar.Int("Energy", b.store.EnergyStored, b.store.SetEnergyDirectly),
	}
	return b
}

// TileType registers the battery with a world.TileTypes registry.
func TileType(cfg Config) world.TileType {
	return world.TileType{
		Kind:  Kind,
		Block: Block,
		New:   func() world.TileEntity { return New(cfg) },
	}
}

func (b *Battery) Kind() string { return Kind }

func (b *Battery) SetLevel(level world.Level, pos geom.Pos) {
	b.level = level
	b.pos = pos
}

// Energy implements world.EnergyHolder on every side.
func (b *Battery) Energy(geom.Direction) (energy.Storage, bool) {
	return b.store, true
}

// EnergyStored returns the buffered amount.
func (b *Battery) EnergyStored() int { return b.store.EnergyStored() }

func (b *Battery) Save(tags nbt.Compound) nbt.Compound {
	return b.vars.Write(tags, syncvar.Write)
}

func (b *Battery) Load(tags nbt.Compound) {
	b.vars.Read(tags)
}

func (b *Battery) UpdateTag() nbt.Compound {
	return b.vars.Write(nbt.NewCompound(), syncvar.Packet)
}

func (b *Battery) OnDataPacket(tags nbt.Compound) {
	b.vars.Read(tags)
}

// DebugText reports the stored energy.
func (b *Battery) DebugText() []string {
	return []string{
		fmt.Sprintf("energy = %d FE / %d FE", b.store.EnergyStored(), b.store.MaxEnergyStored()),
		fmt.Sprintf("maxTransfer = %d", b.store.MaxReceive()),
	}
}
