package generator

import (
	"fmt"
	"log/slog"

	"github.com/cebarrett/Silents-Mechanisms/internal/energy"
	"github.com/cebarrett/Silents-Mechanisms/internal/inventory"
	"github.com/cebarrett/Silents-Mechanisms/internal/item"
	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/syncvar"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// Tile kind and block name.
const (
	Kind  = "coal_generator"
	Block = "mechanisms:coal_generator"
)

// FuelSlot is the only inventory slot.
const FuelSlot = 0

// Persistence and sync keys.
const (
	KeyBurnTime      = "BurnTime"
	KeyTotalBurnTime = "TotalBurnTime"
	KeyEnergy        = "Energy"
)

// CoalGenerator burns fuel items into energy and shares it with neighbors.
type CoalGenerator struct {
	cfg    Config
	items  *item.Registry
	logger *slog.Logger

	level world.Level
	pos   geom.Pos

	burnTime      int
	totalBurnTime int

	// energy is nil once the capability has been invalidated.
	energy *energy.Store
	inv    *inventory.Inventory
	vars   syncvar.Table
}

// Option configures a CoalGenerator.
type Option func(*CoalGenerator)

// WithLogger sets the logger used for burn events.
func WithLogger(l *slog.Logger) Option {
	return func(g *CoalGenerator) { g.logger = l }
}

// New creates an idle, empty generator.
func New(cfg Config, items *item.Registry, opts ...Option) *CoalGenerator {
	g := &CoalGenerator{
		cfg:    cfg,
		items:  items,
		logger: slog.Default(),
		energy: energy.NewStore(cfg.MaxEnergy, cfg.MaxTransfer, cfg.MaxTransfer, 0),
		inv:    inventory.New(1),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.vars = syncvar.Table{
		syncvar.Int(KeyBurnTime, func() int { return g.burnTime }, func(v int) { g.burnTime = max(v, 0) }),
		syncvar.Int(KeyTotalBurnTime, func() int { return g.totalBurnTime }, func(v int) { g.totalBurnTime = max(v, 0) }),
		syncvar.Int(KeyEnergy, g.EnergyStored, g.setEnergyStored).If(func() bool { return g.energy != nil }),
	}
	return g
}

// TileType registers the generator with a world.TileTypes registry.
func TileType(cfg Config, items *item.Registry, opts ...Option) world.TileType {
	return world.TileType{
		Kind:  Kind,
		Block: Block,
		New:   func() world.TileEntity { return New(cfg, items, opts...) },
	}
}

func (g *CoalGenerator) Kind() string { return Kind }

// SetLevel attaches the generator to a world. A nil level detaches it.
func (g *CoalGenerator) SetLevel(level world.Level, pos geom.Pos) {
	g.level = level
	g.pos = pos
}

// Config returns the generator constants.
func (g *CoalGenerator) Config() Config { return g.cfg }

// IsBurning reports whether a fuel charge is in progress.
func (g *CoalGenerator) IsBurning() bool { return g.burnTime > 0 }

// BurnTime is the ticks left in the current charge.
func (g *CoalGenerator) BurnTime() int { return g.burnTime }

// TotalBurnTime is the length of the current charge, for progress display.
func (g *CoalGenerator) TotalBurnTime() int { return g.totalBurnTime }

// Inventory returns the fuel inventory.
func (g *CoalGenerator) Inventory() *inventory.Inventory { return g.inv }

// Tick advances the generator by one world tick.
func (g *CoalGenerator) Tick() {
	if g.level == nil || g.level.IsRemote() {
		return
	}

	if g.IsBurning() {
		g.burnTime--
		if g.energy != nil {
			// energyPerTick <= maxTransfer, so only a full store rejects this.
			g.energy.ReceiveEnergy(g.cfg.EnergyPerTick, false)
		}
		g.sendUpdate()
	} else {
		fuel := g.inv.Stack(FuelSlot)
		if g.EnergyStored() < g.MaxEnergyStored() && g.items.IsFuel(fuel) {
			g.burnTime = g.items.BurnTime(fuel)
			if g.IsBurning() {
				g.totalBurnTime = g.burnTime
				g.consumeFuel(fuel)
				g.logger.Debug("burn started", "pos", g.pos, "fuel", fuel.Item.ID, "ticks", g.burnTime)
			}
			g.sendUpdate()
		}
	}

	if g.energy != nil {
		energy.SendToNeighbors(g.level, g.pos, g.energy, g.cfg.MaxTransfer)
	}
}

// consumeFuel removes one unit of fuel, leaving its container behind.
func (g *CoalGenerator) consumeFuel(fuel item.Stack) {
	if fuel.HasContainerItem() {
		g.inv.SetStack(FuelSlot, fuel.ContainerItem())
		return
	}
	rest := fuel.Shrink(1)
	if rest.IsEmpty() {
		rest = fuel.ContainerItem()
	}
	g.inv.SetStack(FuelSlot, rest)
}

func (g *CoalGenerator) sendUpdate() {
	if g.level == nil {
		return
	}
	old := g.level.BlockState(g.pos)
	g.level.NotifyBlockUpdate(g.pos, old, old.WithLit(g.IsBurning()))
}

// Energy implements world.EnergyHolder. The same store serves every side.
func (g *CoalGenerator) Energy(geom.Direction) (energy.Storage, bool) {
	if g.energy == nil {
		return nil, false
	}
	return g.energy, true
}

// MustEnergy returns the live store. The capability is always present while
// the machine is loaded, so its absence panics with an InvariantError.
func (g *CoalGenerator) MustEnergy() *energy.Store {
	if g.energy == nil {
		panic(&InvariantError{Kind: Kind, Pos: g.pos, Message: "energy capability requested after invalidation"})
	}
	return g.energy
}

// Invalidate implements world.Invalidator by dropping the energy capability.
func (g *CoalGenerator) Invalidate() {
	g.energy = nil
}

// EnergyStored returns 0 when the capability is absent.
func (g *CoalGenerator) EnergyStored() int {
	if g.energy == nil {
		return 0
	}
	return g.MustEnergy().EnergyStored()
}

// MaxEnergyStored returns 0 when the capability is absent.
func (g *CoalGenerator) MaxEnergyStored() int {
	if g.energy == nil {
		return 0
	}
	return g.MustEnergy().MaxEnergyStored()
}

func (g *CoalGenerator) setEnergyStored(v int) {
	if g.energy != nil {
		g.energy.SetEnergyDirectly(v)
	}
}

// Save writes the world-save record.
func (g *CoalGenerator) Save(tags nbt.Compound) nbt.Compound {
	tags = g.vars.Write(tags, syncvar.Write)
	return g.inv.Save(tags)
}

// Load restores from a world-save record. Missing fields read as 0.
func (g *CoalGenerator) Load(tags nbt.Compound) {
	g.vars.Read(tags)
	g.inv.Load(tags, g.items)
}

// UpdateTag is the payload sent to observing clients.
func (g *CoalGenerator) UpdateTag() nbt.Compound {
	return g.vars.Write(nbt.NewCompound(), syncvar.Packet)
}

// OnDataPacket applies a payload produced by UpdateTag.
func (g *CoalGenerator) OnDataPacket(tags nbt.Compound) {
	g.vars.Read(tags)
}

// DebugText reports the machine state for inspection tools.
func (g *CoalGenerator) DebugText() []string {
	return []string{
		fmt.Sprintf("burnTime = %d", g.burnTime),
		fmt.Sprintf("totalBurnTime = %d", g.totalBurnTime),
		fmt.Sprintf("energy = %d FE / %d FE", g.EnergyStored(), g.MaxEnergyStored()),
		fmt.Sprintf("energyPerTick = %d", g.cfg.EnergyPerTick),
		fmt.Sprintf("maxTransfer = %d", g.cfg.MaxTransfer),
	}
}
