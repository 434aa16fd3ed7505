package harness

import (
	"fmt"
	"os"

	"github.com/cebarrett/Silents-Mechanisms/internal/inventory"
	"github.com/cebarrett/Silents-Mechanisms/internal/item"
	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// Layout is a list of machines to place in a new world. Scenario files embed
// one; the CLI reads standalone layout files with the same shape.
type Layout struct {
	Machines []Machine `yaml:"machines"`
}

// LoadLayout reads a layout YAML file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	var l Layout
	if err := decodeStrict(data, &l); err != nil {
		return nil, err
	}
	if err := validateMachines(l.Machines); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &l, nil
}

type inventoried interface {
	Inventory() *inventory.Inventory
}

type burner interface {
	IsBurning() bool
}

// Place builds every machine into w.
func (l *Layout) Place(w *world.World, types *world.TileTypes, items *item.Registry) error {
	for i, m := range l.Machines {
		if err := placeMachine(w, types, items, m); err != nil {
			return fmt.Errorf("machine[%d] %s: %w", i, m.Kind, err)
		}
	}
	return nil
}

func placeMachine(w *world.World, types *world.TileTypes, items *item.Registry, m Machine) error {
	tt, ok := types.Lookup(m.Kind)
	if !ok {
		return fmt.Errorf("unknown machine kind")
	}
	pos := m.Pos.Pos()
	if _, exists := w.TileEntity(pos); exists {
		return fmt.Errorf("position %s already occupied", pos)
	}
	te, _ := w.PlaceNew(pos, tt)

	if len(m.State) > 0 {
		tags := nbt.NewCompound()
		for k, v := range m.State {
			tags.PutInt(k, v)
		}
		te.Load(tags)
	}

	if m.Fuel != nil {
		holder, ok := te.(inventoried)
		if !ok {
			return fmt.Errorf("machine has no inventory for fuel")
		}
		it, ok := items.Item(m.Fuel.Item)
		if !ok {
			return fmt.Errorf("unknown item %q", m.Fuel.Item)
		}
		count := m.Fuel.Count
		if count == 0 {
			count = 1
		}
		if err := loadFuel(te, holder.Inventory(), item.NewStack(it, count), m.Fuel.Side); err != nil {
			return err
		}
	}

	if b, ok := te.(burner); ok && b.IsBurning() {
		w.SetBlockState(pos, w.BlockState(pos).WithLit(true))
	}
	return nil
}

func loadFuel(te world.TileEntity, inv *inventory.Inventory, stack item.Stack, side string) error {
	if side == "" {
		inv.SetStack(0, stack)
		return nil
	}
	rules, ok := te.(inventory.SlotRules)
	if !ok {
		return fmt.Errorf("machine has no slot rules for side %s", side)
	}
	dir, ok := geom.ParseDirection(side)
	if !ok {
		return fmt.Errorf("unknown side %q", side)
	}
	if rest := inventory.Insert(inv, rules, dir, stack); !rest.IsEmpty() {
		return fmt.Errorf("%s rejected through %s", rest, side)
	}
	return nil
}
