// Package inventory provides fixed-size slot containers with sided access rules.
package inventory

import (
	"github.com/cebarrett/Silents-Mechanisms/internal/item"
	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// Inventory is an ordered set of slots.
type Inventory struct {
	slots []item.Stack
}

// New returns an inventory with size empty slots.
func New(size int) *Inventory {
	return &Inventory{slots: make([]item.Stack, size)}
}

// Size returns the number of slots.
func (inv *Inventory) Size() int { return len(inv.slots) }

// Stack returns the contents of slot i, or Empty when i is out of range.
func (inv *Inventory) Stack(i int) item.Stack {
	if i < 0 || i >= len(inv.slots) {
		return item.Empty
	}
	return inv.slots[i]
}

// SetStack replaces slot i, trimming the count to the item's max stack size.
func (inv *Inventory) SetStack(i int, s item.Stack) {
	if i < 0 || i >= len(inv.slots) {
		return
	}
	if s.IsEmpty() {
		inv.slots[i] = item.Empty
		return
	}
	if s.Item.MaxStack > 0 && s.Count > s.Item.MaxStack {
		s.Count = s.Item.MaxStack
	}
	inv.slots[i] = s
}

// IsEmpty reports whether every slot is empty.
func (inv *Inventory) IsEmpty() bool {
	for _, s := range inv.slots {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Clear empties every slot.
func (inv *Inventory) Clear() {
	for i := range inv.slots {
		inv.slots[i] = item.Empty
	}
}

// Save writes non-empty slots to tags as an "Items" list.
func (inv *Inventory) Save(tags nbt.Compound) nbt.Compound {
	list := nbt.List{}
	for i, s := range inv.slots {
		if s.IsEmpty() {
			continue
		}
		entry := nbt.NewCompound()
		entry.PutInt("Slot", i)
		entry.PutString("id", s.Item.ID)
		entry.PutInt("Count", s.Count)
		list = append(list, entry)
	}
	tags.Put("Items", list)
	return tags
}

// Load replaces the contents from an "Items" list. Entries naming unknown
// items or slots outside the inventory are dropped.
func (inv *Inventory) Load(tags nbt.Compound, reg *item.Registry) {
	inv.Clear()
	for _, t := range tags.GetList("Items") {
		entry, ok := t.(nbt.Compound)
		if !ok {
			continue
		}
		it, ok := reg.Item(entry.GetString("id"))
		if !ok {
			continue
		}
		inv.SetStack(entry.GetInt("Slot"), item.NewStack(it, entry.GetInt("Count")))
	}
}

// SlotRules restricts automated access from each face.
type SlotRules interface {
	SlotsForFace(side geom.Direction) []int
	CanInsert(slot int, stack item.Stack, side geom.Direction) bool
	CanExtract(slot int, stack item.Stack, side geom.Direction) bool
}

// Insert offers stack through side and returns what did not fit.
func Insert(inv *Inventory, rules SlotRules, side geom.Direction, stack item.Stack) item.Stack {
	for _, slot := range rules.SlotsForFace(side) {
		if stack.IsEmpty() {
			break
		}
		if !rules.CanInsert(slot, stack, side) {
			continue
		}
		cur := inv.Stack(slot)
		if !cur.IsEmpty() && cur.Item != stack.Item {
			continue
		}
		limit := stack.Item.MaxStack
		moved := min(stack.Count, limit-cur.Count)
		if moved <= 0 {
			continue
		}
		inv.SetStack(slot, item.NewStack(stack.Item, cur.Count+moved))
		stack = stack.Shrink(moved)
	}
	return stack
}

// Extract pulls up to n units through side from the first permitted slot.
func Extract(inv *Inventory, rules SlotRules, side geom.Direction, n int) item.Stack {
	for _, slot := range rules.SlotsForFace(side) {
		cur := inv.Stack(slot)
		if cur.IsEmpty() || !rules.CanExtract(slot, cur, side) {
			continue
		}
		taken := min(n, cur.Count)
		if taken <= 0 {
			return item.Empty
		}
		inv.SetStack(slot, cur.Shrink(taken))
		return item.NewStack(cur.Item, taken)
	}
	return item.Empty
}
