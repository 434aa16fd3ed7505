package item

import (
	"fmt"
	"sort"
)

// Well-known item IDs.
const (
	Bucket      = "minecraft:bucket"
	LavaBucket  = "minecraft:lava_bucket"
	Coal        = "minecraft:coal"
	Charcoal    = "minecraft:charcoal"
	CoalBlock   = "minecraft:coal_block"
	Stick       = "minecraft:stick"
	Cobblestone = "minecraft:cobblestone"
)

// BurnTimeHook may replace the burn time computed for a stack.
// It receives the value computed so far and returns the value to use.
type BurnTimeHook func(stack Stack, burnTime int) int

// Registry holds item types and the furnace burn table.
type Registry struct {
	items     map[string]*Item
	burnTimes map[*Item]int
	hooks     []BurnTimeHook
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items:     make(map[string]*Item),
		burnTimes: make(map[*Item]int),
	}
}

// Register adds an item type. IDs must be unique.
func (r *Registry) Register(it *Item) error {
	if it == nil || it.ID == "" {
		return fmt.Errorf("register item: empty id")
	}
	if _, exists := r.items[it.ID]; exists {
		return fmt.Errorf("register item: duplicate id %q", it.ID)
	}
	if it.MaxStack <= 0 {
		it.MaxStack = 64
	}
	r.items[it.ID] = it
	return nil
}

// Item looks up an item type by ID.
func (r *Registry) Item(id string) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// MustItem is Item for IDs known to be registered.
func (r *Registry) MustItem(id string) *Item {
	it, ok := r.items[id]
	if !ok {
		panic(fmt.Sprintf("item %q not registered", id))
	}
	return it
}

// IDs returns registered IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetFurnaceBurnTime records the furnace table value for an item.
func (r *Registry) SetFurnaceBurnTime(it *Item, ticks int) {
	r.burnTimes[it] = ticks
}

// AddBurnTimeHook appends a hook consulted by BurnTime, in registration order.
func (r *Registry) AddBurnTimeHook(h BurnTimeHook) {
	r.hooks = append(r.hooks, h)
}

// IsFuel reports whether the stack's item appears in the furnace table.
func (r *Registry) IsFuel(stack Stack) bool {
	if stack.IsEmpty() {
		return false
	}
	_, ok := r.burnTimes[stack.Item]
	return ok
}

// BurnTime is the number of ticks one unit of the stack burns for.
// Empty stacks burn for 0. An item's own BurnTime wins over the furnace
// table; hooks run last and may replace either.
func (r *Registry) BurnTime(stack Stack) int {
	if stack.IsEmpty() {
		return 0
	}
	ticks := stack.Item.BurnTime
	if ticks == DefaultBurnTime {
		ticks = r.burnTimes[stack.Item]
	}
	for _, h := range r.hooks {
		ticks = h(stack, ticks)
	}
	return max(ticks, 0)
}
