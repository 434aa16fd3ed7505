// Package item defines item types, stacks, and the fuel registry.
package item

import "fmt"

// DefaultBurnTime marks an item that defers to the furnace burn table.
const DefaultBurnTime = -1

// Item is an immutable item type.
type Item struct {
	ID       string
	MaxStack int
	// BurnTime overrides the furnace table when not DefaultBurnTime.
	BurnTime int
	// Container is left behind when one unit is consumed (bucket for lava).
	Container *Item
}

func (it *Item) String() string {
	if it == nil {
		return "air"
	}
	return it.ID
}

// Stack is a count of one item type. The zero Stack is empty.
type Stack struct {
	Item  *Item
	Count int
}

// Empty is the canonical empty stack.
var Empty = Stack{}

// NewStack returns count units of it.
func NewStack(it *Item, count int) Stack {
	if it == nil || count <= 0 {
		return Empty
	}
	return Stack{Item: it, Count: count}
}

// IsEmpty reports whether the stack holds nothing.
func (s Stack) IsEmpty() bool {
	return s.Item == nil || s.Count <= 0
}

// Shrink removes n units, collapsing to Empty when exhausted.
func (s Stack) Shrink(n int) Stack {
	if s.IsEmpty() {
		return Empty
	}
	return NewStack(s.Item, s.Count-n)
}

// HasContainerItem reports whether consuming this item leaves a container.
func (s Stack) HasContainerItem() bool {
	return !s.IsEmpty() && s.Item.Container != nil
}

// ContainerItem returns a single container stack, or Empty.
func (s Stack) ContainerItem() Stack {
	if !s.HasContainerItem() {
		return Empty
	}
	return NewStack(s.Item.Container, 1)
}

// Is reports whether the stack holds it.
func (s Stack) Is(it *Item) bool {
	return !s.IsEmpty() && s.Item == it
}

func (s Stack) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%dx %s", s.Count, s.Item.ID)
}
