package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	bucket := &Item{ID: Bucket, MaxStack: 16, BurnTime: DefaultBurnTime}
	require.NoError(t, r.Register(bucket))
	require.NoError(t, r.Register(&Item{ID: LavaBucket, MaxStack: 1, BurnTime: DefaultBurnTime, Container: bucket}))
	require.NoError(t, r.Register(&Item{ID: Coal, BurnTime: DefaultBurnTime}))
	require.NoError(t, r.Register(&Item{ID: Stick, BurnTime: 50}))
	require.NoError(t, r.Register(&Item{ID: Cobblestone, BurnTime: DefaultBurnTime}))
	r.SetFurnaceBurnTime(r.MustItem(Coal), 1600)
	r.SetFurnaceBurnTime(r.MustItem(LavaBucket), 20000)
	r.SetFurnaceBurnTime(r.MustItem(Stick), 100)
	return r
}

func TestStack_Shrink(t *testing.T) {
	coal := &Item{ID: Coal}
	s := NewStack(coal, 2)

	s = s.Shrink(1)
	assert.Equal(t, 1, s.Count)
	s = s.Shrink(1)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, Empty, s)
	assert.Equal(t, Empty, Empty.Shrink(1))
}

func TestStack_ContainerItem(t *testing.T) {
	bucket := &Item{ID: Bucket}
	lava := NewStack(&Item{ID: LavaBucket, Container: bucket}, 1)

	assert.True(t, lava.HasContainerItem())
	assert.True(t, lava.ContainerItem().Is(bucket))
	assert.False(t, NewStack(&Item{ID: Coal}, 1).HasContainerItem())
	assert.Equal(t, Empty, NewStack(&Item{ID: Coal}, 1).ContainerItem())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Item{ID: Coal}))
	assert.Error(t, r.Register(&Item{ID: Coal}))
	assert.Error(t, r.Register(&Item{}))

	it, ok := r.Item(Coal)
	require.True(t, ok)
	assert.Equal(t, 64, it.MaxStack)
	assert.Panics(t, func() { r.MustItem("minecraft:missing") })
}

func TestRegistry_IsFuel(t *testing.T) {
	r := newTestRegistry(t)

	assert.True(t, r.IsFuel(NewStack(r.MustItem(Coal), 1)))
	assert.True(t, r.IsFuel(NewStack(r.MustItem(LavaBucket), 1)))
	assert.False(t, r.IsFuel(NewStack(r.MustItem(Cobblestone), 1)))
	assert.False(t, r.IsFuel(NewStack(r.MustItem(Bucket), 1)))
	assert.False(t, r.IsFuel(Empty))
}

func TestRegistry_BurnTime(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, 1600, r.BurnTime(NewStack(r.MustItem(Coal), 5)))
	assert.Equal(t, 20000, r.BurnTime(NewStack(r.MustItem(LavaBucket), 1)))
	assert.Equal(t, 50, r.BurnTime(NewStack(r.MustItem(Stick), 1)), "item override wins over table")
	assert.Equal(t, 0, r.BurnTime(NewStack(r.MustItem(Cobblestone), 1)))
	assert.Equal(t, 0, r.BurnTime(Empty))
}

func TestRegistry_BurnTimeHooks(t *testing.T) {
	r := newTestRegistry(t)
	coal := r.MustItem(Coal)

	r.AddBurnTimeHook(func(s Stack, ticks int) int {
		if s.Is(coal) {
			return ticks * 2
		}
		return ticks
	})
	r.AddBurnTimeHook(func(s Stack, ticks int) int {
		if s.Item.ID == Stick {
			return -10
		}
		return ticks
	})

	assert.Equal(t, 3200, r.BurnTime(NewStack(coal, 1)))
	assert.Equal(t, 0, r.BurnTime(NewStack(r.MustItem(Stick), 1)), "negative hook result clamps to 0")
	assert.Equal(t, 0, r.BurnTime(Empty), "hooks never see empty stacks")
}
