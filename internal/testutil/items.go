// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/cebarrett/Silents-Mechanisms/internal/item"
)

// Furnace burn table used by fixtures.
const (
	CoalBurnTime       = 1600
	LavaBucketBurnTime = 20000
	StickBurnTime      = 100
)

// Items returns a registry with coal, charcoal, sticks, lava and empty
// buckets, and cobblestone (not fuel).
func Items(t testing.TB) *item.Registry {
	t.Helper()
	reg := item.NewRegistry()
	bucket := &item.Item{ID: item.Bucket, MaxStack: 16, BurnTime: item.DefaultBurnTime}
	items := []*item.Item{
		bucket,
		{ID: item.LavaBucket, MaxStack: 1, BurnTime: item.DefaultBurnTime, Container: bucket},
		{ID: item.Coal, MaxStack: 64, BurnTime: item.DefaultBurnTime},
		{ID: item.Charcoal, MaxStack: 64, BurnTime: item.DefaultBurnTime},
		{ID: item.Stick, MaxStack: 64, BurnTime: item.DefaultBurnTime},
		{ID: item.Cobblestone, MaxStack: 64, BurnTime: item.DefaultBurnTime},
	}
	for _, it := range items {
		if err := reg.Register(it); err != nil {
			t.Fatalf("register %s: %v", it.ID, err)
		}
	}
	reg.SetFurnaceBurnTime(reg.MustItem(item.Coal), CoalBurnTime)
	reg.SetFurnaceBurnTime(reg.MustItem(item.Charcoal), CoalBurnTime)
	reg.SetFurnaceBurnTime(reg.MustItem(item.Stick), StickBurnTime)
	reg.SetFurnaceBurnTime(reg.MustItem(item.LavaBucket), LavaBucketBurnTime)
	return reg
}

// Stack returns count units of the registered item id.
func Stack(t testing.TB, reg *item.Registry, id string, count int) item.Stack {
	t.Helper()
	it, ok := reg.Item(id)
	if !ok {
		t.Fatalf("item %q not registered", id)
	}
	return item.NewStack(it, count)
}
