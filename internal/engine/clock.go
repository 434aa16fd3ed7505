package engine

import "sync/atomic"

// Clock counts world ticks. The tick number is the only notion of time in
// the simulation; wall-clock time never decides ordering.
//
// Clock is safe for concurrent use so that observers may read Current while
// the engine loop calls Next.
type Clock struct {
	tick atomic.Int64
}

// NewClock creates a clock at tick 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock at a saved tick, used when resuming a world.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.tick.Store(start)
	return c
}

// Next advances the clock and returns the tick about to run.
func (c *Clock) Next() int64 {
	return c.tick.Add(1)
}

// Current returns the last tick handed out by Next.
func (c *Clock) Current() int64 {
	return c.tick.Load()
}
