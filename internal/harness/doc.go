// Package harness runs machine scenarios end to end.
//
// A scenario places machines in a fresh world, ticks it through the engine
// with a client mirror attached, records a per-tick trace, and evaluates
// assertions against the trace and the final state of both worlds.
//
// # Scenario Format
//
//	name: coal_startup
//	description: "Coal starts a burn without generating on the first tick"
//	config: ../configs/fast.cue   # optional, relative to the scenario file
//	ticks: 3
//	machines:
//	  - kind: coal_generator
//	    pos: [0, 0, 0]
//	    state: { Energy: 0 }
//	    fuel: { item: "minecraft:coal", count: 2 }
//	  - kind: battery_box
//	    pos: [0, 0, 1]
//	assertions:
//	  - type: machine_state
//	    pos: [0, 0, 0]
//	    tick: 1
//	    expect: { BurnTime: 1600, Energy: 0 }
//	  - type: slot
//	    pos: [0, 0, 0]
//	    item: "minecraft:coal"
//	    count: 1
//	  - type: lit
//	    pos: [0, 0, 0]
//	    lit: true
//	  - type: mirror_state
//	    pos: [0, 0, 0]
//	    expect: { BurnTime: 1598 }
//
// State keys are the machine's sync record keys. A tick of 0 (or omitted)
// means the state after the last tick.
package harness
