// Package generator implements the coal generator machine.
//
// Each tick on the authoritative side the generator runs three stages in
// order:
//
//  1. Burner: if burning, count down one tick and generate EnergyPerTick.
//     Otherwise, if the store has room and the fuel slot holds fuel, consume
//     one unit and start a new burn. The start tick neither counts down nor
//     generates.
//  2. Lit state: after any tick that burned or attempted to start a burn,
//     the block's lit property is refreshed and a client resync is queued.
//  3. Distributor: push up to MaxTransfer energy to adjacent receivers.
//
// A client mirror (Level.IsRemote) never ticks; it only receives state
// through OnDataPacket.
package generator
