// Package syncvar declares which machine fields are persisted and synced.
//
// Each machine lists its fields once as a Table of named accessors. Read and
// Write walk the table, so the save path and the client sync path cannot
// drift apart.
package syncvar

import "github.com/cebarrett/Silents-Mechanisms/internal/nbt"

// Type selects the path a field travels on.
type Type uint8

const (
	// Write fields are stored in the world save.
	Write Type = 1 << iota
	// Packet fields are sent to observing clients.
	Packet

	// Both is the common case.
	Both = Write | Packet
)

// Var is one integer field with its serialization key.
type Var struct {
	Name    string
	Get     func() int
	Set     func(int)
	Types   Type
	// Present, when set, gates writes. A field whose backing state is
	// absent is left out of the record.
	Present func() bool
}

// Table is an ordered list of fields.
type Table []Var

// Int declares a field synced on both paths.
func Int(name string, get func() int, set func(int)) Var {
	return Var{Name: name, Get: get, Set: set, Types: Both}
}

// If returns v written only while present reports true.
func (v Var) If(present func() bool) Var {
	v.Present = present
	return v
}

// Write stores every field whose Types include t into tags and returns tags.
func (tbl Table) Write(tags nbt.Compound, t Type) nbt.Compound {
	if tags == nil {
		tags = nbt.NewCompound()
	}
	for _, v := range tbl {
		if v.Types&t == 0 || v.Get == nil {
			continue
		}
		if v.Present != nil && !v.Present() {
			continue
		}
		tags.PutInt(v.Name, v.Get())
	}
	return tags
}

// Read restores every field from tags. Absent or mistyped keys read as 0.
func (tbl Table) Read(tags nbt.Compound) {
	for _, v := range tbl {
		if v.Set == nil {
			continue
		}
		v.Set(tags.GetInt(v.Name))
	}
}

// Lookup returns the field named name.
func (tbl Table) Lookup(name string) (Var, bool) {
	for _, v := range tbl {
		if v.Name == name {
			return v, true
		}
	}
	return Var{}, false
}

// Names lists field names in declaration order.
func (tbl Table) Names() []string {
	names := make([]string, len(tbl))
	for i, v := range tbl {
		names[i] = v.Name
	}
	return names
}
