// Package nbt is the structured record used to persist and sync machine state.
//
// A Compound maps names to typed tags. Readers never fail on absent or
// mistyped keys; GetInt and friends fall back to the zero value so a damaged
// save silently restores defaults.
package nbt

import (
	"math"
	"slices"
	"unicode/utf16"
)

// Tag is one of Int, String, List or Compound.
type Tag interface {
	tag()
}

// Int is a 32-bit integer tag.
type Int int32

// String is a text tag.
type String string

// List is an ordered sequence of tags.
type List []Tag

// Compound is a set of named tags.
type Compound map[string]Tag

func (Int) tag()      {}
func (String) tag()   {}
func (List) tag()     {}
func (Compound) tag() {}

// NewCompound returns an empty compound.
func NewCompound() Compound {
	return Compound{}
}

// Put stores any tag under key.
func (c Compound) Put(key string, t Tag) {
	c[key] = t
}

// PutInt stores an Int tag, clamping v to the 32-bit range.
func (c Compound) PutInt(key string, v int) {
	c[key] = Int(int32(min(max(v, math.MinInt32), math.MaxInt32)))
}

// PutString stores a String tag.
func (c Compound) PutString(key string, v string) {
	c[key] = String(v)
}

// GetInt returns the Int under key, or 0 if it is missing or not an Int.
func (c Compound) GetInt(key string) int {
	if v, ok := c[key].(Int); ok {
		return int(v)
	}
	return 0
}

// GetString returns the String under key, or "".
func (c Compound) GetString(key string) string {
	if v, ok := c[key].(String); ok {
		return string(v)
	}
	return ""
}

// GetList returns the List under key, or nil.
func (c Compound) GetList(key string) List {
	if v, ok := c[key].(List); ok {
		return v
	}
	return nil
}

// GetCompound returns the Compound under key, or an empty compound.
func (c Compound) GetCompound(key string) Compound {
	if v, ok := c[key].(Compound); ok {
		return v
	}
	return Compound{}
}

// Contains reports whether key holds any tag.
func (c Compound) Contains(key string) bool {
	_, ok := c[key]
	return ok
}

// Merge copies every tag of other into c, replacing existing keys.
func (c Compound) Merge(other Compound) Compound {
	for k, v := range other {
		c[k] = v
	}
	return c
}

// SortedKeys returns keys ordered by UTF-16 code units, the canonical JSON order.
func (c Compound) SortedKeys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

func compareKeysUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
