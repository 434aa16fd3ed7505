// Package config loads machine and item configuration from CUE files.
//
// A user file is unified with the embedded #Config schema, so every field
// it omits takes the stock value and unknown fields are rejected.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/cebarrett/Silents-Mechanisms/internal/battery"
	"github.com/cebarrett/Silents-Mechanisms/internal/generator"
	"github.com/cebarrett/Silents-Mechanisms/internal/item"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
)

//go:embed schema.cue
var schemaCUE string

// Engine holds tick loop settings.
type Engine struct {
	SaveEvery int64 `json:"saveEvery"`
}

// Item describes one item type.
type Item struct {
	MaxStack  int    `json:"maxStack"`
	BurnTime  int    `json:"burnTime"`
	Container string `json:"container,omitempty"`
}

// Config is a fully resolved configuration.
type Config struct {
	Generator generator.Config `json:"generator"`
	Battery   battery.Config   `json:"battery"`
	Engine    Engine           `json:"engine"`
	Items     map[string]Item  `json:"items"`
	Furnace   map[string]int   `json:"furnace"`
}

// Error is a configuration that failed to parse, unify or validate.
type Error struct {
	File    string
	Message string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("config %s: %s", e.File, e.Message)
	}
	return "config: " + e.Message
}

// Default returns the stock configuration.
func Default() (*Config, error) {
	return Parse(nil, "")
}

// Load reads and resolves a CUE file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Message: err.Error()}
	}
	return Parse(data, path)
}

// Parse resolves CUE source against the schema. Empty data yields defaults.
func Parse(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &Error{File: "schema.cue", Message: cueerrors.Details(err, nil)}
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileString("{}")
	if len(data) > 0 {
		user = ctx.CompileBytes(data, cue.Filename(filename))
		if err := user.Err(); err != nil {
			return nil, &Error{File: filename, Message: cueerrors.Details(err, nil)}
		}
	}

	v := def.Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{File: filename, Message: cueerrors.Details(err, nil)}
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, &Error{File: filename, Message: cueerrors.Details(err, nil)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &Error{File: filename, Message: err.Error()}
	}
	return &cfg, nil
}

// Validate checks cross-field rules the schema cannot express.
func (c *Config) Validate() error {
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if err := c.Battery.Validate(); err != nil {
		return fmt.Errorf("battery: %w", err)
	}
	if c.Engine.SaveEvery < 0 {
		return fmt.Errorf("engine: saveEvery must not be negative, got %d", c.Engine.SaveEvery)
	}
	for _, id := range sortedKeys(c.Items) {
		def := c.Items[id]
		if def.Container == "" {
			continue
		}
		if def.Container == id {
			return fmt.Errorf("item %s: container cannot be itself", id)
		}
		if _, ok := c.Items[def.Container]; !ok {
			return fmt.Errorf("item %s: unknown container %s", id, def.Container)
		}
	}
	for _, id := range sortedKeys(c.Furnace) {
		if _, ok := c.Items[id]; !ok {
			return fmt.Errorf("furnace: unknown item %s", id)
		}
	}
	return nil
}

// Registry builds the item registry and furnace table.
func (c *Config) Registry() (*item.Registry, error) {
	ids := sortedKeys(c.Items)
	built := make(map[string]*item.Item, len(ids))
	for _, id := range ids {
		def := c.Items[id]
		built[id] = &item.Item{ID: id, MaxStack: def.MaxStack, BurnTime: def.BurnTime}
	}

	reg := item.NewRegistry()
	for _, id := range ids {
		it := built[id]
		if container := c.Items[id].Container; container != "" {
			it.Container = built[container]
		}
		if err := reg.Register(it); err != nil {
			return nil, err
		}
	}
	for _, id := range sortedKeys(c.Furnace) {
		it, ok := built[id]
		if !ok {
			return nil, fmt.Errorf("furnace: unknown item %s", id)
		}
		reg.SetFurnaceBurnTime(it, c.Furnace[id])
	}
	return reg, nil
}

// TileTypes builds the registry of every machine kind, wired to items.
func (c *Config) TileTypes(items *item.Registry, opts ...generator.Option) (*world.TileTypes, error) {
	types := world.NewTileTypes()
	if err := types.Register(generator.TileType(c.Generator, items, opts...)); err != nil {
		return nil, err
	}
	if err := types.Register(battery.TileType(c.Battery)); err != nil {
		return nil, err
	}
	return types, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
