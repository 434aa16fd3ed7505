package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// Coord is a block position written as [x, y, z].
type Coord [3]int

// Pos converts to a world position.
func (c Coord) Pos() geom.Pos {
	return geom.Pos{X: c[0], Y: c[1], Z: c[2]}
}

// Scenario defines one machine scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is an optional CUE configuration file. Relative paths are
	// resolved against the scenario file's directory by LoadScenario.
	Config string `yaml:"config,omitempty"`

	// Ticks is the number of world ticks to run.
	Ticks int `yaml:"ticks"`

	// Machines is the initial layout.
	Machines []Machine `yaml:"machines"`

	// Assertions validate the trace and the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Machine places one tile entity.
type Machine struct {
	Kind string `yaml:"kind"`
	Pos  Coord  `yaml:"pos"`

	// State is loaded into the tile as its save record before ticking.
	State map[string]int `yaml:"state,omitempty"`

	// Fuel fills slot 0 of machines with an inventory.
	Fuel *Fuel `yaml:"fuel,omitempty"`
}

// Fuel is an item stack in a layout.
type Fuel struct {
	Item  string `yaml:"item"`
	Count int    `yaml:"count,omitempty"`
	// Side, when set, feeds the stack through that face the way a hopper
	// would, so the machine's slot rules apply. Otherwise slot 0 is set
	// directly.
	Side  string `yaml:"side,omitempty"`
}

// Assertion validates trace or final state.
type Assertion struct {
	// Type is one of machine_state, mirror_state, slot or lit.
	Type string `yaml:"type"`

	// Pos is the machine under test.
	Pos Coord `yaml:"pos"`

	// Tick selects a trace entry. Zero means after the last tick.
	Tick int64 `yaml:"tick,omitempty"`

	// Expect holds state values (machine_state, mirror_state). Subset match.
	Expect map[string]int `yaml:"expect,omitempty"`

	// Slot, Item and Count describe an inventory slot (slot). An empty Item
	// expects an empty slot.
	Slot  int    `yaml:"slot,omitempty"`
	Item  string `yaml:"item,omitempty"`
	Count int    `yaml:"count,omitempty"`

	// Lit is the expected block lit property (lit).
	Lit *bool `yaml:"lit,omitempty"`
}

// Assertion type constants.
const (
	AssertMachineState = "machine_state"
	AssertMirrorState  = "mirror_state"
	AssertSlot         = "slot"
	AssertLit          = "lit"
)

// LoadScenario reads, parses and validates a scenario YAML file.
// Unknown fields are rejected so that typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) {
		scenario.Config = filepath.Join(filepath.Dir(path), scenario.Config)
	}
	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := decodeStrict(data, &scenario); err != nil {
		return nil, err
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", s.Ticks)
	}
	if err := validateMachines(s.Machines); err != nil {
		return err
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a, int64(s.Ticks)); err != nil {
			return fmt.Errorf("assertion[%d]: %w", i, err)
		}
	}
	return nil
}

func validateMachines(machines []Machine) error {
	if len(machines) == 0 {
		return fmt.Errorf("machines list is required and must be non-empty")
	}
	seen := make(map[Coord]bool, len(machines))
	for i, m := range machines {
		if m.Kind == "" {
			return fmt.Errorf("machine[%d]: kind is required", i)
		}
		if seen[m.Pos] {
			return fmt.Errorf("machine[%d]: position %v already occupied", i, m.Pos)
		}
		seen[m.Pos] = true
		if m.Fuel != nil {
			if m.Fuel.Item == "" {
				return fmt.Errorf("machine[%d]: fuel item is required", i)
			}
			if m.Fuel.Count < 0 {
				return fmt.Errorf("machine[%d]: fuel count must not be negative", i)
			}
			if _, ok := geom.ParseDirection(m.Fuel.Side); m.Fuel.Side != "" && !ok {
				return fmt.Errorf("machine[%d]: unknown fuel side %q", i, m.Fuel.Side)
			}
		}
	}
	return nil
}

func validateAssertion(a Assertion, ticks int64) error {
	if a.Tick < 0 || a.Tick > ticks {
		return fmt.Errorf("tick %d outside 0..%d", a.Tick, ticks)
	}
	switch a.Type {
	case AssertMachineState:
		if len(a.Expect) == 0 {
			return fmt.Errorf("%s requires expect", a.Type)
		}
	case AssertMirrorState:
		if len(a.Expect) == 0 {
			return fmt.Errorf("%s requires expect", a.Type)
		}
		if a.Tick != 0 {
			return fmt.Errorf("%s only checks the final state", a.Type)
		}
	case AssertSlot:
		if a.Tick != 0 {
			return fmt.Errorf("%s only checks the final state", a.Type)
		}
	case AssertLit:
		if a.Lit == nil {
			return fmt.Errorf("%s requires lit", a.Type)
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
