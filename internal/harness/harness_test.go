package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioFiles(t *testing.T) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}

func TestRun_Scenarios(t *testing.T) {
	for _, path := range scenarioFiles(t) {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, scenario.Ticks)
		})
	}
}

func TestRunWithGolden_BurnOut(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "burn_out.yaml"))
	require.NoError(t, err)

	require.NoError(t, RunWithGolden(t, scenario))
}

func TestRun_TraceIsDeterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "coal_startup.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalTrace(first.Trace)
	require.NoError(t, err)
	b, err := MarshalTrace(second.Trace)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_FailingAssertionsAreReported(t *testing.T) {
	lit := true
	scenario := &Scenario{
		Name:        "wrong_expectations",
		Description: "every assertion is wrong",
		Ticks:       1,
		Machines: []Machine{
			{Kind: "coal_generator", Pos: Coord{0, 0, 0}, Fuel: &Fuel{Item: "minecraft:stick"}},
		},
		Assertions: []Assertion{
			{Type: AssertMachineState, Pos: Coord{0, 0, 0}, Expect: map[string]int{"BurnTime": 5, "Missing": 1}},
			{Type: AssertLit, Pos: Coord{0, 0, 0}, Lit: &lit, Tick: 1},
			{Type: AssertSlot, Pos: Coord{0, 0, 0}, Item: "minecraft:stick"},
			{Type: AssertMirrorState, Pos: Coord{9, 9, 9}, Expect: map[string]int{"Energy": 0}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3, "lit holds; the other three fail: %v", result.Errors)
	assert.Contains(t, result.Errors[0], "BurnTime=5")
	assert.Contains(t, result.Errors[0], "Missing missing")
	assert.Contains(t, result.Errors[1], "empty slot")
	assert.Contains(t, result.Errors[2], "no mirrored machine")
}

func TestRun_UnknownKind(t *testing.T) {
	scenario := &Scenario{
		Name:        "unknown",
		Description: "furnace is not a machine here",
		Machines:    []Machine{{Kind: "furnace"}},
	}
	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown machine kind")
}

func TestRun_UnknownFuel(t *testing.T) {
	scenario := &Scenario{
		Name:        "unknown_fuel",
		Description: "fuel not registered",
		Machines:    []Machine{{Kind: "coal_generator", Fuel: &Fuel{Item: "mod:uranium"}}},
	}
	_, err := Run(scenario)
	assert.Error(t, err)
}

func TestRun_FuelOnMachineWithoutInventory(t *testing.T) {
	scenario := &Scenario{
		Name:        "battery_fuel",
		Description: "batteries have no slots",
		Machines:    []Machine{{Kind: "battery_box", Fuel: &Fuel{Item: "minecraft:coal"}}},
	}
	_, err := Run(scenario)
	assert.Error(t, err)
}

func TestRun_FuelThroughSideHonorsSlotRules(t *testing.T) {
	scenario := &Scenario{
		Name:        "hopper_rejects",
		Description: "cobblestone is not fuel",
		Machines: []Machine{{
			Kind: "coal_generator",
			Fuel: &Fuel{Item: "minecraft:cobblestone", Count: 4, Side: "north"},
		}},
	}
	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4x minecraft:cobblestone rejected through north")
}

func TestMarshalTrace_Empty(t *testing.T) {
	out, err := MarshalTrace(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
machines:
  - kind: coal_generator
    pos: [1, 2, 3]
    fuel: { item: "minecraft:coal", count: 8 }
  - kind: battery_box
    pos: [1, 2, 4]
`), 0o644))

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	require.Len(t, layout.Machines, 2)
	assert.Equal(t, Coord{1, 2, 3}, layout.Machines[0].Pos)
	assert.Equal(t, 8, layout.Machines[0].Fuel.Count)
}

func TestLoadLayout_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field":  "machines:\n  - kind: battery_box\n    position: [0, 0, 0]\n",
		"short pos":      "machines:\n  - kind: battery_box\n    pos: [0, 0]\n",
		"empty":          "machines: []\n",
		"duplicate pos":  "machines:\n  - kind: battery_box\n  - kind: battery_box\n",
		"fuel item":      "machines:\n  - kind: coal_generator\n    fuel: { count: 1 }\n",
		"negative count": "machines:\n  - kind: coal_generator\n    fuel: { item: x, count: -1 }\n",
		"fuel side":      "machines:\n  - kind: coal_generator\n    fuel: { item: x, side: sideways }\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "layout.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := LoadLayout(path)
			assert.Error(t, err)
		})
	}
}
