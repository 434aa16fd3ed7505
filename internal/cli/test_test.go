package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: stick_burn
description: "A stick burns for 100 ticks"
ticks: 2
machines:
  - kind: coal_generator
    pos: [0, 0, 0]
    fuel: { item: "minecraft:stick" }
assertions:
  - type: machine_state
    pos: [0, 0, 0]
    expect: { BurnTime: 99, Energy: 25 }
`

const failingScenario = `
name: wrong_energy
description: "Expects energy on the start tick"
ticks: 1
machines:
  - kind: coal_generator
    pos: [0, 0, 0]
    fuel: { item: "minecraft:stick" }
assertions:
  - type: machine_state
    pos: [0, 0, 0]
    expect: { Energy: 25 }
`

func TestTest_MissingDirectory(t *testing.T) {
	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTest_NoScenarios(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTest_PassAndFail(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stick_burn.yaml", passingScenario)
	writeFile(t, dir, "wrong_energy.yaml", failingScenario)

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✓ stick_burn")
	assert.Contains(t, out, "✗ wrong_energy")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTest_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stick_burn.yaml", passingScenario)
	writeFile(t, dir, "wrong_energy.yaml", failingScenario)

	out, _, err := execute(t, "test", dir, "--filter", "stick_*", "--format", "json")
	require.NoError(t, err)
	resp, result := decodeResponse[TestResult](t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "stick_burn", result.Scenarios[0].Name)
	assert.Equal(t, "none", result.Scenarios[0].Golden)
}

func TestTest_GoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stick_burn.yaml", passingScenario)

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	golden := filepath.Join(dir, "golden", "stick_burn.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tick":2`)

	out, _, err = execute(t, "test", dir, "--format", "json")
	require.NoError(t, err)
	_, result := decodeResponse[TestResult](t, out)
	assert.Equal(t, "match", result.Scenarios[0].Golden)

	require.NoError(t, os.WriteFile(golden, []byte("stale\n"), 0o644))
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestTest_HarnessScenarios(t *testing.T) {
	scenarios := filepath.Join("..", "harness", "testdata", "scenarios")
	golden := filepath.Join("..", "harness", "testdata", "golden")

	out, _, err := execute(t, "test", scenarios, "--golden-dir", golden, "--format", "json")
	require.NoError(t, err, out)
	_, result := decodeResponse[TestResult](t, out)
	assert.Zero(t, result.Failed)
	assert.Equal(t, result.Total, result.Passed)

	for _, s := range result.Scenarios {
		if s.Name == "burn_out" {
			assert.Equal(t, "match", s.Golden)
		}
	}
}

func TestTest_InvalidScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yml", "name: broken\n")

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yml")
	assert.Contains(t, out, "failed to load scenario")
}
