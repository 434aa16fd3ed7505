package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
)

// tickCompound converts a trace entry into a record for canonical encoding.
// Booleans are stored as 0/1 ints.
func tickCompound(r TickRecord) nbt.Compound {
	machines := make(nbt.List, 0, len(r.Machines))
	for _, m := range r.Machines {
		c := nbt.NewCompound()
		c.PutString("kind", m.Kind)
		c.PutString("pos", m.Pos.String())
		c.PutInt("lit", boolInt(m.Lit))
		c.Put("state", m.State)
		machines = append(machines, c)
	}

	updated := make(nbt.List, 0, len(r.Updated))
	for _, p := range r.Updated {
		updated = append(updated, nbt.String(p.String()))
	}

	c := nbt.NewCompound()
	c.PutInt("tick", int(r.Tick))
	c.Put("machines", machines)
	c.Put("updated", updated)
	return c
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MarshalTrace renders a trace as one canonical JSON object per tick, one
// per line.
func MarshalTrace(trace []TickRecord) ([]byte, error) {
	var buf bytes.Buffer
	for _, r := range trace {
		line, err := nbt.Marshal(tickCompound(r))
		if err != nil {
			return nil, fmt.Errorf("tick %d: %w", r.Tick, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Assertion failures are reported through t; the returned error covers
// scenario setup and execution only.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	traceBytes, err := MarshalTrace(result.Trace)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, traceBytes)
	return nil
}
