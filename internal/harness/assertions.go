package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Pos      geom.Pos
	Tick     int64
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s at %s", e.Type, e.Pos)
	if e.Tick > 0 {
		fmt.Fprintf(&buf, " (tick %d)", e.Tick)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertMachineState:
			err = assertMachineState(result, a)
		case AssertMirrorState:
			err = assertMirrorState(result, a)
		case AssertSlot:
			err = assertSlot(result, a)
		case AssertLit:
			err = assertLit(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertion[%d]: %v", i, err))
		}
	}
	return failures
}

// machineAt returns the recorded machine at a tick, or the live one when
// tick is 0.
func machineAt(result *Result, pos geom.Pos, tick int64) (MachineRecord, error) {
	if tick == 0 {
		p, ok := tileAt(result.server, pos)
		if !ok {
			return MachineRecord{}, fmt.Errorf("no machine at %s", pos)
		}
		return MachineRecord{
			Kind:  p.Kind(),
			Pos:   pos,
			Lit:   result.server.BlockState(pos).Lit,
			State: stateOf(p),
		}, nil
	}
	if tick > int64(len(result.Trace)) {
		return MachineRecord{}, fmt.Errorf("tick %d not in trace of %d ticks", tick, len(result.Trace))
	}
	for _, m := range result.Trace[tick-1].Machines {
		if m.Pos == pos {
			return m, nil
		}
	}
	return MachineRecord{}, fmt.Errorf("no machine at %s on tick %d", pos, tick)
}

func tileAt(w *world.World, pos geom.Pos) (world.TileEntity, bool) {
	if w == nil {
		return nil, false
	}
	return w.TileEntity(pos)
}

func assertMachineState(result *Result, a Assertion) error {
	m, err := machineAt(result, a.Pos.Pos(), a.Tick)
	if err != nil {
		return err
	}
	return compareState(a, m.State)
}

func assertMirrorState(result *Result, a Assertion) error {
	pos := a.Pos.Pos()
	te, ok := tileAt(result.mirror, pos)
	if !ok {
		return fmt.Errorf("no mirrored machine at %s", pos)
	}
	return compareState(a, stateOf(te))
}

func compareState(a Assertion, state nbt.Compound) error {
	keys := make([]string, 0, len(a.Expect))
	for k := range a.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var want, got []string
	for _, k := range keys {
		actual := state.GetInt(k)
		if !state.Contains(k) || actual != a.Expect[k] {
			want = append(want, fmt.Sprintf("%s=%d", k, a.Expect[k]))
			if state.Contains(k) {
				got = append(got, fmt.Sprintf("%s=%d", k, actual))
			} else {
				got = append(got, k+" missing")
			}
		}
	}
	if len(want) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Pos:      a.Pos.Pos(),
		Tick:     a.Tick,
		Expected: strings.Join(want, ", "),
		Actual:   strings.Join(got, ", "),
	}
}

func assertSlot(result *Result, a Assertion) error {
	pos := a.Pos.Pos()
	te, ok := tileAt(result.server, pos)
	if !ok {
		return fmt.Errorf("no machine at %s", pos)
	}
	holder, ok := te.(inventoried)
	if !ok {
		return fmt.Errorf("machine at %s has no inventory", pos)
	}
	inv := holder.Inventory()
	if a.Slot < 0 || a.Slot >= inv.Size() {
		return fmt.Errorf("slot %d out of range 0..%d", a.Slot, inv.Size()-1)
	}

	stack := inv.Stack(a.Slot)
	if a.Item == "" {
		if stack.IsEmpty() {
			return nil
		}
		return &AssertionError{Type: a.Type, Pos: pos, Expected: "empty slot", Actual: stack.String()}
	}

	count := a.Count
	if count == 0 {
		count = 1
	}
	if !stack.IsEmpty() && stack.Item.ID == a.Item && stack.Count == count {
		return nil
	}
	actual := "empty slot"
	if !stack.IsEmpty() {
		actual = stack.String()
	}
	return &AssertionError{
		Type:     a.Type,
		Pos:      pos,
		Expected: fmt.Sprintf("%d %s", count, a.Item),
		Actual:   actual,
	}
}

func assertLit(result *Result, a Assertion) error {
	m, err := machineAt(result, a.Pos.Pos(), a.Tick)
	if err != nil {
		return err
	}
	if m.Lit == *a.Lit {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Pos:      m.Pos,
		Tick:     a.Tick,
		Expected: fmt.Sprintf("lit=%t", *a.Lit),
		Actual:   fmt.Sprintf("lit=%t", m.Lit),
	}
}
