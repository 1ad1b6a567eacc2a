// Package trigger implements room-entry event scanning and dispatch.
package trigger

import (
	"sort"

	"github.com/tmarren/lorebound/engine/actions"
	"github.com/tmarren/lorebound/engine/rules"
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

// Scan returns the single event that should fire for entering roomID, or nil.
// Selection: drop exhausted one-shots, drop events whose conditions fail,
// then take the highest priority. Equal priorities resolve to the event
// defined first — authored-order-dependent, never re-sorted by id.
// No survivor is the normal case and is silent.
func Scan(s *types.WorldState, defs *state.Defs, roomID string) *types.EventDef {
	var candidates []types.EventDef
	for _, ev := range defs.Events {
		if ev.Room != roomID {
			continue
		}
		if ev.OneShot && s.Triggered[ev.ID] {
			continue
		}
		if !rules.EvalAll(ev.Conditions, s, "") {
			continue
		}
		candidates = append(candidates, ev)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].SourceOrder < candidates[j].SourceOrder
	})

	return &candidates[0]
}

// Fire executes the event's actions and returns the emitted events and
// output. A one-shot id is recorded before the actions run, so re-entry
// during a dialogue the event starts cannot re-trigger it.
func Fire(ev *types.EventDef, s *types.WorldState) ([]types.Event, []string) {
	if ev.OneShot {
		s.Triggered[ev.ID] = true
	}
	return actions.Apply(s, ev.Actions)
}
