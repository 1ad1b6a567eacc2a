// Package quests recomputes quest progress from flags. It is wired to the
// engine as a subscriber of the time-advanced event rather than called from
// action execution, keeping the core dependency graph acyclic.
package quests

import (
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

// Activate marks a quest active. Completed quests stay completed. Activation
// itself happens outside this core (hosts, loaded saves); completion is
// recomputed from flags either way.
func Activate(s *types.WorldState, questID string) {
	if questID == "" || s.QuestsCompleted[questID] {
		return
	}
	s.QuestsActive[questID] = true
}

// Recheck completes any quest whose required flags are all set, whether or
// not it was marked active; completion drops it from the active set.
// Idempotent; quests with no flags never auto-complete.
func Recheck(s *types.WorldState, defs *state.Defs) []string {
	var completed []string
	for id, q := range defs.Quests {
		if s.QuestsCompleted[id] || len(q.Flags) == 0 {
			continue
		}
		ok := true
		for _, f := range q.Flags {
			if !s.Flags[f] {
				ok = false
				break
			}
		}
		if ok {
			s.QuestsCompleted[id] = true
			delete(s.QuestsActive, id)
			completed = append(completed, id)
		}
	}
	return completed
}
