// Package rules implements pure condition evaluation against world state.
// Every predicate is total and fail-closed: unknown identifiers read as
// absent, unknown condition kinds evaluate false, and nothing here mutates.
package rules

import (
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

// Eval evaluates a single condition. npcID supplies the conversation context
// for dialogue guards; pass "" outside a conversation.
func Eval(c types.Condition, s *types.WorldState, npcID string) bool {
	switch c := c.(type) {
	case types.FirstVisit:
		return c.Event != "" && !s.Triggered[c.Event]

	case types.FirstVisitAfterFlag:
		// Conjunction, not a separate mechanism: the flag must be present
		// AND hold the required value AND the visit id must be untriggered.
		// An absent flag fails even when the required value is false.
		if c.Event == "" || c.Flag == "" {
			return false
		}
		v, set := s.Flags[c.Flag]
		return set && v == c.Value && !s.Triggered[c.Event]

	case types.FlagEquals:
		return state.GetFlag(s, c.Flag) == c.Value

	case types.HasItem:
		return state.HasItem(s, c.Item) == c.Present

	case types.QuestCompleted:
		return s.QuestsCompleted[c.Quest] == c.Done

	case types.QuestActive:
		return s.QuestsActive[c.Quest] == c.Active

	case types.MinRecruits:
		return len(s.Party.Recruited) >= c.Count

	case types.MinGold:
		return s.Gold >= c.Amount

	case types.MinLevel:
		return s.Level >= c.Level

	case types.TimerComplete:
		return state.TimerComplete(s, c.Timer)

	case types.NodeDiscussed:
		if npcID == "" {
			return false
		}
		return state.NodeVisited(s, npcID, c.Node) == c.Discussed

	default:
		// Unknown kind — fail closed so one malformed definition cannot
		// abort the scan of a room's events.
		return false
	}
}

// EvalAll returns true if all conditions pass (AND with short circuit).
// An empty condition list is vacuously true.
func EvalAll(conditions []types.Condition, s *types.WorldState, npcID string) bool {
	for _, c := range conditions {
		if !Eval(c, s, npcID) {
			return false
		}
	}
	return true
}
