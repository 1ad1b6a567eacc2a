package state

import "github.com/tmarren/lorebound/types"

// Timers are deferred-completion markers on the in-game clock. They are
// never implicitly removed: dialogue branches poll the same timer repeatedly
// to distinguish "waiting" from "ready", so the complete check is idempotent.

// StartTimer starts (or restarts) a named timer at the current clock.
func StartTimer(s *types.WorldState, id string, durationHours float64) {
	if id == "" {
		return
	}
	s.Timers[id] = types.Timer{
		StartDay:  s.Day,
		StartHour: s.Hour,
		Duration:  durationHours,
	}
}

// TimerElapsed returns the in-game hours elapsed since the timer started,
// accounting for day rollover. Returns 0 for an unknown timer.
func TimerElapsed(s *types.WorldState, id string) float64 {
	t, ok := s.Timers[id]
	if !ok {
		return 0
	}
	return float64(s.Day-t.StartDay)*24 + (s.Hour - t.StartHour)
}

// TimerComplete returns true iff the timer exists and its duration has
// elapsed. Unknown timers are incomplete, never an error.
func TimerComplete(s *types.WorldState, id string) bool {
	t, ok := s.Timers[id]
	if !ok {
		return false
	}
	return TimerElapsed(s, id) >= t.Duration
}

// RemoveTimer discards a timer. Removal is always explicit, never automatic.
func RemoveTimer(s *types.WorldState, id string) {
	delete(s.Timers, id)
}
