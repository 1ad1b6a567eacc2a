package rules

import (
	"testing"

	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

func condTestState() *types.WorldState {
	defs := &state.Defs{
		Game:   types.GameDef{Start: "village_square"},
		Rooms:  map[string]types.RoomDef{"village_square": {ID: "village_square"}},
		NPCs:   map[string]types.NPCDef{},
		Quests: map[string]types.QuestDef{},
	}
	s := state.NewState(defs)
	s.Flags["met_elder"] = true
	s.Flags["gate_sealed"] = false
	s.Inventory = []string{"rusty_key"}
	s.Gold = 50
	s.Level = 3
	s.Party.Recruited = []string{"bard", "ranger"}
	s.Triggered["intro_scene"] = true
	s.QuestsActive["find_herbs"] = true
	s.QuestsCompleted["clear_cellar"] = true
	state.StartTimer(s, "forge_sword", 6)
	rec := state.DialogueRecord(s, "elder")
	rec.Visited["ask_about_ruins"] = true
	return s
}

func TestEval(t *testing.T) {
	s := condTestState()

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{
			name: "first_visit: untriggered event",
			cond: types.FirstVisit{Event: "cellar_ambush"},
			want: true,
		},
		{
			name: "first_visit: already triggered",
			cond: types.FirstVisit{Event: "intro_scene"},
			want: false,
		},
		{
			name: "first_visit: empty event id fails closed",
			cond: types.FirstVisit{},
			want: false,
		},
		{
			name: "first_visit_after_flag: flag set and untriggered",
			cond: types.FirstVisitAfterFlag{Event: "elder_followup", Flag: "met_elder", Value: true},
			want: true,
		},
		{
			name: "first_visit_after_flag: flag not matching",
			cond: types.FirstVisitAfterFlag{Event: "elder_followup", Flag: "met_mayor", Value: true},
			want: false,
		},
		{
			name: "first_visit_after_flag: already triggered",
			cond: types.FirstVisitAfterFlag{Event: "intro_scene", Flag: "met_elder", Value: true},
			want: false,
		},
		{
			// An absent flag is not the same as a flag set to false.
			name: "first_visit_after_flag: absent flag with required false",
			cond: types.FirstVisitAfterFlag{Event: "elder_followup", Flag: "never_set", Value: false},
			want: false,
		},
		{
			name: "first_visit_after_flag: present false flag with required false",
			cond: types.FirstVisitAfterFlag{Event: "elder_followup", Flag: "gate_sealed", Value: false},
			want: true,
		},
		{
			name: "flag_equals: set flag true",
			cond: types.FlagEquals{Flag: "met_elder", Value: true},
			want: true,
		},
		{
			name: "flag_equals: missing flag reads false",
			cond: types.FlagEquals{Flag: "gate_open", Value: false},
			want: true,
		},
		{
			name: "has_item: present",
			cond: types.HasItem{Item: "rusty_key", Present: true},
			want: true,
		},
		{
			name: "has_item: lacks item",
			cond: types.HasItem{Item: "sword", Present: false},
			want: true,
		},
		{
			name: "quest_completed",
			cond: types.QuestCompleted{Quest: "clear_cellar", Done: true},
			want: true,
		},
		{
			name: "quest_active: not active",
			cond: types.QuestActive{Quest: "slay_dragon", Active: true},
			want: false,
		},
		{
			name: "min_recruits: met",
			cond: types.MinRecruits{Count: 2},
			want: true,
		},
		{
			name: "min_recruits: not met",
			cond: types.MinRecruits{Count: 3},
			want: false,
		},
		{
			name: "min_gold: exact boundary",
			cond: types.MinGold{Amount: 50},
			want: true,
		},
		{
			name: "min_gold: over",
			cond: types.MinGold{Amount: 51},
			want: false,
		},
		{
			name: "min_level",
			cond: types.MinLevel{Level: 3},
			want: true,
		},
		{
			name: "timer_complete: running timer",
			cond: types.TimerComplete{Timer: "forge_sword"},
			want: false,
		},
		{
			name: "timer_complete: unknown timer fails closed",
			cond: types.TimerComplete{Timer: "no_such"},
			want: false,
		},
		{
			name: "unknown condition kind fails closed",
			cond: types.UnknownCondition{Kind: "phase_of_moon"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eval(tt.cond, s, ""); got != tt.want {
				t.Errorf("Eval(%+v) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

func TestEval_TimerCompleteAfterElapse(t *testing.T) {
	s := condTestState()
	state.AdvanceClock(s, 6)

	if !Eval(types.TimerComplete{Timer: "forge_sword"}, s, "") {
		t.Error("timer condition false after duration elapsed")
	}
}

func TestEval_NodeDiscussed(t *testing.T) {
	s := condTestState()

	if !Eval(types.NodeDiscussed{Node: "ask_about_ruins", Discussed: true}, s, "elder") {
		t.Error("visited node not reported discussed")
	}
	if !Eval(types.NodeDiscussed{Node: "ask_about_gold", Discussed: false}, s, "elder") {
		t.Error("unvisited node reported discussed")
	}
	if Eval(types.NodeDiscussed{Node: "ask_about_ruins", Discussed: true}, s, "") {
		t.Error("discussed guard passed outside a conversation")
	}
}

func TestEvalAll_EmptyListIsTrue(t *testing.T) {
	s := condTestState()

	if !EvalAll(nil, s, "") {
		t.Error("empty condition list should be vacuously true")
	}
}

func TestEvalAll_ShortCircuitsOnFirstFailure(t *testing.T) {
	s := condTestState()

	conds := []types.Condition{
		types.MinGold{Amount: 1000},
		types.UnknownCondition{Kind: "whatever"},
	}
	if EvalAll(conds, s, "") {
		t.Error("conjunction passed with failing condition")
	}
}

func TestEvalAll_AllPass(t *testing.T) {
	s := condTestState()

	conds := []types.Condition{
		types.FlagEquals{Flag: "met_elder", Value: true},
		types.MinGold{Amount: 10},
		types.HasItem{Item: "rusty_key", Present: true},
	}
	if !EvalAll(conds, s, "") {
		t.Error("conjunction failed with all-passing conditions")
	}
}
