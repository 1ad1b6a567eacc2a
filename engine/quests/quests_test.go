package quests

import (
	"testing"

	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

func questTestDefs() *state.Defs {
	return &state.Defs{
		Game:  types.GameDef{Start: "village_square"},
		Rooms: map[string]types.RoomDef{"village_square": {ID: "village_square"}},
		NPCs:  map[string]types.NPCDef{},
		Quests: map[string]types.QuestDef{
			"find_herbs": {
				ID:    "find_herbs",
				Name:  "Gather the Herbs",
				Flags: []string{"herbs_picked", "herbs_delivered"},
			},
			"open_ended": {
				ID:   "open_ended",
				Name: "An Open Road",
			},
		},
	}
}

func TestActivate(t *testing.T) {
	defs := questTestDefs()
	s := state.NewState(defs)

	Activate(s, "find_herbs")

	if !s.QuestsActive["find_herbs"] {
		t.Error("quest not active")
	}
}

func TestActivate_CompletedQuestStaysCompleted(t *testing.T) {
	defs := questTestDefs()
	s := state.NewState(defs)
	s.QuestsCompleted["find_herbs"] = true

	Activate(s, "find_herbs")

	if s.QuestsActive["find_herbs"] {
		t.Error("completed quest re-activated")
	}
}

func TestRecheck_CompletesWhenAllFlagsSet(t *testing.T) {
	defs := questTestDefs()
	s := state.NewState(defs)
	Activate(s, "find_herbs")

	s.Flags["herbs_picked"] = true
	if done := Recheck(s, defs); len(done) != 0 {
		t.Errorf("quest completed with one of two flags: %v", done)
	}

	s.Flags["herbs_delivered"] = true
	done := Recheck(s, defs)
	if len(done) != 1 || done[0] != "find_herbs" {
		t.Fatalf("Recheck = %v, want [find_herbs]", done)
	}
	if !s.QuestsCompleted["find_herbs"] {
		t.Error("quest not marked completed")
	}
	if s.QuestsActive["find_herbs"] {
		t.Error("completed quest still active")
	}
}

func TestRecheck_Idempotent(t *testing.T) {
	defs := questTestDefs()
	s := state.NewState(defs)
	s.Flags["herbs_picked"] = true
	s.Flags["herbs_delivered"] = true

	Recheck(s, defs)
	if done := Recheck(s, defs); len(done) != 0 {
		t.Errorf("second Recheck reported completions: %v", done)
	}
}

func TestRecheck_NoFlagQuestsNeverAutoComplete(t *testing.T) {
	defs := questTestDefs()
	s := state.NewState(defs)
	Activate(s, "open_ended")

	Recheck(s, defs)

	if s.QuestsCompleted["open_ended"] {
		t.Error("flagless quest auto-completed")
	}
}
