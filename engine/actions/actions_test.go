package actions

import (
	"testing"

	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

func actionTestState() *types.WorldState {
	defs := &state.Defs{
		Game:   types.GameDef{Start: "village_square"},
		Rooms:  map[string]types.RoomDef{"village_square": {ID: "village_square"}},
		NPCs:   map[string]types.NPCDef{},
		Quests: map[string]types.QuestDef{},
	}
	return state.NewState(defs)
}

func TestApply_SetFlagAndItems(t *testing.T) {
	s := actionTestState()

	Apply(s, []types.Action{
		types.SetFlag{Flag: "gate_open", Value: true},
		types.GrantItem{Item: "lantern"},
	})

	if !s.Flags["gate_open"] {
		t.Error("flag not set")
	}
	if !state.HasItem(s, "lantern") {
		t.Error("item not granted")
	}
}

func TestApply_RemoveGoldClampsAtZero(t *testing.T) {
	s := actionTestState()
	s.Gold = 5

	Apply(s, []types.Action{types.RemoveGold{Amount: 20}})

	if s.Gold != 0 {
		t.Errorf("Gold = %d, want 0", s.Gold)
	}
}

func TestApply_MalformedActionSkipped(t *testing.T) {
	s := actionTestState()

	// An empty-flag action is skipped; siblings still run.
	events, output := Apply(s, []types.Action{
		types.SetFlag{Flag: "", Value: true},
		types.GrantGold{Amount: 10},
		types.DisplayMessage{Text: "A pouch of coins."},
	})

	if s.Gold != 10 {
		t.Errorf("Gold = %d, want 10", s.Gold)
	}
	if len(output) != 1 || output[0] != "A pouch of coins." {
		t.Errorf("output = %v", output)
	}
	if len(events) != 0 {
		t.Errorf("unexpected events: %v", events)
	}
}

func TestApply_UnknownActionSkipped(t *testing.T) {
	s := actionTestState()

	Apply(s, []types.Action{
		types.UnknownAction{Kind: "summon_meteor"},
		types.GrantGold{Amount: 3},
	})

	if s.Gold != 3 {
		t.Errorf("Gold = %d, want 3; sibling did not run", s.Gold)
	}
}

func TestApply_ForceTravelEmitsEvent(t *testing.T) {
	s := actionTestState()

	events, _ := Apply(s, []types.Action{types.ForceTravel{Room: "tavern"}})

	if s.Room != "tavern" {
		t.Errorf("Room = %q, want tavern", s.Room)
	}
	if len(events) != 1 || events[0].Type != "travel" {
		t.Fatalf("events = %v, want single travel event", events)
	}
	if events[0].Data["room"] != "tavern" {
		t.Errorf("travel event room = %v", events[0].Data["room"])
	}
}

func TestApply_AddPartyMemberRequiresRecruitment(t *testing.T) {
	s := actionTestState()

	Apply(s, []types.Action{types.AddPartyMember{Name: "bard"}})
	if len(s.Party.Active) != 0 {
		t.Error("unrecruited companion joined the party")
	}

	state.Recruit(s, "bard")
	Apply(s, []types.Action{types.AddPartyMember{Name: "bard"}})
	if len(s.Party.Active) != 1 {
		t.Error("recruited companion did not join")
	}

	// Joining twice is a no-op.
	Apply(s, []types.Action{types.AddPartyMember{Name: "bard"}})
	if len(s.Party.Active) != 1 {
		t.Error("companion joined twice")
	}
}

func TestApply_PartyCapacity(t *testing.T) {
	s := actionTestState()
	for _, n := range []string{"bard", "ranger", "cleric", "rogue"} {
		state.Recruit(s, n)
		Apply(s, []types.Action{types.AddPartyMember{Name: n}})
	}

	if len(s.Party.Active) != state.PartyCapacity {
		t.Errorf("active party size = %d, want %d", len(s.Party.Active), state.PartyCapacity)
	}
}

func TestApply_RemovePartyMember(t *testing.T) {
	s := actionTestState()
	state.Recruit(s, "bard")
	Apply(s, []types.Action{types.AddPartyMember{Name: "bard"}})

	Apply(s, []types.Action{types.RemovePartyMember{Name: "bard"}})

	if len(s.Party.Active) != 0 {
		t.Error("companion still active after removal")
	}
	if !state.IsRecruited(s, "bard") {
		t.Error("removal from party dropped recruitment")
	}
}

func TestApply_SpawnAndRemoveNPC(t *testing.T) {
	s := actionTestState()

	events, _ := Apply(s, []types.Action{
		types.SpawnNPC{NPC: "ghost", Room: "crypt"},
		types.RemoveNPC{NPC: "elder"},
	})

	if s.NPCLocations["ghost"] != "crypt" {
		t.Errorf("ghost location = %q, want crypt", s.NPCLocations["ghost"])
	}
	if loc, ok := s.NPCLocations["elder"]; !ok || loc != "" {
		t.Error("removed NPC not recorded with empty location")
	}
	if len(events) != 2 || events[0].Type != "npc_spawned" || events[1].Type != "npc_removed" {
		t.Errorf("events = %v", events)
	}
}

func TestApply_AdvanceTimeEmitsEvent(t *testing.T) {
	s := actionTestState()
	s.Day = 1
	s.Hour = 20

	events, _ := Apply(s, []types.Action{types.AdvanceTime{Hours: 30}})

	if s.Day != 2 || s.Hour != 2 {
		t.Errorf("clock = day %d hour %v, want day 2 hour 2", s.Day, s.Hour)
	}
	if len(events) != 1 || events[0].Type != "time_advanced" {
		t.Fatalf("events = %v", events)
	}
	if events[0].Data["day"] != 2 {
		t.Errorf("event day = %v, want 2", events[0].Data["day"])
	}
}

func TestApply_AdvanceTimeNonPositiveSkipped(t *testing.T) {
	s := actionTestState()

	events, _ := Apply(s, []types.Action{types.AdvanceTime{Hours: 0}})

	if s.Hour != 8 || len(events) != 0 {
		t.Error("zero-hour advance should be a no-op")
	}
}

func TestApply_AllianceAndRegions(t *testing.T) {
	s := actionTestState()

	Apply(s, []types.Action{
		types.AllyFaction{Faction: "rangers"},
		types.UnlockRegion{Region: "northlands"},
	})
	if !s.Allies["rangers"] || !s.Regions["northlands"] {
		t.Error("alliance or region not recorded")
	}

	Apply(s, []types.Action{
		types.BreakAlliance{Faction: "rangers"},
		types.LockRegion{Region: "northlands"},
	})
	if s.Allies["rangers"] || s.Regions["northlands"] {
		t.Error("alliance or region not cleared")
	}
}

func TestApply_StartTimer(t *testing.T) {
	s := actionTestState()

	Apply(s, []types.Action{types.StartTimer{Timer: "forge_sword", Hours: 6}})

	if _, ok := s.Timers["forge_sword"]; !ok {
		t.Error("timer not started")
	}
}

func TestApply_TriggerCombatEmitsEvent(t *testing.T) {
	s := actionTestState()

	events, _ := Apply(s, []types.Action{types.TriggerCombat{NPC: "bandit"}})

	if len(events) != 1 || events[0].Type != "combat_triggered" {
		t.Fatalf("events = %v", events)
	}
	if events[0].Data["npc"] != "bandit" {
		t.Errorf("combat event npc = %v", events[0].Data["npc"])
	}
}
