package loader

import (
	"fmt"

	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
	lua "github.com/yuin/gopher-lua"
)

// compile converts the collected Lua tables into typed definitions. This is
// the one place the stringly-tagged authoring format is narrowed into the
// closed condition/action sums; unrecognized kinds are preserved as
// Unknown values that evaluate false / do nothing.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Rooms:  map[string]types.RoomDef{},
		NPCs:   map[string]types.NPCDef{},
		Quests: map[string]types.QuestDef{},
	}

	if coll.game != nil {
		defs.Game = types.GameDef{
			Title:   getString(coll.game, "title"),
			Author:  getString(coll.game, "author"),
			Version: getString(coll.game, "version"),
			Start:   getString(coll.game, "start"),
			Intro:   getString(coll.game, "intro"),
		}
	}

	for _, raw := range coll.rooms {
		if _, exists := defs.Rooms[raw.id]; exists {
			return nil, fmt.Errorf("duplicate room %q", raw.id)
		}
		defs.Rooms[raw.id] = compileRoom(raw.id, raw.table)
	}

	for _, raw := range coll.npcs {
		if _, exists := defs.NPCs[raw.id]; exists {
			return nil, fmt.Errorf("duplicate npc %q", raw.id)
		}
		defs.NPCs[raw.id] = compileNPC(raw.id, raw.table)
	}

	seen := map[string]bool{}
	for _, raw := range coll.events {
		if seen[raw.id] {
			return nil, fmt.Errorf("duplicate event %q", raw.id)
		}
		seen[raw.id] = true
		defs.Events = append(defs.Events, compileEvent(raw.id, raw.table, raw.order))
	}

	for _, raw := range coll.quests {
		if _, exists := defs.Quests[raw.id]; exists {
			return nil, fmt.Errorf("duplicate quest %q", raw.id)
		}
		defs.Quests[raw.id] = types.QuestDef{
			ID:    raw.id,
			Name:  getString(raw.table, "name"),
			Flags: getStringList(raw.table, "flags"),
		}
	}

	return defs, nil
}

func compileRoom(id string, t *lua.LTable) types.RoomDef {
	room := types.RoomDef{
		ID:          id,
		Description: getString(t, "description"),
		Exits:       map[string]string{},
		NPCs:        getStringList(t, "npcs"),
	}
	if exits, ok := t.RawGetString("exits").(*lua.LTable); ok {
		exits.ForEach(func(k, v lua.LValue) {
			if dir, ok := k.(lua.LString); ok {
				if target, ok := v.(lua.LString); ok {
					room.Exits[string(dir)] = string(target)
				}
			}
		})
	}
	return room
}

func compileNPC(id string, t *lua.LTable) types.NPCDef {
	npc := types.NPCDef{
		ID:       id,
		Name:     getString(t, "name"),
		Hostile:  getBool(t, "hostile"),
		Dialogue: map[string]types.DialogueNode{},
	}
	if nodes, ok := t.RawGetString("dialogue").(*lua.LTable); ok {
		nodes.ForEach(func(k, v lua.LValue) {
			nodeID, ok := k.(lua.LString)
			if !ok {
				return
			}
			if nodeTbl, ok := v.(*lua.LTable); ok {
				npc.Dialogue[string(nodeID)] = compileNode(string(nodeID), nodeTbl)
			}
		})
	}
	return npc
}

func compileNode(id string, t *lua.LTable) types.DialogueNode {
	node := types.DialogueNode{
		ID:    id,
		Text:  getString(t, "text"),
		Entry: compileActions(t.RawGetString("entry")),
	}
	if choices, ok := t.RawGetString("choices").(*lua.LTable); ok {
		forEachArray(choices, func(v lua.LValue) {
			if choiceTbl, ok := v.(*lua.LTable); ok {
				node.Choices = append(node.Choices, types.Choice{
					Text:   getString(choiceTbl, "text"),
					Next:   getString(choiceTbl, "next"),
					Guard:  compileConditions(choiceTbl.RawGetString("guard")),
					Action: compileActions(choiceTbl.RawGetString("action")),
				})
			}
		})
	}
	return node
}

func compileEvent(id string, t *lua.LTable, order int) types.EventDef {
	return types.EventDef{
		ID:          id,
		Room:        getString(t, "room"),
		Conditions:  compileConditions(t.RawGetString("conditions")),
		Priority:    getInt(t, "priority"),
		OneShot:     getBool(t, "one_shot"),
		Dialogue:    getString(t, "dialogue"),
		Actions:     compileActions(t.RawGetString("actions")),
		SourceOrder: order,
	}
}

func compileConditions(v lua.LValue) []types.Condition {
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	var conds []types.Condition
	forEachArray(t, func(v lua.LValue) {
		conds = append(conds, compileCondition(v))
	})
	return conds
}

func compileCondition(v lua.LValue) types.Condition {
	t, ok := v.(*lua.LTable)
	if !ok {
		return types.UnknownCondition{}
	}
	kind := getString(t, "kind")
	switch kind {
	case "first_visit":
		return types.FirstVisit{Event: getString(t, "event")}
	case "first_visit_after_flag":
		return types.FirstVisitAfterFlag{
			Event: getString(t, "event"),
			Flag:  getString(t, "flag"),
			Value: getBool(t, "value"),
		}
	case "flag_equals":
		return types.FlagEquals{Flag: getString(t, "flag"), Value: getBool(t, "value")}
	case "has_item":
		return types.HasItem{Item: getString(t, "item"), Present: getBool(t, "present")}
	case "quest_completed":
		return types.QuestCompleted{Quest: getString(t, "quest"), Done: getBool(t, "done")}
	case "quest_active":
		return types.QuestActive{Quest: getString(t, "quest"), Active: getBool(t, "active")}
	case "min_recruits":
		return types.MinRecruits{Count: getInt(t, "count")}
	case "min_gold":
		return types.MinGold{Amount: getInt(t, "amount")}
	case "min_level":
		return types.MinLevel{Level: getInt(t, "level")}
	case "timer_complete":
		return types.TimerComplete{Timer: getString(t, "timer")}
	case "node_discussed":
		return types.NodeDiscussed{Node: getString(t, "node"), Discussed: getBool(t, "discussed")}
	default:
		return types.UnknownCondition{Kind: kind}
	}
}

func compileActions(v lua.LValue) []types.Action {
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	var acts []types.Action
	forEachArray(t, func(v lua.LValue) {
		acts = append(acts, compileAction(v))
	})
	return acts
}

func compileAction(v lua.LValue) types.Action {
	t, ok := v.(*lua.LTable)
	if !ok {
		return types.UnknownAction{}
	}
	kind := getString(t, "kind")
	switch kind {
	case "set_flag":
		return types.SetFlag{Flag: getString(t, "flag"), Value: getBool(t, "value")}
	case "grant_item":
		return types.GrantItem{Item: getString(t, "item")}
	case "remove_item":
		return types.RemoveItem{Item: getString(t, "item")}
	case "grant_gold":
		return types.GrantGold{Amount: getInt(t, "amount")}
	case "remove_gold":
		return types.RemoveGold{Amount: getInt(t, "amount")}
	case "grant_ability":
		return types.GrantAbility{Ability: getString(t, "ability")}
	case "force_travel":
		return types.ForceTravel{Room: getString(t, "room")}
	case "add_party_member":
		return types.AddPartyMember{Name: getString(t, "name")}
	case "remove_party_member":
		return types.RemovePartyMember{Name: getString(t, "name")}
	case "spawn_npc":
		return types.SpawnNPC{NPC: getString(t, "npc"), Room: getString(t, "room")}
	case "remove_npc":
		return types.RemoveNPC{NPC: getString(t, "npc")}
	case "advance_time":
		return types.AdvanceTime{Hours: getFloat(t, "hours")}
	case "ally_faction":
		return types.AllyFaction{Faction: getString(t, "faction")}
	case "break_alliance":
		return types.BreakAlliance{Faction: getString(t, "faction")}
	case "unlock_region":
		return types.UnlockRegion{Region: getString(t, "region")}
	case "lock_region":
		return types.LockRegion{Region: getString(t, "region")}
	case "display_message":
		return types.DisplayMessage{Text: getString(t, "text")}
	case "start_timer":
		return types.StartTimer{Timer: getString(t, "timer"), Hours: getFloat(t, "hours")}
	case "trigger_combat":
		return types.TriggerCombat{NPC: getString(t, "npc")}
	default:
		return types.UnknownAction{Kind: kind}
	}
}

// Lua table access helpers. Missing or mistyped values read as zero values,
// matching the fail-closed policy downstream.

func getString(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func getBool(t *lua.LTable, key string) bool {
	if b, ok := t.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return false
}

func getInt(t *lua.LTable, key string) int {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func getFloat(t *lua.LTable, key string) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

func getStringList(t *lua.LTable, key string) []string {
	list, ok := t.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	var result []string
	forEachArray(list, func(v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			result = append(result, string(s))
		}
	})
	return result
}

func forEachArray(t *lua.LTable, fn func(lua.LValue)) {
	for i := 1; ; i++ {
		v := t.RawGetInt(i)
		if v == lua.LNil {
			return
		}
		fn(v)
	}
}
