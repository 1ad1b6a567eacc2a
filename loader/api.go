package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerActionHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... } — curried: Room("id") returns a function that takes a table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// NPC "id" { name = ..., dialogue = { node_id = {...}, ... } } — curried.
	L.SetGlobal("NPC", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.npcs = append(coll.npcs, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Event "id" { room = ..., priority = ..., one_shot = ..., conditions = {...}, actions = {...} }
	L.SetGlobal("Event", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.events = append(coll.events, rawDef{
				id:    id,
				table: L.CheckTable(1),
				order: coll.nextSourceOrder(),
			})
			return 0
		}))
		return 1
	}))

	// Quest "id" { name = ..., flags = {...} } — curried.
	L.SetGlobal("Quest", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.quests = append(coll.quests, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))
}

// tagged builds the {kind = ..., ...} table every condition and action
// helper returns.
func tagged(L *lua.LState, kind string, kv ...lua.LValue) int {
	tbl := L.NewTable()
	tbl.RawSetString("kind", lua.LString(kind))
	for i := 0; i+1 < len(kv); i += 2 {
		tbl.RawSetString(string(kv[i].(lua.LString)), kv[i+1])
	}
	L.Push(tbl)
	return 1
}

func registerConditionHelpers(L *lua.LState) {
	// FirstVisit("event_id")
	L.SetGlobal("FirstVisit", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "first_visit",
			lua.LString("event"), lua.LString(L.CheckString(1)))
	}))

	// FirstVisitAfterFlag("event_id", "flag", value)
	L.SetGlobal("FirstVisitAfterFlag", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "first_visit_after_flag",
			lua.LString("event"), lua.LString(L.CheckString(1)),
			lua.LString("flag"), lua.LString(L.CheckString(2)),
			lua.LString("value"), lua.LBool(L.CheckBool(3)))
	}))

	// FlagEquals("flag", value)
	L.SetGlobal("FlagEquals", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "flag_equals",
			lua.LString("flag"), lua.LString(L.CheckString(1)),
			lua.LString("value"), lua.LBool(L.CheckBool(2)))
	}))

	// HasItem("item")
	L.SetGlobal("HasItem", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "has_item",
			lua.LString("item"), lua.LString(L.CheckString(1)),
			lua.LString("present"), lua.LTrue)
	}))

	// LacksItem("item") — "must NOT have".
	L.SetGlobal("LacksItem", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "has_item",
			lua.LString("item"), lua.LString(L.CheckString(1)),
			lua.LString("present"), lua.LFalse)
	}))

	// QuestCompleted("quest")
	L.SetGlobal("QuestCompleted", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "quest_completed",
			lua.LString("quest"), lua.LString(L.CheckString(1)),
			lua.LString("done"), lua.LTrue)
	}))

	// QuestActive("quest")
	L.SetGlobal("QuestActive", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "quest_active",
			lua.LString("quest"), lua.LString(L.CheckString(1)),
			lua.LString("active"), lua.LTrue)
	}))

	// MinRecruits(n)
	L.SetGlobal("MinRecruits", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "min_recruits",
			lua.LString("count"), L.CheckNumber(1))
	}))

	// MinGold(n)
	L.SetGlobal("MinGold", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "min_gold",
			lua.LString("amount"), L.CheckNumber(1))
	}))

	// MinLevel(n)
	L.SetGlobal("MinLevel", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "min_level",
			lua.LString("level"), L.CheckNumber(1))
	}))

	// TimerReady("timer")
	L.SetGlobal("TimerReady", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "timer_complete",
			lua.LString("timer"), lua.LString(L.CheckString(1)))
	}))

	// Discussed("node") — dialogue guard.
	L.SetGlobal("Discussed", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "node_discussed",
			lua.LString("node"), lua.LString(L.CheckString(1)),
			lua.LString("discussed"), lua.LTrue)
	}))

	// NotDiscussed("node") — one-time-reveal guard.
	L.SetGlobal("NotDiscussed", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "node_discussed",
			lua.LString("node"), lua.LString(L.CheckString(1)),
			lua.LString("discussed"), lua.LFalse)
	}))
}

func registerActionHelpers(L *lua.LState) {
	// SetFlag("flag", value)
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "set_flag",
			lua.LString("flag"), lua.LString(L.CheckString(1)),
			lua.LString("value"), lua.LBool(L.CheckBool(2)))
	}))

	// GrantItem("item")
	L.SetGlobal("GrantItem", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "grant_item",
			lua.LString("item"), lua.LString(L.CheckString(1)))
	}))

	// RemoveItem("item")
	L.SetGlobal("RemoveItem", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "remove_item",
			lua.LString("item"), lua.LString(L.CheckString(1)))
	}))

	// GrantGold(n)
	L.SetGlobal("GrantGold", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "grant_gold",
			lua.LString("amount"), L.CheckNumber(1))
	}))

	// RemoveGold(n)
	L.SetGlobal("RemoveGold", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "remove_gold",
			lua.LString("amount"), L.CheckNumber(1))
	}))

	// GrantAbility("ability")
	L.SetGlobal("GrantAbility", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "grant_ability",
			lua.LString("ability"), lua.LString(L.CheckString(1)))
	}))

	// Travel("room")
	L.SetGlobal("Travel", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "force_travel",
			lua.LString("room"), lua.LString(L.CheckString(1)))
	}))

	// AddPartyMember("name")
	L.SetGlobal("AddPartyMember", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "add_party_member",
			lua.LString("name"), lua.LString(L.CheckString(1)))
	}))

	// RemovePartyMember("name")
	L.SetGlobal("RemovePartyMember", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "remove_party_member",
			lua.LString("name"), lua.LString(L.CheckString(1)))
	}))

	// SpawnNPC("npc", "room")
	L.SetGlobal("SpawnNPC", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "spawn_npc",
			lua.LString("npc"), lua.LString(L.CheckString(1)),
			lua.LString("room"), lua.LString(L.CheckString(2)))
	}))

	// RemoveNPC("npc")
	L.SetGlobal("RemoveNPC", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "remove_npc",
			lua.LString("npc"), lua.LString(L.CheckString(1)))
	}))

	// AdvanceTime(hours)
	L.SetGlobal("AdvanceTime", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "advance_time",
			lua.LString("hours"), L.CheckNumber(1))
	}))

	// AllyFaction("faction")
	L.SetGlobal("AllyFaction", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "ally_faction",
			lua.LString("faction"), lua.LString(L.CheckString(1)))
	}))

	// BreakAlliance("faction")
	L.SetGlobal("BreakAlliance", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "break_alliance",
			lua.LString("faction"), lua.LString(L.CheckString(1)))
	}))

	// UnlockRegion("region")
	L.SetGlobal("UnlockRegion", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "unlock_region",
			lua.LString("region"), lua.LString(L.CheckString(1)))
	}))

	// LockRegion("region")
	L.SetGlobal("LockRegion", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "lock_region",
			lua.LString("region"), lua.LString(L.CheckString(1)))
	}))

	// Message("text")
	L.SetGlobal("Message", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "display_message",
			lua.LString("text"), lua.LString(L.CheckString(1)))
	}))

	// StartTimer("timer", hours)
	L.SetGlobal("StartTimer", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "start_timer",
			lua.LString("timer"), lua.LString(L.CheckString(1)),
			lua.LString("hours"), L.CheckNumber(2))
	}))

	// TriggerCombat("npc")
	L.SetGlobal("TriggerCombat", L.NewFunction(func(L *lua.LState) int {
		return tagged(L, "trigger_combat",
			lua.LString("npc"), lua.LString(L.CheckString(1)))
	}))
}
