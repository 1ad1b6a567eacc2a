// Package state manages the mutable world state: flags, inventory, factions,
// regions, party roster, the in-game clock, triggered-event bookkeeping, and
// per-NPC dialogue records. Lookups treat absent keys as false/absent.
package state

import (
	"sort"

	"github.com/tmarren/lorebound/types"
)

// PartyCapacity is the maximum number of active party members.
const PartyCapacity = 3

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game   types.GameDef
	Rooms  map[string]types.RoomDef
	NPCs   map[string]types.NPCDef
	Quests map[string]types.QuestDef
	Events []types.EventDef // authored order preserved
}

// NewState creates a fresh world state from definitions.
func NewState(defs *Defs) *types.WorldState {
	return &types.WorldState{
		Flags:           map[string]bool{},
		Inventory:       []string{},
		Abilities:       []string{},
		Allies:          map[string]bool{},
		Regions:         map[string]bool{},
		Party:           types.Party{Recruited: []string{}, Active: []string{}},
		Room:            defs.Game.Start,
		Day:             1,
		Hour:            8,
		Triggered:       map[string]bool{},
		Dialogues:       map[string]*types.DialogueRecord{},
		Timers:          map[string]types.Timer{},
		QuestsActive:    map[string]bool{},
		QuestsCompleted: map[string]bool{},
		NPCLocations:    map[string]string{},
	}
}

// GetFlag returns the value of a flag. Unset flags return false.
func GetFlag(s *types.WorldState, name string) bool {
	return s.Flags[name]
}

// HasItem returns true if the given item is in the inventory.
func HasItem(s *types.WorldState, itemID string) bool {
	for _, id := range s.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// GrantItem adds an item to the inventory. Set semantics: already held is a no-op.
func GrantItem(s *types.WorldState, itemID string) {
	if HasItem(s, itemID) {
		return
	}
	s.Inventory = append(s.Inventory, itemID)
}

// RemoveItem removes an item from the inventory. Absent is a no-op.
func RemoveItem(s *types.WorldState, itemID string) {
	for i, id := range s.Inventory {
		if id == itemID {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return
		}
	}
}

// IsRecruited returns true if the companion is on the recruited roster.
func IsRecruited(s *types.WorldState, name string) bool {
	for _, n := range s.Party.Recruited {
		if n == name {
			return true
		}
	}
	return false
}

// Recruit adds a companion to the recruited roster. Already recruited is a
// no-op. Recruitment itself happens outside this core (combat outcomes,
// host-scripted joins); this is the write path those collaborators use.
func Recruit(s *types.WorldState, name string) {
	if IsRecruited(s, name) {
		return
	}
	s.Party.Recruited = append(s.Party.Recruited, name)
}

// InParty returns true if the companion is in the active party.
func InParty(s *types.WorldState, name string) bool {
	for _, n := range s.Party.Active {
		if n == name {
			return true
		}
	}
	return false
}

// AdvanceClock adds in-game hours to the clock, rolling the day over at 24.
func AdvanceClock(s *types.WorldState, hours float64) {
	s.Hour += hours
	for s.Hour >= 24 {
		s.Hour -= 24
		s.Day++
	}
}

// DialogueRecord returns the conversation record for an NPC, creating an
// empty record if none exists yet.
func DialogueRecord(s *types.WorldState, npcID string) *types.DialogueRecord {
	rec, ok := s.Dialogues[npcID]
	if !ok {
		rec = &types.DialogueRecord{Visited: map[string]bool{}}
		s.Dialogues[npcID] = rec
	}
	if rec.Visited == nil {
		rec.Visited = map[string]bool{}
	}
	return rec
}

// NodeVisited returns true if the NPC's node has ever been entered.
func NodeVisited(s *types.WorldState, npcID, nodeID string) bool {
	rec, ok := s.Dialogues[npcID]
	return ok && rec.Visited[nodeID]
}

// NPCLocation returns the effective room of an NPC: the runtime override if
// one exists (possibly "", meaning removed from the world), otherwise the
// room whose definition lists it.
func NPCLocation(s *types.WorldState, defs *Defs, npcID string) string {
	if loc, ok := s.NPCLocations[npcID]; ok {
		return loc
	}
	for _, room := range defs.Rooms {
		for _, id := range room.NPCs {
			if id == npcID {
				return room.ID
			}
		}
	}
	return ""
}

// NPCsInRoom returns the IDs of all NPCs whose effective location matches
// the given room, in the order they appear in definitions plus spawned ones.
func NPCsInRoom(s *types.WorldState, defs *Defs, roomID string) []string {
	var result []string
	seen := map[string]bool{}
	if room, ok := defs.Rooms[roomID]; ok {
		for _, id := range room.NPCs {
			if NPCLocation(s, defs, id) == roomID && !seen[id] {
				result = append(result, id)
				seen[id] = true
			}
		}
	}
	// NPCs moved here at runtime, in id order so listings are stable
	// across runs.
	spawned := make([]string, 0, len(s.NPCLocations))
	for id, loc := range s.NPCLocations {
		if loc == roomID && !seen[id] {
			spawned = append(spawned, id)
		}
	}
	sort.Strings(spawned)
	result = append(result, spawned...)
	return result
}
