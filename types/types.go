// Package types defines the shared data structures for the Lorebound engine.
// This package contains only type definitions — no logic, no methods.
package types

// Intent is the parsed representation of a free-text room command.
type Intent struct {
	Verb   string
	Object string // optional
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting room ID
	Intro   string
}

// RoomDef is the base definition of a room.
type RoomDef struct {
	ID          string
	Description string
	Exits       map[string]string // direction → room_id
	NPCs        []string          // NPC IDs initially present
}

// NPCDef is the base definition of an NPC and its dialogue graph.
type NPCDef struct {
	ID       string
	Name     string
	Hostile  bool
	Dialogue map[string]DialogueNode // node_id → node
}

// DialogueNode is an identifier-addressed node in an NPC's dialogue graph.
// A node with no choices ends the conversation.
type DialogueNode struct {
	ID      string
	Text    string
	Entry   []Action // executed on entering the node, before choices are shown
	Choices []Choice
}

// Choice is a player response option at a dialogue node.
type Choice struct {
	Text   string
	Next   string      // target node ID
	Guard  []Condition // choice is offered only if all pass
	Action []Action    // executed on selection, before the transition
}

// EventDef is an immutable room-entry event record. Only the triggered-IDs
// set in WorldState records that a one-shot event fired; the definition
// itself is never mutated after load.
type EventDef struct {
	ID          string
	Room        string // triggering room ID
	Conditions  []Condition
	Priority    int
	OneShot     bool
	Dialogue    string // NPC ID whose dialogue tree to start; "" for none
	Actions     []Action
	SourceOrder int // authored order, assigned at load
}

// QuestDef defines a quest completed when all of its flags are true.
type QuestDef struct {
	ID    string
	Name  string
	Flags []string
}

// Timer is a named deferred-completion marker keyed to the in-game clock.
type Timer struct {
	StartDay  int     `json:"start_day"`
	StartHour float64 `json:"start_hour"`
	Duration  float64 `json:"duration_hours"`
}

// DialogueRecord tracks per-NPC conversation state.
type DialogueRecord struct {
	CurrentNode string          `json:"current_node"`
	Visited     map[string]bool `json:"visited"`
}

// Party is the recruited companion roster and the active subset.
type Party struct {
	Recruited []string `json:"recruited"`
	Active    []string `json:"active"`
}

// WorldState is the complete mutable session state. It is owned by the
// session and serialized wholesale on save; every other component is a
// stateless service parameterized by it.
type WorldState struct {
	Flags           map[string]bool            `json:"flags"`
	Inventory       []string                   `json:"inventory"`
	Gold            int                        `json:"gold"`
	Level           int                        `json:"level"`
	Abilities       []string                   `json:"abilities"`
	Allies          map[string]bool            `json:"allies"`
	Regions         map[string]bool            `json:"regions"`
	Party           Party                      `json:"party"`
	Room            string                     `json:"room"`
	Day             int                        `json:"day"`
	Hour            float64                    `json:"hour"`
	Triggered       map[string]bool            `json:"triggered"`
	Dialogues       map[string]*DialogueRecord `json:"dialogues"`
	Timers          map[string]Timer           `json:"timers"`
	QuestsActive    map[string]bool            `json:"quests_active"`
	QuestsCompleted map[string]bool            `json:"quests_completed"`
	NPCLocations    map[string]string          `json:"npc_locations"` // runtime overrides; "" means removed
	TurnCount       int                        `json:"turn_count"`
}

// Event is a side-effect signal emitted during action execution for the
// host (room/map, combat, quest subsystems) to observe.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Events  []Event
	Output  []string
	Choices []string // dialogue choice labels, if a conversation is active
}
