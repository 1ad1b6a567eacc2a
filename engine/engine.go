// Package engine provides the session orchestrator that wires together
// parsing, event triggering, action execution, and dialogue into a single
// turn. Exactly one player input is processed to completion before the next
// is accepted; there is no parallelism within this core.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tmarren/lorebound/engine/actions"
	"github.com/tmarren/lorebound/engine/dialogue"
	"github.com/tmarren/lorebound/engine/parser"
	"github.com/tmarren/lorebound/engine/quests"
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/engine/trigger"
	"github.com/tmarren/lorebound/types"
)

// maxEventChain bounds chained room rescans within one input. Force-travel
// cycles and repeatable events that start instantly-terminal dialogues would
// otherwise loop forever on authored content.
const maxEventChain = 4

// EventHook observes side-effect events emitted during a turn. Hooks may
// mutate state and return output lines; they run after the emitting action
// list has been applied.
type EventHook func(s *types.WorldState, ev types.Event) []string

// Engine holds the game definitions and mutable session state. All
// collaborators are passed in explicitly; there is no ambient lookup.
type Engine struct {
	Defs  *state.Defs
	State *types.WorldState

	conv *dialogue.Conversation
	subs []EventHook
}

// New creates a new engine from definitions. The quest subsystem is
// subscribed to the time-advanced event here, not called from action
// execution.
func New(defs *state.Defs) *Engine {
	e := &Engine{
		Defs:  defs,
		State: state.NewState(defs),
	}
	e.Subscribe(e.questRecheck)
	return e
}

// Subscribe registers a host hook for side-effect events.
func (e *Engine) Subscribe(h EventHook) {
	e.subs = append(e.subs, h)
}

// InConversation reports whether a dialogue is awaiting a selection.
func (e *Engine) InConversation() bool {
	return e.conv.Active()
}

// Step processes one player input and returns the result. While a
// conversation is active the input is a choice selection; otherwise it is a
// free-text room command.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	input = strings.TrimSpace(input)

	if e.conv.Active() {
		result = e.stepConversation(input)
	} else {
		result = e.stepCommand(input)
	}

	if e.conv.Active() {
		result.Choices = e.conv.Choices()
	}

	e.State.TurnCount++
	return result
}

// EnterRoom moves the session to a room, describes it, and runs the event
// trigger scan. Exposed so the host can re-enter the current room after a
// load.
func (e *Engine) EnterRoom(roomID string) types.Result {
	var result types.Result
	e.enterRoom(roomID, true, &result, 0)
	if e.conv.Active() {
		result.Choices = e.conv.Choices()
	}
	return result
}

// ResumeConversation rebuilds an in-progress dialogue from the node pointer
// a save carries, discarding whatever conversation was live before the load.
// Returns the restored node's prompt and true when a dialogue resumed; hosts
// fall back to re-entering the room otherwise.
func (e *Engine) ResumeConversation() (types.Result, bool) {
	var result types.Result
	e.conv = nil

	ids := make([]string, 0, len(e.State.Dialogues))
	for id := range e.State.Dialogues {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		conv, output := dialogue.Resume(id, e.State, e.Defs)
		if conv == nil {
			continue
		}
		e.conv = conv
		result.Output = append(result.Output, output...)
		result.Choices = conv.Choices()
		return result, true
	}
	return result, false
}

func (e *Engine) stepConversation(input string) types.Result {
	var result types.Result

	if input == "" {
		result.Output = append(result.Output, "Choose a response.")
		return result
	}

	events, output, ok := e.conv.Select(input, e.State, e.Defs)
	if !ok {
		// Invalid selection: re-prompt, no state change.
		result.Output = append(result.Output, "Choose one of the listed responses.")
		return result
	}

	result.Events = append(result.Events, events...)
	result.Output = append(result.Output, output...)
	e.dispatch(events, &result)

	if !e.conv.Active() {
		e.conv = nil
		e.afterConversation(events, &result, 0)
	}

	return result
}

// afterConversation re-checks the room once a conversation ends: a terminal
// travel action lands the player in a new room, and room-level events (or a
// now-hostile NPC) may need to fire in the current one. depth bounds the
// rescan cycle — a repeatable event whose dialogue ends at its root would
// otherwise fire again on every rescan.
func (e *Engine) afterConversation(events []types.Event, result *types.Result, depth int) {
	if depth > maxEventChain {
		return
	}

	if traveled(events) {
		e.enterRoom(e.State.Room, true, result, depth)
		return
	}

	e.scanRoom(result, depth)

	for _, id := range state.NPCsInRoom(e.State, e.Defs, e.State.Room) {
		if npc, ok := e.Defs.NPCs[id]; ok && npc.Hostile {
			ev := types.Event{Type: "combat_triggered", Data: map[string]any{"npc": id}}
			result.Events = append(result.Events, ev)
			e.dispatch([]types.Event{ev}, result)
		}
	}
}

func (e *Engine) stepCommand(input string) types.Result {
	var result types.Result

	intent := parser.Parse(input)
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	switch intent.Verb {
	case "go":
		e.cmdGo(intent.Object, &result)
	case "look":
		result.Output = append(result.Output, e.describeRoom(e.State.Room)...)
	case "talk":
		e.cmdTalk(intent.Object, &result)
	case "inventory":
		result.Output = append(result.Output, e.formatInventory())
	case "party":
		result.Output = append(result.Output, e.formatParty()...)
	case "status":
		result.Output = append(result.Output, e.formatStatus())
	case "wait":
		e.applyActions([]types.Action{types.AdvanceTime{Hours: 1}}, &result)
		result.Output = append(result.Output, "Time passes.")
	default:
		result.Output = append(result.Output, "You can't do that.")
	}

	return result
}

func (e *Engine) cmdGo(direction string, result *types.Result) {
	if direction == "" {
		result.Output = append(result.Output, "Go where?")
		return
	}

	room, ok := e.Defs.Rooms[e.State.Room]
	if !ok {
		result.Output = append(result.Output, "You can't go that way.")
		return
	}
	target, ok := room.Exits[direction]
	if !ok {
		result.Output = append(result.Output, "You can't go that way.")
		return
	}

	e.enterRoom(target, true, result, 0)
}

func (e *Engine) cmdTalk(name string, result *types.Result) {
	if name == "" {
		result.Output = append(result.Output, "Talk to whom?")
		return
	}

	npcID := e.findNPCInRoom(name)
	if npcID == "" {
		result.Output = append(result.Output, "There's no one like that here.")
		return
	}

	e.startConversation(npcID, result, 0)
}

// startConversation enters the NPC's greeting root and surfaces its text.
func (e *Engine) startConversation(npcID string, result *types.Result, depth int) {
	conv, events, output := dialogue.Start(npcID, e.State, e.Defs)
	if conv == nil {
		result.Output = append(result.Output, e.npcName(npcID)+" has nothing to say.")
		return
	}

	result.Events = append(result.Events, events...)
	result.Output = append(result.Output, output...)
	e.dispatch(events, result)

	if conv.Active() {
		e.conv = conv
	} else {
		e.afterConversation(events, result, depth+1)
	}
}

// enterRoom sets the current room, optionally describes it, and runs the
// trigger scan. depth bounds chained force-travel.
func (e *Engine) enterRoom(roomID string, describe bool, result *types.Result, depth int) {
	if depth > maxEventChain {
		return
	}

	e.State.Room = roomID
	if describe {
		result.Output = append(result.Output, e.describeRoom(roomID)...)
	}

	e.scanRoom(result, depth)
}

// scanRoom fires the winning event for the current room, if any. No event
// firing is the normal case and is silent.
func (e *Engine) scanRoom(result *types.Result, depth int) {
	winner := trigger.Scan(e.State, e.Defs, e.State.Room)
	if winner == nil {
		return
	}

	events, output := trigger.Fire(winner, e.State)
	result.Events = append(result.Events, events...)
	result.Output = append(result.Output, output...)
	e.dispatch(events, result)

	if winner.Dialogue != "" {
		e.startConversation(winner.Dialogue, result, depth)
		if e.conv.Active() {
			return
		}
	}

	if traveled(events) {
		e.enterRoom(e.State.Room, true, result, depth+1)
	}
}

// applyActions runs an action list through the executor and dispatches the
// emitted events.
func (e *Engine) applyActions(acts []types.Action, result *types.Result) {
	events, output := actions.Apply(e.State, acts)
	result.Events = append(result.Events, events...)
	result.Output = append(result.Output, output...)
	e.dispatch(events, result)

	if traveled(events) {
		e.enterRoom(e.State.Room, true, result, 0)
	}
}

// dispatch fans events out to subscribed hooks.
func (e *Engine) dispatch(events []types.Event, result *types.Result) {
	for _, ev := range events {
		for _, sub := range e.subs {
			result.Output = append(result.Output, sub(e.State, ev)...)
		}
	}
}

// questRecheck is the built-in subscriber for time-advanced events.
func (e *Engine) questRecheck(s *types.WorldState, ev types.Event) []string {
	if ev.Type != "time_advanced" {
		return nil
	}
	var output []string
	for _, id := range quests.Recheck(s, e.Defs) {
		name := id
		if q, ok := e.Defs.Quests[id]; ok && q.Name != "" {
			name = q.Name
		}
		output = append(output, "Quest complete: "+name+".")
	}
	return output
}

// traveled reports whether the event batch contains a force-travel signal.
func traveled(events []types.Event) bool {
	for _, ev := range events {
		if ev.Type == "travel" {
			return true
		}
	}
	return false
}

// describeRoom produces the standard room description output.
func (e *Engine) describeRoom(roomID string) []string {
	room, ok := e.Defs.Rooms[roomID]
	if !ok {
		return []string{"You are somewhere unknown."}
	}

	var output []string
	if room.Description != "" {
		output = append(output, room.Description)
	}

	npcs := state.NPCsInRoom(e.State, e.Defs, roomID)
	if len(npcs) > 0 {
		names := make([]string, 0, len(npcs))
		for _, id := range npcs {
			names = append(names, e.npcName(id))
		}
		sort.Strings(names)
		output = append(output, "You see: "+strings.Join(names, ", ")+".")
	}

	if len(room.Exits) > 0 {
		dirs := make([]string, 0, len(room.Exits))
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		output = append(output, "Exits: "+strings.Join(dirs, ", ")+".")
	}

	return output
}

// findNPCInRoom matches a name against the NPCs present in the current room,
// by id or display name, case-insensitively.
func (e *Engine) findNPCInRoom(name string) string {
	name = strings.ToLower(name)
	for _, id := range state.NPCsInRoom(e.State, e.Defs, e.State.Room) {
		if strings.ToLower(id) == name {
			return id
		}
		if npc, ok := e.Defs.NPCs[id]; ok && strings.ToLower(npc.Name) == name {
			return id
		}
	}
	return ""
}

func (e *Engine) npcName(npcID string) string {
	if npc, ok := e.Defs.NPCs[npcID]; ok && npc.Name != "" {
		return npc.Name
	}
	return npcID
}

func (e *Engine) formatInventory() string {
	if len(e.State.Inventory) == 0 {
		return "You are carrying nothing."
	}
	return "You are carrying: " + strings.Join(e.State.Inventory, ", ") + "."
}

func (e *Engine) formatParty() []string {
	s := e.State
	if len(s.Party.Recruited) == 0 {
		return []string{"No one has joined you yet."}
	}
	output := []string{"Recruited: " + strings.Join(s.Party.Recruited, ", ") + "."}
	if len(s.Party.Active) > 0 {
		output = append(output, "In party: "+strings.Join(s.Party.Active, ", ")+".")
	}
	return output
}

func (e *Engine) formatStatus() string {
	s := e.State
	return fmt.Sprintf("Day %d, %02d:%02d — %d gold, level %d.",
		s.Day, int(s.Hour), int(s.Hour*60)%60, s.Gold, s.Level)
}
