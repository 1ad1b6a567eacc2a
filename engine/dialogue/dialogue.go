// Package dialogue implements the per-conversation state machine over an
// NPC's node graph. One conversation is active at a time; choice visibility
// is recomputed from guards every time a node is entered.
package dialogue

import (
	"strconv"
	"strings"

	"github.com/tmarren/lorebound/engine/actions"
	"github.com/tmarren/lorebound/engine/rules"
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

// Root node conventions. first_greeting is shown once per NPC, then
// repeat_greeting; NPCs authored before the split carry a single greeting
// node that serves both.
const (
	NodeFirstGreeting  = "first_greeting"
	NodeRepeatGreeting = "repeat_greeting"
	NodeGreeting       = "greeting"
)

// Conversation is the live state machine for one NPC conversation.
type Conversation struct {
	NPC     string
	Node    string
	visible []types.Choice
	done    bool
}

// Start begins a conversation with the NPC, entering its greeting root.
// Returns the conversation plus the events and output from the root node's
// entry actions. Returns a nil conversation if the NPC has no usable root.
func Start(npcID string, s *types.WorldState, defs *state.Defs) (*Conversation, []types.Event, []string) {
	npc, ok := defs.NPCs[npcID]
	if !ok || len(npc.Dialogue) == 0 {
		return nil, nil, nil
	}

	root := rootNode(npc, s, npcID)
	if root == "" {
		return nil, nil, nil
	}

	c := &Conversation{NPC: npcID}
	events, output := c.enter(root, s, defs)
	return c, events, output
}

// rootNode picks the initial node: first_greeting if the NPC has never been
// talked to, repeat_greeting thereafter, with the legacy greeting node as
// the fallback for both.
func rootNode(npc types.NPCDef, s *types.WorldState, npcID string) string {
	talked := false
	if rec, ok := s.Dialogues[npcID]; ok && len(rec.Visited) > 0 {
		talked = true
	}

	if !talked {
		if _, ok := npc.Dialogue[NodeFirstGreeting]; ok {
			return NodeFirstGreeting
		}
	} else {
		if _, ok := npc.Dialogue[NodeRepeatGreeting]; ok {
			return NodeRepeatGreeting
		}
	}
	if _, ok := npc.Dialogue[NodeGreeting]; ok {
		return NodeGreeting
	}
	return ""
}

// Resume rebuilds a conversation from the current-node pointer persisted in
// the NPC's dialogue record, as after a load. The node's entry actions ran
// when it was first entered, so only the prompt text and choice visibility
// are recomputed against the restored state. Returns nil when no node is
// pending or the node no longer exists; a stale pointer is cleared.
func Resume(npcID string, s *types.WorldState, defs *state.Defs) (*Conversation, []string) {
	rec, ok := s.Dialogues[npcID]
	if !ok || rec.CurrentNode == "" {
		return nil, nil
	}

	npc, ok := defs.NPCs[npcID]
	node, exists := npc.Dialogue[rec.CurrentNode]
	if !ok || !exists {
		rec.CurrentNode = ""
		return nil, nil
	}

	c := &Conversation{NPC: npcID, Node: rec.CurrentNode}
	for _, ch := range node.Choices {
		if rules.EvalAll(ch.Guard, s, npcID) {
			c.visible = append(c.visible, ch)
		}
	}
	if len(c.visible) == 0 {
		rec.CurrentNode = ""
		return nil, nil
	}

	var output []string
	if node.Text != "" {
		output = append(output, node.Text)
	}
	return c, output
}

// Active reports whether the conversation is still expecting a selection.
func (c *Conversation) Active() bool {
	return c != nil && !c.done
}

// Choices returns the labels of the currently offered choices.
func (c *Conversation) Choices() []string {
	labels := make([]string, 0, len(c.visible))
	for _, ch := range c.visible {
		labels = append(labels, ch.Text)
	}
	return labels
}

// Select resolves the player's input to one of the offered choices, executes
// its action, and transitions. Input is a 1-based index or a case-insensitive
// label match. An unresolvable selection returns ok=false with no state
// change, so the host can re-prompt.
func (c *Conversation) Select(input string, s *types.WorldState, defs *state.Defs) (events []types.Event, output []string, ok bool) {
	if c.done {
		return nil, nil, false
	}

	choice, found := c.resolve(input)
	if !found {
		return nil, nil, false
	}

	evts, out := actions.Apply(s, choice.Action)
	events = append(events, evts...)
	output = append(output, out...)

	npc := defs.NPCs[c.NPC]
	if _, exists := npc.Dialogue[choice.Next]; !exists {
		// Dangling target node: inert, the conversation just ends.
		c.done = true
		state.DialogueRecord(s, c.NPC).CurrentNode = ""
		return events, output, true
	}

	evts, out = c.enter(choice.Next, s, defs)
	events = append(events, evts...)
	output = append(output, out...)
	return events, output, true
}

func (c *Conversation) resolve(input string) (types.Choice, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(c.visible) {
			return c.visible[n-1], true
		}
		return types.Choice{}, false
	}
	for _, ch := range c.visible {
		if strings.EqualFold(ch.Text, input) {
			return ch, true
		}
	}
	return types.Choice{}, false
}

// enter moves to a node: runs its entry actions, records it as visited for
// this NPC, and computes the surviving choices. Entry actions run once per
// entry; they are not idempotence-guarded across separate visits — authors
// gate repeatable nodes with flags or discussed guards.
func (c *Conversation) enter(nodeID string, s *types.WorldState, defs *state.Defs) ([]types.Event, []string) {
	npc := defs.NPCs[c.NPC]
	node := npc.Dialogue[nodeID]

	c.Node = nodeID
	rec := state.DialogueRecord(s, c.NPC)
	rec.CurrentNode = nodeID

	events, output := actions.Apply(s, node.Entry)
	if node.Text != "" {
		output = append([]string{node.Text}, output...)
	}

	// Visibility is computed fresh on every entry: discussed / not-discussed
	// guards support one-time-reveal topics without separate flags. Guards
	// run before this node is marked visited, so "discussed" always means a
	// previous entry, not the current one.
	c.visible = c.visible[:0]
	for _, ch := range node.Choices {
		if rules.EvalAll(ch.Guard, s, c.NPC) {
			c.visible = append(c.visible, ch)
		}
	}

	rec.Visited[nodeID] = true

	// A node with no surviving choices ends the conversation. "end" is a
	// convention, not a keyword.
	if len(c.visible) == 0 {
		c.done = true
		rec.CurrentNode = ""
	}

	return events, output
}
