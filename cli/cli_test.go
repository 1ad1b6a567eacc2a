package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tmarren/lorebound/engine"
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/storage"
	"github.com/tmarren/lorebound/types"
)

// memStore is an in-memory Store for CLI tests.
type memStore struct {
	slots map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{slots: map[string][]byte{}}
}

func (m *memStore) Save(_ context.Context, slot string, data []byte) error {
	m.slots[slot] = data
	return nil
}

func (m *memStore) Load(_ context.Context, slot string) ([]byte, error) {
	data, ok := m.slots[slot]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (m *memStore) List(_ context.Context) ([]storage.SlotInfo, error) {
	var slots []storage.SlotInfo
	for slot := range m.slots {
		slots = append(slots, storage.SlotInfo{Slot: slot})
	}
	return slots, nil
}

func (m *memStore) Close() error { return nil }

// testDefs returns minimal game definitions for CLI testing.
func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:   "Test Game",
			Author:  "Test",
			Version: "1.0",
			Start:   "hall",
			Intro:   "Welcome to the test.",
		},
		Rooms: map[string]types.RoomDef{
			"hall": {
				ID:          "hall",
				Description: "A grand hall.",
				Exits:       map[string]string{"north": "garden"},
				NPCs:        []string{"keeper"},
			},
			"garden": {
				ID:          "garden",
				Description: "A peaceful garden.",
				Exits:       map[string]string{"south": "hall"},
			},
		},
		NPCs: map[string]types.NPCDef{
			"keeper": {
				ID:   "keeper",
				Name: "Keeper",
				Dialogue: map[string]types.DialogueNode{
					"greeting": {
						ID:   "greeting",
						Text: "\"Mind the roses.\"",
						Choices: []types.Choice{
							{Text: "I will", Next: "end"},
							{Text: "Farewell", Next: "end"},
						},
					},
				},
			},
		},
		Quests: map[string]types.QuestDef{},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	defs := testDefs()
	eng := engine.New(defs)
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		Defs:   defs,
		Store:  newMemStore(),
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func TestCLI_IntroAndStartingRoom(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Welcome to the test.") {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "A grand hall.") {
		t.Error("expected starting room description in output")
	}
}

func TestCLI_Navigation(t *testing.T) {
	c, out := newTestCLI(t, "go north\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "A peaceful garden.") {
		t.Error("expected garden description after moving north")
	}
}

func TestCLI_DialogueChoicesNumbered(t *testing.T) {
	c, out := newTestCLI(t, "talk to keeper\n2\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Mind the roses.") {
		t.Error("expected greeting text")
	}
	if !strings.Contains(output, "  1. I will") || !strings.Contains(output, "  2. Farewell") {
		t.Error("expected numbered choice list")
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	c, out := newTestCLI(t, "go north\n/save slot1\ngo south\n/load slot1\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "[Game saved to slot1.]") {
		t.Error("expected save confirmation")
	}
	if !strings.Contains(output, "[Game loaded from slot1") {
		t.Error("expected load confirmation")
	}
	if c.Engine.State.Room != "garden" {
		t.Errorf("Room = %q after load, want garden", c.Engine.State.Room)
	}
}

func TestCLI_LoadDuringDialogueResumes(t *testing.T) {
	// Save mid-conversation, end it, then load: the pending node must be
	// re-prompted and the next input resolved against it.
	c, out := newTestCLI(t, "talk to keeper\n/save mid\n2\n/load mid\n1\n/quit\n")
	c.Run()

	output := out.String()
	if got := strings.Count(output, "Mind the roses."); got != 2 {
		t.Errorf("greeting shown %d times, want 2", got)
	}
	if !strings.Contains(output, "  1. I will") {
		t.Error("expected resumed choice list after load")
	}
	if strings.Contains(output, "Choose one of the listed responses.") {
		t.Error("input after load fell through to a stale conversation")
	}
	if c.Engine.InConversation() {
		t.Error("conversation still active after final choice")
	}
}

func TestCLI_LoadMissingSlot(t *testing.T) {
	c, out := newTestCLI(t, "/load nothing\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "[No save in slot nothing.]") {
		t.Error("expected missing-slot message")
	}
}

func TestCLI_CommentLinesSkipped(t *testing.T) {
	c, out := newTestCLI(t, "# setup\nlook\n/quit\n")
	c.Run()

	if strings.Contains(out.String(), "You can't do that.") {
		t.Error("comment line was executed as a command")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/frobnicate\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /frobnicate") {
		t.Error("expected unknown-command message")
	}
}
