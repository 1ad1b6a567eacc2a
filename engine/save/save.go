// Package save implements JSON serialization and deserialization of world
// state. The whole state is one unit: a load restores the evaluator and the
// timer registry to consistent behavior with no special-casing.
package save

import (
	"encoding/json"

	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version string            `json:"version"`
	Game    string            `json:"game"`
	State   *types.WorldState `json:"state"`
}

// Save serializes world state to JSON bytes.
func Save(s *types.WorldState, defs *state.Defs) ([]byte, error) {
	data := SaveData{
		Version: defs.Game.Version,
		Game:    defs.Game.Title,
		State:   s,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.State == nil {
		sd.State = &types.WorldState{}
	}
	repair(sd.State)
	return &sd, nil
}

// ApplySave applies loaded save data onto a state.
func ApplySave(s *types.WorldState, sd *SaveData) {
	*s = *sd.State
}

// repair ensures maps and slices are never nil after load, preserving the
// absence-is-false invariant for states saved by older builds.
func repair(s *types.WorldState) {
	if s.Flags == nil {
		s.Flags = map[string]bool{}
	}
	if s.Inventory == nil {
		s.Inventory = []string{}
	}
	if s.Abilities == nil {
		s.Abilities = []string{}
	}
	if s.Allies == nil {
		s.Allies = map[string]bool{}
	}
	if s.Regions == nil {
		s.Regions = map[string]bool{}
	}
	if s.Party.Recruited == nil {
		s.Party.Recruited = []string{}
	}
	if s.Party.Active == nil {
		s.Party.Active = []string{}
	}
	if s.Triggered == nil {
		s.Triggered = map[string]bool{}
	}
	if s.Dialogues == nil {
		s.Dialogues = map[string]*types.DialogueRecord{}
	}
	for _, rec := range s.Dialogues {
		if rec != nil && rec.Visited == nil {
			rec.Visited = map[string]bool{}
		}
	}
	if s.Timers == nil {
		s.Timers = map[string]types.Timer{}
	}
	if s.QuestsActive == nil {
		s.QuestsActive = map[string]bool{}
	}
	if s.QuestsCompleted == nil {
		s.QuestsCompleted = map[string]bool{}
	}
	if s.NPCLocations == nil {
		s.NPCLocations = map[string]string{}
	}
}
