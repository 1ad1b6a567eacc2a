// Package actions implements centralized state mutation via the Apply
// function. Execution is sequential and not transactional: an action with
// missing parameters is skipped and its siblings still run. This is a
// deliberate robustness choice over partially-authored content, at the cost
// of silent partial application.
package actions

import (
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/types"
)

// Apply applies a list of actions to the world state, mutating it. Returns
// side-effect events for the host (travel, npc presence, time advance,
// combat) and output text collected from display-message actions.
func Apply(s *types.WorldState, acts []types.Action) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, act := range acts {
		switch a := act.(type) {
		case types.SetFlag:
			if a.Flag == "" {
				continue
			}
			s.Flags[a.Flag] = a.Value

		case types.GrantItem:
			if a.Item == "" {
				continue
			}
			state.GrantItem(s, a.Item)

		case types.RemoveItem:
			state.RemoveItem(s, a.Item)

		case types.GrantGold:
			if a.Amount <= 0 {
				continue
			}
			s.Gold += a.Amount

		case types.RemoveGold:
			if a.Amount <= 0 {
				continue
			}
			s.Gold -= a.Amount
			if s.Gold < 0 {
				s.Gold = 0
			}

		case types.GrantAbility:
			if a.Ability == "" {
				continue
			}
			if !hasAbility(s, a.Ability) {
				s.Abilities = append(s.Abilities, a.Ability)
			}

		case types.ForceTravel:
			if a.Room == "" {
				continue
			}
			s.Room = a.Room
			// The host must observe this to re-run room-entry logic; the
			// state write alone is not enough.
			events = append(events, types.Event{
				Type: "travel",
				Data: map[string]any{"room": a.Room},
			})

		case types.AddPartyMember:
			// Lookup is against the recruited roster, not the active party.
			if a.Name == "" || !state.IsRecruited(s, a.Name) {
				continue
			}
			if state.InParty(s, a.Name) || len(s.Party.Active) >= state.PartyCapacity {
				continue
			}
			s.Party.Active = append(s.Party.Active, a.Name)

		case types.RemovePartyMember:
			for i, n := range s.Party.Active {
				if n == a.Name {
					s.Party.Active = append(s.Party.Active[:i], s.Party.Active[i+1:]...)
					break
				}
			}

		case types.SpawnNPC:
			if a.NPC == "" || a.Room == "" {
				continue
			}
			s.NPCLocations[a.NPC] = a.Room
			events = append(events, types.Event{
				Type: "npc_spawned",
				Data: map[string]any{"npc": a.NPC, "room": a.Room},
			})

		case types.RemoveNPC:
			if a.NPC == "" {
				continue
			}
			s.NPCLocations[a.NPC] = ""
			events = append(events, types.Event{
				Type: "npc_removed",
				Data: map[string]any{"npc": a.NPC},
			})

		case types.AdvanceTime:
			if a.Hours <= 0 {
				continue
			}
			state.AdvanceClock(s, a.Hours)
			// Quest re-evaluation is a subscriber of this event, not a
			// direct call, keeping the dependency graph acyclic.
			events = append(events, types.Event{
				Type: "time_advanced",
				Data: map[string]any{"hours": a.Hours, "day": s.Day, "hour": s.Hour},
			})

		case types.AllyFaction:
			if a.Faction == "" {
				continue
			}
			s.Allies[a.Faction] = true

		case types.BreakAlliance:
			delete(s.Allies, a.Faction)

		case types.UnlockRegion:
			if a.Region == "" {
				continue
			}
			s.Regions[a.Region] = true

		case types.LockRegion:
			delete(s.Regions, a.Region)

		case types.DisplayMessage:
			if a.Text == "" {
				continue
			}
			output = append(output, a.Text)

		case types.StartTimer:
			state.StartTimer(s, a.Timer, a.Hours)

		case types.TriggerCombat:
			if a.NPC == "" {
				continue
			}
			events = append(events, types.Event{
				Type: "combat_triggered",
				Data: map[string]any{"npc": a.NPC},
			})

		default:
			// Unknown action kind — skip silently.
		}
	}

	return events, output
}

func hasAbility(s *types.WorldState, ability string) bool {
	for _, a := range s.Abilities {
		if a == ability {
			return true
		}
	}
	return false
}
