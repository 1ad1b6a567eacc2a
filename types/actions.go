package types

// Action is a single state mutation or side-effect instruction, one concrete
// type per kind. Execution lives in engine/actions; an action with missing
// parameters (zero-value identifiers) or an unrecognized type is skipped
// without blocking the rest of its list.
type Action interface {
	action()
}

// SetFlag unconditionally overwrites a flag.
type SetFlag struct {
	Flag  string
	Value bool
}

// GrantItem adds an item to inventory. Set semantics: already held is a no-op.
type GrantItem struct {
	Item string
}

// RemoveItem removes an item from inventory. Absent is a no-op.
type RemoveItem struct {
	Item string
}

// GrantGold adds to gold.
type GrantGold struct {
	Amount int
}

// RemoveGold subtracts from gold, clamping at zero.
type RemoveGold struct {
	Amount int
}

// GrantAbility records a named ability. The ability system itself lives
// outside this core.
type GrantAbility struct {
	Ability string
}

// ForceTravel overwrites the current room and emits a travel signal the host
// must observe to re-run room-entry logic.
type ForceTravel struct {
	Room string
}

// AddPartyMember moves a recruited companion into the active party.
// No-op if not recruited, already active, or the party is full.
type AddPartyMember struct {
	Name string
}

// RemovePartyMember removes a companion from the active party.
type RemovePartyMember struct {
	Name string
}

// SpawnNPC places an NPC in a room. This mutates room presence, dispatched
// to the room collaborator, not world state proper.
type SpawnNPC struct {
	NPC  string
	Room string
}

// RemoveNPC removes an NPC from the world.
type RemoveNPC struct {
	NPC string
}

// AdvanceTime adds in-game hours, rolling the day over at 24, and emits a
// time-advanced signal for the quest subsystem to observe.
type AdvanceTime struct {
	Hours float64
}

// AllyFaction adds a faction to the allied set. Idempotent.
type AllyFaction struct {
	Faction string
}

// BreakAlliance removes a faction from the allied set. Idempotent.
type BreakAlliance struct {
	Faction string
}

// UnlockRegion adds a region to the unlocked set. Idempotent.
type UnlockRegion struct {
	Region string
}

// LockRegion removes a region from the unlocked set. Idempotent.
type LockRegion struct {
	Region string
}

// DisplayMessage emits a text line. Pure side effect, no state mutation.
type DisplayMessage struct {
	Text string
}

// StartTimer starts (or restarts) a named timer at the current clock.
type StartTimer struct {
	Timer string
	Hours float64
}

// TriggerCombat signals the combat collaborator. The engine owns no combat
// state; outcome returns only through flags and inventory.
type TriggerCombat struct {
	NPC string
}

// UnknownAction preserves an unrecognized authored kind. Always a no-op.
type UnknownAction struct {
	Kind string
}

func (SetFlag) action()           {}
func (GrantItem) action()         {}
func (RemoveItem) action()        {}
func (GrantGold) action()         {}
func (RemoveGold) action()        {}
func (GrantAbility) action()      {}
func (ForceTravel) action()       {}
func (AddPartyMember) action()    {}
func (RemovePartyMember) action() {}
func (SpawnNPC) action()          {}
func (RemoveNPC) action()         {}
func (AdvanceTime) action()       {}
func (AllyFaction) action()       {}
func (BreakAlliance) action()     {}
func (UnlockRegion) action()      {}
func (LockRegion) action()        {}
func (DisplayMessage) action()    {}
func (StartTimer) action()        {}
func (TriggerCombat) action()     {}
func (UnknownAction) action()     {}
