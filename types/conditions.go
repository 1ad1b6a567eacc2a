package types

// Condition is a pure predicate over WorldState, one concrete type per kind.
// Evaluation lives in engine/rules; a value the evaluator does not recognize
// evaluates false, so one malformed definition cannot abort an event scan.
type Condition interface {
	condition()
}

// FirstVisit is true iff Event has never been recorded in the triggered set.
type FirstVisit struct {
	Event string
}

// FirstVisitAfterFlag is the conjunction of a flag check and a first-visit
// check: flag present and equal to Value, and Event untriggered.
type FirstVisitAfterFlag struct {
	Event string
	Flag  string
	Value bool
}

// FlagEquals compares a flag against Value. An unset flag reads as false.
type FlagEquals struct {
	Flag  string
	Value bool
}

// HasItem tests inventory membership against Present, so Present=false
// expresses "must NOT have the item".
type HasItem struct {
	Item    string
	Present bool
}

// QuestCompleted tests completed-quest membership against Done.
type QuestCompleted struct {
	Quest string
	Done  bool
}

// QuestActive tests active-quest membership against Active.
type QuestActive struct {
	Quest  string
	Active bool
}

// MinRecruits is true iff the recruited roster has at least Count members.
type MinRecruits struct {
	Count int
}

// MinGold is true iff gold is at least Amount.
type MinGold struct {
	Amount int
}

// MinLevel is true iff the player level is at least Level.
type MinLevel struct {
	Level int
}

// TimerComplete is true iff the named timer exists and its duration has
// elapsed on the in-game clock.
type TimerComplete struct {
	Timer string
}

// NodeDiscussed guards a dialogue choice on whether the referenced node has
// been visited in this NPC's conversation history. Discussed=false expresses
// "require NOT discussed". Always false outside a conversation.
type NodeDiscussed struct {
	Node      string
	Discussed bool
}

// UnknownCondition preserves an unrecognized authored kind. Always false.
type UnknownCondition struct {
	Kind string
}

func (FirstVisit) condition()          {}
func (FirstVisitAfterFlag) condition() {}
func (FlagEquals) condition()          {}
func (HasItem) condition()             {}
func (QuestCompleted) condition()      {}
func (QuestActive) condition()         {}
func (MinRecruits) condition()         {}
func (MinGold) condition()             {}
func (MinLevel) condition()            {}
func (TimerComplete) condition()       {}
func (NodeDiscussed) condition()       {}
func (UnknownCondition) condition()    {}
