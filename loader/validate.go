package loader

import (
	"fmt"

	"github.com/tmarren/lorebound/engine/state"
)

// validate performs structural checks only. Content references (rooms named
// by events, nodes named by choices, items named by guards) are deliberately
// not checked: a dangling reference is inert until evaluated, where it
// resolves to false or a no-op rather than erroring.
func validate(defs *state.Defs) error {
	if defs.Game.Start == "" {
		return fmt.Errorf("game.start is required")
	}
	if _, ok := defs.Rooms[defs.Game.Start]; !ok {
		return fmt.Errorf("start room %q is not defined", defs.Game.Start)
	}
	return nil
}
