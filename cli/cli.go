// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Lorebound engine.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tmarren/lorebound/engine"
	"github.com/tmarren/lorebound/engine/save"
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/storage"
	"github.com/tmarren/lorebound/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	Store     storage.Store
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given engine and save store.
func New(eng *engine.Engine, defs *state.Defs, store storage.Store) *CLI {
	return &CLI{
		Engine: eng,
		Defs:   defs,
		Store:  store,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro, enters the starting room,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Defs.Game.Intro != "" {
		c.printLine(c.Defs.Game.Intro)
		c.printLine("")
	}

	c.printResult(c.Engine.EnterRoom(c.Engine.State.Room))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/saves":
		c.cmdSaves()

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(slot string) {
	if slot == "" {
		slot = "quicksave"
	}

	data, err := save.Save(c.Engine.State, c.Defs)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := c.Store.Save(context.Background(), slot, data); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", slot))
}

func (c *CLI) cmdLoad(slot string) {
	if slot == "" {
		slot = "quicksave"
	}

	data, err := c.Store.Load(context.Background(), slot)
	if errors.Is(err, storage.ErrNotFound) {
		c.printSystem(fmt.Sprintf("No save in slot %s.", slot))
		return
	}
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	save.ApplySave(c.Engine.State, sd)
	c.printSystem(fmt.Sprintf("Game loaded from %s (day %d).", slot, c.Engine.State.Day))

	// A save taken mid-dialogue carries the pending node; resume it instead
	// of describing the room. Resuming also discards any conversation that
	// was live before the load.
	if result, ok := c.Engine.ResumeConversation(); ok {
		c.printResult(result)
		return
	}

	result := c.Engine.Step("look")
	c.printResult(result)
}

func (c *CLI) cmdSaves() {
	slots, err := c.Store.List(context.Background())
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing saves failed: %v", err))
		return
	}
	if len(slots) == 0 {
		c.printSystem("No saves.")
		return
	}
	for _, s := range slots {
		if s.SavedAt.IsZero() {
			c.printSystem(s.Slot)
		} else {
			c.printSystem(fmt.Sprintf("%s — %s", s.Slot, s.SavedAt.Format("2006-01-02 15:04")))
		}
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [slot]  — Save game (default: quicksave)",
		"  /load [slot]  — Load game (default: quicksave)",
		"  /saves        — List save slots",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Game commands:",
		"  look (l)          — Describe the room",
		"  go <dir>          — Move (or just type n/s/e/w)",
		"  talk <npc>        — Talk to someone; answer with a number",
		"  inventory (i)     — Check what you're carrying",
		"  party             — Show companions",
		"  status            — Show day, time, gold and level",
		"  wait (z)          — Let an hour pass",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Room: %s", s.Room))
	c.printSystem(fmt.Sprintf("Day %d, hour %.1f", s.Day, s.Hour))
	c.printSystem(fmt.Sprintf("Gold: %d  Level: %d", s.Gold, s.Level))
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Inventory))
	if len(s.Flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Triggered) > 0 {
		c.printSystem(fmt.Sprintf("Triggered: %v", s.Triggered))
	}
	if len(s.Timers) > 0 {
		c.printSystem(fmt.Sprintf("Timers: %v", s.Timers))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
	for i, label := range result.Choices {
		c.printLine(fmt.Sprintf("  %d. %s", i+1, label))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
