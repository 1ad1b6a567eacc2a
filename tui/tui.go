// Package tui is the full-screen Bubble Tea front end: a scrollback viewport
// over the narrative, a status bar, and a single input line.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tmarren/lorebound/engine"
	"github.com/tmarren/lorebound/engine/save"
	"github.com/tmarren/lorebound/engine/state"
	"github.com/tmarren/lorebound/storage"
	"github.com/tmarren/lorebound/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Lorebound TUI.
type Model struct {
	engine *engine.Engine
	defs   *state.Defs
	store  storage.Store

	viewport viewport.Model
	input    textinput.Model
	history  *history

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	choices  []string // dialogue choice labels
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine and save store.
func New(eng *engine.Engine, defs *state.Defs, store storage.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		defs:    defs,
		store:   store,
		input:   ti,
		history: newHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, defs *state.Defs, store storage.Store) error {
	m := New(eng, defs, store)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces intro text and the
// starting room.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string

		lines = append(lines, m.defs.Game.Title+" v"+m.defs.Game.Version+" by "+m.defs.Game.Author)
		lines = append(lines, "")

		if m.defs.Game.Intro != "" {
			lines = append(lines, m.defs.Game.Intro)
			lines = append(lines, "")
		}

		result := m.engine.EnterRoom(m.engine.State.Room)
		lines = append(lines, result.Output...)

		return gameOutputMsg{lines: lines, choices: result.Choices}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if line, ok := m.history.Older(); ok {
				m.input.SetValue(line)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if line, ok := m.history.Newer(); ok {
				m.input.SetValue(line)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case tea.MouseMsg:
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, vpCmd

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Remember(input)

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Game command or dialogue selection.
	result := m.engine.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output, choices: result.Choices})
	return m, nil
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	for i, label := range msg.choices {
		m.rawLines = append(m.rawLines, rawLine{
			text: fmt.Sprintf("  %d. %s", i+1, label),
			kind: kindChoice,
		})
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordwrap.String(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/saves":
		return m.cmdSaves(), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(slot string) []string {
	if slot == "" {
		slot = "quicksave"
	}

	data, err := save.Save(m.engine.State, m.defs)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := m.store.Save(context.Background(), slot, data); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Game saved to %s.", slot)}
}

func (m *Model) cmdLoad(slot string) []string {
	if slot == "" {
		slot = "quicksave"
	}

	data, err := m.store.Load(context.Background(), slot)
	if errors.Is(err, storage.ErrNotFound) {
		return []string{fmt.Sprintf("No save in slot %s.", slot)}
	}
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	save.ApplySave(m.engine.State, sd)

	output := []string{fmt.Sprintf("Game loaded from %s (day %d).", slot, m.engine.State.Day)}

	// Resume a dialogue saved mid-conversation; otherwise re-describe the
	// room. Either way the pre-load conversation is gone.
	if result, ok := m.engine.ResumeConversation(); ok {
		output = append(output, result.Output...)
		for i, label := range result.Choices {
			output = append(output, fmt.Sprintf("  %d. %s", i+1, label))
		}
		return output
	}

	result := m.engine.Step("look")
	output = append(output, result.Output...)
	return output
}

func (m *Model) cmdSaves() []string {
	slots, err := m.store.List(context.Background())
	if err != nil {
		return []string{fmt.Sprintf("Listing saves failed: %v", err)}
	}
	if len(slots) == 0 {
		return []string{"No saves."}
	}
	var output []string
	for _, s := range slots {
		if s.SavedAt.IsZero() {
			output = append(output, s.Slot)
		} else {
			output = append(output, fmt.Sprintf("%s — %s", s.Slot, s.SavedAt.Format("2006-01-02 15:04")))
		}
	}
	return output
}

func (m *Model) cmdHelp() []string {
	return []string{
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
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	s := m.engine.State
	output := []string{
		fmt.Sprintf("Room: %s", s.Room),
		fmt.Sprintf("Day %d, hour %.1f", s.Day, s.Hour),
		fmt.Sprintf("Gold: %d  Level: %d", s.Gold, s.Level),
		fmt.Sprintf("Inventory: %v", s.Inventory),
	}
	if len(s.Flags) > 0 {
		output = append(output, fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Triggered) > 0 {
		output = append(output, fmt.Sprintf("Triggered: %v", s.Triggered))
	}
	return output
}

func (m *Model) formatTrace(result types.Result) []string {
	var lines []string
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
