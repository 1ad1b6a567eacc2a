package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// roomDisplayName derives a human-readable name from a room ID.
// "great_hall" -> "Great Hall", "castle_gates" -> "Castle Gates".
func roomDisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing current
// room, in-game clock, gold, and party size.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	left := fmt.Sprintf(" %s | Day %d %02d:%02d",
		roomDisplayName(s.Room), s.Day, int(s.Hour), int(s.Hour*60)%60)

	right := fmt.Sprintf("%dg ", s.Gold)
	if len(s.Party.Active) > 0 {
		candidate := fmt.Sprintf("Party: %s | %dg ", strings.Join(s.Party.Active, ", "), s.Gold)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Party: %d | %dg ", len(s.Party.Active), s.Gold)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
