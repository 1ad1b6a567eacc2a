package tui

// history remembers submitted input lines for Up/Down recall at the prompt.
// pos == len(lines) means the prompt is live, not recalling.
type history struct {
	lines []string
	limit int
	pos   int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// Remember records a submitted line and puts the cursor back on the live
// prompt. A line identical to the previous one is not recorded twice; the
// oldest line is dropped once the limit is reached.
func (h *history) Remember(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
		if len(h.lines) > h.limit {
			h.lines = h.lines[1:]
		}
	}
	h.pos = len(h.lines)
}

// Older steps the cursor back toward the oldest line. Repeated calls at the
// oldest line keep returning it.
func (h *history) Older() (string, bool) {
	if len(h.lines) == 0 {
		return "", false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.lines[h.pos], true
}

// Newer steps the cursor forward. Past the most recent line it reports false,
// meaning the prompt should go back to fresh input.
func (h *history) Newer() (string, bool) {
	if h.pos >= len(h.lines) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.lines) {
		return "", false
	}
	return h.lines[h.pos], true
}
