// Package parser converts room-command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching. Dialogue selections
// never pass through here; the conversation state machine resolves those.
package parser

import (
	"strings"

	"github.com/tmarren/lorebound/types"
)

var directionExpansions = map[string]string{
	"n":    "north",
	"s":    "south",
	"e":    "east",
	"w":    "west",
	"ne":   "northeast",
	"nw":   "northwest",
	"se":   "southeast",
	"sw":   "southwest",
	"u":    "up",
	"d":    "down",
	"up":   "up",
	"down": "down",
}

// Full direction names that are standalone shortcuts for "go <dir>".
var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"northeast": true, "northwest": true, "southeast": true, "southwest": true,
	"up": true, "down": true,
}

var verbAliases = map[string]string{
	// Look
	"l":       "look",
	"examine": "look",
	"x":       "look",

	// Movement
	"walk":    "go",
	"run":     "go",
	"move":    "go",
	"head":    "go",
	"enter":   "go",
	"travel":  "go",
	"proceed": "go",

	// Talk / Dialogue
	"speak":    "talk",
	"chat":     "talk",
	"converse": "talk",
	"greet":    "talk",

	// Party
	"companions": "party",
	"roster":     "party",

	// Miscellaneous
	"inv":   "inventory",
	"i":     "inventory",
	"z":     "wait",
	"rest":  "wait",
	"sleep": "wait",
	"time":  "status",
	"stats": "status",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "n", "south", etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return types.Intent{Verb: "go", Object: dir}
		}
		if directionNames[words[0]] {
			return types.Intent{Verb: "go", Object: words[0]}
		}
	}

	// "talk to <npc>", "speak with <npc>", "look at <thing>".
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	return types.Intent{
		Verb:   verb,
		Object: strings.Join(rest, " "),
	}
}

// expandMultiWordVerbs handles "talk to", "look at" and similar phrases.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "look":
		if words[1] == "at" || words[1] == "around" {
			return append([]string{"look"}, words[2:]...)
		}
	case "wait":
		if words[1] == "for" {
			return append([]string{"wait"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}
