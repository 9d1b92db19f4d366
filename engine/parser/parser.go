// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/emberwood/types"
)

var directionExpansions = map[string]string{
	"n":    "north",
	"s":    "south",
	"e":    "east",
	"w":    "west",
	"u":    "up",
	"d":    "down",
	"up":   "up",
	"down": "down",
}

// Full direction names that are standalone shortcuts for "go <dir>".
var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"up": true, "down": true,
}

var verbAliases = map[string]string{
	// Look
	"l":       "look",
	"x":       "look",
	"examine": "look",
	"inspect": "look",
	"check":   "look",

	// Movement
	"walk":   "go",
	"run":    "go",
	"move":   "go",
	"head":   "go",
	"enter":  "go",
	"travel": "go",

	// Take / Drop
	"get":     "take",
	"grab":    "take",
	"pick":    "take",
	"discard": "drop",

	// Combat
	"hit":    "attack",
	"fight":  "attack",
	"strike": "attack",
	"kill":   "attack",
	"cast":   "skill",
	"focus":  "skill",
	"run!":   "flee",
	"escape": "flee",

	// Talk
	"ask":   "talk",
	"speak": "talk",
	"chat":  "talk",

	// Items
	"drink":  "use",
	"eat":    "use",
	"quaff":  "use",
	"wear":   "equip",
	"wield":  "equip",
	"remove": "unequip",

	// Misc
	"inv":     "inventory",
	"i":       "inventory",
	"stats":   "status",
	"st":      "status",
	"journal": "quests",
	"q":       "quests",
	"heal":    "sanctuary",
	"pray":    "sanctuary",
	"h":       "help",
	"?":       "help",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
	"to": true, "at": true, "with": true,
}

// Parse converts a raw command string into an Intent. The first word is
// the verb, everything after it (minus articles and prepositions) is
// the argument.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "n", "south", etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return types.Intent{Verb: "go", Arg: dir}
		}
		if directionNames[words[0]] {
			return types.Intent{Verb: "go", Arg: words[0]}
		}
	}

	// "pick up <item>" drops the particle before aliasing.
	if len(words) >= 2 && words[0] == "pick" && words[1] == "up" {
		words = append([]string{"take"}, words[2:]...)
	}

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	// "go n" and friends get the same expansion as bare directions.
	if verb == "go" && len(rest) == 1 {
		if dir, ok := directionExpansions[rest[0]]; ok {
			rest[0] = dir
		}
	}

	return types.Intent{
		Verb: verb,
		Arg:  strings.Join(rest, " "),
	}
}

// stripArticles removes articles and filler prepositions.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}
