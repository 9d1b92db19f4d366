package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleRoomDesc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleQuest = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindYouSee
	kindExits
	kindDanger
	kindCombat
	kindQuest
	kindDialogue
	kindSystem
	kindError
	kindTrace
)

// combatMarkers are substrings that mark a line as combat narration.
var combatMarkers = []string{
	"You strike",
	"Critical hit!",
	"You channel your focus",
	"hits you for",
	"blocks your path",
	"is stunned",
	"is defeated",
	"You loot",
	"You found:",
	"poison damage",
	"burn damage",
	"bleeds for",
	"afflicted with",
	"recovers from",
	"turn and run",
	"can't get away",
}

// errorMarkers are substrings that mark a line as a refusal or failure.
var errorMarkers = []string{
	"You can't",
	"You don't",
	"There is no",
	"Not enough",
	"You need",
	"You are not suffering",
	"Nothing happens",
	"nothing here to fight",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You see:"):
		return kindYouSee
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasPrefix(line, "Lurking here:"):
		return kindDanger
	case strings.HasPrefix(line, "Quest progress:"), strings.HasPrefix(line, "Quest complete:"):
		return kindQuest
	case line == "GAME OVER", strings.HasPrefix(line, "You collapse"):
		return kindError
	}
	for _, marker := range errorMarkers {
		if strings.Contains(line, marker) {
			return kindError
		}
	}
	for _, marker := range combatMarkers {
		if strings.Contains(line, marker) {
			return kindCombat
		}
	}
	if containsQuotedSpeech(line) {
		return kindDialogue
	}
	return kindRoomDesc
}

// containsQuotedSpeech checks if a line contains NPC dialogue in double
// quotes, as produced by the talk command.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '"' {
			if inQuote && quoteLen > 5 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}

// styledYouSee renders "You see: item1, item2." with item names bold.
func styledYouSee(line string) string {
	const prefix = "You see: "
	if !strings.HasPrefix(line, prefix) {
		return styleRoomDesc.Render(line)
	}
	return styleRoomDesc.Render(prefix) + styleYouSee.Render(line[len(prefix):])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
