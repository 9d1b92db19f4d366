package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/emberwood/engine/status"
	"github.com/nathoo/emberwood/types"
)

// roomDisplayName prefers the room's defined name and falls back to
// title-casing the id: "ashen_cave" -> "Ashen Cave".
func (m Model) roomDisplayName(id string) string {
	if room, ok := m.defs.Rooms[id]; ok && room.Name != "" {
		return room.Name
	}
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// effectIcons renders one icon per active effect, in a stable order.
func effectIcons(effects map[types.EffectKind]*types.EffectState) string {
	if len(effects) == 0 {
		return ""
	}
	kinds := make([]string, 0, len(effects))
	for k := range effects {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	var b strings.Builder
	for _, k := range kinds {
		b.WriteString(status.Icon(types.EffectKind(k)))
	}
	return b.String()
}

// renderStatusBar produces a full-width inverted status line showing
// the current room, vitals, active afflictions, and turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	left := fmt.Sprintf(" %s | HP %d/%d | Mana %d/%d | %dg",
		m.roomDisplayName(s.Room),
		s.Player.HP, s.Player.MaxHP,
		s.Player.Mana, s.Player.MaxMana,
		s.Player.Gold)

	if icons := effectIcons(s.Player.Effects); icons != "" {
		left += " | " + icons
	}
	if s.Encounter != nil {
		left += fmt.Sprintf(" | ⚔ %s %d/%d",
			s.Encounter.Enemy.Name, s.Encounter.Enemy.HP, s.Encounter.Enemy.MaxHP)
	}

	right := fmt.Sprintf("T:%d ", s.TurnCount)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
