// Package status implements timed status effects for combatants.
// Effects tick once per combat round on their bearer and expire when
// their remaining turn count reaches zero.
package status

import (
	"fmt"
	"sort"

	"github.com/nathoo/emberwood/types"
)

// Damage per tick for the flat damage-over-time effects. Bleed scales
// with how many ticks it has already dealt, so it is computed in Tick.
const (
	poisonDamage = 2
	burnDamage   = 3
	bleedBase    = 2
)

// Apply adds an effect to the target's effect map, or refreshes the
// duration if the effect is already active. A refresh restarts bleed
// from scratch: its stacks reset along with the duration.
func Apply(effects map[types.EffectKind]*types.EffectState, kind types.EffectKind, turns int) {
	if st, ok := effects[kind]; ok {
		st.Turns = turns
		st.Stacks = 0
		return
	}
	effects[kind] = &types.EffectState{Turns: turns}
}

// Active reports whether the effect is currently present.
func Active(effects map[types.EffectKind]*types.EffectState, kind types.EffectKind) bool {
	_, ok := effects[kind]
	return ok
}

// Stunned reports whether the bearer loses its next action.
func Stunned(effects map[types.EffectKind]*types.EffectState) bool {
	return Active(effects, types.EffectStun)
}

// Cure removes a single effect. It returns false if the effect was not
// active.
func Cure(effects map[types.EffectKind]*types.EffectState, kind types.EffectKind) bool {
	if _, ok := effects[kind]; !ok {
		return false
	}
	delete(effects, kind)
	return true
}

// CureAll removes every active effect and returns how many were cured.
func CureAll(effects map[types.EffectKind]*types.EffectState) int {
	n := len(effects)
	for kind := range effects {
		delete(effects, kind)
	}
	return n
}

// Tick advances every active effect on a combatant by one round and
// returns the narration lines produced. The name is the bearer's
// display name and damage applies damage to the bearer, clamping at
// zero hp. Effects are processed in a fixed kind order so output and
// hp math are deterministic.
func Tick(name string, effects map[types.EffectKind]*types.EffectState, damage func(int)) []string {
	if len(effects) == 0 {
		return nil
	}

	kinds := make([]types.EffectKind, 0, len(effects))
	for kind := range effects {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var lines []string
	for _, kind := range kinds {
		st := effects[kind]

		switch kind {
		case types.EffectPoison:
			damage(poisonDamage)
			lines = append(lines, fmt.Sprintf("%s %s takes %d poison damage.", Icon(kind), name, poisonDamage))
		case types.EffectBurn:
			damage(burnDamage)
			lines = append(lines, fmt.Sprintf("%s %s takes %d burn damage.", Icon(kind), name, burnDamage))
		case types.EffectBleed:
			dmg := bleedBase + st.Stacks
			st.Stacks++
			damage(dmg)
			lines = append(lines, fmt.Sprintf("%s %s bleeds for %d damage.", Icon(kind), name, dmg))
		case types.EffectStun:
			// No damage. The skipped action is handled by the
			// combat loop via Stunned.
		}

		st.Turns--
		if st.Turns <= 0 {
			delete(effects, kind)
			lines = append(lines, fmt.Sprintf("%s recovers from %s.", name, kind))
		}
	}
	return lines
}

// Icon returns the display glyph for an effect kind.
func Icon(kind types.EffectKind) string {
	switch kind {
	case types.EffectPoison:
		return "☠"
	case types.EffectBurn:
		return "🔥"
	case types.EffectStun:
		return "✖"
	case types.EffectBleed:
		return "🩸"
	default:
		return "?"
	}
}
