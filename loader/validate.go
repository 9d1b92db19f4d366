package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

var validEffects = map[types.EffectKind]bool{
	types.EffectPoison: true,
	types.EffectBurn:   true,
	types.EffectBleed:  true,
	types.EffectStun:   true,
}

var validSlots = map[types.Slot]bool{
	types.SlotWeapon:    true,
	types.SlotArmor:     true,
	types.SlotAccessory: true,
}

// validPlaceholders are the tokens combat interpolates in boss dialogue.
var validPlaceholders = map[string]bool{
	"player": true,
	"weapon": true,
	"room":   true,
}

// unknownPlaceholder returns the first {token} in the line that combat
// would not interpolate, or "" if every placeholder is known.
func unknownPlaceholder(line string) string {
	for {
		i := strings.Index(line, "{")
		if i < 0 {
			return ""
		}
		rest := line[i+1:]
		j := strings.Index(rest, "}")
		if j < 0 {
			return ""
		}
		if tok := rest[:j]; !validPlaceholders[tok] {
			return tok
		}
		line = rest[j+1:]
	}
}

// validate checks every cross-reference in the compiled world so the
// engine can trust its ids at runtime.
func validate(defs *state.Defs) error {
	if defs.Game.Start == "" {
		return fmt.Errorf("game has no start room")
	}
	if _, ok := defs.Rooms[defs.Game.Start]; !ok {
		return fmt.Errorf("start room %q is not defined", defs.Game.Start)
	}

	for id, item := range defs.Items {
		switch item.Kind {
		case types.ItemConsumable:
			if item.Heal == 0 && item.Cures == "" {
				return fmt.Errorf("item %q: consumable with no heal and no cures", id)
			}
			if item.Cures != "" && !validEffects[item.Cures] {
				return fmt.Errorf("item %q: unknown effect %q", id, item.Cures)
			}
		case types.ItemEquipable:
			if !validSlots[item.Slot] {
				return fmt.Errorf("item %q: unknown slot %q", id, item.Slot)
			}
		case types.ItemKey:
		default:
			return fmt.Errorf("item %q: unknown kind %q", id, item.Kind)
		}
	}

	for id, enemy := range defs.Enemies {
		if enemy.MaxHP <= 0 {
			return fmt.Errorf("enemy %q: hp must be positive", id)
		}
		for _, loot := range enemy.Loot {
			if _, ok := defs.Items[loot]; !ok {
				return fmt.Errorf("enemy %q: unknown loot item %q", id, loot)
			}
		}
		if inf := enemy.Inflicts; inf != nil {
			if !validEffects[inf.Kind] {
				return fmt.Errorf("enemy %q: unknown effect %q", id, inf.Kind)
			}
			if inf.Chance < 0 || inf.Chance > 1 {
				return fmt.Errorf("enemy %q: affliction chance %v out of range", id, inf.Chance)
			}
		}
		if b := enemy.Boss; b != nil {
			if len(b.Intros) == 0 {
				return fmt.Errorf("enemy %q: boss has no intro lines", id)
			}
			if len(b.Taunts) == 0 {
				return fmt.Errorf("enemy %q: boss has no taunt lines", id)
			}
			for _, line := range b.Intros {
				if bad := unknownPlaceholder(line); bad != "" {
					return fmt.Errorf("enemy %q: unknown placeholder %q in boss intro", id, bad)
				}
			}
			for _, line := range b.Taunts {
				if bad := unknownPlaceholder(line); bad != "" {
					return fmt.Errorf("enemy %q: unknown placeholder %q in boss taunt", id, bad)
				}
			}
		}
	}

	for id, room := range defs.Rooms {
		for dir, target := range room.Exits {
			if _, ok := defs.Rooms[target]; !ok {
				return fmt.Errorf("room %q: exit %q leads to unknown room %q", id, dir, target)
			}
		}
		for _, item := range room.Items {
			if _, ok := defs.Items[item]; !ok {
				return fmt.Errorf("room %q: unknown item %q", id, item)
			}
		}
		for _, enemy := range room.Enemies {
			if _, ok := defs.Enemies[enemy]; !ok {
				return fmt.Errorf("room %q: unknown enemy %q", id, enemy)
			}
		}
	}

	seen := map[string]bool{}
	for _, q := range defs.Quests {
		if seen[q.ID] {
			return fmt.Errorf("duplicate quest %q", q.ID)
		}
		seen[q.ID] = true
		if q.Count <= 0 {
			return fmt.Errorf("quest %q: count must be positive", q.ID)
		}
		switch q.Kind {
		case types.QuestCollect:
			if _, ok := defs.Items[q.Target]; !ok {
				return fmt.Errorf("quest %q: unknown item target %q", q.ID, q.Target)
			}
		case types.QuestDefeat:
			if _, ok := defs.Enemies[q.Target]; !ok {
				return fmt.Errorf("quest %q: unknown enemy target %q", q.ID, q.Target)
			}
		case types.QuestVisit:
			if _, ok := defs.Rooms[q.Target]; !ok {
				return fmt.Errorf("quest %q: unknown room target %q", q.ID, q.Target)
			}
		default:
			return fmt.Errorf("quest %q: unknown kind %q", q.ID, q.Kind)
		}
	}

	return nil
}
