package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/engine/status"
	"github.com/nathoo/emberwood/types"
)

// combatVerbs are the commands allowed during combat.
var combatVerbs = map[string]bool{
	"attack":    true,
	"skill":     true,
	"flee":      true,
	"use":       true,
	"status":    true,
	"inventory": true,
	"look":      true,
	"verbose":   true,
	"help":      true,
}

// isCombatVerb returns true if the verb is allowed during combat.
func isCombatVerb(verb string) bool {
	return combatVerbs[verb]
}

// DamageCalc computes attack damage: max(1, attack + variance - defense).
// Variance is rolled by the caller so the math stays deterministic and
// testable.
func DamageCalc(attack, variance, defense int) int {
	damage := attack + variance - defense
	if damage < 1 {
		damage = 1
	}
	return damage
}

// ApplyCrit scales damage by the critical multiplier, truncating toward
// zero.
func ApplyCrit(damage int, multiplier float64) int {
	return int(float64(damage) * multiplier)
}

// SkillDamage computes the focused-strike damage: attack * multiplier,
// flat. The strike pierces defense and has no variance or critical roll.
func SkillDamage(attack, multiplier int) int {
	return attack * multiplier
}

// startEncounter clones the enemy template into a live instance and
// opens combat. Boss enemies get their intro lines the first time.
func (e *Engine) startEncounter(enemyID string) []string {
	enemy := state.SpawnEnemy(e.Defs, enemyID)
	if enemy == nil {
		return []string{"There is nothing here to fight."}
	}
	enc := &types.Encounter{
		Enemy: enemy,
		Phase: types.PhaseEngaging,
	}
	e.State.Encounter = enc

	out := []string{fmt.Sprintf("A %s blocks your path! (%d hp)", enemy.Name, enemy.HP)}
	if enemy.Boss != nil && len(enemy.Boss.Intros) > 0 && !enc.IntroShown {
		idx := e.RNG.Pick(len(enemy.Boss.Intros))
		out = append(out, e.interpolate(enemy.Boss.Intros[idx]))
		enc.IntroShown = true
	}
	enc.Phase = types.PhasePlayerTurn
	return out
}

// interpolate fills {player}, {weapon} and {room} placeholders in boss
// dialogue.
func (e *Engine) interpolate(line string) string {
	weapon := "bare hands"
	if id, ok := e.State.Player.Equipment[types.SlotWeapon]; ok {
		if item, found := e.Defs.Items[id]; found {
			weapon = item.Name
		}
	}
	room := e.State.Room
	if def, ok := e.Defs.Rooms[e.State.Room]; ok {
		room = def.Name
	}
	r := strings.NewReplacer(
		"{player}", e.State.Player.Name,
		"{weapon}", weapon,
		"{room}", room,
	)
	return r.Replace(line)
}

// playerAttack resolves a basic attack and then runs the enemy's half
// of the round.
func (e *Engine) playerAttack() []string {
	enc := e.State.Encounter
	enemy := enc.Enemy

	variance := e.RNG.Range(-2, 2)
	damage := DamageCalc(e.State.Player.Attack, variance, enemy.Defense)
	crit := e.RNG.Chance(e.Defs.Tuning.CritChance)
	if crit {
		damage = ApplyCrit(damage, e.Defs.Tuning.CritMultiplier)
	}
	enemy.Damage(damage)

	out := []string{fmt.Sprintf("You strike the %s for %d damage.", enemy.Name, damage)}
	if crit {
		out[0] = fmt.Sprintf("Critical hit! You strike the %s for %d damage.", enemy.Name, damage)
	}
	if e.State.Verbose {
		out = append(out, fmt.Sprintf("  [atk %d %+d variance vs def %d]", e.State.Player.Attack, variance, enemy.Defense))
	}

	e.finishRound(&out)
	return out
}

// playerSkill resolves the focused strike, spending mana for a heavy
// hit that ignores variance.
func (e *Engine) playerSkill() []string {
	enc := e.State.Encounter
	enemy := enc.Enemy
	cost := e.Defs.Tuning.SkillManaCost

	if e.State.Player.Mana < cost {
		return []string{fmt.Sprintf("Not enough mana (need %d, have %d).", cost, e.State.Player.Mana)}
	}
	e.State.Player.Mana -= cost

	damage := SkillDamage(e.State.Player.Attack, e.Defs.Tuning.SkillMultiplier)
	enemy.Damage(damage)

	out := []string{fmt.Sprintf("You channel your focus and hit the %s for %d damage! (-%d mana)", enemy.Name, damage, cost)}

	e.finishRound(&out)
	return out
}

// playerFlee attempts to break off combat. On failure the enemy still
// gets its half of the round.
func (e *Engine) playerFlee() []string {
	if e.RNG.Chance(e.Defs.Tuning.FleeChance) {
		e.endEncounter(types.PhaseFled)
		return []string{"You turn and run, escaping the fight."}
	}

	out := []string{"You try to run but can't get away!"}
	e.finishRound(&out)
	return out
}

// finishRound runs everything that happens after the player's action:
// enemy death check, effect ticks on both sides, and the enemy attack.
func (e *Engine) finishRound(out *[]string) {
	enc := e.State.Encounter
	enemy := enc.Enemy
	enc.Rounds++

	if enemy.HP <= 0 {
		e.finishVictory(out)
		return
	}

	*out = append(*out, status.Tick(enemy.Name, enemy.Effects, enemy.Damage)...)
	if enemy.HP <= 0 {
		e.finishVictory(out)
		return
	}

	enc.Phase = types.PhaseEnemyTurn
	if status.Stunned(enemy.Effects) {
		*out = append(*out, fmt.Sprintf("%s The %s is stunned and cannot act!", status.Icon(types.EffectStun), enemy.Name))
	} else {
		e.enemyAttack(out)
	}

	*out = append(*out, status.Tick(e.State.Player.Name, e.State.Player.Effects, e.State.Player.Damage)...)

	if e.State.Player.HP <= 0 {
		e.finishDefeat(out)
		return
	}
	enc.Phase = types.PhasePlayerTurn
}

// enemyAttack resolves the enemy's strike against the player, including
// any affliction it carries.
func (e *Engine) enemyAttack(out *[]string) {
	enemy := e.State.Encounter.Enemy

	variance := e.RNG.Range(-2, 2)
	damage := DamageCalc(enemy.Attack, variance, e.State.Player.Defense)
	e.State.Player.Damage(damage)

	*out = append(*out, fmt.Sprintf("The %s hits you for %d damage.", enemy.Name, damage))
	if e.State.Verbose {
		*out = append(*out, fmt.Sprintf("  [atk %d %+d variance vs def %d]", enemy.Attack, variance, e.State.Player.Defense))
	}

	if inf := enemy.Inflicts; inf != nil && e.State.Player.HP > 0 && e.RNG.Chance(inf.Chance) {
		status.Apply(e.State.Player.Effects, inf.Kind, inf.Turns)
		*out = append(*out, fmt.Sprintf("%s You are afflicted with %s for %d turns!", status.Icon(inf.Kind), inf.Kind, inf.Turns))
	}
}

// finishVictory hands out loot, gold and xp, removes the enemy from
// the room, and closes the encounter.
func (e *Engine) finishVictory(out *[]string) {
	enemy := e.State.Encounter.Enemy

	*out = append(*out, fmt.Sprintf("The %s is defeated!", enemy.Name))

	if enemy.Boss != nil && len(enemy.Boss.Taunts) > 0 {
		idx := e.RNG.Pick(len(enemy.Boss.Taunts))
		*out = append(*out, e.interpolate(enemy.Boss.Taunts[idx]))
	}

	if enemy.Gold > 0 {
		e.State.Player.Gold += enemy.Gold
		*out = append(*out, fmt.Sprintf("You loot %d gold.", enemy.Gold))
	}
	if enemy.XP > 0 {
		e.State.Player.XP += enemy.XP
		*out = append(*out, fmt.Sprintf("You gain %d xp.", enemy.XP))
	}
	for _, itemID := range enemy.Loot {
		e.State.Player.Inventory = append(e.State.Player.Inventory, itemID)
		name := itemID
		if item, ok := e.Defs.Items[itemID]; ok {
			name = item.Name
		}
		*out = append(*out, fmt.Sprintf("You found: %s!", name))
	}

	state.RemoveRoomEnemy(e.State, e.State.Room, enemy.ID)
	e.endEncounter(types.PhaseVictory)
	e.raise(types.QuestDefeat, enemy.ID)
}

// finishDefeat ends the game. The state stays readable but no further
// world commands are accepted.
func (e *Engine) finishDefeat(out *[]string) {
	e.endEncounter(types.PhaseDefeat)
	e.State.GameOver = true
	*out = append(*out, "You collapse. Darkness takes you.", "GAME OVER")
}

// endEncounter records the terminal phase, logs the resolution, and
// discards the clone.
func (e *Engine) endEncounter(phase types.CombatPhase) {
	enc := e.State.Encounter
	enc.Phase = phase
	e.Log.Debug("encounter resolved",
		"enemy", enc.Enemy.ID, "phase", string(phase), "rounds", enc.Rounds)
	e.State.Encounter = nil
}
