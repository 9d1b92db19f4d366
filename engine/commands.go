package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/emberwood/engine/equip"
	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/engine/status"
	"github.com/nathoo/emberwood/types"
)

func (e *Engine) cmdLook(arg string) []string {
	if arg == "" {
		return e.describeRoom(e.State.Room)
	}

	// "look <thing>" examines an item in the room or inventory.
	if id, ok := e.findItem(arg); ok {
		item := e.Defs.Items[id]
		if state.HasItem(e.State, id) || roomHasItem(e.State, e.State.Room, id) {
			if item.Description != "" {
				return []string{item.Description}
			}
			return []string{fmt.Sprintf("It's a %s.", item.Name)}
		}
	}
	return []string{"You don't see that here."}
}

func (e *Engine) cmdGo(arg string) []string {
	if arg == "" {
		return []string{"Go where?"}
	}

	room, ok := e.Defs.Rooms[e.State.Room]
	if !ok {
		return []string{"You are somewhere unknown."}
	}
	target, ok := room.Exits[arg]
	if !ok {
		return []string{"You can't go that way."}
	}

	e.State.Room = target
	e.raise(types.QuestVisit, target)
	return e.describeRoom(target)
}

func (e *Engine) cmdTalk(arg string) []string {
	room, ok := e.Defs.Rooms[e.State.Room]
	if !ok || len(room.NPCs) == 0 {
		return []string{"There is no one here to talk to."}
	}

	name := arg
	if name == "" && len(room.NPCs) == 1 {
		for n := range room.NPCs {
			name = n
		}
	}
	if name == "" {
		names := npcNames(room)
		return []string{"Talk to whom? (" + strings.Join(names, ", ") + ")"}
	}

	for n, lines := range room.NPCs {
		if strings.EqualFold(n, name) {
			out := make([]string, 0, len(lines))
			for _, line := range lines {
				out = append(out, fmt.Sprintf("%s: %q", n, line))
			}
			return out
		}
	}
	return []string{fmt.Sprintf("There is no %s here.", name)}
}

func (e *Engine) cmdTake(arg string) []string {
	if arg == "" {
		return []string{"Take what?"}
	}
	id, ok := e.findItem(arg)
	if !ok || !state.RemoveRoomItem(e.State, e.State.Room, id) {
		return []string{"You don't see that here."}
	}

	e.State.Player.Inventory = append(e.State.Player.Inventory, id)
	e.raise(types.QuestCollect, id)
	return []string{fmt.Sprintf("You take the %s.", e.Defs.Items[id].Name)}
}

func (e *Engine) cmdDrop(arg string) []string {
	if arg == "" {
		return []string{"Drop what?"}
	}
	id, ok := e.findItem(arg)
	if !ok || !state.RemoveItem(e.State, id) {
		return []string{"You don't have that."}
	}

	state.AddRoomItem(e.State, e.State.Room, id)
	return []string{fmt.Sprintf("You drop the %s.", e.Defs.Items[id].Name)}
}

func (e *Engine) cmdInventory(string) []string {
	inv := e.State.Player.Inventory
	if len(inv) == 0 {
		return []string{"You are carrying nothing."}
	}
	names := make([]string, 0, len(inv))
	for _, id := range inv {
		names = append(names, e.itemName(id))
	}
	out := []string{"You are carrying: " + strings.Join(names, ", ") + "."}

	var worn []string
	for _, slot := range []types.Slot{types.SlotWeapon, types.SlotArmor, types.SlotAccessory} {
		if id, ok := e.State.Player.Equipment[slot]; ok {
			worn = append(worn, fmt.Sprintf("%s (%s)", e.itemName(id), slot))
		}
	}
	if len(worn) > 0 {
		out = append(out, "Equipped: "+strings.Join(worn, ", ")+".")
	}
	return out
}

// cmdUse consumes an item. During combat this spends the player's
// action, so the enemy gets its half of the round afterwards.
func (e *Engine) cmdUse(arg string) []string {
	if arg == "" {
		return []string{"Use what?"}
	}
	id, ok := e.findItem(arg)
	if !ok || !state.HasItem(e.State, id) {
		return []string{"You don't have that."}
	}
	item := e.Defs.Items[id]
	if item.Kind != types.ItemConsumable {
		return []string{fmt.Sprintf("You can't use the %s like that.", item.Name)}
	}

	var out []string
	used := false
	if item.Heal > 0 {
		before := e.State.Player.HP
		e.State.Player.Heal(item.Heal)
		out = append(out, fmt.Sprintf("You drink the %s and recover %d hp.", item.Name, e.State.Player.HP-before))
		used = true
	}
	if item.Cures != "" {
		if status.Cure(e.State.Player.Effects, item.Cures) {
			out = append(out, fmt.Sprintf("The %s purges the %s from your body.", item.Name, item.Cures))
			used = true
		} else if item.Heal == 0 {
			return []string{fmt.Sprintf("You are not suffering from %s.", item.Cures)}
		}
	}
	if !used {
		return []string{fmt.Sprintf("Nothing happens when you use the %s.", item.Name)}
	}

	state.RemoveItem(e.State, id)
	if state.InCombat(e.State) {
		e.finishRound(&out)
	}
	return out
}

func (e *Engine) cmdEquip(arg string) []string {
	if arg == "" {
		return []string{"Equip what?"}
	}
	id, ok := e.findItem(arg)
	if !ok {
		id = arg
	}
	name, err := equip.Equip(&e.State.Player, e.Defs.Items, id)
	if err != nil {
		return []string{upperFirst(err.Error()) + "."}
	}
	return []string{fmt.Sprintf("You equip the %s. (attack %d, defense %d)", name, e.State.Player.Attack, e.State.Player.Defense)}
}

func (e *Engine) cmdUnequip(arg string) []string {
	if arg == "" {
		return []string{"Unequip which slot? (weapon, armor, accessory)"}
	}
	name, err := equip.Unequip(&e.State.Player, e.Defs.Items, types.Slot(arg))
	if err != nil {
		return []string{upperFirst(err.Error()) + "."}
	}
	return []string{fmt.Sprintf("You remove the %s. (attack %d, defense %d)", name, e.State.Player.Attack, e.State.Player.Defense)}
}

func (e *Engine) cmdStatus(string) []string {
	p := &e.State.Player
	out := []string{
		fmt.Sprintf("%s — level %d (%d xp)", displayName(p), p.Level, p.XP),
		fmt.Sprintf("HP %d/%d  Mana %d/%d  Gold %d", p.HP, p.MaxHP, p.Mana, p.MaxMana, p.Gold),
		fmt.Sprintf("Attack %d (base %d)  Defense %d (base %d)", p.Attack, p.BaseAttack, p.Defense, p.BaseDefense),
	}
	if len(p.Effects) > 0 {
		out = append(out, "Afflicted: "+effectSummary(p.Effects)+".")
	}
	if enc := e.State.Encounter; enc != nil {
		enemy := enc.Enemy
		line := fmt.Sprintf("Fighting: %s (%d/%d hp), round %d", enemy.Name, enemy.HP, enemy.MaxHP, enc.Rounds+1)
		if len(enemy.Effects) > 0 {
			line += " " + effectSummary(enemy.Effects)
		}
		out = append(out, line)
	}
	return out
}

func (e *Engine) cmdAttack(arg string) []string {
	if state.InCombat(e.State) {
		return e.playerAttack()
	}

	id, ok := e.findRoomEnemy(arg)
	if !ok {
		if arg == "" {
			return []string{"There is nothing here to fight."}
		}
		return []string{fmt.Sprintf("There is no %s here.", arg)}
	}
	out := e.startEncounter(id)
	return out
}

func (e *Engine) cmdSkill(string) []string {
	if !state.InCombat(e.State) {
		return []string{"There is no target for your skill."}
	}
	return e.playerSkill()
}

func (e *Engine) cmdFlee(string) []string {
	if !state.InCombat(e.State) {
		return []string{"You're not in a fight."}
	}
	return e.playerFlee()
}

func (e *Engine) cmdQuests(string) []string {
	if len(e.State.Quests) == 0 {
		return []string{"You have no quests."}
	}
	out := make([]string, 0, len(e.State.Quests))
	for _, q := range e.State.Quests {
		out = append(out, quest.Describe(q))
	}
	return out
}

// cmdSanctuary cures status effects for gold, only in sanctuary rooms.
// With no argument it lists the services on offer.
func (e *Engine) cmdSanctuary(arg string) []string {
	room, ok := e.Defs.Rooms[e.State.Room]
	if !ok || !room.Sanctuary {
		return []string{"There is no sanctuary here."}
	}

	p := &e.State.Player
	cost := e.Defs.Tuning.SanctuaryCost
	if len(p.Effects) == 0 {
		return []string{"The healer looks you over. You are free of afflictions."}
	}

	if arg == "" {
		kinds := sortedEffects(p.Effects)
		out := []string{"The healer offers:"}
		for _, kind := range kinds {
			out = append(out, fmt.Sprintf("  cure %s — %d gold", kind, cost))
		}
		if len(kinds) > 1 {
			out = append(out, fmt.Sprintf("  cure all — %d gold", bulkCureCost(cost, len(kinds), e.Defs.Tuning.SanctuaryDiscount)))
		}
		out = append(out, "(sanctuary <effect> or sanctuary all)")
		return out
	}

	if arg == "all" {
		// The bulk rate only exists for multiple afflictions; with one it
		// would undercut the single cure.
		if len(p.Effects) < 2 {
			kind := sortedEffects(p.Effects)[0]
			return []string{fmt.Sprintf("You only suffer from %s. (sanctuary %s)", kind, kind)}
		}
		total := bulkCureCost(cost, len(p.Effects), e.Defs.Tuning.SanctuaryDiscount)
		if p.Gold < total {
			return []string{fmt.Sprintf("You need %d gold but only have %d.", total, p.Gold)}
		}
		p.Gold -= total
		n := status.CureAll(p.Effects)
		return []string{fmt.Sprintf("The healer cleanses %d afflictions for %d gold.", n, total)}
	}

	kind := types.EffectKind(arg)
	if !status.Active(p.Effects, kind) {
		return []string{fmt.Sprintf("You are not suffering from %s.", arg)}
	}
	if p.Gold < cost {
		return []string{fmt.Sprintf("You need %d gold but only have %d.", cost, p.Gold)}
	}
	p.Gold -= cost
	status.Cure(p.Effects, kind)
	return []string{fmt.Sprintf("The healer cures your %s for %d gold.", kind, cost)}
}

func (e *Engine) cmdVerbose(string) []string {
	e.State.Verbose = !e.State.Verbose
	if e.State.Verbose {
		return []string{"Verbose combat output on."}
	}
	return []string{"Verbose combat output off."}
}

func (e *Engine) cmdHelp(string) []string {
	return []string{
		"Commands: look [item], go <direction>, talk [npc], take <item>, drop <item>,",
		"  inventory, use <item>, equip <item>, unequip <slot>, status, quests,",
		"  attack [enemy], skill, flee, sanctuary [effect|all], verbose, help",
		"Meta: /save [slot], /load [slot], /state, /trace, /quit",
	}
}

// describeRoom produces the standard room description output.
func (e *Engine) describeRoom(roomID string) []string {
	room, ok := e.Defs.Rooms[roomID]
	if !ok {
		return []string{"You are somewhere unknown."}
	}

	out := []string{fmt.Sprintf("— %s —", room.Name), room.Description}

	rs := e.State.Rooms[roomID]
	if len(rs.Items) > 0 {
		names := make([]string, 0, len(rs.Items))
		for _, id := range rs.Items {
			names = append(names, e.itemName(id))
		}
		out = append(out, "You see: "+strings.Join(names, ", ")+".")
	}
	if len(rs.Enemies) > 0 {
		names := make([]string, 0, len(rs.Enemies))
		for _, id := range rs.Enemies {
			names = append(names, e.enemyName(id))
		}
		out = append(out, "Lurking here: "+strings.Join(names, ", ")+".")
	}
	if len(room.NPCs) > 0 {
		out = append(out, "People here: "+strings.Join(npcNames(room), ", ")+".")
	}
	if room.Sanctuary {
		out = append(out, "A calm light fills this place. A healer tends a small shrine.")
	}

	if len(room.Exits) > 0 {
		dirs := make([]string, 0, len(room.Exits))
		for dir := range room.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		out = append(out, "Exits: "+strings.Join(dirs, ", ")+".")
	}
	return out
}

// findItem resolves a player-typed name to an item id, matching the id
// first and then the display name, case-insensitively.
func (e *Engine) findItem(arg string) (string, bool) {
	if _, ok := e.Defs.Items[arg]; ok {
		return arg, true
	}
	lower := strings.ToLower(arg)
	for id, item := range e.Defs.Items {
		if strings.ToLower(item.Name) == lower {
			return id, true
		}
	}
	return "", false
}

// findRoomEnemy resolves an enemy name to an id present in the current
// room. An empty arg matches the first remaining enemy.
func (e *Engine) findRoomEnemy(arg string) (string, bool) {
	rs, ok := e.State.Rooms[e.State.Room]
	if !ok || len(rs.Enemies) == 0 {
		return "", false
	}
	if arg == "" {
		return rs.Enemies[0], true
	}
	lower := strings.ToLower(arg)
	for _, id := range rs.Enemies {
		if id == arg {
			return id, true
		}
		if def, ok := e.Defs.Enemies[id]; ok && strings.ToLower(def.Name) == lower {
			return id, true
		}
	}
	return "", false
}

func (e *Engine) itemName(id string) string {
	if item, ok := e.Defs.Items[id]; ok {
		return item.Name
	}
	return id
}

func (e *Engine) enemyName(id string) string {
	if def, ok := e.Defs.Enemies[id]; ok {
		return def.Name
	}
	return id
}

func roomHasItem(s *types.State, roomID, itemID string) bool {
	rs, ok := s.Rooms[roomID]
	if !ok {
		return false
	}
	for _, id := range rs.Items {
		if id == itemID {
			return true
		}
	}
	return false
}

func npcNames(room types.RoomDef) []string {
	names := make([]string, 0, len(room.NPCs))
	for n := range room.NPCs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func effectSummary(effects map[types.EffectKind]*types.EffectState) string {
	parts := make([]string, 0, len(effects))
	for _, kind := range sortedEffects(effects) {
		parts = append(parts, fmt.Sprintf("%s %s (%d)", status.Icon(kind), kind, effects[kind].Turns))
	}
	return strings.Join(parts, ", ")
}

func sortedEffects(effects map[types.EffectKind]*types.EffectState) []types.EffectKind {
	kinds := make([]types.EffectKind, 0, len(effects))
	for kind := range effects {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// bulkCureCost prices the cure-all service: per-effect cost times the
// number of afflictions, discounted and truncated.
func bulkCureCost(cost, count int, discount float64) int {
	return int(float64(cost*count) * discount)
}

func displayName(p *types.Player) string {
	if p.Name == "" {
		return "Adventurer"
	}
	return p.Name
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
