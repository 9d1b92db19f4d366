package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

type rawItem struct {
	id    string
	table *lua.LTable
}

type rawEnemy struct {
	id    string
	boss  bool
	table *lua.LTable
}

type rawRoom struct {
	id    string
	table *lua.LTable
}

type rawQuest struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or def if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key, 0))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStrings converts a Lua array table to a string slice.
func tableToStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}

	defs := &state.Defs{
		Game: types.GameDef{
			Title:   getString(coll.game, "title"),
			Author:  getString(coll.game, "author"),
			Version: getString(coll.game, "version"),
			Start:   getString(coll.game, "start"),
			Intro:   getString(coll.game, "intro"),
		},
		Tuning:  compileTuning(coll.tuning),
		Items:   map[string]types.Item{},
		Enemies: map[string]types.EnemyDef{},
		Rooms:   map[string]types.RoomDef{},
	}

	if coll.player != nil {
		defs.PlayerHP = getInt(coll.player, "hp")
		defs.PlayerMana = getInt(coll.player, "mana")
		defs.PlayerAttack = getInt(coll.player, "attack")
		defs.PlayerDefense = getInt(coll.player, "defense")
	}

	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			return nil, fmt.Errorf("duplicate item %q", raw.id)
		}
		defs.Items[raw.id] = compileItem(raw)
	}
	for _, raw := range coll.enemies {
		if _, dup := defs.Enemies[raw.id]; dup {
			return nil, fmt.Errorf("duplicate enemy %q", raw.id)
		}
		defs.Enemies[raw.id] = compileEnemy(raw)
	}
	for _, raw := range coll.rooms {
		if _, dup := defs.Rooms[raw.id]; dup {
			return nil, fmt.Errorf("duplicate room %q", raw.id)
		}
		defs.Rooms[raw.id] = compileRoom(raw)
	}
	for _, raw := range coll.quests {
		defs.Quests = append(defs.Quests, compileQuest(raw))
	}

	return defs, nil
}

// compileTuning starts from the defaults and overrides any field the
// world sets.
func compileTuning(tbl *lua.LTable) types.Tuning {
	t := state.DefaultTuning()
	if tbl == nil {
		return t
	}
	t.CritChance = getNumber(tbl, "crit_chance", t.CritChance)
	t.CritMultiplier = getNumber(tbl, "crit_multiplier", t.CritMultiplier)
	t.FleeChance = getNumber(tbl, "flee_chance", t.FleeChance)
	if n := getInt(tbl, "skill_mana_cost"); n > 0 {
		t.SkillManaCost = n
	}
	if n := getInt(tbl, "skill_multiplier"); n > 0 {
		t.SkillMultiplier = n
	}
	if n := getInt(tbl, "sanctuary_cost"); n > 0 {
		t.SanctuaryCost = n
	}
	t.SanctuaryDiscount = getNumber(tbl, "sanctuary_discount", t.SanctuaryDiscount)
	return t
}

func compileItem(raw rawItem) types.Item {
	tbl := raw.table
	name := getString(tbl, "name")
	if name == "" {
		name = raw.id
	}
	return types.Item{
		ID:          raw.id,
		Name:        name,
		Kind:        types.ItemKind(getString(tbl, "kind")),
		Heal:        getInt(tbl, "heal"),
		Cures:       types.EffectKind(getString(tbl, "cures")),
		Bonus:       types.StatBonus{Attack: getInt(tbl, "attack"), Defense: getInt(tbl, "defense")},
		Slot:        types.Slot(getString(tbl, "slot")),
		Price:       getInt(tbl, "price"),
		Description: getString(tbl, "description"),
	}
}

func compileEnemy(raw rawEnemy) types.EnemyDef {
	tbl := raw.table
	name := getString(tbl, "name")
	if name == "" {
		name = raw.id
	}
	def := types.EnemyDef{
		ID:      raw.id,
		Name:    name,
		Level:   getInt(tbl, "level"),
		MaxHP:   getInt(tbl, "hp"),
		Attack:  getInt(tbl, "attack"),
		Defense: getInt(tbl, "defense"),
		Gold:    getInt(tbl, "gold"),
		XP:      getInt(tbl, "xp"),
		Loot:    tableToStrings(getTable(tbl, "loot")),
	}

	if inf := getTable(tbl, "inflicts"); inf != nil {
		def.Inflicts = &types.Affliction{
			Kind:   types.EffectKind(getString(inf, "effect")),
			Turns:  getInt(inf, "turns"),
			Chance: getNumber(inf, "chance", 0),
		}
	}

	if raw.boss {
		def.Boss = &types.BossExtras{
			Intros: tableToStrings(getTable(tbl, "intros")),
			Taunts: tableToStrings(getTable(tbl, "taunts")),
		}
	}
	return def
}

func compileRoom(raw rawRoom) types.RoomDef {
	tbl := raw.table
	name := getString(tbl, "name")
	if name == "" {
		name = raw.id
	}

	exits := map[string]string{}
	if t := getTable(tbl, "exits"); t != nil {
		t.ForEach(func(k, v lua.LValue) {
			ks, kok := k.(lua.LString)
			vs, vok := v.(lua.LString)
			if kok && vok {
				exits[string(ks)] = string(vs)
			}
		})
	}

	npcs := map[string][]string{}
	if t := getTable(tbl, "npcs"); t != nil {
		t.ForEach(func(k, v lua.LValue) {
			ks, kok := k.(lua.LString)
			vt, vok := v.(*lua.LTable)
			if kok && vok {
				npcs[string(ks)] = tableToStrings(vt)
			}
		})
	}

	return types.RoomDef{
		ID:          raw.id,
		Name:        name,
		Description: getString(tbl, "description"),
		Exits:       exits,
		Items:       tableToStrings(getTable(tbl, "items")),
		Enemies:     tableToStrings(getTable(tbl, "enemies")),
		NPCs:        npcs,
		Sanctuary:   getBool(tbl, "sanctuary", false),
	}
}

func compileQuest(raw rawQuest) types.QuestDef {
	tbl := raw.table
	return types.QuestDef{
		ID:         raw.id,
		Kind:       types.QuestKind(getString(tbl, "kind")),
		Target:     getString(tbl, "target"),
		Count:      getInt(tbl, "count"),
		RewardXP:   getInt(tbl, "xp"),
		RewardGold: getInt(tbl, "gold"),
		Narrative:  getString(tbl, "narrative"),
	}
}
