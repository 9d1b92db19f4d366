package state

import (
	"testing"

	"github.com/nathoo/emberwood/types"
)

func testDefs() *Defs {
	return &Defs{
		Game:   types.GameDef{Start: "village"},
		Tuning: DefaultTuning(),
		Items: map[string]types.Item{
			"potion": {ID: "potion", Name: "potion", Kind: types.ItemConsumable, Heal: 20},
		},
		Enemies: map[string]types.EnemyDef{
			"goblin": {ID: "goblin", Name: "goblin", MaxHP: 8, Attack: 4, Defense: 2, Gold: 5},
		},
		Rooms: map[string]types.RoomDef{
			"village": {ID: "village", Items: []string{"potion"}, Enemies: []string{"goblin"}},
		},
		Quests: []types.QuestDef{
			{ID: "q1", Kind: types.QuestDefeat, Target: "goblin", Count: 1},
		},
	}
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState(testDefs())

	if s.Room != "village" {
		t.Errorf("expected start room, got %s", s.Room)
	}
	p := s.Player
	if p.HP != 30 || p.Mana != 10 || p.BaseAttack != 5 || p.BaseDefense != 3 {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if p.Attack != p.BaseAttack || p.Defense != p.BaseDefense {
		t.Error("derived stats should equal base with nothing equipped")
	}
	if len(s.Quests) != 1 || s.Quests[0].Completed {
		t.Errorf("unexpected quests: %+v", s.Quests)
	}
}

func TestNewState_CustomPlayerStats(t *testing.T) {
	defs := testDefs()
	defs.PlayerHP = 50
	defs.PlayerAttack = 9

	s := NewState(defs)
	if s.Player.MaxHP != 50 || s.Player.BaseAttack != 9 {
		t.Errorf("overrides not applied: %+v", s.Player)
	}
	if s.Player.Mana != 10 {
		t.Errorf("unset overrides should keep defaults, got %d", s.Player.Mana)
	}
}

func TestNewState_RoomStateIsACopy(t *testing.T) {
	defs := testDefs()
	s := NewState(defs)

	RemoveRoomItem(s, "village", "potion")
	RemoveRoomEnemy(s, "village", "goblin")

	if len(defs.Rooms["village"].Items) != 1 || len(defs.Rooms["village"].Enemies) != 1 {
		t.Error("mutating live room state must not touch the definitions")
	}

	s2 := NewState(defs)
	if len(s2.Rooms["village"].Items) != 1 {
		t.Error("a fresh state should see the original room contents")
	}
}

func TestSpawnEnemy_Clones(t *testing.T) {
	defs := testDefs()

	e := SpawnEnemy(defs, "goblin")
	if e == nil {
		t.Fatal("expected a clone")
	}
	if e.HP != 8 || e.HP != e.MaxHP {
		t.Errorf("clone should start at full hp, got %d/%d", e.HP, e.MaxHP)
	}

	e.Damage(5)
	e.Effects[types.EffectPoison] = &types.EffectState{Turns: 2}

	e2 := SpawnEnemy(defs, "goblin")
	if e2.HP != 8 || len(e2.Effects) != 0 {
		t.Error("clones must be independent of each other")
	}
	if defs.Enemies["goblin"].MaxHP != 8 {
		t.Error("template must never mutate")
	}
}

func TestSpawnEnemy_Unknown(t *testing.T) {
	if e := SpawnEnemy(testDefs(), "dragon"); e != nil {
		t.Errorf("expected nil for unknown id, got %+v", e)
	}
}

func TestInventoryHelpers(t *testing.T) {
	s := NewState(testDefs())

	if HasItem(s, "potion") {
		t.Error("inventory starts empty")
	}
	s.Player.Inventory = append(s.Player.Inventory, "potion")
	if !HasItem(s, "potion") {
		t.Error("expected potion in inventory")
	}
	if !RemoveItem(s, "potion") {
		t.Error("expected removal to succeed")
	}
	if RemoveItem(s, "potion") {
		t.Error("expected second removal to fail")
	}
}

func TestRoomHelpers(t *testing.T) {
	s := NewState(testDefs())

	if !RoomHasEnemy(s, "village", "goblin") {
		t.Error("expected goblin in village")
	}
	if !RemoveRoomEnemy(s, "village", "goblin") {
		t.Error("expected removal to succeed")
	}
	if RoomHasEnemy(s, "village", "goblin") {
		t.Error("goblin should be gone")
	}
	if RemoveRoomEnemy(s, "village", "goblin") {
		t.Error("expected second removal to fail")
	}

	AddRoomItem(s, "village", "potion")
	rs := s.Rooms["village"]
	if len(rs.Items) != 2 {
		t.Errorf("expected 2 potions on the ground, got %v", rs.Items)
	}
}

func TestInCombat(t *testing.T) {
	s := NewState(testDefs())
	if InCombat(s) {
		t.Error("fresh state is not in combat")
	}
	s.Encounter = &types.Encounter{Phase: types.PhasePlayerTurn}
	if !InCombat(s) {
		t.Error("expected in combat")
	}
}
