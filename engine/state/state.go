// Package state holds the immutable game definitions and constructs the
// mutable runtime state from them. Templates never change after loading;
// live rooms and enemies are clones.
package state

import "github.com/nathoo/emberwood/types"

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game    types.GameDef
	Tuning  types.Tuning
	Items   map[string]types.Item
	Enemies map[string]types.EnemyDef
	Rooms   map[string]types.RoomDef
	Quests  []types.QuestDef

	// New-player stats. Zero values fall back to the original defaults
	// in NewState.
	PlayerHP      int
	PlayerMana    int
	PlayerAttack  int
	PlayerDefense int
}

// DefaultTuning returns the balance constants the original game shipped with.
func DefaultTuning() types.Tuning {
	return types.Tuning{
		CritChance:        0.10,
		CritMultiplier:    1.5,
		FleeChance:        0.5,
		SkillManaCost:     5,
		SkillMultiplier:   2,
		SanctuaryCost:     5,
		SanctuaryDiscount: 0.8,
	}
}

// NewState creates a fresh game state from definitions: a level-1 player in
// the starting room, per-room item/enemy state cloned from the room defs,
// and live quest records at zero progress.
func NewState(defs *Defs) *types.State {
	hp := defs.PlayerHP
	if hp == 0 {
		hp = 30
	}
	mana := defs.PlayerMana
	if mana == 0 {
		mana = 10
	}
	atk := defs.PlayerAttack
	if atk == 0 {
		atk = 5
	}
	def := defs.PlayerDefense
	if def == 0 {
		def = 3
	}

	rooms := make(map[string]types.RoomState, len(defs.Rooms))
	for id, room := range defs.Rooms {
		rooms[id] = types.RoomState{
			Items:   append([]string{}, room.Items...),
			Enemies: append([]string{}, room.Enemies...),
		}
	}

	quests := make([]*types.Quest, 0, len(defs.Quests))
	for _, qd := range defs.Quests {
		quests = append(quests, &types.Quest{
			ID:         qd.ID,
			Kind:       qd.Kind,
			Target:     qd.Target,
			Count:      qd.Count,
			RewardXP:   qd.RewardXP,
			RewardGold: qd.RewardGold,
			Narrative:  qd.Narrative,
		})
	}

	return &types.State{
		Player: types.Player{
			Level:       1,
			HP:          hp,
			MaxHP:       hp,
			Mana:        mana,
			MaxMana:     mana,
			BaseAttack:  atk,
			BaseDefense: def,
			Attack:      atk,
			Defense:     def,
			Inventory:   []string{},
			Equipment:   map[types.Slot]string{},
			Effects:     map[types.EffectKind]*types.EffectState{},
		},
		Room:   defs.Game.Start,
		Rooms:  rooms,
		Quests: quests,
	}
}

// SpawnEnemy clones a live enemy instance from its template.
// Returns nil for an unknown id.
func SpawnEnemy(defs *Defs, id string) *types.Enemy {
	def, ok := defs.Enemies[id]
	if !ok {
		return nil
	}
	return &types.Enemy{
		ID:       def.ID,
		Name:     def.Name,
		Level:    def.Level,
		HP:       def.MaxHP,
		MaxHP:    def.MaxHP,
		Attack:   def.Attack,
		Defense:  def.Defense,
		Gold:     def.Gold,
		XP:       def.XP,
		Loot:     append([]string{}, def.Loot...),
		Effects:  map[types.EffectKind]*types.EffectState{},
		Inflicts: def.Inflicts,
		Boss:     def.Boss,
	}
}

// HasItem reports whether the player carries the given item id.
func HasItem(s *types.State, itemID string) bool {
	for _, id := range s.Player.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// RemoveItem removes one occurrence of an item id from the player's
// inventory. Reports whether anything was removed.
func RemoveItem(s *types.State, itemID string) bool {
	for i, id := range s.Player.Inventory {
		if id == itemID {
			s.Player.Inventory = append(s.Player.Inventory[:i], s.Player.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// RoomHasEnemy reports whether the enemy id is still present in the room.
func RoomHasEnemy(s *types.State, roomID, enemyID string) bool {
	for _, id := range s.Rooms[roomID].Enemies {
		if id == enemyID {
			return true
		}
	}
	return false
}

// RemoveRoomEnemy removes one occurrence of an enemy id from the room's
// live list. Reports whether anything was removed.
func RemoveRoomEnemy(s *types.State, roomID, enemyID string) bool {
	rs, ok := s.Rooms[roomID]
	if !ok {
		return false
	}
	for i, id := range rs.Enemies {
		if id == enemyID {
			rs.Enemies = append(rs.Enemies[:i], rs.Enemies[i+1:]...)
			s.Rooms[roomID] = rs
			return true
		}
	}
	return false
}

// RemoveRoomItem removes one occurrence of an item id from the room's
// floor. Reports whether anything was removed.
func RemoveRoomItem(s *types.State, roomID, itemID string) bool {
	rs, ok := s.Rooms[roomID]
	if !ok {
		return false
	}
	for i, id := range rs.Items {
		if id == itemID {
			rs.Items = append(rs.Items[:i], rs.Items[i+1:]...)
			s.Rooms[roomID] = rs
			return true
		}
	}
	return false
}

// AddRoomItem puts an item id on the room's floor.
func AddRoomItem(s *types.State, roomID, itemID string) {
	rs := s.Rooms[roomID]
	rs.Items = append(rs.Items, itemID)
	s.Rooms[roomID] = rs
}

// InCombat reports whether an encounter is active.
func InCombat(s *types.State) bool {
	return s.Encounter != nil
}
