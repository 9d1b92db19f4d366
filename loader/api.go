package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors as globals. Item, Enemy,
// Boss, Room and Quest are curried: Item("id") returns a function that
// takes the definition table.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Player { hp = 30, mana = 10, attack = 5, defense = 3 }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// Tuning { crit_chance = 0.10, ... } — overrides the defaults.
	L.SetGlobal("Tuning", L.NewFunction(func(L *lua.LState) int {
		coll.tuning = L.CheckTable(1)
		return 0
	}))

	// Item "id" { ... }
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.items = append(coll.items, rawItem{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Enemy "id" { ... }
	L.SetGlobal("Enemy", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.enemies = append(coll.enemies, rawEnemy{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Boss "id" { ... } — an enemy with intros/taunts.
	L.SetGlobal("Boss", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.enemies = append(coll.enemies, rawEnemy{id: id, boss: true, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Room "id" { ... }
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Quest "id" { ... }
	L.SetGlobal("Quest", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.quests = append(coll.quests, rawQuest{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))
}
