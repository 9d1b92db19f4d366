package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/emberwood/types"
)

// writeWorld writes Lua sources to a temp dir and loads them.
func writeWorld(t *testing.T, files map[string]string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	_, err := Load(dir)
	return dir, err
}

const minimalWorld = `
Game { title = "T", start = "start" }
Room "start" { description = "A room." }
`

func TestLoadDefault(t *testing.T) {
	defs, err := LoadDefault()
	if err != nil {
		t.Fatalf("embedded world must load: %v", err)
	}

	if defs.Game.Title != "Emberwood" || defs.Game.Start != "village" {
		t.Errorf("unexpected game def: %+v", defs.Game)
	}
	if defs.PlayerHP != 30 || defs.PlayerMana != 10 {
		t.Errorf("player stats not loaded: hp=%d mana=%d", defs.PlayerHP, defs.PlayerMana)
	}
	if len(defs.Items) != 6 || len(defs.Enemies) != 4 || len(defs.Rooms) != 3 || len(defs.Quests) != 3 {
		t.Errorf("unexpected world size: %d items, %d enemies, %d rooms, %d quests",
			len(defs.Items), len(defs.Enemies), len(defs.Rooms), len(defs.Quests))
	}

	sword := defs.Items["rusty_sword"]
	if sword.Kind != types.ItemEquipable || sword.Slot != types.SlotWeapon || sword.Bonus.Attack != 2 {
		t.Errorf("unexpected sword: %+v", sword)
	}

	slime := defs.Enemies["slime"]
	if slime.Inflicts == nil || slime.Inflicts.Kind != types.EffectPoison || slime.Inflicts.Turns != 3 {
		t.Errorf("unexpected slime affliction: %+v", slime.Inflicts)
	}

	dragon := defs.Enemies["dragon"]
	if dragon.Boss == nil || len(dragon.Boss.Intros) != 3 || len(dragon.Boss.Taunts) != 3 {
		t.Errorf("dragon should be a boss with lines: %+v", dragon.Boss)
	}
	if defs.Enemies["goblin"].Boss != nil {
		t.Error("goblin is not a boss")
	}

	village := defs.Rooms["village"]
	if !village.Sanctuary || village.Exits["north"] != "forest" {
		t.Errorf("unexpected village: %+v", village)
	}
	if len(village.NPCs["elder"]) != 2 {
		t.Errorf("elder should have two lines: %+v", village.NPCs)
	}

	if defs.Tuning.CritChance != 0.10 || defs.Tuning.SanctuaryDiscount != 0.8 {
		t.Errorf("unexpected tuning: %+v", defs.Tuning)
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "world.lua"), []byte(minimalWorld), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if defs.Game.Start != "start" {
		t.Errorf("unexpected start: %q", defs.Game.Start)
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Errorf("expected no-files error, got %v", err)
	}
}

func TestLoad_MissingGame(t *testing.T) {
	_, err := writeWorld(t, map[string]string{
		"world.lua": `Room "start" { }`,
	})
	if err == nil || !strings.Contains(err.Error(), "no Game{}") {
		t.Errorf("expected missing-game error, got %v", err)
	}
}

func TestLoad_TuningOverride(t *testing.T) {
	dir := t.TempDir()
	src := minimalWorld + `
Tuning { flee_chance = 0.75, sanctuary_cost = 9 }
`
	if err := os.WriteFile(filepath.Join(dir, "world.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if defs.Tuning.FleeChance != 0.75 || defs.Tuning.SanctuaryCost != 9 {
		t.Errorf("overrides not applied: %+v", defs.Tuning)
	}
	if defs.Tuning.CritChance != 0.10 {
		t.Errorf("unset fields should keep defaults: %+v", defs.Tuning)
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	_, err := writeWorld(t, map[string]string{
		"bad.lua": `Game { title = `,
	})
	if err == nil || !strings.Contains(err.Error(), "bad.lua") {
		t.Errorf("expected file-attributed error, got %v", err)
	}
}

func TestLoad_SandboxBlocksIO(t *testing.T) {
	_, err := writeWorld(t, map[string]string{
		"evil.lua": minimalWorld + `
dofile("/etc/passwd")
`,
	})
	if err == nil {
		t.Error("dofile must not be available to world scripts")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"unknown start room",
			`Game { title = "T", start = "nowhere" }
			 Room "start" { }`,
			"start room",
		},
		{
			"dangling exit",
			`Game { title = "T", start = "start" }
			 Room "start" { exits = { north = "void" } }`,
			"unknown room",
		},
		{
			"unknown room item",
			`Game { title = "T", start = "start" }
			 Room "start" { items = { "ghost" } }`,
			`unknown item "ghost"`,
		},
		{
			"unknown room enemy",
			`Game { title = "T", start = "start" }
			 Room "start" { enemies = { "ghost" } }`,
			`unknown enemy "ghost"`,
		},
		{
			"unknown loot",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Enemy "rat" { hp = 5, loot = { "cheese" } }`,
			"unknown loot item",
		},
		{
			"zero hp enemy",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Enemy "wisp" { }`,
			"hp must be positive",
		},
		{
			"bad affliction",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Enemy "rat" { hp = 5, inflicts = { effect = "hiccups", turns = 2, chance = 0.5 } }`,
			"unknown effect",
		},
		{
			"boss without intros",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Boss "drake" { hp = 5, taunts = { "Farewell." } }`,
			"no intro lines",
		},
		{
			"boss without taunts",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Boss "drake" { hp = 5, intros = { "Hello, {player}." } }`,
			"no taunt lines",
		},
		{
			"boss line with bad placeholder",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Boss "drake" { hp = 5, intros = { "Hello, {playr}." }, taunts = { "Farewell." } }`,
			`unknown placeholder "playr"`,
		},
		{
			"bad item kind",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Item "rock" { kind = "mineral" }`,
			"unknown kind",
		},
		{
			"equipable without slot",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Item "crown" { kind = "equipable", slot = "head" }`,
			"unknown slot",
		},
		{
			"useless consumable",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Item "water" { kind = "consumable" }`,
			"no heal and no cures",
		},
		{
			"bad quest kind",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Quest "q" { kind = "fetch", target = "start", count = 1 }`,
			"unknown kind",
		},
		{
			"quest target missing",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Quest "q" { kind = "defeat", target = "yeti", count = 1 }`,
			"unknown enemy target",
		},
		{
			"quest zero count",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Quest "q" { kind = "visit", target = "start", count = 0 }`,
			"count must be positive",
		},
		{
			"duplicate room",
			`Game { title = "T", start = "start" }
			 Room "start" { }
			 Room "start" { }`,
			"duplicate room",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := writeWorld(t, map[string]string{"world.lua": tc.src})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_FilesShareGlobals(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a_game.lua":  `Game { title = "Split", start = "start" }`,
		"b_rooms.lua": `Room "start" { description = "Loaded from a second file." }`,
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if defs.Rooms["start"].Description != "Loaded from a second file." {
		t.Error("definitions should accumulate across files")
	}
}
