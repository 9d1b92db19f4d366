package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/emberwood/engine"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/storage"
	"github.com/nathoo/emberwood/types"
)

// testDefs returns minimal game definitions for CLI testing. The rat's
// stats are chosen so every exchange deals exactly 1 damage either way.
func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title: "Test Game",
			Start: "hall",
			Intro: "Welcome to the test.",
		},
		Tuning: func() types.Tuning {
			t := state.DefaultTuning()
			t.CritChance = 0
			t.FleeChance = 1.0
			return t
		}(),
		Items: map[string]types.Item{
			"key": {ID: "key", Name: "rusty key", Kind: types.ItemKey, Description: "An old key."},
		},
		Enemies: map[string]types.EnemyDef{
			"rat": {ID: "rat", Name: "rat", MaxHP: 30, Attack: 2, Defense: 8, Gold: 1, XP: 1},
		},
		Rooms: map[string]types.RoomDef{
			"hall": {
				ID:          "hall",
				Name:        "Grand Hall",
				Description: "A grand hall.",
				Exits:       map[string]string{"north": "garden"},
				Items:       []string{"key"},
				Enemies:     []string{"rat"},
			},
			"garden": {
				ID:          "garden",
				Name:        "Garden",
				Description: "A peaceful garden.",
				Exits:       map[string]string{"south": "hall"},
			},
		},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	return newTestCLIWithStore(t, input, newTestStore(t))
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return store
}

func newTestCLIWithStore(t *testing.T, input string, store storage.Store) (*CLI, *bytes.Buffer) {
	t.Helper()
	defs := testDefs()
	eng := engine.New(defs, 1, nil)
	var out bytes.Buffer
	c := &CLI{
		Engine: eng,
		Defs:   defs,
		Store:  store,
		In:     strings.NewReader(input),
		Out:    &out,
	}
	return c, &out
}

func TestCLI_IntroAndStartingRoom(t *testing.T) {
	c, out := newTestCLI(t, "/quit\ny\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Welcome to the test.") {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "A grand hall.") {
		t.Error("expected starting room description in output")
	}
}

func TestCLI_BasicGameplay(t *testing.T) {
	c, out := newTestCLI(t, "look\n/quit\ny\n")
	c.Run()

	if !strings.Contains(out.String(), "A grand hall.") {
		t.Error("expected room description from look command")
	}
}

func TestCLI_Navigation(t *testing.T) {
	c, out := newTestCLI(t, "go north\n/quit\ny\n")
	c.Run()

	if !strings.Contains(out.String(), "A peaceful garden.") {
		t.Error("expected garden description after going north")
	}
}

func TestCLI_QuitConfirmation(t *testing.T) {
	// Declining the confirmation keeps the game running.
	c, out := newTestCLI(t, "/quit\nn\nlook\n/quit\ny\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Really quit?") {
		t.Error("expected quit confirmation prompt")
	}
	// The look after the declined quit must still have run.
	if strings.Count(output, "A grand hall.") < 2 {
		t.Error("expected game to continue after declining quit")
	}
	if !strings.Contains(output, "Goodbye.") {
		t.Error("expected farewell after confirmed quit")
	}
}

func TestCLI_QuitOnEOF(t *testing.T) {
	// A script that ends at the confirmation prompt still terminates.
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Goodbye.") {
		t.Error("expected EOF at confirmation to count as yes")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\ny\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/save", "/load", "/quit", "sanctuary"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	// Play a bit and save.
	c, out := newTestCLIWithStore(t, "go north\n/save test\n/quit\ny\n", store)
	c.Run()

	if !strings.Contains(out.String(), "Game saved to test.") {
		t.Error("expected save confirmation")
	}

	// Start fresh and load from the same store.
	c2, out2 := newTestCLIWithStore(t, "/load test\n/quit\ny\n", store)
	c2.Run()

	loadOutput := out2.String()
	if !strings.Contains(loadOutput, "Game loaded from test") {
		t.Error("expected load confirmation")
	}
	// After loading, player should be in the garden (from the saved state).
	if !strings.Contains(loadOutput, "A peaceful garden.") {
		t.Error("expected garden description after loading save")
	}
}

func TestCLI_SaveDefaultSlot(t *testing.T) {
	store := newTestStore(t)
	c, out := newTestCLIWithStore(t, "/save\n/saves\n/quit\ny\n", store)
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Game saved to main.") {
		t.Error("expected default slot name")
	}
	if !strings.Contains(output, "[main]") {
		t.Error("expected /saves to list the main slot")
	}
}

func TestCLI_SaveBlockedWhileFighting(t *testing.T) {
	store := newTestStore(t)
	c, out := newTestCLIWithStore(t, "attack rat\n/save\nflee\n/save\n/quit\ny\n", store)
	c.Run()

	output := out.String()
	if !strings.Contains(output, "can't save in the middle of a fight") {
		t.Error("expected save to be refused during combat")
	}
	// FleeChance is 1.0 in the fixture, so the second save succeeds.
	if !strings.Contains(output, "Game saved to main.") {
		t.Error("expected save to succeed after fleeing")
	}
}

func TestCLI_SaveBlockedAfterDefeat(t *testing.T) {
	store := newTestStore(t)
	c, out := newTestCLIWithStore(t, "/save\n/quit\ny\n", store)
	c.Engine.State.GameOver = true
	c.Run()

	output := out.String()
	if !strings.Contains(output, "nothing left to save") {
		t.Error("expected save to be refused after defeat")
	}
	if strings.Contains(output, "Game saved") {
		t.Error("a dead run must not overwrite a save slot")
	}
	if _, err := store.Get(context.Background(), "main"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected no save written, got %v", err)
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\ny\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\ngo north\n/trace\n/quit\ny\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
	// Moving raises a visit event, which trace reports.
	if !strings.Contains(output, "[trace]") {
		t.Error("expected trace lines for the move")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\ny\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Room: hall") {
		t.Error("expected room in state output")
	}
	if !strings.Contains(output, "Turn:") {
		t.Error("expected turn count in state output")
	}
	if !strings.Contains(output, "HP: 30/30") {
		t.Error("expected hp in state output")
	}
}

func TestCLI_EmptyAndCommentInput(t *testing.T) {
	c, out := newTestCLI(t, "\n\n# a script comment\n/quit\ny\n")
	c.Run()

	output := out.String()
	if strings.Contains(output, "What do you want to do?") {
		t.Error("empty lines should be silently skipped by the CLI")
	}
	if strings.Contains(output, "script comment") {
		t.Error("comment lines should not reach the engine or be echoed")
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load nonexistent\n/quit\ny\n")
	c.Run()

	if !strings.Contains(out.String(), "Load failed") {
		t.Error("expected load failure message")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "look\nagain\n/quit\ny\n")
	c.Run()

	// Startup look + explicit look + again.
	count := strings.Count(out.String(), "A grand hall.")
	if count < 3 {
		t.Errorf("expected 'A grand hall.' at least 3 times (startup + look + again), got %d", count)
	}
}

func TestCLI_G_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "look\ng\n/quit\ny\n")
	c.Run()

	count := strings.Count(out.String(), "A grand hall.")
	if count < 3 {
		t.Errorf("expected 'A grand hall.' at least 3 times, got %d", count)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\ny\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "look\n/quit\ny\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "look\n") {
		t.Error("expected the input line to be echoed in script mode")
	}
}
