// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Emberwood game engine.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/emberwood/engine"
	"github.com/nathoo/emberwood/engine/save"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/storage"
	"github.com/nathoo/emberwood/types"
)

// defaultSlot is used when /save or /load is given without a name.
const defaultSlot = "main"

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	Store     storage.Store
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine and save store.
func New(eng *engine.Engine, defs *state.Defs, store storage.Store) *CLI {
	return &CLI{
		Engine: eng,
		Defs:   defs,
		Store:  store,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro, describes the starting room,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Defs.Game.Intro != "" {
		c.printLine(c.Defs.Game.Intro)
		c.printLine("")
	}

	result := c.Engine.Step("look")
	c.printResult(result)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input, scanner) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string, scanner *bufio.Scanner) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		if c.confirm(scanner, "Really quit? (y/n)") {
			c.printSystem("Goodbye.")
			return true
		}

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/saves":
		c.cmdSaves()

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// confirm prompts and reads one line; "y"/"yes" accepts. EOF counts as yes so
// piped scripts ending in /quit still terminate.
func (c *CLI) confirm(scanner *bufio.Scanner, prompt string) bool {
	c.printLine(prompt)
	c.print("> ")
	if !scanner.Scan() {
		return true
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func (c *CLI) cmdSave(slot string) {
	if slot == "" {
		slot = defaultSlot
	}

	if state.InCombat(c.Engine.State) {
		c.printSystem("You can't save in the middle of a fight.")
		return
	}
	if c.Engine.State.GameOver {
		c.printSystem("There is nothing left to save. (/load to return to an earlier save)")
		return
	}

	data, err := save.Marshal(save.Snapshot(c.Engine.State, c.Defs.Game.Title))
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := c.Store.Put(context.Background(), slot, data); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", slot))
}

func (c *CLI) cmdLoad(slot string) {
	if slot == "" {
		slot = defaultSlot
	}

	data, err := c.Store.Get(context.Background(), slot)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.printSystem(fmt.Sprintf("Load failed: no save named %q.", slot))
		} else {
			c.printSystem(fmt.Sprintf("Load failed: %v", err))
		}
		return
	}

	sd, err := save.Unmarshal(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.Engine.State = save.Restore(sd)
	c.Engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", slot, sd.TurnCount))

	// Show current room after loading.
	result := c.Engine.Step("look")
	c.printResult(result)
}

func (c *CLI) cmdSaves() {
	slots, err := c.Store.List(context.Background())
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing saves failed: %v", err))
		return
	}
	if len(slots) == 0 {
		c.printSystem("No saves yet.")
		return
	}
	for _, s := range slots {
		c.printSystem(s)
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save game (default: main)",
		"  /load [name]  — Load game (default: main)",
		"  /saves        — List saved games",
		"  /quit         — Exit game (asks for confirmation)",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Game commands:",
		"  look (l)              — Describe the room",
		"  go/walk <dir>         — Move (or just type n/s/e/w)",
		"  take/get <item>       — Pick something up",
		"  drop <item>           — Put something down",
		"  talk [<npc>]          — Talk to someone",
		"  use <item>            — Drink a potion, eat a mushroom...",
		"  equip/unequip <item>  — Wear or wield gear",
		"  inventory (i)         — Check what you're carrying",
		"  status (st)           — Your hit points, gold, afflictions",
		"  quests (q)            — Your quest journal",
		"  attack [<enemy>]      — Pick a fight, or keep swinging",
		"  skill                 — Spend mana on a heavy strike",
		"  flee                  — Run from a fight",
		"  sanctuary [<effect>|all] — Pay to cure afflictions",
		"  verbose               — Toggle combat detail",
		"  again (g)             — Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Turn: %d", s.TurnCount))
	c.printSystem(fmt.Sprintf("Room: %s", s.Room))
	c.printSystem(fmt.Sprintf("HP: %d/%d  Mana: %d/%d  Gold: %d",
		s.Player.HP, s.Player.MaxHP, s.Player.Mana, s.Player.MaxMana, s.Player.Gold))
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Player.Inventory))
	if len(s.Player.Effects) > 0 {
		kinds := make([]string, 0, len(s.Player.Effects))
		for k := range s.Player.Effects {
			kinds = append(kinds, string(k))
		}
		c.printSystem(fmt.Sprintf("Effects: %v", kinds))
	}
	if enc := s.Encounter; enc != nil {
		c.printSystem(fmt.Sprintf("Fighting: %s (%d hp), phase %s, round %d",
			enc.Enemy.Name, enc.Enemy.HP, enc.Phase, enc.Rounds+1))
	}
	c.printSystem(fmt.Sprintf("RNG: seed %d position %d", s.RNGSeed, s.RNGPosition))
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %s", e.Kind, e.Target))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
