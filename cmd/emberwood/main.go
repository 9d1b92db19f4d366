// Emberwood is a deterministic, data-driven text adventure RPG.
// Usage: emberwood [--version] [--plain] [--script <file>] [--trace]
// [--seed <n>] [--config <file>] [<game_directory>]
//
// Without a game directory the embedded default world is played.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/emberwood/cli"
	"github.com/nathoo/emberwood/config"
	"github.com/nathoo/emberwood/engine"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/loader"
	"github.com/nathoo/emberwood/logger"
	"github.com/nathoo/emberwood/storage"
	"github.com/nathoo/emberwood/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	var gameDir string
	var scriptFile string
	var configFile string
	seed := time.Now().UnixNano()

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("emberwood %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			if i+1 >= len(args) {
				fatal("--script requires a file path")
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fatal("--seed requires a number")
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fatal("--seed requires a number: %v", err)
			}
			seed = n
		case "--config":
			if i+1 >= len(args) {
				fatal("--config requires a file path")
			}
			i++
			configFile = args[i]
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fatal("Error loading config: %v", err)
	}
	log := logger.Setup(cfg, os.Stderr)

	// A game directory on the command line wins over the config.
	if gameDir == "" {
		gameDir = cfg.WorldDir
	}

	var defs *state.Defs
	if gameDir != "" {
		defs, err = loader.Load(gameDir)
	} else {
		defs, err = loader.LoadDefault()
	}
	if err != nil {
		fatal("Error loading game: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		fatal("Error opening save storage: %v", err)
	}
	defer store.Close()

	eng := engine.New(defs, seed, log)
	eng.State.Player.Name = cfg.PlayerName
	if eng.State.Player.Name == "" {
		eng.State.Player.Name = "Adventurer"
	}
	log.Debug("game loaded", "title", defs.Game.Title, "seed", seed,
		"rooms", len(defs.Rooms), "quests", len(defs.Quests))

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fatal("Error opening script: %v", err)
		}
		defer f.Close()
		printBanner(defs)
		c := cli.New(eng, defs, store)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use the plain CLI if --plain or stdout is not a terminal.
	if plain || !isTerminal() {
		printBanner(defs)
		c := cli.New(eng, defs, store)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng, defs, store); err != nil {
		fatal("Error: %v", err)
	}
}

// openStore picks redis when configured, file storage otherwise.
func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.RedisURL != "" {
		return storage.NewRedisStore(context.Background(), cfg.RedisURL)
	}
	return storage.NewFileStore(cfg.SaveDir)
}

func printBanner(defs *state.Defs) {
	banner := defs.Game.Title
	if defs.Game.Version != "" {
		banner += " v" + defs.Game.Version
	}
	if defs.Game.Author != "" {
		banner += " by " + defs.Game.Author
	}
	fmt.Printf("%s\n\n", banner)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
