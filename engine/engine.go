// Package engine provides the Step() orchestrator that wires together
// parsing, command dispatch, combat, status effects and quest events
// into a single turn.
package engine

import (
	"log/slog"

	"github.com/nathoo/emberwood/engine/parser"
	"github.com/nathoo/emberwood/engine/quest"
	"github.com/nathoo/emberwood/engine/state"
	"github.com/nathoo/emberwood/types"
)

// Engine holds the game definitions and mutable state.
type Engine struct {
	Defs  *state.Defs
	State *types.State
	RNG   *RNG
	Log   *slog.Logger

	// events raised during the current step, drained by Step.
	events []types.Event
}

// New creates a new engine from definitions with a fresh state.
func New(defs *state.Defs, seed int64, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	s := state.NewState(defs)
	s.RNGSeed = seed
	return &Engine{
		Defs:  defs,
		State: s,
		RNG:   NewRNG(seed),
		Log:   log,
	}
}

// RestoreRNG re-creates the RNG from seed and advances to the saved position.
func (e *Engine) RestoreRNG(seed, position int64) {
	e.RNG = RestoreRNG(seed, position)
}

// commands is the static verb table. Every gameplay verb routes through
// here; meta commands (save, load, quit) belong to the frontend.
var commands = map[string]func(*Engine, string) []string{
	"look":      (*Engine).cmdLook,
	"go":        (*Engine).cmdGo,
	"talk":      (*Engine).cmdTalk,
	"take":      (*Engine).cmdTake,
	"drop":      (*Engine).cmdDrop,
	"inventory": (*Engine).cmdInventory,
	"use":       (*Engine).cmdUse,
	"equip":     (*Engine).cmdEquip,
	"unequip":   (*Engine).cmdUnequip,
	"status":    (*Engine).cmdStatus,
	"attack":    (*Engine).cmdAttack,
	"skill":     (*Engine).cmdSkill,
	"flee":      (*Engine).cmdFlee,
	"quests":    (*Engine).cmdQuests,
	"sanctuary": (*Engine).cmdSanctuary,
	"verbose":   (*Engine).cmdVerbose,
	"help":      (*Engine).cmdHelp,
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// Game over blocks all gameplay commands.
	if e.State.GameOver {
		result.Output = append(result.Output, "Game over. Use /load to restore a save or /quit to exit.")
		return result
	}

	intent := parser.Parse(input)
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// Combat restricts the verb set. Trying to leave means fleeing.
	if state.InCombat(e.State) {
		if intent.Verb == "go" {
			intent.Verb = "flee"
			intent.Arg = ""
		}
		if !isCombatVerb(intent.Verb) {
			result.Output = append(result.Output, "You're in the middle of a fight! (attack, skill, use <item>, flee)")
			return result
		}
	}

	handler, ok := commands[intent.Verb]
	if !ok {
		result.Output = append(result.Output, "You can't do that here.")
		return result
	}

	e.Log.Debug("step", "verb", intent.Verb, "arg", intent.Arg, "turn", e.State.TurnCount)
	result.Output = append(result.Output, handler(e, intent.Arg)...)

	// Drain the events raised by this command and advance quests.
	for _, evt := range e.events {
		result.Events = append(result.Events, evt)
		result.Output = append(result.Output, quest.Advance(e.State.Quests, &e.State.Player, evt.Kind, evt.Target)...)
	}
	e.events = e.events[:0]

	e.State.RNGPosition = e.RNG.Position()
	e.State.TurnCount++
	return result
}

// raise queues a quest event for the end of the current step.
func (e *Engine) raise(kind types.QuestKind, target string) {
	e.events = append(e.events, types.Event{Kind: kind, Target: target})
}
