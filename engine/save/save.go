// Package save defines the snapshot format for game state. Snapshots
// are plain JSON with an integer schema version; restoring is
// all-or-nothing and never touches the live state on failure.
package save

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/emberwood/types"
)

// Version is the current snapshot schema version.
const Version = 1

// ErrVersionMismatch is returned when a snapshot was written by an
// incompatible schema version.
type ErrVersionMismatch struct {
	Found int
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("save version %d, want %d", e.Found, Version)
}

// Data is one complete snapshot. The active encounter is deliberately
// not part of it: combat never survives a save.
type Data struct {
	Version   int       `json:"version"`
	SessionID string    `json:"session_id"`
	SavedAt   time.Time `json:"saved_at"`
	Title     string    `json:"title"`

	Player      types.Player               `json:"player"`
	Room        string                     `json:"room"`
	Rooms       map[string]types.RoomState `json:"rooms"`
	Quests      []*types.Quest             `json:"quests"`
	Verbose     bool                       `json:"verbose,omitempty"`
	TurnCount   int                        `json:"turn_count"`
	RNGSeed     int64                      `json:"rng_seed"`
	RNGPosition int64                      `json:"rng_position"`
}

// Snapshot captures the current state under a fresh session id.
func Snapshot(s *types.State, title string) *Data {
	return &Data{
		Version:     Version,
		SessionID:   uuid.NewString(),
		SavedAt:     time.Now().UTC(),
		Title:       title,
		Player:      s.Player,
		Room:        s.Room,
		Rooms:       s.Rooms,
		Quests:      s.Quests,
		Verbose:     s.Verbose,
		TurnCount:   s.TurnCount,
		RNGSeed:     s.RNGSeed,
		RNGPosition: s.RNGPosition,
	}
}

// Marshal encodes a snapshot as indented JSON.
func Marshal(d *Data) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal decodes and validates a snapshot. It fails on malformed
// JSON and on a schema version mismatch.
func Unmarshal(raw []byte) (*Data, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if d.Version != Version {
		return nil, &ErrVersionMismatch{Found: d.Version}
	}
	return &d, nil
}

// Restore builds a fresh state from a validated snapshot. Maps the
// decoder left nil are re-initialized so the engine never sees a nil
// map.
func Restore(d *Data) *types.State {
	s := &types.State{
		Player:      d.Player,
		Room:        d.Room,
		Rooms:       d.Rooms,
		Quests:      d.Quests,
		Verbose:     d.Verbose,
		TurnCount:   d.TurnCount,
		RNGSeed:     d.RNGSeed,
		RNGPosition: d.RNGPosition,
	}
	if s.Player.Inventory == nil {
		s.Player.Inventory = []string{}
	}
	if s.Player.Equipment == nil {
		s.Player.Equipment = map[types.Slot]string{}
	}
	if s.Player.Effects == nil {
		s.Player.Effects = map[types.EffectKind]*types.EffectState{}
	}
	if s.Rooms == nil {
		s.Rooms = map[string]types.RoomState{}
	}
	return s
}
