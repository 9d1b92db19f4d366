// Package storage persists save snapshots under named slots. Two
// backends are provided: local files for normal play and Redis for
// shared or ephemeral deployments.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a slot has no snapshot.
var ErrNotFound = errors.New("save not found")

// Store is a slot-addressed blob store for save snapshots.
type Store interface {
	Put(ctx context.Context, slot string, data []byte) error
	Get(ctx context.Context, slot string) ([]byte, error)
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}
