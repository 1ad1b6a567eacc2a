// Package storage persists save snapshots in named slots. The engine hands
// it opaque bytes; it adds slot metadata and knows nothing about world state.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a slot has no save.
var ErrNotFound = errors.New("save not found")

// Envelope wraps save bytes with slot metadata.
type Envelope struct {
	ID      uuid.UUID       `json:"id"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// SlotInfo describes one occupied save slot.
type SlotInfo struct {
	Slot    string    `json:"slot"`
	ID      uuid.UUID `json:"id"`
	SavedAt time.Time `json:"saved_at"`
}

// Store is a save-slot backend.
type Store interface {
	Save(ctx context.Context, slot string, data []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
	List(ctx context.Context) ([]SlotInfo, error)
	Close() error
}

// wrap stamps save bytes with a fresh id and timestamp.
func wrap(data []byte) ([]byte, error) {
	env := Envelope{
		ID:      uuid.New(),
		SavedAt: time.Now().UTC(),
		Data:    json.RawMessage(data),
	}
	return json.Marshal(env)
}

// unwrap extracts save bytes from an envelope. Pre-envelope saves (bare
// snapshots) are returned as-is.
func unwrap(raw []byte) []byte {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}
