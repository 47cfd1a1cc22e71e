// Package storage provides the persistence collaborators of the
// pipeline: room, estimate, and rate stores. Replace operations are
// atomic — a reader never observes a partially replaced state.
package storage

import (
	"context"

	"plancost/core/types"
)

// StoredEstimate is the persisted estimate for one drawing; exactly one
// of Summary or Detailed is set, per the generation mode.
type StoredEstimate struct {
	// ID is the record identifier
	ID string `json:"id"`

	// DrawingID groups records per source drawing
	DrawingID string `json:"drawing_id"`

	// Mode that generated the estimate
	Mode types.EstimateMode `json:"mode"`

	// Summary payload for ModeSummary
	Summary *types.EstimateSummary `json:"summary,omitempty"`

	// Detailed payload for ModeDetailed
	Detailed *types.DetailedEstimate `json:"detailed,omitempty"`
}

// RoomStore persists classified rooms per drawing
type RoomStore interface {
	// ReplaceRooms atomically swaps all rooms for a drawing
	ReplaceRooms(ctx context.Context, drawingID string, rooms []types.ClassifiedRoom) error

	// Rooms returns the stored rooms for a drawing
	Rooms(ctx context.Context, drawingID string) ([]types.ClassifiedRoom, error)
}

// EstimateStore persists generated estimates per drawing
type EstimateStore interface {
	// ReplaceEstimate atomically swaps the estimate for a drawing
	ReplaceEstimate(ctx context.Context, drawingID string, estimate *StoredEstimate) error

	// Estimate returns the stored estimate for a drawing
	Estimate(ctx context.Context, drawingID string) (*StoredEstimate, error)
}

// RateStore exposes versioned rate entries, read-only to the pipeline
type RateStore interface {
	// RateEntries returns all rate entries
	RateEntries(ctx context.Context) ([]types.RateEntry, error)
}

// Store is the combined persistence surface
type Store interface {
	RoomStore
	EstimateStore
	RateStore

	// Close releases underlying resources
	Close() error
}
