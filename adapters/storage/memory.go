package storage

import (
	"context"
	"sync"

	"plancost/core/types"
	"plancost/internal/errors"
)

// MemoryStore is an in-process store. Replace operations swap whole
// slices under one lock, so readers see either the old or the new set.
type MemoryStore struct {
	mu        sync.RWMutex
	rooms     map[string][]types.ClassifiedRoom
	estimates map[string]*StoredEstimate
	rates     []types.RateEntry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:     make(map[string][]types.ClassifiedRoom),
		estimates: make(map[string]*StoredEstimate),
	}
}

// SeedRates loads rate entries, replacing any existing ones
func (s *MemoryStore) SeedRates(entries []types.RateEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = append([]types.RateEntry(nil), entries...)
}

// ReplaceRooms atomically swaps all rooms for a drawing
func (s *MemoryStore) ReplaceRooms(ctx context.Context, drawingID string, rooms []types.ClassifiedRoom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[drawingID] = append([]types.ClassifiedRoom(nil), rooms...)
	return nil
}

// Rooms returns the stored rooms for a drawing
func (s *MemoryStore) Rooms(ctx context.Context, drawingID string) ([]types.ClassifiedRoom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms, ok := s.rooms[drawingID]
	if !ok {
		return nil, errors.NotFound("rooms", drawingID)
	}
	return append([]types.ClassifiedRoom(nil), rooms...), nil
}

// ReplaceEstimate atomically swaps the estimate for a drawing
func (s *MemoryStore) ReplaceEstimate(ctx context.Context, drawingID string, estimate *StoredEstimate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.estimates[drawingID] = estimate
	return nil
}

// Estimate returns the stored estimate for a drawing
func (s *MemoryStore) Estimate(ctx context.Context, drawingID string) (*StoredEstimate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	estimate, ok := s.estimates[drawingID]
	if !ok {
		return nil, errors.NotFound("estimate", drawingID)
	}
	return estimate, nil
}

// RateEntries returns all seeded rate entries
func (s *MemoryStore) RateEntries(ctx context.Context) ([]types.RateEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.RateEntry(nil), s.rates...), nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
