// Package favorites keeps the user's saved stories and persists the whole
// collection to a single key-value slot after every change.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bilgisen/gossipd/internal/kv"
	"github.com/bilgisen/gossipd/internal/logger"
	"github.com/bilgisen/gossipd/internal/models"
	"github.com/rs/zerolog"
)

// DefaultKey is the slot the collection is stored under
const DefaultKey = "gossip-favorites"

// Store is an ordered collection of saved stories keyed by ID. Duplicate IDs
// are not rejected; lookups use the first match and removal drops all of them.
type Store struct {
	mu    sync.RWMutex
	items []models.SavedGossip
	slot  kv.Store
	key   string
	log   zerolog.Logger
}

// New returns an empty store. Call Load to hydrate it from the slot.
func New(slot kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		items: []models.SavedGossip{},
		slot:  slot,
		key:   key,
		log:   logger.Component("favorites"),
	}
}

// Load replaces the in-memory collection with the persisted one. An absent,
// unreadable or malformed slot yields an empty collection.
func (s *Store) Load(ctx context.Context) {
	items := []models.SavedGossip{}

	data, found, err := s.slot.Get(ctx, s.key)
	switch {
	case err != nil:
		s.log.Error().Err(err).Str("key", s.key).Msg("Error reading favorites, starting empty")
	case !found:
		s.log.Debug().Str("key", s.key).Msg("No saved favorites")
	default:
		decoded, err := Decode(data)
		if err != nil {
			s.log.Error().Err(err).Str("key", s.key).Msg("Malformed favorites, starting empty")
		} else {
			items = decoded
		}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.log.Info().Int("count", len(items)).Msg("Favorites loaded")
}

// Add appends item and persists the collection
func (s *Store) Add(ctx context.Context, item models.SavedGossip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	s.persistLocked(ctx)
}

// Remove drops every entry with id and persists the collection. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.SavedGossip, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persistLocked(ctx)
}

// Contains reports whether any entry has id
func (s *Store) Contains(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Get returns the first entry with id
func (s *Store) Get(id string) (models.SavedGossip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.SavedGossip{}, false
}

// List returns a copy of the collection in insertion order
func (s *Store) List() []models.SavedGossip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SavedGossip, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// persistLocked writes the whole collection. Failures are logged, never returned.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := Encode(s.items)
	if err != nil {
		s.log.Error().Err(err).Msg("Error encoding favorites")
		return
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Int("count", len(s.items)).Msg("Error saving favorites")
	}
}

// Encode serializes a collection as a JSON array
func Encode(items []models.SavedGossip) ([]byte, error) {
	if items == nil {
		items = []models.SavedGossip{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal favorites: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array written by Encode. A JSON null decodes to an empty collection.
func Decode(data []byte) ([]models.SavedGossip, error) {
	var items []models.SavedGossip
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal favorites: %w", err)
	}
	if items == nil {
		items = []models.SavedGossip{}
	}
	return items, nil
}
