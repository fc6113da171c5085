package rebate

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// TierStore manages tier definitions
type TierStore interface {
	// Add a new definition
	Add(def *TierDefinition) error

	// Get a definition by key
	Get(key string) (*TierDefinition, error)

	// List all definitions ordered by key
	List() ([]*TierDefinition, error)

	// Update an existing definition
	Update(def *TierDefinition) error

	// Delete a definition
	Delete(key string) error
}

// InMemoryTierStore implements TierStore using an in-memory map
type InMemoryTierStore struct {
	tiers map[string]*TierDefinition
	mu    sync.RWMutex
}

// NewInMemoryTierStore creates a new in-memory tier store
func NewInMemoryTierStore() *InMemoryTierStore {
	return &InMemoryTierStore{
		tiers: make(map[string]*TierDefinition),
	}
}

// Add stores def, rejecting duplicate keys
func (s *InMemoryTierStore) Add(def *TierDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tiers[def.Key]; exists {
		return fmt.Errorf("tier with key %s already exists", def.Key)
	}

	now := time.Now()
	def.CreatedAt = now
	def.UpdatedAt = now
	s.tiers[def.Key] = def
	return nil
}

// Get retrieves a definition by key
func (s *InMemoryTierStore) Get(key string) (*TierDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, exists := s.tiers[key]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTierNotFound, key)
	}
	return def, nil
}

// List returns every definition ordered by key
func (s *InMemoryTierStore) List() ([]*TierDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := make([]*TierDefinition, 0, len(s.tiers))
	for _, def := range s.tiers {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Key < defs[j].Key })
	return defs, nil
}

// Update replaces an existing definition, preserving CreatedAt
func (s *InMemoryTierStore) Update(def *TierDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.tiers[def.Key]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTierNotFound, def.Key)
	}

	def.CreatedAt = existing.CreatedAt
	def.UpdatedAt = time.Now()
	s.tiers[def.Key] = def
	return nil
}

// Delete removes a definition
func (s *InMemoryTierStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tiers[key]; !exists {
		return fmt.Errorf("%w: %s", ErrTierNotFound, key)
	}

	delete(s.tiers, key)
	return nil
}
