package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/commandbar/pkg/domain"
)

// Store implements ports.TreeStore in memory.
// Safe for concurrent use.
//
// Trees are immutable, so Store keeps the saved pointer and hands it back on Load. Loading an
// unchanged session therefore returns the same snapshot, which lets derivations short-circuit.
type Store struct {
	data map[string]*domain.Tree
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Tree),
	}
}

// Save keeps the tree in memory.
func (s *Store) Save(ctx context.Context, sessionID string, tree *domain.Tree) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = tree
	return nil
}

// Load retrieves the tree from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Tree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tree, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return tree, nil
}

// Delete removes the tree.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}
