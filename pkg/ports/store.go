package ports

import (
	"context"

	"github.com/aretw0/commandbar/pkg/domain"
)

// TreeStore defines the interface for persisting state trees per session.
// A host restores the last tree of a session on start and saves every new revision.
type TreeStore interface {
	// Save persists the tree for a given session ID.
	Save(ctx context.Context, sessionID string, tree *domain.Tree) error

	// Load retrieves the tree for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Tree, error)

	// Delete removes the tree for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
