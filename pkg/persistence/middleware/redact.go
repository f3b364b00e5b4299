package middleware

import (
	"context"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/ports"
)

type redactMiddleware struct {
	next ports.TreeStore
}

// NewRedactMiddleware creates a middleware that never persists the GitHub token. A session
// restored from such a store keeps its username but is logged out.
func NewRedactMiddleware() Middleware {
	return func(next ports.TreeStore) ports.TreeStore {
		return &redactMiddleware{next: next}
	}
}

func (m *redactMiddleware) Save(ctx context.Context, sessionID string, tree *domain.Tree) error {
	if tree == nil || tree.GitHub.Token == "" {
		return m.next.Save(ctx, sessionID, tree)
	}
	redacted := *tree
	redacted.GitHub.Token = ""
	return m.next.Save(ctx, sessionID, &redacted)
}

func (m *redactMiddleware) Load(ctx context.Context, sessionID string) (*domain.Tree, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *redactMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
