package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTreeStoreContract runs a suite of tests to verify that a TreeStore implementation
// adheres to the defined interface contract.
func RunTreeStoreContract(t *testing.T, store TreeStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := &domain.Document{
			ID:     "abc",
			Name:   "Demo",
			Host:   "EXCEL",
			Source: &domain.Source{Origin: domain.OriginGist, ID: "d1f"},
		}
		tree := domain.NewTree().
			WithActiveDocument(doc).
			WithWidth(320).
			WithGitHub(domain.GitHubState{Token: "tok", Username: "octocat"})

		require.NoError(t, store.Save(ctx, sessionID, tree), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, tree.Revision, loaded.Revision)
		assert.Equal(t, 320, loaded.Screen.Width)
		assert.Equal(t, "tok", loaded.GitHub.Token)
		require.NotNil(t, loaded.Editor.Active)
		assert.Equal(t, *doc.Source, *loaded.Editor.Active.Source)
		assert.Equal(t, "Demo", loaded.ActiveDocument().Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewTree()))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewTree()))
		require.NoError(t, store.Save(ctx, id2, domain.NewTree()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
