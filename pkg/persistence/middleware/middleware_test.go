package middleware_test

import (
	"context"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/aretw0/commandbar/pkg/adapters/memory"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/persistence/middleware"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	_, err := rand.Read(k)
	require.NoError(t, err)
	return k
}

func loggedIn() *domain.Tree {
	return domain.NewTree().
		WithActiveDocument(&domain.Document{ID: "abc", Name: "Demo"}).
		WithGitHub(domain.GitHubState{Token: "gho_secret", Username: "octocat"})
}

func encrypted(t *testing.T, next ports.TreeStore, cfg middleware.EncryptionConfig) ports.TreeStore {
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(next)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunTreeStoreContract(t, encrypted(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	secure := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})

	tree := loggedIn()
	require.NoError(t, secure.Save(ctx, "s1", tree))
	assert.Equal(t, "gho_secret", tree.GitHub.Token, "caller snapshot is untouched")

	stored, err := underlying.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.GitHub.Token, middleware.SealedPrefix))
	assert.NotContains(t, stored.GitHub.Token, "gho_secret")
	assert.Equal(t, "octocat", stored.GitHub.Username)
	assert.Equal(t, "abc", stored.ActiveDocument().ID)

	loaded, err := secure.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "gho_secret", loaded.GitHub.Token)
	assert.Equal(t, tree.Revision, loaded.Revision)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	require.NoError(t, encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: oldKey}).Save(ctx, "s1", loggedIn()))

	rotated := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}})
	loaded, err := rotated.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "gho_secret", loaded.GitHub.Token)

	stranger := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	_, err = stranger.Load(ctx, "s1")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlainToken(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(ctx, "s1", loggedIn()))

	_, err := encrypted(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)}).Load(ctx, "s1")
	assert.ErrorIs(t, err, middleware.ErrUnsealedToken)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}

func TestRedactMiddleware(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	store := middleware.NewRedactMiddleware()(underlying)

	tree := loggedIn()
	require.NoError(t, store.Save(ctx, "s1", tree))
	assert.Equal(t, "gho_secret", tree.GitHub.Token)

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, loaded.GitHub.Token)
	assert.Equal(t, "octocat", loaded.GitHub.Username)
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	// Redaction runs first, so nothing is left to seal.
	store := middleware.Chain(underlying, middleware.NewRedactMiddleware(), mw)
	require.NoError(t, store.Save(ctx, "s1", loggedIn()))

	stored, err := underlying.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, stored.GitHub.Token)
}
