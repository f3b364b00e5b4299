package cli

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/commandbar/internal/config"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
editor:
  active:
    id: abc
    name: Demo
screen:
  width: 1024
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0644))
	return path
}

func newApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.Host = "EXCEL"
	app := newApp(t, cfg)
	require.NotNil(t, app.Metrics)
	ctx := context.Background()

	tree, err := app.StartSession(ctx, "s1", writeFixture(t))
	require.NoError(t, err)
	assert.Equal(t, "Demo", tree.ActiveDocument().Name)
	assert.Equal(t, "EXCEL", tree.Host.Current)

	next, err := app.Transition("s1")(ctx, tree, intent.RequestLogin{})
	require.NoError(t, err)
	assert.True(t, next.GitHub.IsLoggingInOrOut)

	resumed, err := app.StartSession(ctx, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, next.Revision, resumed.Revision, "without a fixture the stored tree is resumed")
}

func TestNewApp_File(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "file"
	cfg.Store.Dir = t.TempDir()
	cfg.Server.Metrics = false
	app := newApp(t, cfg)
	assert.Nil(t, app.Metrics)

	ctx := context.Background()
	_, err := app.StartSession(ctx, "s1", writeFixture(t))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.Store.Dir, "s1.json"))
	assert.NoError(t, err)

	ids, err := app.Sessions.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestNewApp_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Store.Backend = "redis"
	cfg.Store.Redis.Addr = mr.Addr()
	cfg.Store.Redis.LockTTL = config.Duration{Duration: 5 * time.Second}
	cfg.Sink.Kind = "redis"
	app := newApp(t, cfg)
	ctx := context.Background()

	tree, err := app.StartSession(ctx, "s1", writeFixture(t))
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Store.Redis.Prefix+"s1"))

	_, err = app.Engine.Activate(ctx, tree, "run")
	require.NoError(t, err)

	require.NotNil(t, app.Queue)
	got, _, err := app.Queue.Next(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, intent.NavigateToRun{}, got)
}

func TestInitialTree_Empty(t *testing.T) {
	app := newApp(t, config.Default())
	tree, err := app.InitialTree("")
	require.NoError(t, err)
	assert.Equal(t, domain.NullDocumentID, tree.ActiveDocument().ID)

	_, err = app.InitialTree(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewApp_EncryptedTokens(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	cfg := config.Default()
	cfg.Store.Backend = "file"
	cfg.Store.Dir = t.TempDir()
	cfg.Store.EncryptionKey = base64.StdEncoding.EncodeToString(key)
	app := newApp(t, cfg)
	ctx := context.Background()

	tree := domain.NewTree().WithGitHub(domain.GitHubState{Token: "gho_secret", Username: "octocat"})
	require.NoError(t, app.Sessions.Save(ctx, "s1", tree))

	data, err := os.ReadFile(filepath.Join(cfg.Store.Dir, "s1.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "gho_secret")
	assert.Contains(t, string(data), "octocat")

	loaded, err := app.Sessions.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "gho_secret", loaded.GitHub.Token)
}

func TestNewApp_BadEncryptionKey(t *testing.T) {
	cfg := config.Default()
	cfg.Store.EncryptionKey = base64.StdEncoding.EncodeToString([]byte("too short"))
	_, err := NewApp(cfg, nil)
	assert.Error(t, err)
}

func TestApp_RunnerToolbar(t *testing.T) {
	app := newApp(t, config.Default())
	tree := domain.NewTree().WithActiveDocument(&domain.Document{ID: "abc", Name: "Demo"})

	tb := app.RunnerToolbar(tree, false)
	require.Len(t, tb.Items, 1)
	assert.Equal(t, "title", tb.Items[0].Key)
	assert.Equal(t, "Demo", tb.Items[0].Text)

	item, err := tb.Find("overflow", "hard-refresh")
	require.NoError(t, err)
	assert.Equal(t, intent.Navigate{Route: RunnerHardRefreshRoute}, item.Action())

	tb = app.RunnerToolbar(tree, true)
	require.Len(t, tb.Items, 2)
	assert.Equal(t, intent.Navigate{Route: RunnerHomeRoute}, tb.Items[0].Action())

	loading := app.RunnerToolbar(domain.NewTree(), false)
	assert.True(t, loading.Items[0].Loading)
	assert.Empty(t, loading.Items[0].Text)
}
