package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/commandbar"
	"github.com/aretw0/commandbar/pkg/adapters/memory"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/reducer"
	"github.com/aretw0/commandbar/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverFunc func(tree *domain.Tree, path ...string) (intent.Intent, error)

func (f resolverFunc) Resolve(tree *domain.Tree, path ...string) (intent.Intent, error) {
	return f(tree, path...)
}

func TestManager_Activate(t *testing.T) {
	sink := memory.NewSink()
	manager := session.NewManager(memory.NewStore(),
		session.WithReducer(reducer.Reduce),
		session.WithSink(sink),
	)
	engine := commandbar.New()
	ctx := context.Background()
	doc := &domain.Document{ID: "abc", Name: "Demo"}
	require.NoError(t, manager.Save(ctx, "s", domain.NewTree().WithActiveDocument(doc).WithWidth(1024)))

	in, tree, err := manager.Activate(ctx, "s", engine, "delete")
	require.NoError(t, err)
	dialog, ok := in.(intent.ShowDialog)
	require.True(t, ok, "delete asks for confirmation first")
	assert.Equal(t, "Delete Snippet?", dialog.Title)
	assert.Equal(t, "abc", tree.ActiveDocument().ID)

	in, tree, err = manager.Activate(ctx, "s", engine, "run")
	require.NoError(t, err)
	assert.Equal(t, intent.NavigateToRun{}, in)
	assert.NotNil(t, tree)
	assert.Equal(t, []intent.Intent{dialog, intent.NavigateToRun{}}, sink.Intents())

	_, _, err = manager.Activate(ctx, "s", engine, "nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, _, err = manager.Activate(ctx, "s", engine, "solution-name")
	assert.ErrorIs(t, err, domain.ErrNoAction)

	_, _, err = manager.Activate(ctx, "missing", engine, "run")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_ActivateNoop(t *testing.T) {
	sink := memory.NewSink()
	manager := session.NewManager(memory.NewStore(), session.WithSink(sink))
	ctx := context.Background()
	tree := domain.NewTree().
		WithActiveDocument(&domain.Document{ID: "abc", Name: "Demo"}).
		WithGitHub(domain.GitHubState{IsLoggingInOrOut: true})
	require.NoError(t, manager.Save(ctx, "s", tree))

	in, got, err := manager.Activate(ctx, "s", commandbar.New(), "account")
	require.NoError(t, err)
	assert.Nil(t, in)
	assert.Equal(t, tree.Revision, got.Revision)
	assert.Empty(t, sink.Intents())
}

func TestManager_ActivateHoldsLockAcrossResolveAndReduce(t *testing.T) {
	manager := session.NewManager(memory.NewStore(), session.WithReducer(reducer.Reduce))
	ctx := context.Background()
	require.NoError(t, manager.Save(ctx, "s", domain.NewTree().WithWidth(300)))

	patched := make(chan struct{})
	resolver := resolverFunc(func(tree *domain.Tree, path ...string) (intent.Intent, error) {
		go func() {
			_, _ = manager.Patch(ctx, "s", map[string]any{"screen": map[string]any{"width": 500}})
			close(patched)
		}()
		select {
		case <-patched:
			t.Error("patch committed while the activation was resolving")
		case <-time.After(30 * time.Millisecond):
		}
		return intent.Resize{Width: tree.Screen.Width + 1}, nil
	})

	_, tree, err := manager.Activate(ctx, "s", resolver, "any")
	require.NoError(t, err)
	assert.Equal(t, 301, tree.Screen.Width)

	select {
	case <-patched:
	case <-time.After(time.Second):
		t.Fatal("patch never ran")
	}
	loaded, err := manager.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 500, loaded.Screen.Width)
}
