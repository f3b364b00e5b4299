package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/commandbar/pkg/adapters/memory"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	ports.RunTreeStoreContract(t, memory.NewStore())
}

func TestStore_LoadKeepsSnapshotIdentity(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	tree := domain.NewTree().WithWidth(300)

	require.NoError(t, store.Save(ctx, "s1", tree))
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, tree, loaded)
}

func TestSink(t *testing.T) {
	sink := memory.NewSink()
	ctx := context.Background()
	assert.Nil(t, sink.Last())

	require.NoError(t, sink.Dispatch(ctx, intent.RequestLogin{}))
	require.NoError(t, sink.Dispatch(ctx, intent.Navigate{Route: "/x"}))

	assert.Equal(t, []intent.Intent{intent.RequestLogin{}, intent.Navigate{Route: "/x"}}, sink.Intents())
	assert.Equal(t, intent.Navigate{Route: "/x"}, sink.Last())

	sink.Reset()
	assert.Empty(t, sink.Intents())
}
