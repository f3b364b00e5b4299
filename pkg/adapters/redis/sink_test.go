package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/commandbar/pkg/adapters/redis"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_DispatchAndNext(t *testing.T) {
	_, client := newClient(t)
	sink := redis.NewSink(client, "commandbar:intents")
	ctx := context.Background()

	require.NoError(t, sink.Dispatch(ctx, intent.RequestGistCreate{DocumentID: "abc", IsPublic: true}))
	require.NoError(t, sink.Dispatch(ctx, intent.RequestLogin{}))

	n, err := sink.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, env, err := sink.Next(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, intent.RequestGistCreate{DocumentID: "abc", IsPublic: true}, got)
	assert.Equal(t, intent.TypeRequestGistCreate, env.Type)
	assert.NotEmpty(t, env.ID)

	got, _, err = sink.Next(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, intent.RequestLogin{}, got)
}

func TestSink_NextTimesOut(t *testing.T) {
	_, client := newClient(t)
	sink := redis.NewSink(client, "commandbar:intents")

	_, _, err := sink.Next(context.Background(), 100*time.Millisecond)
	assert.ErrorIs(t, err, redis.ErrQueueEmpty)
}
