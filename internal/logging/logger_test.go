package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSinkMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelDebug)

	boom := errors.New("boom")
	sink := SinkMiddleware(logger, ports.SinkFunc(func(ctx context.Context, in intent.Intent) error {
		if in.Type() == intent.TypeRequestLogout {
			return boom
		}
		return nil
	}))

	require.NoError(t, sink.Dispatch(context.Background(), intent.RequestLogin{}))
	assert.Contains(t, buf.String(), "intent=github.login.request")

	err := sink.Dispatch(context.Background(), intent.RequestLogout{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "err=boom")
}
