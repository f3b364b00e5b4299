package observability_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/commandbar"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/observability"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_DerivationHooks(t *testing.T) {
	m := observability.NewMetrics()
	engine := commandbar.New(commandbar.WithDerivationHooks(m.Hooks()))

	tree := domain.NewTree().WithActiveDocument(&domain.Document{ID: "abc", Name: "Demo"})
	_, err := engine.Toolbar(tree)
	require.NoError(t, err)
	_, err = engine.Toolbar(tree)
	require.NoError(t, err)

	body := scrape(t, m)
	assert.Contains(t, body, `commandbar_derivation_recomputes_total{derivation="header.items"} 1`)
	assert.Contains(t, body, `commandbar_derivation_hits_total{derivation="header.items"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_Sink(t *testing.T) {
	m := observability.NewMetrics()
	failing := errors.New("boom")
	sink := m.Sink(ports.SinkFunc(func(ctx context.Context, in intent.Intent) error {
		if _, ok := in.(intent.RequestLogout); ok {
			return failing
		}
		return nil
	}))

	ctx := context.Background()
	require.NoError(t, sink.Dispatch(ctx, intent.RequestLogin{}))
	require.NoError(t, sink.Dispatch(ctx, intent.RequestLogin{}))
	assert.ErrorIs(t, sink.Dispatch(ctx, intent.RequestLogout{}), failing)

	body := scrape(t, m)
	assert.Contains(t, body, `commandbar_intent_dispatches_total{status="ok",type="github.login.request"} 2`)
	assert.Contains(t, body, `commandbar_intent_dispatches_total{status="error",type="github.logout"} 1`)
	assert.Contains(t, body, `commandbar_intent_dispatch_duration_seconds_count{type="github.login.request"} 2`)
}
