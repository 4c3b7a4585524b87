package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"creativesync/internal/config"
	"creativesync/internal/core/port"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.HTTP.Port = 0
	cfg.Gemini.APIKey = ""
	cfg.Sim.Interval = 10 * time.Millisecond
	cfg.Sim.VariantPacing = 0
	cfg.Sim.Seed = 1
	return cfg
}

func TestNewMemoryApp(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Gemini.Configured())
	assert.Zero(t, a.Campaigns.Count())

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewRestoresStoredAPIKey(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.KV.Set(context.Background(), port.KeyAPIKey, strings.Repeat("k", 30)))
	require.NoError(t, a.restoreAPIKey(context.Background()))
	assert.True(t, a.Gemini.Configured())
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a, err := New(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		return a.Simulator.Snapshot().Impressions > 245678
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
