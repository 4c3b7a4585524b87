package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"creativesync/internal/core/domain"
)

type staticMetrics domain.Metrics

func (m staticMetrics) Snapshot() domain.Metrics { return domain.Metrics(m) }

func readMessage(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg.Type, msg.Data
}

func TestHubStreamsTicks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(staticMetrics{Impressions: 245678, Clicks: 18234, CTR: 7.42, ActiveCampaigns: 12}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- hub.Run(ctx) }()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	typ, data := readMessage(t, conn)
	assert.Equal(t, TypeSnapshot, typ)
	var snap domain.Metrics
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, int64(245678), snap.Impressions)
	assert.Equal(t, 1, hub.Clients())

	hub.Publish(domain.TickEvent{
		Before: domain.Metrics{Impressions: 1},
		After:  domain.Metrics{Impressions: 2},
	})
	typ, data = readMessage(t, conn)
	assert.Equal(t, TypeTick, typ)
	var ev domain.TickEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, int64(2), ev.After.Impressions)

	cancel()
	require.NoError(t, <-stopped)

	// The hub closes the stream on shutdown.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	// Publishing after shutdown must not block.
	hub.Publish(domain.TickEvent{})
}

func TestHubUnregistersClosedClients(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(staticMetrics{}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- hub.Run(ctx) }()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	readMessage(t, conn)
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-stopped)
}
