package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"erp-ledger/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsToSubscribers(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(models.LedgerEvent{
		Type:          models.EventInvoiceSent,
		InvoiceID:     "inv-1",
		InvoiceNumber: "INV-000001",
		Status:        models.InvoiceStatusSent,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.LedgerEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, models.EventInvoiceSent, got.Type)
	assert.Equal(t, "inv-1", got.InvoiceID)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultBuffer*2; i++ {
			hub.Publish(models.LedgerEvent{Type: models.EventInvoiceGenerated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no broadcaster running")
	}
}

func TestHandleWebSocketAfterStop(t *testing.T) {
	hub := NewHub()
	hub.Start()
	hub.Stop()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 0, hub.Subscribers())
}
