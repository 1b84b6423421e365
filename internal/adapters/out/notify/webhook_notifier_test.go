package notify_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant/internal/adapters/out/notify"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lifecycleEvent() order.Event {
	return order.Event{
		Type:        order.EventOrderReady,
		OrderID:     kernel.NewUUID(),
		TableNumber: 9,
		Status:      order.Ready,
		Version:     3,
		OccurredAt:  time.Now(),
	}
}

func TestWebhookNotifier_Notify(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	event := lifecycleEvent()
	n := notify.NewWebhookNotifier("display", server.URL, server.Client())

	require.NoError(t, n.Notify(t.Context(), event))

	assert.Equal(t, "OrderReady", received["event"])
	assert.Equal(t, event.OrderID.String(), received["order_id"])
	assert.Equal(t, "LISTO", received["status"])
	assert.Equal(t, float64(9), received["table_number"])
}

func TestWebhookNotifier_Notify_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := notify.NewWebhookNotifier("display", server.URL, server.Client())

	err := n.Notify(t.Context(), lifecycleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestRecorderNotifier_RecordsAndResets(t *testing.T) {
	n := notify.NewRecorderNotifier("recorder")
	require.NoError(t, n.Notify(t.Context(), lifecycleEvent()))
	require.NoError(t, n.Notify(t.Context(), lifecycleEvent()))

	assert.Len(t, n.Events(), 2)
	n.Reset()
	assert.Empty(t, n.Events())
}
