package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestNotifier(serverURL string) *TelegramNotifier {
	return &TelegramNotifier{
		token:   "test-token",
		baseURL: serverURL,
		client:  &http.Client{Timeout: time.Second},
	}
}

func TestTelegramSend(t *testing.T) {
	t.Run("posts_send_message", func(t *testing.T) {
		var gotPath string
		var gotPayload map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
				t.Errorf("failed to decode payload: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		notifier := newTestNotifier(server.URL)
		err := notifier.Send(context.Background(), 42, "registra tus gastos")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotPath != "/bottest-token/sendMessage" {
			t.Errorf("expected sendMessage path, got %s", gotPath)
		}
		if gotPayload["chat_id"].(float64) != 42 {
			t.Errorf("expected chat_id 42, got %v", gotPayload["chat_id"])
		}
		if gotPayload["text"] != "registra tus gastos" {
			t.Errorf("expected message text, got %v", gotPayload["text"])
		}
	})

	t.Run("non_200_is_an_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		notifier := newTestNotifier(server.URL)
		if err := notifier.Send(context.Background(), 42, "hola"); err == nil {
			t.Error("expected error for non-200 response")
		}
	})

	t.Run("honors_context_cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		notifier := newTestNotifier(server.URL)
		if err := notifier.Send(ctx, 42, "hola"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
