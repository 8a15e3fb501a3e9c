package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTelegramSender_Send(t *testing.T) {
	lead := Request{PhotoURL: "https://x/p.jpg", Name: "Анна", Phone: "1", Comment: "c"}

	t.Run("not configured", func(t *testing.T) {
		sender := NewTelegramSender("", "chat")

		require.ErrorIs(t, sender.Send(context.Background(), lead), ErrNotConfigured)
	})

	t.Run("success", func(t *testing.T) {
		var got sendPhotoRequest
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		sender := NewTelegramSender("TOKEN", "42", WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))

		require.NoError(t, sender.Send(context.Background(), lead))
		require.Equal(t, "/botTOKEN/sendPhoto", gotPath)
		require.Equal(t, "42", got.ChatID)
		require.Equal(t, "https://x/p.jpg", got.Photo)
		require.Equal(t, lead.Caption(), got.Caption)
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
		}))
		defer server.Close()

		sender := NewTelegramSender("TOKEN", "42", WithBaseURL(server.URL))

		err := sender.Send(context.Background(), lead)
		require.ErrorIs(t, err, ErrTelegram)
		require.Contains(t, err.Error(), "chat not found")
	})

	t.Run("transport error hides token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		sender := NewTelegramSender("SECRET", "42", WithBaseURL(server.URL))

		err := sender.Send(context.Background(), lead)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrTelegram)
		require.NotContains(t, err.Error(), "SECRET")
	})
}
