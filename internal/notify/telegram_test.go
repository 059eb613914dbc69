package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestTelegramSend(t *testing.T) {
	var got TelegramMessage
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	m := NewTelegramMessenger(srv.URL, "123:abc", "-10042", zaptest.NewLogger(t))
	require.NoError(t, m.Send(context.Background(), "*hello*"))

	assert.Equal(t, "/bot123:abc/sendMessage", path)
	assert.Equal(t, TelegramMessage{ChatID: "-10042", Text: "*hello*", ParseMode: "Markdown"}, got)
}

func TestTelegramSendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api description", http.StatusBadRequest, `{"ok":false,"description":"Bad Request: chat not found"}`, "chat not found"},
		{"not ok with 200", http.StatusOK, `{"ok":false}`, "status 200"},
		{"non json", http.StatusBadGateway, `<html>`, "status 502"},
		{"non json with 200", http.StatusOK, `<html>`, "failed to decode telegram response (status 200)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewTelegramMessenger(srv.URL, "1:x", "1", zaptest.NewLogger(t)).Send(context.Background(), "x")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTelegramSendRedactsToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewTelegramMessenger(url, "999:secret", "1", zaptest.NewLogger(t)).Send(context.Background(), "x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "999:secret")
}
