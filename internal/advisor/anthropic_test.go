package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *AnthropicCompleter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewAnthropicCompleter("test-key", "", 5*time.Second)
	c.endpoint = srv.URL
	return c
}

func TestAnthropicCompleter_Complete(t *testing.T) {
	var got messagesRequest
	c := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(messagesResponse{
			Content: []contentBlock{{Type: "text", Text: "hello "}, {Type: "text", Text: "world"}},
		})
	})

	text, err := c.Complete(context.Background(), Request{System: "sys", User: "hi", Temperature: 0.3})
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, defaultModel, got.Model)
	assert.Equal(t, "sys", got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hi", got.Messages[0].Content)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, 0.3, *got.Temperature, 1e-9)
	assert.Equal(t, "anthropic/"+defaultModel, c.Name())
}

func TestAnthropicCompleter_JSONHint(t *testing.T) {
	var got messagesRequest
	c := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(messagesResponse{Content: []contentBlock{{Type: "text", Text: "[]"}}})
	})
	_, err := c.Complete(context.Background(), Request{User: "list", JSON: true})
	require.NoError(t, err)
	assert.Contains(t, got.Messages[0].Content, "Respond with JSON only.")
}

func TestAnthropicCompleter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
		}},
		{"api error body", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(messagesResponse{Error: &apiError{Type: "invalid_request_error", Message: "bad"}})
		}},
		{"no text blocks", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(messagesResponse{Content: []contentBlock{{Type: "tool_use"}}})
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestAnthropic(t, tc.handler)
			_, err := c.Complete(context.Background(), Request{User: "x"})
			assert.Error(t, err)
		})
	}
}

func TestAnthropicCompleter_RespectsContext(t *testing.T) {
	c := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Complete(ctx, Request{User: "slow"})
	assert.Error(t, err)
}
