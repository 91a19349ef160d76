package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/professor/core"
	"github.com/trezcool/professor/core/chat"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *AnthropicClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewAnthropicClient(&core.Config{
		Anthropic: core.AnthropicConfig{
			APIKey:    "test-key",
			BaseURL:   srv.URL + "/",
			Model:     "claude-3-5-sonnet-20241022",
			Version:   "2023-06-01",
			MaxTokens: 1000,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

func TestAnthropicClient_Complete_request(t *testing.T) {
	var (
		gotReq    messagesRequest
		gotHeader http.Header
		gotPath   string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader, gotPath = r.Header, r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		writeJSON(w, http.StatusOK, `{"content": [{"type": "text", "text": "That's an interesting point about..."}]}`)
	})

	turns := []chat.Turn{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello"},
		{Role: chat.RoleUser, Content: "Rome fell because of lead pipes"},
	}
	reply, err := client.Complete(context.Background(), "be nice", turns)
	require.NoError(t, err)
	assert.Equal(t, "That's an interesting point about...", reply)

	assert.Equal(t, messagesEndpoint, gotPath)
	assert.Equal(t, "test-key", gotHeader.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeader.Get("anthropic-version"))
	assert.Equal(t, messagesRequest{
		Model:     "claude-3-5-sonnet-20241022",
		MaxTokens: 1000,
		System:    "be nice",
		Messages: []message{
			{Role: chat.RoleUser, Content: "hi"},
			{Role: chat.RoleAssistant, Content: "hello"},
			{Role: chat.RoleUser, Content: "Rome fell because of lead pipes"},
		},
	}, gotReq)
}

func TestAnthropicClient_Complete(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		body       string
		want       string
		wantErrMsg string
	}{
		{
			name: "first text block",
			code: http.StatusOK,
			body: `{"content": [{"type": "tool_use"}, {"type": "text", "text": "first"}, {"type": "text", "text": "second"}]}`,
			want: "first",
		},
		{
			name:       "provider error message",
			code:       http.StatusUnauthorized,
			body:       `{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`,
			wantErrMsg: "invalid x-api-key: completion failed",
		},
		{
			name:       "status only",
			code:       529,
			body:       `{}`,
			wantErrMsg: "API request failed: 529: completion failed",
		},
		{
			name:       "no text content",
			code:       http.StatusOK,
			body:       `{"content": []}`,
			wantErrMsg: "response has no text content: completion failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.code, tt.body)
			})

			reply, err := client.Complete(context.Background(), "", []chat.Turn{{Role: chat.RoleUser, Content: "hi"}})
			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Equal(t, chat.ErrCompletionFailed, errors.Cause(err))
				assert.Equal(t, tt.wantErrMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestAnthropicClient_Complete_unreachable(t *testing.T) {
	client := NewAnthropicClient(&core.Config{Anthropic: core.AnthropicConfig{BaseURL: "http://127.0.0.1:1"}})

	_, err := client.Complete(context.Background(), "", []chat.Turn{{Role: chat.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, chat.ErrCompletionFailed, errors.Cause(err))
}
