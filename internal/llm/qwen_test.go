package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseChunk(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion.chunk",
		"model":   "qwen-plus",
		"choices": []map[string]any{{"index": 0, "delta": map[string]string{"content": content}}},
	})
	return fmt.Sprintf("data: %s\n\n", body)
}

func newStreamingServer(t *testing.T, chunks []string, capture *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, c := range chunks {
			fmt.Fprint(w, sseChunk(c))
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func collectStream(ch chan StreamResponse) (string, bool, string) {
	var b strings.Builder
	var done bool
	var errMsg string
	for resp := range ch {
		b.WriteString(resp.Content)
		if resp.Done {
			done = true
		}
		if resp.Error != "" {
			errMsg = resp.Error
		}
	}
	return b.String(), done, errMsg
}

func TestQwenProvider_GenerateStream(t *testing.T) {
	var captured openai.ChatCompletionRequest
	server := newStreamingServer(t, []string{"Hello", ", ", "world"}, &captured)
	defer server.Close()

	provider := NewQwenProvider(server.URL, "test-key")

	ch := make(chan StreamResponse, 10)
	err := provider.GenerateStream(context.Background(), &GenerateRequest{
		Model: "qwen-plus",
		Messages: []Message{
			{Role: "system", Content: "You are MemBox"},
			{Role: "user", Content: "hi"},
		},
	}, ch)
	require.NoError(t, err)

	content, done, errMsg := collectStream(ch)
	assert.Equal(t, "Hello, world", content)
	assert.True(t, done)
	assert.Empty(t, errMsg)

	assert.Equal(t, "qwen-plus", captured.Model)
	assert.True(t, captured.Stream)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
}

func TestQwenProvider_GenerateStream_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewQwenProvider(server.URL, "test-key")

	ch := make(chan StreamResponse, 10)
	err := provider.GenerateStream(context.Background(), &GenerateRequest{
		Model:    "qwen-plus",
		Messages: []Message{{Role: "user", Content: "hi"}},
	}, ch)
	require.Error(t, err)

	_, done, errMsg := collectStream(ch)
	assert.False(t, done)
	assert.Contains(t, errMsg, "could not open completion stream")
}

func TestQwenProvider_GenerateStream_ClosesChannel(t *testing.T) {
	server := newStreamingServer(t, nil, nil)
	defer server.Close()

	provider := NewQwenProvider(server.URL, "test-key")

	ch := make(chan StreamResponse, 10)
	err := provider.GenerateStream(context.Background(), &GenerateRequest{
		Model:    "qwen-plus",
		Messages: []Message{{Role: "user", Content: "hi"}},
	}, ch)
	require.NoError(t, err)

	_, open := <-ch // Done chunk
	assert.True(t, open)
	_, open = <-ch
	assert.False(t, open, "channel must be closed after the stream ends")
}

func TestConvertMessages(t *testing.T) {
	t.Run("text only", func(t *testing.T) {
		out := convertMessages([]Message{
			{Role: "system", Content: "prompt"},
			{Role: "user", Content: "hi"},
		})
		require.Len(t, out, 2)
		assert.Equal(t, "prompt", out[0].Content)
		assert.Empty(t, out[0].MultiContent)
	})

	t.Run("images become multi-part content", func(t *testing.T) {
		out := convertMessages([]Message{
			{Role: "user", Content: "what is this?", Images: []string{
				"http://localhost:8000/uploads/a.png",
				"http://localhost:8000/uploads/b.png",
			}},
		})
		require.Len(t, out, 1)
		assert.Empty(t, out[0].Content)
		require.Len(t, out[0].MultiContent, 3)
		assert.Equal(t, openai.ChatMessagePartTypeText, out[0].MultiContent[0].Type)
		assert.Equal(t, "what is this?", out[0].MultiContent[0].Text)
		assert.Equal(t, openai.ChatMessagePartTypeImageURL, out[0].MultiContent[1].Type)
		assert.Equal(t, "http://localhost:8000/uploads/a.png", out[0].MultiContent[1].ImageURL.URL)
	})

	t.Run("image without caption has no text part", func(t *testing.T) {
		out := convertMessages([]Message{
			{Role: "user", Images: []string{"http://localhost:8000/uploads/a.png"}},
		})
		require.Len(t, out, 1)
		require.Len(t, out[0].MultiContent, 1)
		assert.Equal(t, openai.ChatMessagePartTypeImageURL, out[0].MultiContent[0].Type)
	})
}
