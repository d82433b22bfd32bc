package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func chatCompletionJSON(content string) string {
	return fmt.Sprintf(`{
		"id": "chatcmpl-test",
		"object": "chat.completion",
		"created": 1,
		"model": "gpt-4o-mini",
		"choices": [
			{"index": 0, "message": {"role": "assistant", "content": %q}, "finish_reason": "stop"}
		],
		"usage": {"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19}
	}`, content)
}

func TestOpenAIChatSuccess(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionJSON("Conjugo el verbo hablar.")))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL,
	})

	result, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{
			{Role: "system", Content: "You are a Spanish tutor."},
			{Role: "user", Content: "Drill hablar."},
		},
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Content != "Conjugo el verbo hablar." {
		t.Errorf("unexpected content: %q", result.Content)
	}
	if result.TotalTokens != 19 || result.PromptTokens != 12 {
		t.Errorf("unexpected token counts: %+v", result)
	}
	if result.Provider != OpenAIName {
		t.Errorf("unexpected provider: %s", result.Provider)
	}
	if result.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", result.Attempts)
	}

	if got, _ := payload["model"].(string); got != "gpt-4o-mini" {
		t.Fatalf("expected model gpt-4o-mini, got %q", got)
	}
	msgs, _ := payload["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	first, _ := msgs[0].(map[string]any)
	if got, _ := first["role"].(string); got != "system" {
		t.Errorf("expected system role first, got %q", got)
	}
}

func TestOpenAIChatRateLimit(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit","type":"rate_limit_error","param":"","code":"rate_limit"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:     "test-key",
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		BaseURL:    server.URL,
	})

	_, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "Drill hablar."}},
	})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	rle, ok := IsRateLimitError(err)
	if !ok {
		t.Fatalf("expected RateLimitError, got %T: %v", err, err)
	}
	if rle.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rle.StatusCode)
	}
	if rle.RetryAfter != 2*time.Second {
		t.Fatalf("expected RetryAfter=2s, got %v", rle.RetryAfter)
	}
	// Initial attempt plus two retries.
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}
}

func TestOpenAIChatRetriesServerError(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream hiccup","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionJSON("Segundo intento.")))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:     "test-key",
		RetryDelay: time.Millisecond,
		BaseURL:    server.URL,
	})

	result, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "Drill hablar."}},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Content != "Segundo intento." {
		t.Errorf("unexpected content: %q", result.Content)
	}
	if result.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", result.Attempts)
	}
}

func TestOpenAIChatNoRetryOnBadRequest(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad request","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:     "test-key",
		RetryDelay: time.Millisecond,
		BaseURL:    server.URL,
	})

	_, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "Drill hablar."}},
	})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single request, got %d", got)
	}
}

func TestOpenAIChatValidation(t *testing.T) {
	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key"})

	if _, err := client.Chat(context.Background(), nil); err == nil {
		t.Fatal("expected validation error for nil request")
	}
	if _, err := client.Chat(context.Background(), &ChatRequest{}); err == nil {
		t.Fatal("expected validation error for empty messages")
	}
}

func TestMockClientChat(t *testing.T) {
	client := NewMockClient()
	client.ResponseText = "Práctica con irse."

	result, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "Drill irse."}},
		Model:    "mock-model",
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Content != "Práctica con irse." {
		t.Errorf("unexpected content: %q", result.Content)
	}
	if result.Provider != MockClientName {
		t.Errorf("unexpected provider: %s", result.Provider)
	}
	if result.ModelUsed != "mock-model" {
		t.Errorf("unexpected model: %s", result.ModelUsed)
	}
	if client.RequestCount() != 1 {
		t.Errorf("expected 1 request, got %d", client.RequestCount())
	}
	if last := client.LastRequest(); last == nil || last.Messages[0].Content != "Drill irse." {
		t.Error("expected last request to be captured")
	}
}

func TestMockClientFailAfter(t *testing.T) {
	client := NewMockClient()
	client.FailAfter = 1

	if _, err := client.Chat(context.Background(), &ChatRequest{Messages: []Message{{Role: "user", Content: "uno"}}}); err != nil {
		t.Fatalf("first request should succeed: %v", err)
	}
	if _, err := client.Chat(context.Background(), &ChatRequest{Messages: []Message{{Role: "user", Content: "dos"}}}); err == nil {
		t.Fatal("second request should fail")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter("5"); got != 5*time.Second {
		t.Errorf("parseRetryAfter(5) = %v", got)
	}
	if got := parseRetryAfter(""); got != 0 {
		t.Errorf("parseRetryAfter(empty) = %v", got)
	}
	if got := parseRetryAfter("-1"); got != 0 {
		t.Errorf("parseRetryAfter(-1) = %v", got)
	}
	future := time.Now().Add(30 * time.Second).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 0 || got > 30*time.Second {
		t.Errorf("parseRetryAfter(http date) = %v", got)
	}
}
