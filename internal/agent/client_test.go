package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func completionHandler(t *testing.T, text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: text}}},
		})
	}
}

func newTestClient(baseURL string, opts ...Option) *Client {
	base := []Option{
		WithAPIConfig(baseURL, "test-model"),
		WithRateLimit(6000, 100),
		WithTimeout(5 * time.Second),
	}
	return NewClient("test-key", append(base, opts...)...)
}

func TestGenerateSuccess(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "She crossed the threshold."))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Generate(context.Background(), "write the beat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "She crossed the threshold." {
		t.Errorf("unexpected completion: %q", text)
	}
}

func TestGenerateRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		completionHandler(t, "eventually").ServeHTTP(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithRetry(3))
	text, err := client.Generate(context.Background(), "write the beat")
	if err != nil {
		t.Fatalf("expected retries to recover: %v", err)
	}
	if text != "eventually" {
		t.Errorf("unexpected completion: %q", text)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestGenerateDoesNotRetryClientError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad prompt","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithRetry(3))
	if _, err := client.Generate(context.Background(), "write the beat"); err == nil {
		t.Fatal("expected a client error")
	}
	if attempts != 1 {
		t.Errorf("4xx must not be retried, got %d attempts", attempts)
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithRetry(0))
	_, err := client.Generate(context.Background(), "write the beat")
	if err == nil {
		t.Fatal("expected exhausted retries to fail")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Generate(context.Background(), "write the beat"); err == nil {
		t.Fatal("empty choices should fail")
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "x"))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Generate(ctx, "write the beat"); err == nil {
		t.Fatal("cancelled context should abort the request")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("short strings pass through, got %q", got)
	}
	if got := truncate("abcdefghij", 4); got != "abcd..." {
		t.Errorf("long strings get an ellipsis, got %q", got)
	}
}
