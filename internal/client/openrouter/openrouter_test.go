package openrouter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/msomdec/creator-studio/internal/client/openrouter"
)

func TestComplete(t *testing.T) {
	var gotAuth, gotModel, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotModel = req.Model
		if len(req.Messages) == 1 {
			gotPrompt = req.Messages[0].Content
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Hello there.\n"}},
			},
		})
	}))
	defer srv.Close()

	c := openrouter.New("sk-test", openrouter.WithBaseURL(srv.URL), openrouter.WithModel("test/model"))
	out, err := c.Complete(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "Hello there." {
		t.Errorf("out = %q, want trimmed completion", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotModel != "test/model" {
		t.Errorf("model = %q", gotModel)
	}
	if gotPrompt != "say hello" {
		t.Errorf("prompt = %q", gotPrompt)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := openrouter.New("sk-test", openrouter.WithBaseURL(srv.URL))
	out, err := c.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "" {
		t.Errorf("out = %q, want empty", out)
	}
}

func TestComplete_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := openrouter.New("sk-test", openrouter.WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestComplete_MissingAPIKey(t *testing.T) {
	c := openrouter.New("")
	if _, err := c.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
