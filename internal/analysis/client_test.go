package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saqif1/AI-Technical-Analysis/internal/common"
	"github.com/saqif1/AI-Technical-Analysis/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.AnalysisConfig{
		BaseURL:   srv.URL,
		Model:     "test/model",
		MaxTokens: 2000,
		Timeout:   "5s",
		Referer:   "http://localhost:8501",
		Title:     "Stock Technical Analysis Dashboard",
	}, common.NewSilentLogger())
}

func completionJSON(content string) string {
	return `{
		"id": "gen-1",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": ` + jsonString(content) + `}}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
	}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestAnalyze(t *testing.T) {
	var gotAuth, gotReferer, gotTitle string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionJSON("The trend is bullish.")))
	})

	text, err := client.Analyze(context.Background(), "sk-test", "system guide", "user message")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if text != "The trend is bullish." {
		t.Errorf("unexpected analysis text: %q", text)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReferer != "http://localhost:8501" {
		t.Errorf("unexpected HTTP-Referer: %q", gotReferer)
	}
	if gotTitle != "Stock Technical Analysis Dashboard" {
		t.Errorf("unexpected X-Title: %q", gotTitle)
	}

	if gotBody["model"] != "test/model" {
		t.Errorf("unexpected model in request: %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(2000) {
		t.Errorf("unexpected max_tokens: %v", gotBody["max_tokens"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", gotBody["messages"])
	}
	first := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "system guide" {
		t.Errorf("unexpected system message: %v", first)
	}
	second := msgs[1].(map[string]any)
	if second["role"] != "user" || second["content"] != "user message" {
		t.Errorf("unexpected user message: %v", second)
	}
}

func TestAnalyze_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "auth_error"}}`))
	})

	_, err := client.Analyze(context.Background(), "bad-key", "sys", "usr")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestAnalyze_EmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "gen-1", "choices": []}`))
	})

	_, err := client.Analyze(context.Background(), "sk-test", "sys", "usr")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestAnalyze_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionJSON("late")))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Analyze(ctx, "sk-test", "sys", "usr")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
