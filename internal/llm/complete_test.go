package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/htmlparse/internal/cache"
)

type fakeClient struct {
	calls   int
	fail    int
	content string
	lastReq openai.ChatCompletionRequest
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.calls <= f.fail {
		return openai.ChatCompletionResponse{}, errors.New("transient")
	}
	if f.content == "" {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
		Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content},
	}}}, nil
}

func TestComplete_NotConfigured(t *testing.T) {
	var nilCompleter *Completer
	for _, c := range []*Completer{nilCompleter, {}, {Client: &fakeClient{}}} {
		if _, err := c.Complete(context.Background(), "p"); !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	}
}

func TestComplete_SendsSystemAndPrompt(t *testing.T) {
	f := &fakeClient{content: "  answer  "}
	c := &Completer{Client: f, Model: "m"}
	got, err := c.Complete(context.Background(), "Summarize X")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "answer" {
		t.Fatalf("got %q", got)
	}
	msgs := f.lastReq.Messages
	if len(msgs) != 2 || msgs[0].Content != DefaultSystemPrompt || msgs[1].Content != "Summarize X" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if f.lastReq.Model != "m" {
		t.Fatalf("model = %q", f.lastReq.Model)
	}
}

func TestComplete_RetriesOnce(t *testing.T) {
	f := &fakeClient{fail: 1, content: "ok"}
	c := &Completer{Client: f, Model: "m", RetryDelay: time.Millisecond}
	if got, err := c.Complete(context.Background(), "p"); err != nil || got != "ok" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if f.calls != 2 {
		t.Fatalf("calls = %d, want 2", f.calls)
	}

	f2 := &fakeClient{fail: 2, content: "ok"}
	c2 := &Completer{Client: f2, Model: "m", RetryDelay: time.Millisecond}
	if _, err := c2.Complete(context.Background(), "p"); err == nil || !strings.Contains(err.Error(), "after retry") {
		t.Fatalf("expected retry failure, got %v", err)
	}
}

func TestComplete_EmptyAnswer(t *testing.T) {
	c := &Completer{Client: &fakeClient{}, Model: "m"}
	if _, err := c.Complete(context.Background(), "p"); !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestComplete_UsesCache(t *testing.T) {
	store := &cache.LLMCache{Dir: t.TempDir()}
	f := &fakeClient{content: "cached answer"}
	c := &Completer{Client: f, Model: "m", Cache: store}
	for i := 0; i < 2; i++ {
		got, err := c.Complete(context.Background(), "same prompt")
		if err != nil || got != "cached answer" {
			t.Fatalf("run %d: got %q err=%v", i, got, err)
		}
	}
	if f.calls != 1 {
		t.Fatalf("second call must be served from cache, calls = %d", f.calls)
	}

	cacheOnly := &Completer{Client: f, Model: "m", Cache: store, CacheOnly: true}
	if _, err := cacheOnly.Complete(context.Background(), "other prompt"); !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("expected cache-only miss, got %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("cache-only must not call the model")
	}
}

func TestComplete_OpenAICompatibleServer(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&hits, 1)
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user := req.Messages[len(req.Messages)-1].Content
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "echo: " + user}},
			},
		})
	}))
	defer srv.Close()

	c := &Completer{Client: NewOpenAIProvider(srv.URL+"/v1/", "test"), Model: "test-model"}
	got, err := c.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "echo: hello" || atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("got %q hits=%d", got, hits)
	}
}
