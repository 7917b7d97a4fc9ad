package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/htmlparse/internal/budget"
	"github.com/hyperifyio/htmlparse/internal/cache"
)

var (
	// ErrNotConfigured is returned when no client or model is set.
	ErrNotConfigured = errors.New("llm: completer not configured")
	// ErrEmptyCompletion is returned when the model answers with no text.
	ErrEmptyCompletion = errors.New("llm: empty completion")
)

// DefaultSystemPrompt frames the rendered prompt as article work.
const DefaultSystemPrompt = "You answer questions about a single web article. Use only the article text you are given and keep the answer concise."

// DefaultReservedOutputTokens is kept free in the context window for the answer.
const DefaultReservedOutputTokens = 1024

// Completer sends a rendered prompt to a chat model and caches the answer.
type Completer struct {
	Client Client
	Model  string
	// SystemPrompt overrides DefaultSystemPrompt when non-empty.
	SystemPrompt string
	// Cache, when set, stores answers keyed by model and prompt.
	Cache *cache.LLMCache
	// CacheOnly returns from cache and fails fast if missing.
	CacheOnly bool
	// Temperature is passed through to the request.
	Temperature float32
	// RetryDelay is the pause before the single retry. Zero selects 100ms.
	RetryDelay time.Duration
}

type cachedCompletion struct {
	Model      string `json:"model"`
	Completion string `json:"completion"`
}

func (c *Completer) system() string {
	if strings.TrimSpace(c.SystemPrompt) != "" {
		return c.SystemPrompt
	}
	return DefaultSystemPrompt
}

// Complete returns the model's answer to prompt.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.Client == nil || strings.TrimSpace(c.Model) == "" {
		return "", ErrNotConfigured
	}
	system := c.system()

	promptTokens := budget.EstimatePromptTokens(system, prompt)
	if !budget.FitsInContext(c.Model, DefaultReservedOutputTokens, promptTokens) {
		log.Warn().
			Str("model", c.Model).
			Int("prompt_tokens", promptTokens).
			Int("context_tokens", budget.ModelContextTokens(c.Model)).
			Msg("llm: prompt may exceed model context")
	}

	key := cache.KeyFrom(c.Model, system+"\n\n"+prompt)
	if c.Cache != nil {
		if raw, ok, err := c.Cache.Get(ctx, key); err != nil {
			log.Debug().Err(err).Msg("llm: cache read failed")
		} else if ok {
			var out cachedCompletion
			if err := json.Unmarshal(raw, &out); err == nil && strings.TrimSpace(out.Completion) != "" {
				log.Debug().Str("key", key).Msg("llm: cache hit")
				return out.Completion, nil
			}
		}
	}
	if c.CacheOnly {
		return "", fmt.Errorf("llm: cache miss in cache-only mode: %w", ErrEmptyCompletion)
	}

	req := openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.Temperature,
		N:           1,
	}
	// One short backoff attempt before failing; ctx still bounds the wait.
	resp, err := c.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Debug().Err(err).Msg("llm: completion failed, retrying")
		if werr := c.wait(ctx); werr != nil {
			return "", fmt.Errorf("llm: completion: %w", err)
		}
		resp, err = c.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("llm: completion (after retry): %w", err)
		}
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	if c.Cache != nil {
		payload, _ := json.Marshal(cachedCompletion{Model: c.Model, Completion: out})
		if err := c.Cache.Save(ctx, key, payload); err != nil {
			log.Debug().Err(err).Msg("llm: cache write failed")
		}
	}
	return out, nil
}

func (c *Completer) wait(ctx context.Context) error {
	d := c.RetryDelay
	if d <= 0 {
		d = 100 * time.Millisecond
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
