package llm

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface needed to call a chat model. It mirrors
// go-openai's CreateChatCompletion so any OpenAI-compatible or local backend
// can be adapted.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

// NewOpenAIProvider builds a provider for an OpenAI-compatible server. An
// empty baseURL keeps the library default.
func NewOpenAIProvider(baseURL, apiKey string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if b := strings.TrimSpace(baseURL); b != "" {
		cfg.BaseURL = strings.TrimRight(b, "/")
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}
