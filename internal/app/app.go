// Package app wires configuration, input decoding, the extraction pipeline,
// output rendering and the optional model completion into one run.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/htmlparse/internal/cache"
	"github.com/hyperifyio/htmlparse/internal/llm"
	"github.com/hyperifyio/htmlparse/internal/pipeline"
	"github.com/hyperifyio/htmlparse/internal/template"
	"github.com/hyperifyio/htmlparse/internal/truncate"
)

// DefaultLLMTimeout bounds a single completion request including its retry.
const DefaultLLMTimeout = 2 * time.Minute

type App struct {
	cfg       Config
	pipe      *pipeline.Pipeline
	completer *llm.Completer

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

// New validates cfg, fills defaults and prepares the cache and model client.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	cfg.Format = normalizeFormat(cfg.Format)
	if cfg.MaxInputBytes == 0 {
		cfg.MaxInputBytes = DefaultMaxInputBytes
	}
	if cfg.LLMTimeout == 0 {
		cfg.LLMTimeout = DefaultLLMTimeout
	}

	a := &App{
		cfg: cfg,
		pipe: pipeline.New(pipeline.Config{
			MaxChars:     pipelineMaxChars(cfg.MaxChars),
			SnippetChars: cfg.SnippetChars,
			Version:      BuildVersion,
			Suffixes:     cfg.Suffixes,
		}),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}

	var store *cache.LLMCache
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				return nil, fmt.Errorf("clear cache: %w", err)
			}
		}
		if cfg.CacheMaxAge > 0 {
			n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Msg("cache purge failed; continuing")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("cache purged")
			}
		}
		store = &cache.LLMCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	if strings.TrimSpace(cfg.LLMModel) != "" {
		a.completer = &llm.Completer{
			Client:       llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey),
			Model:        cfg.LLMModel,
			SystemPrompt: cfg.LLMSystemPrompt,
			Cache:        store,
			CacheOnly:    cfg.LLMCacheOnly,
		}
	}
	return a, nil
}

// pipelineMaxChars maps the config cap to the pipeline's: zero keeps the
// default and negative values disable the cap.
func pipelineMaxChars(n int) int {
	switch {
	case n == 0:
		return truncate.DefaultMaxChars
	case n < 0:
		return -1
	default:
		return n
	}
}

// Run reads the input, extracts it, writes the result and, when a model is
// configured, completes the rendered prompt.
func (a *App) Run(ctx context.Context) error {
	raw, err := readInput(a.cfg.InputPath, a.Stdin, a.cfg.MaxInputBytes)
	if err != nil {
		return err
	}
	doc, err := decodeDocument(raw, a.cfg.Charset)
	if err != nil {
		return err
	}
	tmpl, err := a.promptTemplate()
	if err != nil {
		return err
	}

	opts := a.pipe.DefaultOptions()
	opts.WordSafe = !a.cfg.ExactCut
	opts.PromptTemplate = tmpl
	out := a.pipe.Run(pipeline.Input{HTML: doc, URL: a.cfg.URL, Options: opts})
	log.Debug().
		Str("domain", out.Result.Domain).
		Int("word_count", out.Result.WordCount).
		Bool("prompt", out.Prompt != "").
		Msg("extraction done")

	completion, err := a.complete(ctx, out.Prompt)
	if err != nil {
		return err
	}

	if a.cfg.Format == FormatPDF {
		if err := writeResultPDF(out.Result, completion, a.cfg.OutputPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", a.cfg.OutputPath).Msg("pdf written")
		return nil
	}

	w := a.Stdout
	if p := strings.TrimSpace(a.cfg.OutputPath); p != "" && p != "-" {
		f, err := os.Create(p)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := writeOutput(w, a.cfg.Format, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if completion != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", completion); err != nil {
			return fmt.Errorf("write completion: %w", err)
		}
	}
	return nil
}

// promptTemplate picks the inline template, then the template file, then a
// named preset.
func (a *App) promptTemplate() (string, error) {
	if a.cfg.PromptTemplate != "" {
		return a.cfg.PromptTemplate, nil
	}
	if p := strings.TrimSpace(a.cfg.PromptFile); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("read prompt file: %w", err)
		}
		return string(b), nil
	}
	if strings.TrimSpace(a.cfg.PromptPreset) != "" {
		preset := template.GetPreset(a.cfg.PromptPreset)
		if preset.Type == template.None {
			log.Warn().Str("preset", a.cfg.PromptPreset).Msg("unknown prompt preset; no prompt rendered")
		}
		return preset.Template, nil
	}
	return "", nil
}

func (a *App) complete(ctx context.Context, prompt string) (string, error) {
	if a.completer == nil {
		return "", nil
	}
	if strings.TrimSpace(prompt) == "" {
		log.Warn().Msg("llm model configured but no prompt was rendered; skipping completion")
		return "", nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.LLMTimeout)
	defer cancel()
	out, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("complete prompt: %w", err)
	}
	return out, nil
}
