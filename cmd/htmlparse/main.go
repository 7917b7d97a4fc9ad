package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/htmlparse/internal/app"
	"github.com/hyperifyio/htmlparse/internal/template"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		cfg          app.Config
		configPath   string
		envFiles     string
		suffixes     string
		listPresets  bool
		printVersion bool
	)

	flag.StringVar(&cfg.InputPath, "input", "", "Path to the HTML document; empty or - reads stdin")
	flag.StringVar(&cfg.OutputPath, "output", "", "Path to write the result; empty writes to stdout (required for pdf)")
	flag.StringVar(&cfg.URL, "url", "", "Page URL; wins over canonical/og:url/base found in the markup")
	flag.StringVar(&cfg.Charset, "charset", "", "Input charset label (default: sniff BOM and <meta charset>)")
	flag.StringVar(&cfg.Format, "format", "", "Output format: json, text, fields or pdf (default json)")
	flag.IntVar(&cfg.MaxChars, "max.chars", 0, "Content cap in characters (0 = default 8000, negative disables)")
	flag.BoolVar(&cfg.ExactCut, "exact", false, "Cut content at exactly max.chars instead of a word boundary")
	flag.IntVar(&cfg.SnippetChars, "snippet.chars", 0, "Cap for content_snip (0 = default 1000)")
	flag.Int64Var(&cfg.MaxInputBytes, "max.input", 0, "Maximum input size in bytes (0 = 10 MiB)")
	flag.StringVar(&suffixes, "suffixes", "", "Comma-separated public suffixes for domain splitting, e.g. .co.uk,.com")
	flag.StringVar(&cfg.PromptTemplate, "prompt", "", "Prompt template with {field} placeholders")
	flag.StringVar(&cfg.PromptFile, "prompt.file", "", "Read the prompt template from this file")
	flag.StringVar(&cfg.PromptPreset, "prompt.preset", "", "Built-in prompt preset: summary, keypoints or question")
	flag.BoolVar(&listPresets, "prompt.list", false, "List built-in prompt presets and exit")
	flag.StringVar(&cfg.LLMBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&cfg.LLMModel, "llm.model", "", "Model used to complete the rendered prompt (empty disables completion)")
	flag.StringVar(&cfg.LLMAPIKey, "llm.key", "", "API key for the model server")
	flag.StringVar(&cfg.LLMSystemPrompt, "llm.system", "", "Override the system prompt sent with the completion")
	flag.DurationVar(&cfg.LLMTimeout, "llm.timeout", 0, "Timeout for the completion request (0 = 2m)")
	flag.BoolVar(&cfg.LLMCacheOnly, "llm.cacheOnly", false, "Serve completions from cache only; fail on a miss")
	flag.StringVar(&cfg.CacheDir, "cache.dir", "", "Directory for cached completions")
	flag.DurationVar(&cfg.CacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this before running")
	flag.BoolVar(&cfg.CacheClear, "cache.clear", false, "Clear the cache directory before running")
	flag.BoolVar(&cfg.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	flag.StringVar(&configPath, "config", "", "YAML or JSON config file")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose (debug) logging")
	flag.BoolVar(&printVersion, "version", false, "Print version and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("htmlparse %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}
	if listPresets {
		for _, p := range template.Presets() {
			fmt.Printf("%-10s %s\n", p.Type, p.Description)
		}
		return
	}
	if s := strings.TrimSpace(suffixes); s != "" {
		cfg.Suffixes = strings.Split(s, ",")
	}

	if err := loadConfig(&cfg, configPath, envFiles); err != nil {
		log.Error().Err(err).Msg("config")
		os.Exit(2)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// loadConfig layers dotenv, env and the config file under the flag values.
func loadConfig(cfg *app.Config, configPath, envFiles string) error {
	if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	app.ApplyEnvToConfig(cfg)
	if p := strings.TrimSpace(configPath); p != "" {
		fc, err := app.LoadConfigFile(p)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		app.ApplyFileConfig(cfg, fc)
	}
	return app.ValidateConfig(*cfg)
}

// exitCode maps input errors to 2 and everything else to 1.
func exitCode(err error) int {
	if errors.Is(err, app.ErrEmptyInput) || errors.Is(err, app.ErrInputTooLarge) {
		return 2
	}
	return 1
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(context.Background())
}
