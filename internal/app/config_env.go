package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hyperifyio/htmlparse/internal/truncate"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, envKey string) {
		if *dst == "" {
			*dst = os.Getenv(envKey)
		}
	}
	setInt := func(dst *int, envKey string) {
		if *dst != 0 {
			return
		}
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(envKey))); err == nil {
			*dst = n
		}
	}
	setDur := func(dst *time.Duration, envKey string) {
		if *dst != 0 {
			return
		}
		if s := os.Getenv(envKey); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				*dst = d
			}
		}
	}
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}

	setStr(&cfg.InputPath, "HTMLPARSE_INPUT")
	setStr(&cfg.OutputPath, "HTMLPARSE_OUTPUT")
	setStr(&cfg.URL, "HTMLPARSE_URL")
	setStr(&cfg.Charset, "HTMLPARSE_CHARSET")
	setStr(&cfg.Format, "HTMLPARSE_FORMAT")

	// HTMLPARSE_MAX_CHARS accepts the loose host forms ("8000", "8000.0");
	// zero or negative disables the cap.
	if cfg.MaxChars == 0 {
		if s := strings.TrimSpace(os.Getenv("HTMLPARSE_MAX_CHARS")); s != "" {
			if n := truncate.ParseMaxChars(s); n > 0 {
				cfg.MaxChars = n
			} else {
				cfg.MaxChars = -1
			}
		}
	}
	setBool(&cfg.ExactCut, "HTMLPARSE_EXACT_CUT")
	setInt(&cfg.SnippetChars, "HTMLPARSE_SNIPPET_CHARS")
	if cfg.MaxInputBytes == 0 {
		if n, err := strconv.ParseInt(strings.TrimSpace(os.Getenv("HTMLPARSE_MAX_INPUT_BYTES")), 10, 64); err == nil {
			cfg.MaxInputBytes = n
		}
	}
	// HTMLPARSE_SUFFIXES is a comma-separated suffix list, e.g. ".co.uk,.com"
	if len(cfg.Suffixes) == 0 {
		cfg.Suffixes = splitList(os.Getenv("HTMLPARSE_SUFFIXES"))
	}

	setStr(&cfg.PromptTemplate, "HTMLPARSE_PROMPT_TEMPLATE")
	setStr(&cfg.PromptFile, "HTMLPARSE_PROMPT_FILE")
	setStr(&cfg.PromptPreset, "HTMLPARSE_PROMPT_PRESET")

	setStr(&cfg.LLMBaseURL, "LLM_BASE_URL")
	setStr(&cfg.LLMModel, "LLM_MODEL")
	setStr(&cfg.LLMAPIKey, "LLM_API_KEY")
	setStr(&cfg.LLMSystemPrompt, "LLM_SYSTEM_PROMPT")
	setDur(&cfg.LLMTimeout, "LLM_TIMEOUT")
	setBool(&cfg.LLMCacheOnly, "LLM_CACHE_ONLY")

	setStr(&cfg.CacheDir, "HTMLPARSE_CACHE_DIR")
	setDur(&cfg.CacheMaxAge, "HTMLPARSE_CACHE_MAX_AGE")
	setBool(&cfg.CacheClear, "HTMLPARSE_CACHE_CLEAR")
	setBool(&cfg.CacheStrictPerms, "HTMLPARSE_CACHE_STRICT_PERMS")

	setBool(&cfg.Verbose, "HTMLPARSE_VERBOSE")
}

// splitList splits a comma-separated list, dropping blank entries. It
// returns nil when nothing remains.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	if len(list) == 0 {
		return nil
	}
	return list
}
