package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Input   string `yaml:"input" json:"input"`
	Output  string `yaml:"output" json:"output"`
	URL     string `yaml:"url" json:"url"`
	Charset string `yaml:"charset" json:"charset"`
	Format  string `yaml:"format" json:"format"`

	Extract struct {
		MaxChars      int      `yaml:"maxChars" json:"maxChars"`
		ExactCut      bool     `yaml:"exactCut" json:"exactCut"`
		SnippetChars  int      `yaml:"snippetChars" json:"snippetChars"`
		MaxInputBytes int64    `yaml:"maxInputBytes" json:"maxInputBytes"`
		Suffixes      []string `yaml:"suffixes" json:"suffixes"`
	} `yaml:"extract" json:"extract"`

	Prompt struct {
		Template string `yaml:"template" json:"template"`
		File     string `yaml:"file" json:"file"`
		Preset   string `yaml:"preset" json:"preset"`
	} `yaml:"prompt" json:"prompt"`

	LLM struct {
		BaseURL      string        `yaml:"base" json:"base"`
		Model        string        `yaml:"model" json:"model"`
		APIKey       string        `yaml:"key" json:"key"`
		SystemPrompt string        `yaml:"systemPrompt" json:"systemPrompt"`
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		CacheOnly    bool          `yaml:"cacheOnly" json:"cacheOnly"`
	} `yaml:"llm" json:"llm"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset/zero in cfg. Flags and env are applied first so they
// keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	setBool := func(dst *bool, v bool) {
		if !*dst && v {
			*dst = true
		}
	}
	setDur := func(dst *time.Duration, v time.Duration) {
		if *dst == 0 && v > 0 {
			*dst = v
		}
	}

	setStr(&cfg.InputPath, fc.Input)
	setStr(&cfg.OutputPath, fc.Output)
	setStr(&cfg.URL, fc.URL)
	setStr(&cfg.Charset, fc.Charset)
	setStr(&cfg.Format, fc.Format)

	if cfg.MaxChars == 0 && fc.Extract.MaxChars != 0 {
		cfg.MaxChars = fc.Extract.MaxChars
	}
	setBool(&cfg.ExactCut, fc.Extract.ExactCut)
	if cfg.SnippetChars == 0 && fc.Extract.SnippetChars > 0 {
		cfg.SnippetChars = fc.Extract.SnippetChars
	}
	if cfg.MaxInputBytes == 0 && fc.Extract.MaxInputBytes != 0 {
		cfg.MaxInputBytes = fc.Extract.MaxInputBytes
	}
	if len(cfg.Suffixes) == 0 && len(fc.Extract.Suffixes) > 0 {
		cfg.Suffixes = append([]string{}, fc.Extract.Suffixes...)
	}

	setStr(&cfg.PromptTemplate, fc.Prompt.Template)
	setStr(&cfg.PromptFile, fc.Prompt.File)
	setStr(&cfg.PromptPreset, fc.Prompt.Preset)

	setStr(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	setStr(&cfg.LLMModel, fc.LLM.Model)
	setStr(&cfg.LLMAPIKey, fc.LLM.APIKey)
	setStr(&cfg.LLMSystemPrompt, fc.LLM.SystemPrompt)
	setDur(&cfg.LLMTimeout, fc.LLM.Timeout)
	setBool(&cfg.LLMCacheOnly, fc.LLM.CacheOnly)

	setStr(&cfg.CacheDir, fc.Cache.Dir)
	setDur(&cfg.CacheMaxAge, fc.Cache.MaxAge)
	setBool(&cfg.CacheClear, fc.Cache.Clear)
	setBool(&cfg.CacheStrictPerms, fc.Cache.StrictPerms)

	setBool(&cfg.Verbose, fc.Verbose)
}

// ValidateConfig performs minimal schema validation.
func ValidateConfig(cfg Config) error {
	switch normalizeFormat(cfg.Format) {
	case FormatJSON, FormatText, FormatFields:
	case FormatPDF:
		if strings.TrimSpace(cfg.OutputPath) == "" {
			return errors.New("config: pdf format requires an output path")
		}
	default:
		return fmt.Errorf("config: unknown output format %q", cfg.Format)
	}
	if cfg.MaxInputBytes < 0 || cfg.SnippetChars < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.LLMTimeout < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative durations are not allowed")
	}
	if cfg.LLMCacheOnly && strings.TrimSpace(cfg.CacheDir) == "" {
		return errors.New("config: llm cache-only mode requires a cache dir")
	}
	return nil
}

func normalizeFormat(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return FormatJSON
	}
	return v
}
