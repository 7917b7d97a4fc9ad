package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/htmlparse/internal/app"
)

// Smoke test: run writes the JSON result for a file input.
func TestRun_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.html")
	out := filepath.Join(dir, "out.json")
	if err := os.WriteFile(in, []byte(`<html><body><main><h1>Hi</h1><p>Body text.</p></main></body></html>`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := run(app.Config{InputPath: in, OutputPath: out}); err != nil {
		t.Fatalf("run error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil || !strings.Contains(string(b), `"title":"Hi"`) {
		t.Fatalf("unexpected output %q err=%v", b, err)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Setenv("HTMLPARSE_FORMAT", "")
	t.Setenv("LLM_MODEL", "")
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("HTMLPARSE_FORMAT=text\nLLM_MODEL=env-model\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(cfgPath, []byte("format: fields\nurl: https://file.example/\nllm:\n  model: file-model\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := app.Config{LLMModel: "flag-model"}
	if err := loadConfig(&cfg, cfgPath, envPath); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.LLMModel != "flag-model" {
		t.Fatalf("flag must win, got %q", cfg.LLMModel)
	}
	if cfg.Format != "text" {
		t.Fatalf("env must win over file, got %q", cfg.Format)
	}
	if cfg.URL != "https://file.example/" {
		t.Fatalf("file must fill unset fields, got %q", cfg.URL)
	}

	bad := app.Config{Format: "pdf"}
	if err := loadConfig(&bad, "", filepath.Join(dir, "missing.env")); err == nil {
		t.Fatal("expected validation error for pdf without output")
	}
}

func TestExitCode(t *testing.T) {
	if exitCode(fmt.Errorf("wrap: %w", app.ErrEmptyInput)) != 2 || exitCode(app.ErrInputTooLarge) != 2 {
		t.Fatal("input errors must map to 2")
	}
	if exitCode(errors.New("boom")) != 1 {
		t.Fatal("other errors must map to 1")
	}
}
