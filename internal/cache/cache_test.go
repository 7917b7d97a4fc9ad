package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLLMCache_SaveGet(t *testing.T) {
	tmp := t.TempDir()
	c := &LLMCache{Dir: tmp}
	key := KeyFrom("model", "prompt")
	data := []byte(`{"completion":"a short summary"}`)
	if err := c.Save(context.Background(), key, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := c.Get(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("get: %v ok=%v", err, ok)
	}
	if string(got) != string(data) {
		t.Fatalf("mismatch")
	}
}

func TestLLMCache_Miss(t *testing.T) {
	c := &LLMCache{Dir: t.TempDir()}
	if _, ok, err := c.Get(context.Background(), KeyFrom("m", "nothing")); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}

func TestLLMCache_Unconfigured(t *testing.T) {
	var c *LLMCache
	if err := c.Save(context.Background(), "k", nil); err == nil {
		t.Fatal("expected error for nil cache")
	}
}

func TestKeyFrom_DependsOnModelAndPrompt(t *testing.T) {
	if KeyFrom("a", "p") == KeyFrom("b", "p") || KeyFrom("a", "p") == KeyFrom("a", "q") {
		t.Fatal("keys must differ")
	}
	if KeyFrom("a", "p") != KeyFrom("a", "p") {
		t.Fatal("keys must be stable")
	}
}

func TestLLMCache_StrictPerms(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "llm")
	c := &LLMCache{Dir: dir, StrictPerms: true}
	key := KeyFrom("model", "prompt")
	if err := c.Save(context.Background(), key, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if got := info.Mode() & 0o777; got != 0o700 {
		t.Fatalf("dir mode = %o, want 0700", got)
	}
	finfo, err := os.Stat(filepath.Join(dir, key+".json"))
	if err != nil {
		t.Fatalf("stat file: %v", err)
	}
	if got := finfo.Mode() & 0o777; got != 0o600 {
		t.Fatalf("file mode = %o, want 0600", got)
	}
}

func TestPurgeByAge(t *testing.T) {
	dir := t.TempDir()
	c := &LLMCache{Dir: dir}
	oldKey, newKey := KeyFrom("m", "old"), KeyFrom("m", "new")
	for _, k := range []string{oldKey, newKey} {
		if err := c.Save(context.Background(), k, []byte("{}")); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, oldKey+".json"), past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	removed, err := PurgeByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok, _ := c.Get(context.Background(), newKey); !ok {
		t.Fatal("fresh entry must survive")
	}
	if n, err := PurgeByAge(filepath.Join(dir, "missing"), time.Hour); n != 0 || err != nil {
		t.Fatalf("missing dir: n=%d err=%v", n, err)
	}
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ClearDir(dir); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries err=%v", len(entries), err)
	}
	if err := ClearDir("  "); err == nil {
		t.Fatal("expected error for blank dir")
	}
}
