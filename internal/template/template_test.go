package template

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	fields := map[string]string{"title": "X", "author": "Y", "word_count": "3"}
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"unknown key echoed", "{title} by {author} ({ghost})", "X by Y ({ghost})"},
		{"empty template", "", ""},
		{"no placeholders", "plain text", "plain text"},
		{"repeated key", "{title}{title}", "XX"},
		{"escaped braces", "{{title}} is {title}", "{title} is X"},
		{"empty braces kept", "a {} b", "a {} b"},
		{"unicode around", "«{title}» — {word_count} words", "«X» — 3 words"},
		{"unbalanced falls back", "{title} has { open", "X has { open"},
		{"stray closing falls back", "}{author}", "}Y"},
		{"fallback keeps unknown", "{ghost} {title", "{ghost} {title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.tmpl, fields); got != tt.want {
				t.Fatalf("Render(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestRender_NilFields(t *testing.T) {
	if got := Render("{title}", nil); got != "{title}" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_ValuesAreNotReexpanded(t *testing.T) {
	fields := map[string]string{"title": "{author}", "author": "Y"}
	if got := Render("{title}", fields); got != "{author}" {
		t.Fatalf("values must be inserted verbatim, got %q", got)
	}
	if got := Render("{title} }", fields); got != "{author} }" {
		t.Fatalf("fallback must insert values verbatim, got %q", got)
	}
}

func TestGetPreset(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"summary", Summary},
		{"  TL;DR ", Summary},
		{"please summarise", Summary},
		{"key points", KeyPoints},
		{"bullets", KeyPoints},
		{"Q&A", Question},
		{"more questions", Question},
		{"", None},
		{"unknown", None},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := GetPreset(tt.input).Type; got != tt.want {
				t.Errorf("GetPreset(%q).Type = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
	if GetPreset("unknown").Template != "" {
		t.Fatalf("None preset must have an empty template")
	}
}

func TestPresets_UseKnownPlaceholders(t *testing.T) {
	known := map[string]string{
		"url": "u", "domain": "d", "site_name": "s", "title": "t", "content": "c",
		"content_snip": "cs", "author": "a", "word_count": "1", "version": "v", "extracted_at": "e",
	}
	for _, p := range Presets() {
		if p.Template == "" {
			t.Fatalf("%s: empty template", p.Name)
		}
		out := Render(p.Template, known)
		if strings.Contains(out, "{") || strings.Contains(out, "}") {
			t.Fatalf("%s: unresolved placeholder in %q", p.Name, out)
		}
	}
}
