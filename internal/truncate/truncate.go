// Package truncate bounds text length in characters (runes), either at an
// exact position or at the nearest preceding word boundary.
package truncate

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxChars is used when the requested cap is missing or invalid.
	DefaultMaxChars = 8000
	// MinMaxChars and MaxMaxChars bound an accepted positive cap.
	MinMaxChars = 100
	MaxMaxChars = 100000

	// ExactMarker is appended by Exact.
	ExactMarker = "..."
	// WordSafeMarker is appended by WordSafe after a single space.
	WordSafeMarker = "…"
)

// NormalizeMaxChars maps a requested cap onto an effective one. Values
// <= 0 disable truncation and are returned as 0. Positive values outside
// [MinMaxChars, MaxMaxChars] fall back to DefaultMaxChars.
func NormalizeMaxChars(n int) int {
	switch {
	case n <= 0:
		return 0
	case n < MinMaxChars || n > MaxMaxChars:
		return DefaultMaxChars
	}
	return n
}

// ParseMaxChars parses a host-supplied cap. Empty or non-numeric input
// yields DefaultMaxChars; numeric input goes through NormalizeMaxChars.
func ParseMaxChars(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultMaxChars
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return NormalizeMaxChars(n)
	}
	f, err := strconv.ParseFloat(raw, 64)
	switch {
	case err != nil || math.IsNaN(f) || math.IsInf(f, 0):
		return DefaultMaxChars
	case f <= 0:
		return 0
	case f > MaxMaxChars:
		return DefaultMaxChars
	}
	return NormalizeMaxChars(int(f))
}

// Apply truncates s to n runes using the word-safe or exact policy.
// A cap of n <= 0 disables truncation.
func Apply(s string, n int, wordSafe bool) string {
	if wordSafe {
		return WordSafe(s, n)
	}
	return Exact(s, n)
}

// Exact returns s unchanged when it has at most n runes, otherwise its
// first n runes followed by ExactMarker.
func Exact(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return s[:byteOffset(s, n)] + ExactMarker
}

// WordSafe returns s unchanged when it has at most n runes. Otherwise it
// cuts at the last whitespace at or before rune index n-1, provided that
// position is not before half of n; else it cuts hard at n. Trailing
// whitespace is trimmed and " …" appended.
func WordSafe(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := byteOffset(s, n)
	lastSpace, lastSpaceRune := -1, -1
	idx := 0
	for i, r := range s[:cut] {
		if unicode.IsSpace(r) {
			lastSpace, lastSpaceRune = i, idx
		}
		idx++
	}
	if lastSpace >= 0 && lastSpaceRune*2 >= n {
		cut = lastSpace
	}
	return strings.TrimRightFunc(s[:cut], unicode.IsSpace) + " " + WordSafeMarker
}

// WordCount returns the number of maximal non-whitespace runs in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// byteOffset returns the byte index of rune n in s, or len(s).
func byteOffset(s string, n int) int {
	idx := 0
	for i := range s {
		if idx == n {
			return i
		}
		idx++
	}
	return len(s)
}
