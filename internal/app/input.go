package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var (
	// ErrEmptyInput is returned when the input holds no bytes.
	ErrEmptyInput = errors.New("empty input")
	// ErrInputTooLarge is returned when the input exceeds MaxInputBytes.
	ErrInputTooLarge = errors.New("input too large")
)

// readInput reads at most limit bytes from path, or from stdin when path is
// empty or "-".
func readInput(path string, stdin io.Reader, limit int64) ([]byte, error) {
	var r io.Reader
	if p := strings.TrimSpace(path); p == "" || p == "-" {
		if stdin == nil {
			return nil, ErrEmptyInput
		}
		r = stdin
	} else {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ErrEmptyInput
	}
	return b, nil
}

// decodeDocument converts raw input to UTF-8. An explicit label wins;
// otherwise the encoding is sniffed from a BOM or <meta charset>.
func decodeDocument(b []byte, label string) (string, error) {
	var (
		enc  encoding.Encoding
		name string
	)
	if l := strings.TrimSpace(label); l != "" {
		enc, name = charset.Lookup(l)
		if enc == nil {
			return "", fmt.Errorf("unknown charset %q", l)
		}
	} else {
		var certain bool
		enc, name, certain = charset.DetermineEncoding(b, "text/html")
		// Without a declaration the sniffer guesses windows-1252; valid UTF-8
		// input is kept as is.
		if !certain && utf8.Valid(b) {
			enc, name = encoding.Nop, "utf-8"
		}
	}
	log.Debug().Str("charset", name).Int("bytes", len(b)).Msg("input: decode")
	if name == "utf-8" || enc == encoding.Nop {
		return strings.TrimPrefix(string(b), "\uFEFF"), nil
	}
	s, _, err := transform.String(enc.NewDecoder(), string(b))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return s, nil
}
