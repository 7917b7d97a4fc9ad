package template

import (
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// errUnbalanced reports a lone '{' or '}' that is not part of a {{ or }}
// escape.
var errUnbalanced = errors.New("template: unbalanced brace")

// Render fills every {name} in tmpl whose name is a key of fields and
// leaves other {name} placeholders verbatim. "{{" and "}}" render as a
// literal brace. An empty template renders as "". When the template has
// unbalanced braces, each known {name} token is replaced literally and
// everything else is kept as is. Render never fails.
func Render(tmpl string, fields map[string]string) string {
	if tmpl == "" {
		return ""
	}
	out, err := substitute(tmpl, fields)
	if err != nil {
		log.Debug().Err(err).Msg("template: falling back to literal replacement")
		return replaceLiteral(tmpl, fields)
	}
	return out
}

func substitute(tmpl string, fields map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexAny(tmpl[i+1:], "{}")
			if end < 0 || tmpl[i+1+end] != '}' {
				return "", errUnbalanced
			}
			name := tmpl[i+1 : i+1+end]
			if v, ok := fields[name]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(tmpl[i : i+2+end])
			}
			i += end + 2
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", errUnbalanced
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// replaceLiteral swaps each known {name} token for its value in one pass.
// Keys are applied longest first so overlapping names resolve stably.
func replaceLiteral(tmpl string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", fields[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
