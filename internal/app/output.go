package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/htmlparse/internal/pipeline"
)

// writeOutput renders out in one of the text formats.
func writeOutput(w io.Writer, format string, out pipeline.Output) error {
	var s string
	switch normalizeFormat(format) {
	case FormatJSON:
		s = out.JSON + "\n"
	case FormatText:
		s = renderText(out.Result)
	case FormatFields:
		s = renderFields(out)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	_, err := io.WriteString(w, s)
	return err
}

// renderText writes a title/byline header followed by the content.
func renderText(r pipeline.Result) string {
	var sb strings.Builder
	if r.Title != "" {
		sb.WriteString(r.Title)
		sb.WriteString("\n")
	}
	if r.Author != "" {
		sb.WriteString("By ")
		sb.WriteString(r.Author)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%s (%s) · %d words\n\n", r.URL, r.Domain, r.WordCount)
	if r.Content != "" {
		sb.WriteString(r.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderFields writes every named output as a "name: value" block.
func renderFields(out pipeline.Output) string {
	var sb strings.Builder
	for i, v := range out.Strings() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pipeline.OutputNames[i])
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteString("\n")
	}
	return sb.String()
}
