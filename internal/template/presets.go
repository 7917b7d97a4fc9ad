package template

import "strings"

// Type names a built-in prompt preset.
type Type string

const (
	// Summary asks for a short neutral summary of the article.
	Summary Type = "summary"
	// KeyPoints asks for a bulleted list of the main claims.
	KeyPoints Type = "keypoints"
	// Question asks for questions a reader could answer from the article.
	Question Type = "question"
	// None means no preset; the rendered prompt stays empty.
	None Type = ""
)

// Preset is a named prompt template over the extraction fields.
type Preset struct {
	Type        Type
	Name        string
	Description string
	Template    string
}

// GetPreset returns the preset matching name. Unknown names yield the
// None preset, whose template is empty.
func GetPreset(name string) Preset {
	switch Type(normalizeType(name)) {
	case Summary:
		return summaryPreset()
	case KeyPoints:
		return keyPointsPreset()
	case Question:
		return questionPreset()
	default:
		return Preset{Type: None, Name: "None"}
	}
}

// Presets lists the built-in presets in display order.
func Presets() []Preset {
	return []Preset{summaryPreset(), keyPointsPreset(), questionPreset()}
}

// normalizeType converts user input to a canonical Type value.
func normalizeType(s string) string {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "summary", "summarize", "summarise", "tldr", "tl;dr":
		return string(Summary)
	case "keypoints", "key points", "key-points", "bullets", "highlights":
		return string(KeyPoints)
	case "question", "questions", "quiz", "qa", "q&a":
		return string(Question)
	default:
		if strings.Contains(v, "summar") {
			return string(Summary)
		}
		if strings.Contains(v, "point") || strings.Contains(v, "bullet") {
			return string(KeyPoints)
		}
		if strings.Contains(v, "question") {
			return string(Question)
		}
		return string(None)
	}
}

func summaryPreset() Preset {
	return Preset{
		Type:        Summary,
		Name:        "Summary",
		Description: "Short neutral summary of the article",
		Template: "Summarize the following article from {site_name} ({domain}) in three to five sentences. " +
			"Stay neutral and do not add facts that are not in the text.\n\n" +
			"Title: {title}\nAuthor: {author}\nURL: {url}\n\n{content}",
	}
}

func keyPointsPreset() Preset {
	return Preset{
		Type:        KeyPoints,
		Name:        "Key points",
		Description: "Bulleted list of the article's main claims",
		Template: "List the key points of the article \"{title}\" by {author} as short bullet points, " +
			"one claim per bullet, in the order they appear.\n\nSource: {url}\n\n{content}",
	}
}

func questionPreset() Preset {
	return Preset{
		Type:        Question,
		Name:        "Questions",
		Description: "Comprehension questions answerable from the article",
		Template: "Write five questions that a reader can answer using only the article below " +
			"({word_count} words, {site_name}). Give the answer after each question.\n\n" +
			"Title: {title}\n\n{content_snip}",
	}
}
