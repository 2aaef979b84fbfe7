package llm

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/kevinmichaelchen/readme-gen/internal/models"
)

// jsonObject spans from the first '{' to the last '}' of a response.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

var requiredFields = []string{"description", "features", "usage", "installation"}

// Fallback returns the content used when a model response can't be parsed.
func Fallback() models.GeneratedContent {
	return models.GeneratedContent{
		Description: "A well-crafted software project built with modern technologies.",
		Features: []string{
			"Clean and maintainable code architecture",
			"Modern development practices",
			"Comprehensive functionality",
			"User-friendly interface",
		},
		Usage:        "Clone the repository and follow the installation instructions to get started.",
		Installation: "Clone this repository and install dependencies using your package manager.",
	}
}

// ParseContent extracts generated content from free model text. The second
// return value reports whether the fallback content was substituted.
func ParseContent(text string) (models.GeneratedContent, bool) {
	content, err := parseContent(text)
	if err != nil {
		return Fallback(), true
	}
	return content, false
}

func parseContent(text string) (models.GeneratedContent, error) {
	raw := jsonObject.FindString(text)
	if raw == "" {
		return models.GeneratedContent{}, fmt.Errorf("no JSON object in response")
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return models.GeneratedContent{}, fmt.Errorf("parsing JSON: %w", err)
	}

	for _, name := range requiredFields {
		if !present(fields[name]) {
			return models.GeneratedContent{}, fmt.Errorf("missing field %q", name)
		}
	}

	var features []string
	if items, ok := fields["features"].([]any); ok {
		features = make([]string, len(items))
		for i, item := range items {
			features[i] = stringify(item)
		}
	} else {
		features = []string{}
	}

	return models.GeneratedContent{
		Description:  stringify(fields["description"]),
		Features:     features,
		Usage:        stringify(fields["usage"]),
		Installation: stringify(fields["installation"]),
	}, nil
}

// present reports whether a decoded JSON value counts as supplied: null,
// false, 0 and "" do not.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	default:
		return true
	}
}

// stringify passes strings through and formats any other JSON value as-is.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
