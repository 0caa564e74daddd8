package ollama

import "strings"

// ExtractJSON pulls the outermost JSON object out of model chatter: markdown
// fences are stripped, then everything from the first '{' to the last '}' is
// taken. Returns "" when no object is present.
func ExtractJSON(content string) string {
	raw := strings.TrimSpace(content)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "```") {
		rest := strings.TrimSpace(strings.TrimPrefix(raw, "```"))
		if i := strings.Index(rest, "\n"); i >= 0 {
			rest = rest[i+1:]
		}
		if j := strings.LastIndex(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		raw = strings.TrimSpace(rest)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return strings.TrimSpace(raw[start : end+1])
}
