package llm

import "strings"

// ExtractJSON strips the junk LLMs wrap around JSON replies: markdown code
// fences and any prose before the first brace or after the last one.
func ExtractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if i := strings.Index(text, "\n"); i >= 0 {
			text = text[i+1:] // drop the language tag line
		}
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last > first {
		text = text[first : last+1]
	}
	return text
}
