package counselor

import "strings"

// StyleForEmotion maps an analyzed emotional state to an expressive TTS
// speaking style. Unknown emotions default to empathetic.
func StyleForEmotion(emotion string) string {
	e := strings.ToLower(emotion)
	switch {
	case containsAny(e, "crisis", "distress", "fear", "panic"):
		return "empathetic"
	case containsAny(e, "anxious", "stress"):
		return "empathetic"
	case containsAny(e, "depressed", "sad", "down"):
		return "sad"
	case containsAny(e, "hopeful", "relief"):
		return "calm"
	case containsAny(e, "positive", "improving", "better"):
		return "cheerful"
	}
	return "empathetic"
}

// StyleDegree expressive intensity for a speaking style
func StyleDegree(style string) float64 {
	switch style {
	case "empathetic":
		return 1.35
	case "sad":
		return 1.15
	case "calm":
		return 1.25
	case "cheerful":
		return 1.45
	}
	return 1.2
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
