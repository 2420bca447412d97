package counselor

import "strings"

// NormalizeLocale maps unsupported regional locales onto the closest voiced
// locale: Dogri speakers get Hindi, Kashmiri and Indian Urdu get Pakistani
// Urdu (the only Urdu neural voice available).
func NormalizeLocale(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case l == "":
		return "en-IN"
	case strings.HasPrefix(l, "doi"):
		return "hi-IN"
	case strings.HasPrefix(l, "ks"):
		return "ur-PK"
	case l == "ur-in":
		return "ur-PK"
	}
	return locale
}

// LanguageNameFor human-readable language name used inside prompts
func LanguageNameFor(locale string) string {
	l := strings.ToLower(locale)
	switch {
	case strings.HasPrefix(l, "hi"):
		return "Hindi"
	case strings.HasPrefix(l, "ur"):
		return "Urdu"
	case strings.HasPrefix(l, "pa"):
		return "Punjabi"
	case strings.HasPrefix(l, "en"):
		return "English (India)"
	}
	return "the user's language"
}

// VoiceForLocale default neural voice per language
func VoiceForLocale(locale string) string {
	l := strings.ToLower(locale)
	switch {
	case strings.HasPrefix(l, "hi"):
		return "hi-IN-SwaraNeural"
	case strings.HasPrefix(l, "ur"):
		return "ur-PK-UzmaNeural"
	case strings.HasPrefix(l, "pa"):
		return "pa-IN-GaganNeural"
	}
	return "en-IN-NeerjaNeural"
}
