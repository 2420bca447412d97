package counselor

import (
	"strings"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
)

// Resource a helpline or support service surfaced to the user
type Resource struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	URL     string `json:"url,omitempty"`
}

// ActionPlan per-turn guidance attached to the assistant reply
type ActionPlan struct {
	SOS              bool       `json:"sos"`
	Resources        []Resource `json:"resources"`
	BookingSuggested bool       `json:"bookingSuggested"`
}

var crisisResources = []Resource{
	{Name: "Tele-MANAS (24x7)", Contact: "14416"},
	{Name: "KIRAN Mental Health Helpline", Contact: "1800-599-0019"},
	{Name: "Campus counseling cell", Contact: "reach out via your institute portal"},
}

var supportResources = map[string][]Resource{
	"en": {
		{Name: "Tele-MANAS (24x7)", Contact: "14416"},
		{Name: "Guided breathing exercise", URL: "https://www.nhs.uk/mental-health/self-help/guides-tools-and-activities/breathing-exercises-for-stress/"},
		{Name: "Campus counseling cell", Contact: "reach out via your institute portal"},
	},
	"hi": {
		{Name: "टेली-मानस हेल्पलाइन (24x7)", Contact: "14416"},
		{Name: "किरण मानसिक स्वास्थ्य हेल्पलाइन", Contact: "1800-599-0019"},
		{Name: "कैंपस काउंसलिंग सेल", Contact: "संस्थान पोर्टल से संपर्क करें"},
	},
	"ur": {
		{Name: "ٹیلی ماناس ہیلپ لائن (24x7)", Contact: "14416"},
		{Name: "کرن ذہنی صحت ہیلپ لائن", Contact: "1800-599-0019"},
	},
	"pa": {
		{Name: "ਟੈਲੀ-ਮਾਨਸ ਹੈਲਪਲਾਈਨ (24x7)", Contact: "14416"},
		{Name: "ਕਿਰਨ ਮਾਨਸਿਕ ਸਿਹਤ ਹੈਲਪਲਾਈਨ", Contact: "1800-599-0019"},
	},
}

// ResourcesForLocale localized helpline list, English when no localization
// exists for the language.
func ResourcesForLocale(locale string) []Resource {
	lang := strings.ToLower(locale)
	if i := strings.Index(lang, "-"); i > 0 {
		lang = lang[:i]
	}
	if rs, ok := supportResources[lang]; ok {
		return rs
	}
	return supportResources["en"]
}

// BuildActionPlan derives the turn's guidance from the current risk level.
// Resources are always present; SOS and booking switch on at high risk.
func BuildActionPlan(level safety.Level, locale string) ActionPlan {
	sos := safety.Rank(level) >= safety.Rank(safety.LevelHigh)
	resources := ResourcesForLocale(locale)
	if sos {
		resources = crisisResources
	}
	return ActionPlan{
		SOS:              sos,
		Resources:        resources,
		BookingSuggested: safety.Rank(level) >= safety.Rank(safety.LevelMedium),
	}
}
