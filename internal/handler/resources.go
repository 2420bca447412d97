package handlers

import (
	"strings"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/counselor"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/response"
	"github.com/gin-gonic/gin"
)

type selfHelpItem struct {
	Type  string `json:"type"` // audio, article or video
	Title string `json:"title"`
	URL   string `json:"url"`
}

var selfHelpByLanguage = map[string][]selfHelpItem{
	"en": {
		{Type: "audio", Title: "5-minute guided breathing", URL: "https://www.nhs.uk/mental-health/self-help/guides-tools-and-activities/breathing-exercises-for-stress/"},
		{Type: "article", Title: "Coping with exam stress", URL: "https://www.mind.org.uk/information-support/for-children-and-young-people/exam-stress/"},
		{Type: "video", Title: "Grounding techniques for anxiety", URL: "https://www.youtube.com/watch?v=30VMIEmA114"},
	},
	"hi": {
		{Type: "audio", Title: "निर्देशित श्वास अभ्यास", URL: "https://www.nimhans.ac.in/wellbeing/"},
		{Type: "article", Title: "परीक्षा के तनाव से निपटना", URL: "https://telemanas.mohfw.gov.in/"},
	},
	"ur": {
		{Type: "article", Title: "ذہنی دباؤ سے نمٹنا", URL: "https://telemanas.mohfw.gov.in/"},
	},
	"pa": {
		{Type: "article", Title: "ਤਣਾਅ ਨਾਲ ਨਜਿੱਠਣਾ", URL: "https://telemanas.mohfw.gov.in/"},
	},
}

func selfHelpForLocale(locale string) []selfHelpItem {
	lang := strings.ToLower(locale)
	if i := strings.Index(lang, "-"); i > 0 {
		lang = lang[:i]
	}
	if items, ok := selfHelpByLanguage[lang]; ok {
		return items
	}
	return selfHelpByLanguage["en"]
}

// Resources static per-locale helplines and self-help material
func (h *Handlers) Resources(c *gin.Context) {
	locale := counselor.NormalizeLocale(c.DefaultQuery("locale", "en-IN"))
	response.Success(c, gin.H{
		"locale":    locale,
		"helplines": counselor.ResourcesForLocale(locale),
		"selfHelp":  selfHelpForLocale(locale),
	})
}
