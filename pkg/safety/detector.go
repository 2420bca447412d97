package safety

import (
	"strings"
	"time"
)

// Keyword lists are scanned in order: crisis phrases first, then medium-risk
// phrases, first match wins within each list.
var crisisKeywords = []string{
	"suicide", "kill myself", "end my life", "self harm", "cut myself", "hang myself",
	"poison", "overdose", "jump", "no reason to live", "want to die", "die", "ending it",
}

var mediumRiskPhrases = []string{
	"hurting myself", "can't cope", "breakdown", "panic attack", "severe anxiety",
	"depressed", "hopeless", "worthless", "can't sleep for days",
}

// DetectRisk scans one utterance for risk phrases. Crisis phrases produce a
// high flag regardless of where a medium phrase also appears; no match or
// empty text produces an unset flag. Deterministic, no side effects.
func DetectRisk(text string) Flag {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return Flag{}
	}
	for _, k := range crisisKeywords {
		if strings.Contains(t, k) {
			return Flag{Flag: true, Level: LevelHigh, Reason: k, Type: "keyword", Timestamp: time.Now().UTC()}
		}
	}
	for _, k := range mediumRiskPhrases {
		if strings.Contains(t, k) {
			return Flag{Flag: true, Level: LevelMedium, Reason: k, Type: "keyword", Timestamp: time.Now().UTC()}
		}
	}
	return Flag{}
}
