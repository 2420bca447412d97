package reporting

import (
	"strings"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
)

// Heuristic transcript analysis used by the fallback report path and as the
// aggregation source when the LLM fields are empty.

// CommunicationStyle how the user expresses themselves
type CommunicationStyle struct {
	Verbosity           string `json:"verbosity"`
	QuestionAsking      string `json:"questionAsking"`
	EmotionalExpression string `json:"emotionalExpression"`
}

// EmotionalSummary dominant emotion and how it moved across the session
type EmotionalSummary struct {
	DominantEmotion     string  `json:"dominantEmotion"`
	EmotionalVolatility float64 `json:"emotionalVolatility"`
	Trend               string  `json:"trend"`
}

// UserProfile heuristic profile of one session's user turns
type UserProfile struct {
	CommunicationStyle CommunicationStyle `json:"communicationStyle"`
	EmotionalPatterns  EmotionalSummary   `json:"emotionalPatterns"`
	Concerns           []string           `json:"concerns"`
	EngagementLevel    string             `json:"engagementLevel"`
	PreviousSessions   int                `json:"previousSessions"`
}

var emotionalWords = []string{
	"feel", "emotion", "sad", "happy", "angry", "anxious", "worried", "excited",
	"stressed", "overwhelmed", "panic", "afraid", "fear", "lonely", "guilty",
	"ashamed", "frustrated", "hopeful", "relieved",
}

var concernKeywords = map[string][]string{
	"anxiety":     {"worried", "anxious", "nervous", "panic", "fear", "panic attack", "restless", "overthinking", "racing thoughts", "overwhelmed", "stress", "stressed"},
	"depression":  {"sad", "hopeless", "empty", "worthless", "depressed", "down", "low", "no energy", "fatigued", "guilty", "tearful"},
	"relationships": {"relationship", "partner", "boyfriend", "girlfriend", "family", "parent", "mother", "father", "friend", "conflict", "breakup", "lonely", "alone"},
	"work":        {"work", "job", "career", "boss", "manager", "colleague", "office", "deadline", "burnout", "pressure"},
	"health":      {"health", "sick", "ill", "pain", "medical", "doctor", "sleep", "insomnia", "appetite", "headache"},
	"academics":   {"study", "studies", "exam", "exams", "test", "grades", "college", "assignment", "semester", "procrastinate", "focus", "concentration"},
	"self_esteem": {"confidence", "self-esteem", "worthless", "failure", "ashamed", "inadequate", "compare", "comparison"},
	"substance":   {"alcohol", "drink", "drinking", "smoke", "smoking", "weed", "drugs", "substance"},
	"trauma":      {"trauma", "abuse", "violence", "harassment", "bullying"},
}

// concernOrder fixes map iteration so the profile is replay-deterministic
var concernOrder = []string{
	"anxiety", "depression", "relationships", "work", "health",
	"academics", "self_esteem", "substance", "trauma",
}

var positiveWords = []string{"good", "great", "happy", "excited", "confident", "relieved", "hopeful", "better", "calm"}
var negativeWords = []string{"bad", "terrible", "sad", "angry", "frustrated", "stressed", "anxious", "panic", "overwhelmed", "afraid", "lonely", "hopeless", "guilty", "ashamed"}

// AnalyzeUserProfile computes the heuristic profile from user turns only
func AnalyzeUserProfile(s *session.Session) UserProfile {
	userTurns := make([]session.Turn, 0, len(s.Turns))
	for _, t := range s.Turns {
		if t.Role == "user" {
			userTurns = append(userTurns, t)
		}
	}
	return UserProfile{
		CommunicationStyle: analyzeCommunicationStyle(userTurns),
		EmotionalPatterns:  analyzeEmotionalPatterns(userTurns),
		Concerns:           ExtractConcerns(userTurns),
		EngagementLevel:    engagementLevel(userTurns),
	}
}

func analyzeCommunicationStyle(turns []session.Turn) CommunicationStyle {
	if len(turns) == 0 {
		return CommunicationStyle{Verbosity: "concise", QuestionAsking: "low", EmotionalExpression: "low"}
	}
	totalLen, questions := 0, 0
	for _, t := range turns {
		totalLen += len(t.Text)
		if strings.Contains(t.Text, "?") {
			questions++
		}
	}
	avgLen := float64(totalLen) / float64(len(turns))

	verbosity := "concise"
	if avgLen > 100 {
		verbosity = "detailed"
	} else if avgLen > 50 {
		verbosity = "moderate"
	}
	questionAsking := "low"
	if float64(questions) > float64(len(turns))*0.3 {
		questionAsking = "high"
	}
	return CommunicationStyle{
		Verbosity:           verbosity,
		QuestionAsking:      questionAsking,
		EmotionalExpression: emotionalExpression(turns),
	}
}

func emotionalExpression(turns []session.Turn) string {
	count := 0
	for _, t := range turns {
		text := strings.ToLower(t.Text)
		for _, w := range emotionalWords {
			if strings.Contains(text, w) {
				count++
			}
		}
	}
	switch {
	case float64(count) > float64(len(turns))*0.5:
		return "high"
	case float64(count) > float64(len(turns))*0.2:
		return "medium"
	}
	return "low"
}

// DetectEmotion crude polarity of one utterance
func DetectEmotion(text string) string {
	t := strings.ToLower(text)
	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(t, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(t, w) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	}
	return "neutral"
}

func analyzeEmotionalPatterns(turns []session.Turn) EmotionalSummary {
	if len(turns) == 0 {
		return EmotionalSummary{DominantEmotion: "neutral", Trend: "stable"}
	}
	emotions := make([]string, len(turns))
	for i, t := range turns {
		emotions[i] = DetectEmotion(t.Text)
	}

	counts := map[string]int{}
	for _, e := range emotions {
		counts[e]++
	}
	dominant, best := "neutral", 0
	for _, e := range []string{"positive", "negative", "neutral"} {
		if counts[e] > best {
			dominant, best = e, counts[e]
		}
	}

	changes := 0
	for i := 1; i < len(emotions); i++ {
		if emotions[i] != emotions[i-1] {
			changes++
		}
	}

	trend := "stable"
	if counts["positive"] > counts["negative"] && counts["positive"] > counts["neutral"] {
		trend = "improving"
	} else if counts["negative"] > counts["positive"] && counts["negative"] > counts["neutral"] {
		trend = "declining"
	}

	return EmotionalSummary{
		DominantEmotion:     dominant,
		EmotionalVolatility: float64(changes) / float64(len(emotions)),
		Trend:               trend,
	}
}

// ExtractConcerns maps keyword hits to concern categories, deduplicated,
// in fixed category order.
func ExtractConcerns(turns []session.Turn) []string {
	seen := map[string]bool{}
	concerns := []string{}
	for _, category := range concernOrder {
		words := concernKeywords[category]
		for _, t := range turns {
			text := strings.ToLower(t.Text)
			matched := false
			for _, w := range words {
				if strings.Contains(text, w) {
					matched = true
					break
				}
			}
			if matched && !seen[category] {
				seen[category] = true
				concerns = append(concerns, category)
			}
		}
	}
	return concerns
}

func engagementLevel(turns []session.Turn) string {
	if len(turns) == 0 {
		return "low"
	}
	totalLen := 0
	for _, t := range turns {
		totalLen += len(t.Text)
	}
	avgLen := float64(totalLen) / float64(len(turns))
	switch {
	case len(turns) > 10 && avgLen > 50:
		return "high"
	case len(turns) > 5 && avgLen > 25:
		return "medium"
	}
	return "low"
}
