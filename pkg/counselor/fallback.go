package counselor

import (
	"strings"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
)

var (
	analysisCrisisKeywords = []string{"suicide", "kill myself", "end my life", "self harm"}
	analysisRiskKeywords   = []string{"depressed", "hopeless", "anxious", "worried"}
)

// FallbackAnalysis keyword-rule analysis used whenever the LLM path fails.
// Deterministic for a given utterance.
func FallbackAnalysis(userText string) session.Analysis {
	text := strings.ToLower(userText)
	hasCrisis := containsAny(text, analysisCrisisKeywords...)
	hasRisk := containsAny(text, analysisRiskKeywords...)

	a := session.Analysis{
		EmotionalState:   "neutral",
		UrgencyLevel:     "low",
		MainConcerns:     []string{"general"},
		RiskIndicators:   []string{},
		CopingMechanisms: []string{},
		SupportNeeds:     []string{"emotional support"},
		ResponseApproach: "active_listening",
		Confidence:       0.6,
		Reasoning:        "Fallback analysis based on keyword detection",
	}
	switch {
	case hasCrisis:
		a.EmotionalState = "crisis"
		a.UrgencyLevel = "crisis"
		a.MainConcerns = []string{"crisis"}
		a.RiskIndicators = []string{"crisis indicators"}
		a.SupportNeeds = []string{"immediate support"}
		a.ResponseApproach = "crisis_intervention"
	case hasRisk:
		a.EmotionalState = "distressed"
		a.UrgencyLevel = "medium"
		a.MainConcerns = []string{"mental health"}
	}
	return a
}

// FallbackReply canned reply keyed on risk level and stage
func FallbackReply(s *session.Session) string {
	if safety.Rank(s.RiskLevel) >= safety.Rank(safety.LevelHigh) {
		return "I'm concerned about what you're sharing. Your safety is my top priority. If you're having thoughts of hurting yourself, please reach out to a crisis helpline immediately. Can you tell me more about what's going on?"
	}
	if s.Stage == session.StageInitial {
		return "Hello, I'm Asha, your AI mental health counselor. I'm here to listen and support you. What's on your mind today?"
	}
	return "I hear you, and I want to understand better. Can you tell me more about what you're experiencing?"
}
