package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/llm"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedProvider(reply string) llm.Provider {
	return llm.Func(func(ctx context.Context, req llm.ChatRequest) (string, error) {
		return reply, nil
	})
}

func failingProvider() llm.Provider {
	return llm.Func(func(ctx context.Context, req llm.ChatRequest) (string, error) {
		return "", errors.New("upstream down")
	})
}

func sampleTurns() []session.Turn {
	return []session.Turn{
		{Role: "user", Text: "I feel anxious about exams"},
		{Role: "assistant", Text: "That sounds stressful."},
	}
}

func TestGenerateFlagsParsesReply(t *testing.T) {
	a := NewAdapter(fixedProvider("```json\n" + `{
		"crisis_flags": [],
		"risk_flags": ["exam anxiety"],
		"overall_risk_level": "medium",
		"confidence": 0.8
	}` + "\n```"))

	rep := a.GenerateFlags(context.Background(), sampleTurns())
	assert.Equal(t, []string{"exam anxiety"}, rep.RiskFlags)
	assert.Equal(t, "medium", rep.OverallRiskLevel)
	assert.Equal(t, 0.8, rep.Confidence)
	// Omitted arrays come back empty, never nil
	assert.NotNil(t, rep.ConcernFlags)
	assert.NotNil(t, rep.PositiveFlags)
	assert.NotEmpty(t, rep.Reasoning)
}

func TestGenerateFlagsDefaults(t *testing.T) {
	a := NewAdapter(fixedProvider(`{}`))
	rep := a.GenerateFlags(context.Background(), sampleTurns())
	assert.Equal(t, "low", rep.OverallRiskLevel)
	assert.Equal(t, 0.5, rep.Confidence)
	assert.Empty(t, rep.CrisisFlags)
}

func TestGenerateFlagsFallsBackOnError(t *testing.T) {
	a := NewAdapter(failingProvider())
	rep := a.GenerateFlags(context.Background(), sampleTurns())
	// Keyword fallback signature
	assert.Equal(t, 0.7, rep.Confidence)
	assert.Equal(t, "medium", rep.OverallRiskLevel) // "anxious" is a risk keyword
}

func TestGenerateFlagsFallsBackOnGarbage(t *testing.T) {
	a := NewAdapter(fixedProvider("I cannot produce JSON today"))
	rep := a.GenerateFlags(context.Background(), sampleTurns())
	assert.Equal(t, 0.7, rep.Confidence)
}

func TestGenerateFlagsNilProvider(t *testing.T) {
	a := NewAdapter(nil)
	rep := a.GenerateFlags(context.Background(), sampleTurns())
	assert.Equal(t, 0.7, rep.Confidence)
}

func TestGenerateInsightsDefaults(t *testing.T) {
	s := session.New("en-IN")
	s.AddTurn("user", "hello")

	a := NewAdapter(fixedProvider(`{"main_topics": ["exams"]}`))
	rep := a.GenerateInsights(context.Background(), s)
	assert.Equal(t, []string{"exams"}, rep.MainTopics)
	assert.Equal(t, "medium", rep.EngagementLevel)
	assert.Equal(t, "fair", rep.TherapeuticAlliance)
	assert.NotNil(t, rep.EmotionalPatterns)
	assert.NotNil(t, rep.CopingStrategies)
}

func TestGenerateInsightsFallback(t *testing.T) {
	s := session.New("en-IN")
	a := NewAdapter(failingProvider())
	rep := a.GenerateInsights(context.Background(), s)
	assert.Equal(t, FallbackInsights(), rep)
}

func TestAssessRiskParsesReply(t *testing.T) {
	a := NewAdapter(fixedProvider(`{
		"risk_level": "high",
		"suicidal_ideation": "passive",
		"confidence": 0.9
	}`))
	rep := a.AssessRisk(context.Background(), sampleTurns())
	assert.Equal(t, "high", rep.RiskLevel)
	assert.Equal(t, "passive", rep.SuicidalIdeation)
	assert.NotNil(t, rep.ProtectiveFactors)
	assert.NotNil(t, rep.ImmediateConcerns)
}

func TestAssessRiskDefaults(t *testing.T) {
	a := NewAdapter(fixedProvider(`{}`))
	rep := a.AssessRisk(context.Background(), sampleTurns())
	assert.Equal(t, "low", rep.RiskLevel)
	assert.Equal(t, 0.5, rep.Confidence)
}

func TestAssessRiskFallback(t *testing.T) {
	a := NewAdapter(failingProvider())
	rep := a.AssessRisk(context.Background(), sampleTurns())
	assert.Equal(t, FallbackRiskAssessment(), rep)
}

func TestGenerateRecommendationsDefaults(t *testing.T) {
	s := session.New("en-IN")
	a := NewAdapter(fixedProvider(`{"immediate_actions": ["check in tomorrow"]}`))
	rep := a.GenerateRecommendations(context.Background(), s, FallbackInsights())
	require.Equal(t, []string{"check in tomorrow"}, rep.ImmediateActions)
	assert.Equal(t, "weekly", rep.FollowUpSchedule)
	assert.Equal(t, "medium", rep.PriorityLevel)
	assert.NotNil(t, rep.ProfessionalReferrals)
}

func TestGenerateRecommendationsFallback(t *testing.T) {
	s := session.New("en-IN")
	a := NewAdapter(failingProvider())
	rep := a.GenerateRecommendations(context.Background(), s, FallbackInsights())
	assert.Equal(t, FallbackRecommendations(), rep)
}
