package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/insights"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/llm"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func downProvider() llm.Provider {
	return llm.Func(func(ctx context.Context, req llm.ChatRequest) (string, error) {
		return "", errors.New("upstream down")
	})
}

func TestGenerateBasicNeutralSession(t *testing.T) {
	s := session.New("en-IN")
	s.AddTurn("user", "classes were fine today")
	s.AddTurn("assistant", "Glad to hear it.")

	gen := NewGenerator(insights.NewAdapter(nil))
	rep := gen.GenerateBasic(s)

	assert.Equal(t, s.ID, rep.SessionID)
	// No flags means minimal overall risk, regardless of the session's live level
	assert.Equal(t, safety.LevelMinimal, rep.RiskAnalysis.OverallRisk)
	assert.Empty(t, rep.RiskAnalysis.SpecificConcerns)
	assert.Equal(t, "low", rep.LLMFlags.OverallRiskLevel)
	assert.Equal(t, 0.5, rep.LLMFlags.Confidence)
	assert.Empty(t, rep.AdminAlerts)
	assert.NotEmpty(t, rep.FollowUpActions)
}

func TestGenerateBasicFlaggedSession(t *testing.T) {
	s := session.New("en-IN")
	s.AddTurn("user", "I want to end my life")
	s.AddRiskFlag(safety.DetectRisk("I want to end my life"))

	gen := NewGenerator(insights.NewAdapter(nil))
	rep := gen.GenerateBasic(s)

	assert.Equal(t, safety.LevelHigh, rep.RiskAnalysis.OverallRisk)
	require.Len(t, rep.RiskAnalysis.SpecificConcerns, 1)
	assert.NotEmpty(t, rep.RiskAnalysis.SafetyPlan)
	assert.NotEmpty(t, rep.RiskAnalysis.ImmediateActions)

	// Crisis alert raised for the admin stream
	require.NotEmpty(t, rep.AdminAlerts)
	assert.Equal(t, "crisis_alert", rep.AdminAlerts[0].Type)
	assert.Equal(t, "critical", rep.AdminAlerts[0].Severity)
}

// The LLM path with a dead upstream produces the same shape as the basic
// path, with every llm field filled by the capability fallbacks.
func TestGenerateFallbackParity(t *testing.T) {
	s := session.New("en-IN")
	s.AddTurn("user", "I feel anxious about everything")

	gen := NewGenerator(insights.NewAdapter(downProvider()))
	rep := gen.Generate(context.Background(), s)
	basic := gen.GenerateBasic(s)

	assert.Equal(t, basic.RiskAnalysis.OverallRisk, rep.RiskAnalysis.OverallRisk)
	assert.Equal(t, basic.Duration, rep.Duration)

	// Fallback capability records are attached, never nil
	require.NotNil(t, rep.RiskAnalysis.LLMAssessment)
	assert.Equal(t, insights.FallbackRiskAssessment(), *rep.RiskAnalysis.LLMAssessment)
	require.NotNil(t, rep.Recommendations.LLMRecommendations)
	assert.Equal(t, insights.FallbackRecommendations(), *rep.Recommendations.LLMRecommendations)
	assert.Equal(t, 0.7, rep.LLMFlags.Confidence)
	assert.Equal(t, insights.FallbackInsights(), rep.LLMInsights)
}

func TestDurationNeverNegative(t *testing.T) {
	s := session.New("en-IN")
	s.EndedAt = s.StartedAt.Add(-5 * time.Minute) // clock skew
	gen := NewGenerator(insights.NewAdapter(nil))
	rep := gen.GenerateBasic(s)
	assert.GreaterOrEqual(t, rep.Duration, 0)
}

func TestFollowUpActionsByLevel(t *testing.T) {
	assert.Len(t, followUpActions(safety.LevelMinimal), 1)

	medium := followUpActions(safety.LevelMedium)
	require.Len(t, medium, 2)
	assert.Equal(t, "high", medium[0].Priority)

	high := followUpActions(safety.LevelHigh)
	require.Len(t, high, 2)
	assert.Equal(t, "urgent", high[0].Priority)
}
