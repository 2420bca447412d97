package counselor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/llm"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisDefaults(t *testing.T) {
	a, err := ParseAnalysis(`{}`)
	require.NoError(t, err)
	assert.Equal(t, "neutral", a.EmotionalState)
	assert.Equal(t, "low", a.UrgencyLevel)
	assert.Equal(t, "active_listening", a.ResponseApproach)
	assert.Equal(t, 0.5, a.Confidence)
	assert.NotNil(t, a.MainConcerns)
	assert.NotNil(t, a.RiskIndicators)
}

func TestParseAnalysisFenced(t *testing.T) {
	a, err := ParseAnalysis("```json\n{\"emotionalState\": \"anxious\", \"urgencyLevel\": \"medium\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "anxious", a.EmotionalState)
	assert.Equal(t, "medium", a.UrgencyLevel)
}

func TestParseAnalysisGarbage(t *testing.T) {
	_, err := ParseAnalysis("not json at all")
	assert.Error(t, err)
}

func TestFallbackAnalysisCrisis(t *testing.T) {
	a := FallbackAnalysis("I want to end my life")
	assert.Equal(t, "crisis", a.EmotionalState)
	assert.Equal(t, "crisis", a.UrgencyLevel)
	assert.Equal(t, "crisis_intervention", a.ResponseApproach)
}

func TestFallbackAnalysisRisk(t *testing.T) {
	a := FallbackAnalysis("I feel so depressed lately")
	assert.Equal(t, "distressed", a.EmotionalState)
	assert.Equal(t, "medium", a.UrgencyLevel)
}

func TestFallbackAnalysisNeutral(t *testing.T) {
	a := FallbackAnalysis("classes went okay today")
	assert.Equal(t, "neutral", a.EmotionalState)
	assert.Equal(t, "low", a.UrgencyLevel)
	assert.Equal(t, 0.6, a.Confidence)
}

func TestFallbackReply(t *testing.T) {
	s := session.New("en-IN")
	assert.Contains(t, FallbackReply(s), "Asha")

	s.Stage = session.StageExploration
	assert.Contains(t, FallbackReply(s), "tell me more")

	s.RiskLevel = safety.LevelHigh
	assert.Contains(t, FallbackReply(s), "safety")
}

func TestCleanReply(t *testing.T) {
	assert.Equal(t, "I hear you.", CleanReply("RESPONSE: I hear you."))
	assert.Equal(t, "I hear you.", CleanReply("Asha: I hear you"))
	assert.Equal(t, "How are you feeling?", CleanReply("  How are you feeling?  "))
	assert.Equal(t, "", CleanReply("   "))
}

// A failing provider still yields a complete reply and analysis
func TestRespondDegradesToFallback(t *testing.T) {
	c := New(llm.Func(func(ctx context.Context, req llm.ChatRequest) (string, error) {
		return "", errors.New("upstream down")
	}))
	s := session.New("en-IN")
	s.AddTurn("user", "I feel hopeless")

	reply, analysis := c.Respond(context.Background(), s, "I feel hopeless")
	assert.NotEmpty(t, reply)
	assert.Equal(t, "distressed", analysis.EmotionalState)
	assert.Equal(t, "medium", analysis.UrgencyLevel)
}

func TestRespondUsesLLMReply(t *testing.T) {
	c := New(llm.Func(func(ctx context.Context, req llm.ChatRequest) (string, error) {
		prompt := req.Messages[0].Content
		if strings.Contains(prompt, "emotionalState") {
			return `{"emotionalState": "anxious", "urgencyLevel": "medium"}`, nil
		}
		return "RESPONSE: That sounds really hard, I'm with you.", nil
	}))
	s := session.New("en-IN")

	reply, analysis := c.Respond(context.Background(), s, "exams are overwhelming me")
	assert.NotEmpty(t, reply)
	assert.NotEqual(t, "unknown", analysis.EmotionalState)
}
