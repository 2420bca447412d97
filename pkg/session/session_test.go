package session

import (
	"strings"
	"testing"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s := New("hi-IN")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "hi-IN", s.Locale)
	assert.Equal(t, StageInitial, s.Stage)
	assert.Equal(t, safety.LevelLow, s.RiskLevel)
	assert.Empty(t, s.Turns)
	assert.False(t, s.Ended())
}

func TestNewIDFormat(t *testing.T) {
	id := NewID()
	parts := strings.SplitN(id, "-", 2)
	require.Len(t, parts, 2)
	assert.NotEmpty(t, parts[0])
	assert.NotEmpty(t, parts[1])
	assert.NotEqual(t, id, NewID())
}

func TestAddRiskFlagEscalatesMonotonically(t *testing.T) {
	s := New("en-IN")
	s.AddRiskFlag(safety.Flag{Flag: true, Level: safety.LevelMedium, Reason: "hopeless"})
	assert.Equal(t, safety.LevelMedium, s.RiskLevel)

	s.AddRiskFlag(safety.Flag{Flag: true, Level: safety.LevelHigh, Reason: "want to die"})
	assert.Equal(t, safety.LevelHigh, s.RiskLevel)

	// A later, milder flag never downgrades
	s.AddRiskFlag(safety.Flag{Flag: true, Level: safety.LevelLow, Reason: "worried"})
	assert.Equal(t, safety.LevelHigh, s.RiskLevel)
}

func TestAddRiskFlagDedupByReason(t *testing.T) {
	s := New("en-IN")
	s.AddRiskFlag(safety.Flag{Flag: true, Level: safety.LevelMedium, Reason: "hopeless"})
	s.AddRiskFlag(safety.Flag{Flag: true, Level: safety.LevelMedium, Reason: "hopeless"})
	assert.Len(t, s.RiskFlags, 1)

	// Duplicate reason with a higher level still escalates the session
	s.AddRiskFlag(safety.Flag{Flag: true, Level: safety.LevelHigh, Reason: "hopeless"})
	assert.Len(t, s.RiskFlags, 1)
	assert.Equal(t, safety.LevelHigh, s.RiskLevel)
}

func TestAddRiskFlagIgnoresUnset(t *testing.T) {
	s := New("en-IN")
	s.AddRiskFlag(safety.Flag{})
	assert.Empty(t, s.RiskFlags)
	assert.Equal(t, safety.LevelLow, s.RiskLevel)
}

func TestApplyAnalysisAdvancesStage(t *testing.T) {
	s := New("en-IN")
	s.ApplyAnalysis(Analysis{EmotionalState: "anxious", MainConcerns: []string{"exams"}, ResponseApproach: "active_listening"})
	assert.Equal(t, StageExploration, s.Stage)
	assert.Equal(t, "anxious", s.EmotionalState)

	for i := 0; i < 3; i++ {
		s.ApplyAnalysis(Analysis{ResponseApproach: "grounding"})
	}
	assert.Equal(t, StageIntervention, s.Stage)
}

func TestApplyAnalysisConcernsUnion(t *testing.T) {
	s := New("en-IN")
	s.ApplyAnalysis(Analysis{MainConcerns: []string{"exams", "sleep"}})
	s.ApplyAnalysis(Analysis{MainConcerns: []string{"sleep", "family"}})
	assert.Equal(t, []string{"exams", "sleep", "family"}, s.MainConcerns)
}

func TestApplyAnalysisUnknownEmotionKeepsPrevious(t *testing.T) {
	s := New("en-IN")
	s.ApplyAnalysis(Analysis{EmotionalState: "sad"})
	s.ApplyAnalysis(Analysis{EmotionalState: "unknown"})
	assert.Equal(t, "sad", s.EmotionalState)
}

func TestApplyAnalysisUrgencyEscalates(t *testing.T) {
	s := New("en-IN")
	s.ApplyAnalysis(Analysis{UrgencyLevel: "crisis"})
	assert.Equal(t, safety.LevelCrisis, s.RiskLevel)
	s.ApplyAnalysis(Analysis{UrgencyLevel: "low"})
	assert.Equal(t, safety.LevelCrisis, s.RiskLevel)
}

// Replaying the same inputs on a fresh session yields identical state
func TestReplayDeterminism(t *testing.T) {
	run := func() *Session {
		s := New("en-IN")
		s.AddTurn("user", "I can't sleep before exams")
		s.AddRiskFlag(safety.Flag{Flag: true, Level: safety.LevelMedium, Reason: "can't sleep for days"})
		s.ApplyAnalysis(Analysis{EmotionalState: "anxious", UrgencyLevel: "medium", MainConcerns: []string{"academics"}, ResponseApproach: "cbt"})
		s.AddTurn("assistant", "That sounds exhausting.")
		return s
	}
	a, b := run(), run()
	assert.Equal(t, a.Stage, b.Stage)
	assert.Equal(t, a.RiskLevel, b.RiskLevel)
	assert.Equal(t, a.MainConcerns, b.MainConcerns)
	assert.Equal(t, a.EmotionalState, b.EmotionalState)
	assert.Equal(t, len(a.RiskFlags), len(b.RiskFlags))
}

func TestEndIdempotent(t *testing.T) {
	s := New("en-IN")
	s.End()
	first := s.EndedAt
	s.End()
	assert.Equal(t, first, s.EndedAt)
	assert.True(t, s.Ended())
}

func TestRecentTurns(t *testing.T) {
	s := New("en-IN")
	s.AddTurn("user", "one")
	s.AddTurn("assistant", "two")
	s.AddTurn("user", "three")

	recent := s.RecentTurns(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Text)
	assert.Equal(t, "three", recent[1].Text)
	assert.Len(t, s.RecentTurns(10), 3)
	assert.Equal(t, 2, s.UserTurnCount())
}
