package reporting

import (
	"context"
	"testing"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/insights"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterminePriority(t *testing.T) {
	noFlags := insights.FlagReport{}

	assert.Equal(t, PriorityCritical, determinePriority(safety.LevelCrisis, noFlags))
	assert.Equal(t, PriorityCritical, determinePriority(safety.LevelLow, insights.FlagReport{CrisisFlags: []string{"suicide"}}))
	assert.Equal(t, PriorityHigh, determinePriority(safety.LevelHigh, noFlags))
	assert.Equal(t, PriorityHigh, determinePriority(safety.LevelLow, insights.FlagReport{RiskFlags: []string{"a", "b", "c"}}))
	assert.Equal(t, PriorityMedium, determinePriority(safety.LevelMedium, noFlags))
	assert.Equal(t, PriorityMedium, determinePriority(safety.LevelLow, insights.FlagReport{RiskFlags: []string{"a"}}))
	assert.Equal(t, PriorityLow, determinePriority(safety.LevelLow, noFlags))
}

// The session's own flags floor the overall risk even when the LLM assessment
// comes back low (or is the fallback).
func TestRiskAssessmentFlagFloor(t *testing.T) {
	sessionFlags := []safety.Flag{{Flag: true, Level: safety.LevelHigh, Reason: "want to die"}}
	assessment := formatRiskAssessment(insights.FallbackRiskAssessment(), insights.FlagReport{}, sessionFlags)
	assert.Equal(t, safety.LevelHigh, assessment.OverallRisk)

	// LLM level above the flag bucket wins
	high := insights.FallbackRiskAssessment()
	high.RiskLevel = "crisis"
	assessment = formatRiskAssessment(high, insights.FlagReport{}, nil)
	assert.Equal(t, safety.LevelCrisis, assessment.OverallRisk)
}

func TestBookingNeeded(t *testing.T) {
	r := CounselorReport{Priority: PriorityLow}
	r.RiskAssessment.OverallRisk = safety.LevelHigh
	assert.False(t, r.BookingNeeded())

	r.RiskAssessment.OverallRisk = safety.LevelCrisis
	assert.True(t, r.BookingNeeded())

	r.RiskAssessment.OverallRisk = safety.LevelLow
	r.Priority = PriorityCritical
	assert.True(t, r.BookingNeeded())
}

// A crisis utterance with the LLM down must still produce a CRITICAL report
// that triggers booking.
func TestCounselorReportCrisisWithLLMDown(t *testing.T) {
	s := session.New("en-IN")
	s.AddTurn("user", "I want to end my life")
	s.AddRiskFlag(safety.DetectRisk("I want to end my life"))

	gen := NewGenerator(insights.NewAdapter(downProvider()))
	rep := gen.GenerateCounselorReport(context.Background(), s)

	// Keyword fallback flags carry the crisis phrase
	assert.Contains(t, rep.RiskAssessment.Flags.Crisis, "end my life")
	assert.Equal(t, PriorityCritical, rep.Priority)
	assert.True(t, rep.BookingNeeded())
	assert.GreaterOrEqual(t, safety.Rank(rep.RiskAssessment.OverallRisk), safety.Rank(safety.LevelHigh))

	require.NotEmpty(t, rep.ImmediateActions)
	assert.Equal(t, "URGENT", rep.ImmediateActions[0].Priority)
}

func TestCounselorReportNeutralSession(t *testing.T) {
	s := session.New("en-IN")
	s.AddTurn("user", "classes went okay")
	s.AddTurn("assistant", "Good to hear.")

	gen := NewGenerator(insights.NewAdapter(downProvider()))
	rep := gen.GenerateCounselorReport(context.Background(), s)

	assert.Equal(t, PriorityLow, rep.Priority)
	assert.False(t, rep.BookingNeeded())
	assert.Equal(t, 1, rep.StudentInfo.MessageCount)
	assert.NotEmpty(t, rep.CounselorNotes)
	assert.NotEmpty(t, rep.KeyConcerns)
}

func TestExtractKeyConcernsFromKeywords(t *testing.T) {
	s := session.New("en-IN")
	s.AddTurn("user", "my exam grades are slipping and my parents are upset")

	concerns := extractKeyConcerns(insights.InsightReport{}, s)
	assert.Contains(t, concerns, "academic")
	assert.Contains(t, concerns, "family")
}

func TestExtractKeyConcernsDefault(t *testing.T) {
	s := session.New("en-IN")
	concerns := extractKeyConcerns(insights.InsightReport{}, s)
	assert.Equal(t, []string{"General"}, concerns)
}
