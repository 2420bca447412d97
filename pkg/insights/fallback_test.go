package insights

import (
	"testing"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/stretchr/testify/assert"
)

func turnsOf(texts ...string) []session.Turn {
	turns := make([]session.Turn, 0, len(texts))
	for _, t := range texts {
		turns = append(turns, session.Turn{Role: "user", Text: t})
	}
	return turns
}

func TestFallbackFlagsCrisis(t *testing.T) {
	rep := FallbackFlags(turnsOf("sometimes I think about suicide"))
	assert.Equal(t, []string{"suicide"}, rep.CrisisFlags)
	assert.Equal(t, "crisis", rep.OverallRiskLevel)
	assert.Equal(t, 0.7, rep.Confidence)
}

func TestFallbackFlagsRiskOnly(t *testing.T) {
	rep := FallbackFlags(turnsOf("I feel hopeless and worried"))
	assert.Empty(t, rep.CrisisFlags)
	assert.ElementsMatch(t, []string{"hopeless", "worried"}, rep.RiskFlags)
	assert.Equal(t, "medium", rep.OverallRiskLevel)
}

func TestFallbackFlagsNeutral(t *testing.T) {
	rep := FallbackFlags(turnsOf("classes were fine today"))
	assert.Empty(t, rep.CrisisFlags)
	assert.Empty(t, rep.RiskFlags)
	assert.Equal(t, "low", rep.OverallRiskLevel)
	assert.NotNil(t, rep.ConcernFlags)
	assert.NotNil(t, rep.PositiveFlags)
}

func TestFallbackFlagsCrisisOutranksRisk(t *testing.T) {
	rep := FallbackFlags(turnsOf("I am depressed and want to end my life"))
	assert.Contains(t, rep.CrisisFlags, "end my life")
	assert.Contains(t, rep.RiskFlags, "depressed")
	assert.Equal(t, "crisis", rep.OverallRiskLevel)
}

func TestFallbackRecordsAreComplete(t *testing.T) {
	ins := FallbackInsights()
	assert.Equal(t, "medium", ins.EngagementLevel)
	assert.Equal(t, "fair", ins.TherapeuticAlliance)

	risk := FallbackRiskAssessment()
	assert.Equal(t, "low", risk.RiskLevel)
	assert.Equal(t, 0.5, risk.Confidence)
	assert.NotNil(t, risk.ProtectiveFactors)

	recs := FallbackRecommendations()
	assert.Equal(t, "weekly", recs.FollowUpSchedule)
	assert.Equal(t, "medium", recs.PriorityLevel)
}
