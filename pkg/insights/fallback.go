package insights

import (
	"strings"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
)

// Keyword sets for degraded-mode flag generation. Narrower than the live
// risk detector on purpose; the matched keywords become the flag labels.
var (
	fallbackCrisisKeywords = []string{"suicide", "kill myself", "end my life", "self harm"}
	fallbackRiskKeywords   = []string{"depressed", "hopeless", "anxious", "worried"}
)

// FallbackFlags keyword scan over the whole transcript. Overall risk is
// crisis when any crisis keyword appears, medium for risk keywords, else low.
func FallbackFlags(turns []session.Turn) FlagReport {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(strings.ToLower(t.Text))
		b.WriteString(" ")
	}
	text := b.String()

	crisisFlags := []string{}
	for _, k := range fallbackCrisisKeywords {
		if strings.Contains(text, k) {
			crisisFlags = append(crisisFlags, k)
		}
	}
	riskFlags := []string{}
	for _, k := range fallbackRiskKeywords {
		if strings.Contains(text, k) {
			riskFlags = append(riskFlags, k)
		}
	}

	overall := "low"
	if len(crisisFlags) > 0 {
		overall = "crisis"
	} else if len(riskFlags) > 0 {
		overall = "medium"
	}

	return FlagReport{
		CrisisFlags:      crisisFlags,
		RiskFlags:        riskFlags,
		ConcernFlags:     []string{},
		PositiveFlags:    []string{},
		OverallRiskLevel: overall,
		Confidence:       0.7,
		Reasoning:        "Fallback analysis based on keyword detection",
	}
}

func FallbackInsights() InsightReport {
	return InsightReport{
		EmotionalPatterns:   []string{"neutral"},
		MainTopics:          []string{"general discussion"},
		CopingStrategies:    []string{},
		SupportSystems:      []string{},
		ProgressIndicators:  []string{},
		EngagementLevel:     "medium",
		TherapeuticAlliance: "fair",
		KeyInsights:         []string{"Session completed successfully"},
		Recommendations:     []string{"Continue regular check-ins"},
	}
}

func FallbackRiskAssessment() RiskAssessment {
	return RiskAssessment{
		RiskLevel:         "low",
		SuicidalIdeation:  "none",
		SelfHarmRisk:      "none",
		HopelessnessLevel: "none",
		IsolationLevel:    "none",
		ProtectiveFactors: []string{},
		ImmediateConcerns: []string{},
		Confidence:        0.5,
		Reasoning:         "Fallback risk assessment",
	}
}

func FallbackRecommendations() Recommendations {
	return Recommendations{
		ImmediateActions:      []string{"Monitor session progress"},
		ShortTermGoals:        []string{"Continue regular check-ins"},
		LongTermPlans:         []string{"Maintain therapeutic relationship"},
		ResourcesNeeded:       []string{"Standard counseling resources"},
		FollowUpSchedule:      "weekly",
		ProfessionalReferrals: []string{},
		PriorityLevel:         "medium",
		EstimatedTimeline:     "ongoing",
	}
}
