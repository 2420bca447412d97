package reporting

import (
	"context"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/insights"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
)

// ConcernDetail one accumulated risk flag as surfaced in the report
type ConcernDetail struct {
	Type      string       `json:"type"`
	Level     safety.Level `json:"level"`
	Timestamp time.Time    `json:"timestamp"`
}

// RiskAnalysis per-session risk view. OverallRisk is always derived from the
// accumulated flags, never copied from the session's live risk level.
type RiskAnalysis struct {
	OverallRisk      safety.Level             `json:"overallRisk"`
	SpecificConcerns []ConcernDetail          `json:"specificConcerns"`
	SafetyPlan       []string                 `json:"safetyPlan"`
	ImmediateActions []string                 `json:"immediateActions"`
	LLMAssessment    *insights.RiskAssessment `json:"llmAssessment,omitempty"`
}

// Recommendation one prioritized care suggestion
type Recommendation struct {
	Priority  string   `json:"priority"`
	Type      string   `json:"type"`
	Action    string   `json:"action"`
	Resources []string `json:"resources"`
}

// RecommendationSet session recommendations grouped by horizon
type RecommendationSet struct {
	Immediate          []Recommendation          `json:"immediate"`
	ShortTerm          []Recommendation          `json:"shortTerm"`
	LongTerm           []Recommendation          `json:"longTerm"`
	Resources          []string                  `json:"resources"`
	LLMRecommendations *insights.Recommendations `json:"llmRecommendations,omitempty"`
}

// FollowUpAction a queued follow-up for the care team
type FollowUpAction struct {
	Type       string `json:"type"`
	Priority   string `json:"priority"`
	Action     string `json:"action"`
	AssignedTo string `json:"assignedTo"`
}

// Alert operator notification derived from one session
type Alert struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"sessionId"`
}

// Assessments structured screening results. Extraction of screening answers
// from free conversation is not implemented, so these stay null.
type Assessments struct {
	Depression *struct{} `json:"depression"`
	Anxiety    *struct{} `json:"anxiety"`
	Crisis     *struct{} `json:"crisis"`
	General    *struct{} `json:"general"`
}

// SessionReport the cached per-session report. The LLM and fallback paths
// produce this exact shape; only the llmFlags/llmInsights content differs.
type SessionReport struct {
	SessionID       string                 `json:"sessionId"`
	Timestamp       time.Time              `json:"timestamp"`
	Duration        int                    `json:"duration"` // minutes
	UserProfile     UserProfile            `json:"userProfile"`
	Assessments     Assessments            `json:"assessments"`
	RiskAnalysis    RiskAnalysis           `json:"riskAnalysis"`
	Recommendations RecommendationSet      `json:"recommendations"`
	FollowUpActions []FollowUpAction       `json:"followUpActions"`
	AdminAlerts     []Alert                `json:"adminAlerts"`
	LLMFlags        insights.FlagReport    `json:"llmFlags"`
	LLMInsights     insights.InsightReport `json:"llmInsights"`
}

// Generator builds session reports. The LLM path enriches the heuristic
// skeleton with the four insight capabilities; GenerateBasic is the pure
// heuristic path used per turn and whenever the LLM is disabled.
type Generator struct {
	adapter *insights.Adapter
}

func NewGenerator(a *insights.Adapter) *Generator {
	return &Generator{adapter: a}
}

// Generate full report through the insight adapter. The adapter already
// degrades per capability, so this always returns a complete report.
func (g *Generator) Generate(ctx context.Context, s *session.Session) SessionReport {
	rep := g.GenerateBasic(s)

	flags := g.adapter.GenerateFlags(ctx, s.Turns)
	ins := g.adapter.GenerateInsights(ctx, s)
	risk := g.adapter.AssessRisk(ctx, s.Turns)
	recs := g.adapter.GenerateRecommendations(ctx, s, ins)

	rep.LLMFlags = flags
	rep.LLMInsights = ins
	rep.RiskAnalysis.LLMAssessment = &risk
	rep.Recommendations.LLMRecommendations = &recs
	return rep
}

// GenerateBasic heuristics-only report with fixed low-confidence LLM fields
func (g *Generator) GenerateBasic(s *session.Session) SessionReport {
	overall := safety.BucketFlags(s.RiskFlags)
	return SessionReport{
		SessionID:       s.ID,
		Timestamp:       time.Now().UTC(),
		Duration:        durationMinutes(s),
		UserProfile:     AnalyzeUserProfile(s),
		Assessments:     Assessments{},
		RiskAnalysis:    analyzeRiskLevels(s, overall),
		Recommendations: baseRecommendations(),
		FollowUpActions: followUpActions(overall),
		AdminAlerts:     adminAlerts(s, overall),
		LLMFlags: insights.FlagReport{
			CrisisFlags:      []string{},
			RiskFlags:        []string{},
			ConcernFlags:     []string{},
			PositiveFlags:    []string{},
			OverallRiskLevel: "low",
			Confidence:       0.5,
		},
		LLMInsights: insights.InsightReport{
			EmotionalPatterns:   []string{},
			MainTopics:          []string{},
			CopingStrategies:    []string{},
			SupportSystems:      []string{},
			ProgressIndicators:  []string{},
			EngagementLevel:     "medium",
			KeyInsights:         []string{},
			Recommendations:     []string{},
			TherapeuticAlliance: "fair",
		},
	}
}

func durationMinutes(s *session.Session) int {
	m := int(s.Duration().Round(time.Minute).Minutes())
	if m < 0 {
		return 0
	}
	return m
}

func analyzeRiskLevels(s *session.Session, overall safety.Level) RiskAnalysis {
	concerns := make([]ConcernDetail, 0, len(s.RiskFlags))
	for _, f := range s.RiskFlags {
		concerns = append(concerns, ConcernDetail{Type: f.Type, Level: f.Level, Timestamp: f.Timestamp})
	}
	return RiskAnalysis{
		OverallRisk:      overall,
		SpecificConcerns: concerns,
		SafetyPlan:       safetyPlan(overall),
		ImmediateActions: immediateActions(overall),
	}
}

func safetyPlan(level safety.Level) []string {
	switch level {
	case safety.LevelHigh, safety.LevelCrisis:
		return []string{
			"Immediate crisis intervention required",
			"Connect with emergency services if needed",
			"Ensure user has crisis helpline numbers",
			"Schedule immediate follow-up",
		}
	case safety.LevelMedium:
		return []string{
			"Regular check-ins scheduled",
			"Crisis resources provided",
			"Support system activation",
			"Professional referral if needed",
		}
	case safety.LevelLow:
		return []string{
			"Self-care strategies provided",
			"Regular monitoring scheduled",
			"Resource information shared",
		}
	}
	return []string{
		"Routine follow-up scheduled",
		"Preventive resources provided",
	}
}

func immediateActions(level safety.Level) []string {
	switch level {
	case safety.LevelHigh, safety.LevelCrisis:
		return []string{
			"Alert crisis intervention team",
			"Contact emergency services if needed",
			"Ensure user safety",
			"Document all interactions",
		}
	case safety.LevelMedium:
		return []string{
			"Schedule urgent follow-up",
			"Provide crisis resources",
			"Monitor closely",
			"Document concerns",
		}
	case safety.LevelLow:
		return []string{
			"Schedule follow-up",
			"Provide resources",
			"Continue monitoring",
		}
	}
	return []string{
		"Routine follow-up",
		"Standard care",
	}
}

func baseRecommendations() RecommendationSet {
	general := Recommendation{
		Priority:  "low",
		Type:      "maintenance",
		Action:    "Continue regular check-ins",
		Resources: []string{"Daily mood tracking", "Self-care activities"},
	}
	return RecommendationSet{
		Immediate: []Recommendation{},
		ShortTerm: []Recommendation{},
		LongTerm:  []Recommendation{general},
		Resources: general.Resources,
	}
}

func followUpActions(level safety.Level) []FollowUpAction {
	actions := []FollowUpAction{}
	if safety.Rank(level) >= safety.Rank(safety.LevelHigh) {
		actions = append(actions, FollowUpAction{
			Type:       "immediate_follow_up",
			Priority:   "urgent",
			Action:     "Schedule crisis intervention within 24 hours",
			AssignedTo: "crisis_team",
		})
	}
	if level == safety.LevelMedium {
		actions = append(actions, FollowUpAction{
			Type:       "scheduled_follow_up",
			Priority:   "high",
			Action:     "Schedule follow-up session within 48 hours",
			AssignedTo: "counselor",
		})
	}
	actions = append(actions, FollowUpAction{
		Type:       "routine_follow_up",
		Priority:   "medium",
		Action:     "Schedule next session within 1 week",
		AssignedTo: "counselor",
	})
	return actions
}

func adminAlerts(s *session.Session, level safety.Level) []Alert {
	alerts := []Alert{}
	now := time.Now().UTC()
	if safety.Rank(level) >= safety.Rank(safety.LevelHigh) {
		alerts = append(alerts, Alert{
			Type:      "crisis_alert",
			Severity:  "critical",
			Message:   "User requires immediate crisis intervention",
			Timestamp: now,
			SessionID: s.ID,
		})
	}
	if len(s.RiskFlags) > 3 {
		alerts = append(alerts, Alert{
			Type:      "multiple_risk_flags",
			Severity:  "high",
			Message:   "Multiple risk indicators detected in single session",
			Timestamp: now,
			SessionID: s.ID,
		})
	}
	return alerts
}
