package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/insights"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
)

// Report priorities, most severe first
const (
	PriorityCritical = "CRITICAL"
	PriorityHigh     = "HIGH"
	PriorityMedium   = "MEDIUM"
	PriorityLow      = "LOW"
)

// StudentInfo engagement facts about the student's side of the session
type StudentInfo struct {
	SessionDuration    int                `json:"sessionDuration"`
	MessageCount       int                `json:"messageCount"`
	EngagementLevel    string             `json:"engagementLevel"`
	CommunicationStyle CommunicationStyle `json:"communicationStyle"`
	PreviousSessions   int                `json:"previousSessions"`
}

// SessionSummary counselor-readable session overview
type SessionSummary struct {
	Duration            string   `json:"duration"`
	MainTopics          []string `json:"mainTopics"`
	EmotionalPatterns   []string `json:"emotionalPatterns"`
	KeyInsights         []string `json:"keyInsights"`
	TherapeuticAlliance string   `json:"therapeuticAlliance"`
	EngagementLevel     string   `json:"engagementLevel"`
}

// FlagGroups the four flag categories surfaced to counselors
type FlagGroups struct {
	Crisis   []string `json:"crisis"`
	Risk     []string `json:"risk"`
	Concern  []string `json:"concern"`
	Positive []string `json:"positive"`
}

// CounselorRiskAssessment the risk section of the counselor report.
// OverallRisk is never below the level derived from the session's own
// accumulated flags, so a crisis utterance stays visible even when the LLM
// assessment is unavailable.
type CounselorRiskAssessment struct {
	OverallRisk                safety.Level `json:"overallRisk"`
	SuicidalIdeation           string       `json:"suicidalIdeation"`
	SelfHarmRisk               string       `json:"selfHarmRisk"`
	Hopelessness               string       `json:"hopelessness"`
	Isolation                  string       `json:"isolation"`
	ProtectiveFactors          []string     `json:"protectiveFactors"`
	ImmediateConcerns          []string     `json:"immediateConcerns"`
	SafetyPlanNeeded           bool         `json:"safetyPlanNeeded"`
	ProfessionalReferralNeeded bool         `json:"professionalReferralNeeded"`
	Confidence                 float64      `json:"confidence"`
	Reasoning                  string       `json:"reasoning"`
	Flags                      FlagGroups   `json:"flags"`
}

// ImmediateAction urgent task for the counselor
type ImmediateAction struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Details  string `json:"details"`
	Timeline string `json:"timeline"`
}

// FollowUpPlan the recommendations record reshaped for counselors
type FollowUpPlan struct {
	ImmediateActions      []string `json:"immediateActions"`
	ShortTermGoals        []string `json:"shortTermGoals"`
	LongTermPlans         []string `json:"longTermPlans"`
	FollowUpSchedule      string   `json:"followUpSchedule"`
	ResourcesNeeded       []string `json:"resourcesNeeded"`
	ProfessionalReferrals []string `json:"professionalReferrals"`
	PriorityLevel         string   `json:"priorityLevel"`
	EstimatedTimeline     string   `json:"estimatedTimeline"`
}

// CounselorResource a referral resource with contact details
type CounselorResource struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
}

// EmotionalStateSummary emotional trajectory for the counselor view
type EmotionalStateSummary struct {
	DominantEmotions    []string `json:"dominantEmotions"`
	EmotionalVolatility string   `json:"emotionalVolatility"`
	MoodTrend           string   `json:"moodTrend"`
	StressIndicators    []string `json:"stressIndicators"`
	CopingMechanisms    []string `json:"copingMechanisms"`
}

// CounselorReport the counselor-facing session report
type CounselorReport struct {
	SessionID        string                  `json:"sessionId"`
	Timestamp        time.Time               `json:"timestamp"`
	StudentInfo      StudentInfo             `json:"studentInfo"`
	SessionSummary   SessionSummary          `json:"sessionSummary"`
	RiskAssessment   CounselorRiskAssessment `json:"riskAssessment"`
	KeyConcerns      []string                `json:"keyConcerns"`
	EmotionalState   EmotionalStateSummary   `json:"emotionalState"`
	ImmediateActions []ImmediateAction       `json:"immediateActions"`
	FollowUpPlan     FollowUpPlan            `json:"followUpPlan"`
	Resources        []CounselorResource     `json:"resources"`
	CounselorNotes   []string                `json:"counselorNotes"`
	Priority         string                  `json:"priority"`
}

// BookingNeeded whether the session warrants an immediate counselor booking
func (r CounselorReport) BookingNeeded() bool {
	return r.RiskAssessment.OverallRisk == safety.LevelCrisis || r.Priority == PriorityCritical
}

// GenerateCounselorReport builds the counselor-facing report through the
// insight adapter. Capability failures degrade inside the adapter, so the
// report is always complete.
func (g *Generator) GenerateCounselorReport(ctx context.Context, s *session.Session) CounselorReport {
	flags := g.adapter.GenerateFlags(ctx, s.Turns)
	ins := g.adapter.GenerateInsights(ctx, s)
	risk := g.adapter.AssessRisk(ctx, s.Turns)
	recs := g.adapter.GenerateRecommendations(ctx, s, ins)

	assessment := formatRiskAssessment(risk, flags, s.RiskFlags)
	priority := determinePriority(assessment.OverallRisk, flags)

	return CounselorReport{
		SessionID:        s.ID,
		Timestamp:        time.Now().UTC(),
		StudentInfo:      extractStudentInfo(s),
		SessionSummary:   sessionSummary(s, ins),
		RiskAssessment:   assessment,
		KeyConcerns:      extractKeyConcerns(ins, s),
		EmotionalState:   emotionalState(ins, s),
		ImmediateActions: counselorImmediateActions(risk, flags),
		FollowUpPlan:     followUpPlan(recs),
		Resources:        relevantResources(ins, assessment.OverallRisk),
		CounselorNotes:   counselorNotes(ins, assessment.OverallRisk),
		Priority:         priority,
	}
}

func extractStudentInfo(s *session.Session) StudentInfo {
	userTurns := make([]session.Turn, 0, len(s.Turns))
	for _, t := range s.Turns {
		if t.Role == "user" {
			userTurns = append(userTurns, t)
		}
	}
	engagement := "none"
	if len(userTurns) > 0 {
		engagement = engagementByLength(userTurns)
	}
	return StudentInfo{
		SessionDuration:    durationMinutes(s),
		MessageCount:       len(userTurns),
		EngagementLevel:    engagement,
		CommunicationStyle: analyzeCommunicationStyle(userTurns),
	}
}

func engagementByLength(turns []session.Turn) string {
	totalLen := 0
	for _, t := range turns {
		totalLen += len(t.Text)
	}
	avg := float64(totalLen) / float64(len(turns))
	switch {
	case avg > 100:
		return "high"
	case avg > 50:
		return "medium"
	}
	return "low"
}

func sessionSummary(s *session.Session, ins insights.InsightReport) SessionSummary {
	return SessionSummary{
		Duration:            fmt.Sprintf("%d minutes", durationMinutes(s)),
		MainTopics:          orDefault(ins.MainTopics, "General discussion"),
		EmotionalPatterns:   orDefault(ins.EmotionalPatterns, "Neutral"),
		KeyInsights:         orDefault(ins.KeyInsights, "Session completed"),
		TherapeuticAlliance: ins.TherapeuticAlliance,
		EngagementLevel:     ins.EngagementLevel,
	}
}

func orDefault(list []string, fallback string) []string {
	if len(list) == 0 {
		return []string{fallback}
	}
	return list
}

// formatRiskAssessment merges the LLM assessment with the session's own flag
// bucket; the flag bucket acts as a floor on the overall risk.
func formatRiskAssessment(risk insights.RiskAssessment, flags insights.FlagReport, sessionFlags []safety.Flag) CounselorRiskAssessment {
	overall := safety.Escalate(safety.BucketFlags(sessionFlags), safety.ParseLevel(risk.RiskLevel))
	return CounselorRiskAssessment{
		OverallRisk:                overall,
		SuicidalIdeation:           risk.SuicidalIdeation,
		SelfHarmRisk:               risk.SelfHarmRisk,
		Hopelessness:               risk.HopelessnessLevel,
		Isolation:                  risk.IsolationLevel,
		ProtectiveFactors:          risk.ProtectiveFactors,
		ImmediateConcerns:          risk.ImmediateConcerns,
		SafetyPlanNeeded:           risk.SafetyPlanNeeded,
		ProfessionalReferralNeeded: risk.ProfessionalReferralNeeded,
		Confidence:                 risk.Confidence,
		Reasoning:                  risk.Reasoning,
		Flags: FlagGroups{
			Crisis:   flags.CrisisFlags,
			Risk:     flags.RiskFlags,
			Concern:  flags.ConcernFlags,
			Positive: flags.PositiveFlags,
		},
	}
}

var counselorConcernKeywords = map[string][]string{
	"academic":  {"exam", "study", "grades", "assignment", "project", "deadline"},
	"social":    {"friend", "relationship", "lonely", "isolated", "peer"},
	"family":    {"family", "parent", "home", "sibling", "household"},
	"financial": {"money", "cost", "expensive", "afford", "budget"},
	"health":    {"sick", "tired", "sleep", "eating", "exercise", "health"},
	"future":    {"career", "job", "future", "plan", "goal", "dream"},
}

var counselorConcernOrder = []string{"academic", "social", "family", "financial", "health", "future"}

func extractKeyConcerns(ins insights.InsightReport, s *session.Session) []string {
	concerns := append([]string{}, ins.MainTopics...)
	seen := map[string]bool{}
	for _, c := range concerns {
		seen[c] = true
	}
	for _, category := range counselorConcernOrder {
		if seen[category] {
			continue
		}
		for _, t := range s.Turns {
			if t.Role != "user" {
				continue
			}
			text := strings.ToLower(t.Text)
			matched := false
			for _, w := range counselorConcernKeywords[category] {
				if strings.Contains(text, w) {
					matched = true
					break
				}
			}
			if matched {
				seen[category] = true
				concerns = append(concerns, category)
				break
			}
		}
	}
	if len(concerns) == 0 {
		concerns = []string{"General"}
	}
	return concerns
}

var stressKeywords = []string{"stress", "overwhelmed", "pressure", "tension", "worried", "anxious", "panic"}

func emotionalState(ins insights.InsightReport, s *session.Session) EmotionalStateSummary {
	userTurns := make([]session.Turn, 0, len(s.Turns))
	for _, t := range s.Turns {
		if t.Role == "user" {
			userTurns = append(userTurns, t)
		}
	}

	indicators := []string{}
	seen := map[string]bool{}
	for _, t := range userTurns {
		text := strings.ToLower(t.Text)
		for _, k := range stressKeywords {
			if strings.Contains(text, k) && !seen[k] {
				seen[k] = true
				indicators = append(indicators, k)
			}
		}
	}

	summary := analyzeEmotionalPatterns(userTurns)
	volatility := "low"
	if summary.EmotionalVolatility > 0.5 {
		volatility = "high"
	} else if summary.EmotionalVolatility > 0.2 {
		volatility = "medium"
	}

	return EmotionalStateSummary{
		DominantEmotions:    orDefault(ins.EmotionalPatterns, "neutral"),
		EmotionalVolatility: volatility,
		MoodTrend:           summary.Trend,
		StressIndicators:    indicators,
		CopingMechanisms:    ins.CopingStrategies,
	}
}

func counselorImmediateActions(risk insights.RiskAssessment, flags insights.FlagReport) []ImmediateAction {
	actions := []ImmediateAction{}
	if risk.RiskLevel == "crisis" || len(flags.CrisisFlags) > 0 {
		actions = append(actions, ImmediateAction{
			Priority: "URGENT",
			Action:   "Immediate crisis intervention required",
			Details:  "Student shows signs of immediate danger. Contact emergency services and crisis team immediately.",
			Timeline: "Immediately",
		})
	}
	if risk.SafetyPlanNeeded {
		actions = append(actions, ImmediateAction{
			Priority: "HIGH",
			Action:   "Develop safety plan",
			Details:  "Create comprehensive safety plan with student and ensure they have crisis resources.",
			Timeline: "Within 24 hours",
		})
	}
	if risk.ProfessionalReferralNeeded {
		actions = append(actions, ImmediateAction{
			Priority: "HIGH",
			Action:   "Professional referral needed",
			Details:  "Student requires specialized mental health support beyond counseling scope.",
			Timeline: "Within 48 hours",
		})
	}
	if len(flags.RiskFlags) > 0 {
		actions = append(actions, ImmediateAction{
			Priority: "MEDIUM",
			Action:   "Schedule follow-up session",
			Details:  "Student shows concerning patterns that require close monitoring.",
			Timeline: "Within 1 week",
		})
	}
	return actions
}

func followUpPlan(recs insights.Recommendations) FollowUpPlan {
	return FollowUpPlan{
		ImmediateActions:      recs.ImmediateActions,
		ShortTermGoals:        recs.ShortTermGoals,
		LongTermPlans:         recs.LongTermPlans,
		FollowUpSchedule:      recs.FollowUpSchedule,
		ResourcesNeeded:       recs.ResourcesNeeded,
		ProfessionalReferrals: recs.ProfessionalReferrals,
		PriorityLevel:         recs.PriorityLevel,
		EstimatedTimeline:     recs.EstimatedTimeline,
	}
}

func relevantResources(ins insights.InsightReport, overall safety.Level) []CounselorResource {
	resources := []CounselorResource{}
	if overall == safety.LevelCrisis {
		resources = append(resources, CounselorResource{
			Type:        "crisis",
			Name:        "Tele-MANAS Crisis Helpline",
			Contact:     "14416",
			Description: "24/7 crisis support",
		})
	}
	topics := map[string]bool{}
	for _, t := range ins.MainTopics {
		topics[strings.ToLower(t)] = true
	}
	if topics["anxiety"] || topics["depression"] {
		resources = append(resources, CounselorResource{
			Type:        "mental_health",
			Name:        "Campus Counseling Center",
			Contact:     "Contact campus counseling services",
			Description: "Professional mental health support",
		})
	}
	if topics["academic"] || topics["academics"] {
		resources = append(resources, CounselorResource{
			Type:        "academic",
			Name:        "Academic Support Center",
			Contact:     "Contact academic support services",
			Description: "Study skills, tutoring, and academic planning",
		})
	}
	return resources
}

func counselorNotes(ins insights.InsightReport, overall safety.Level) []string {
	notes := []string{}
	switch overall {
	case safety.LevelCrisis:
		notes = append(notes, "CRITICAL: Student requires immediate intervention. Do not leave alone.")
	case safety.LevelHigh:
		notes = append(notes, "HIGH RISK: Monitor closely and schedule frequent check-ins.")
	}
	patterns := map[string]bool{}
	for _, p := range ins.EmotionalPatterns {
		patterns[strings.ToLower(p)] = true
	}
	if patterns["anxious"] {
		notes = append(notes, "Student shows signs of anxiety. Consider grounding techniques and stress management strategies.")
	}
	if patterns["depressed"] {
		notes = append(notes, "Student shows signs of depression. Monitor for suicidal ideation and consider professional referral.")
	}
	switch ins.EngagementLevel {
	case "low":
		notes = append(notes, "Low engagement observed. May need different approach or additional support.")
	case "high":
		notes = append(notes, "High engagement. Student is actively participating in counseling process.")
	}
	switch ins.TherapeuticAlliance {
	case "excellent":
		notes = append(notes, "Strong therapeutic relationship established. Student trusts counselor.")
	case "poor":
		notes = append(notes, "Therapeutic relationship needs attention. Consider rapport-building activities.")
	}
	if len(notes) == 0 {
		notes = append(notes, "Standard follow-up recommended")
	}
	return notes
}

// determinePriority counselor triage priority from the escalated overall
// risk and the flag groups.
func determinePriority(overall safety.Level, flags insights.FlagReport) string {
	switch {
	case overall == safety.LevelCrisis || len(flags.CrisisFlags) > 0:
		return PriorityCritical
	case overall == safety.LevelHigh || len(flags.RiskFlags) > 2:
		return PriorityHigh
	case overall == safety.LevelMedium || len(flags.RiskFlags) > 0:
		return PriorityMedium
	}
	return PriorityLow
}
