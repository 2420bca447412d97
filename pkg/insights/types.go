package insights

// Capability records keep the snake_case field names the dashboard consumes.
// Decoding always runs through the capability's parse function, which fills
// every default in one place; callers never see a partially populated record.

// FlagReport conversation flags grouped by severity
type FlagReport struct {
	CrisisFlags      []string `json:"crisis_flags"`
	RiskFlags        []string `json:"risk_flags"`
	ConcernFlags     []string `json:"concern_flags"`
	PositiveFlags    []string `json:"positive_flags"`
	OverallRiskLevel string   `json:"overall_risk_level"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
}

// InsightReport session-level analytics insights
type InsightReport struct {
	EmotionalPatterns   []string `json:"emotional_patterns"`
	MainTopics          []string `json:"main_topics"`
	CopingStrategies    []string `json:"coping_strategies"`
	SupportSystems      []string `json:"support_systems"`
	ProgressIndicators  []string `json:"progress_indicators"`
	EngagementLevel     string   `json:"engagement_level"`
	TherapeuticAlliance string   `json:"therapeutic_alliance"`
	KeyInsights         []string `json:"key_insights"`
	Recommendations     []string `json:"recommendations"`
}

// RiskAssessment structured crisis-intervention assessment
type RiskAssessment struct {
	RiskLevel                  string   `json:"risk_level"`
	SuicidalIdeation           string   `json:"suicidal_ideation"`
	SelfHarmRisk               string   `json:"self_harm_risk"`
	HopelessnessLevel          string   `json:"hopelessness_level"`
	IsolationLevel             string   `json:"isolation_level"`
	ProtectiveFactors          []string `json:"protective_factors"`
	ImmediateConcerns          []string `json:"immediate_concerns"`
	SafetyPlanNeeded           bool     `json:"safety_plan_needed"`
	ProfessionalReferralNeeded bool     `json:"professional_referral_needed"`
	Confidence                 float64  `json:"confidence"`
	Reasoning                  string   `json:"reasoning"`
}

// Recommendations follow-up plan for the counseling team
type Recommendations struct {
	ImmediateActions      []string `json:"immediate_actions"`
	ShortTermGoals        []string `json:"short_term_goals"`
	LongTermPlans         []string `json:"long_term_plans"`
	ResourcesNeeded       []string `json:"resources_needed"`
	FollowUpSchedule      string   `json:"follow_up_schedule"`
	ProfessionalReferrals []string `json:"professional_referrals"`
	PriorityLevel         string   `json:"priority_level"`
	EstimatedTimeline     string   `json:"estimated_timeline"`
}
