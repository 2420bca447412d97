package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/llm"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/metrics"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"go.uber.org/zap"
)

const analyticsSystemPrompt = `You are a clinical analytics assistant. Output must be strictly valid JSON only, in English. Do not include markdown, explanations, or prose outside JSON. If uncertain, use empty arrays [] or the string "unknown".`

// Adapter generates structured session analytics through the LLM. Every
// capability degrades to a deterministic fallback when the call or the parse
// fails, so the reporting pipeline never blocks on the upstream model.
type Adapter struct {
	provider llm.Provider
}

func NewAdapter(p llm.Provider) *Adapter {
	return &Adapter{provider: p}
}

func (a *Adapter) chat(ctx context.Context, prompt string) (string, error) {
	if a.provider == nil {
		return "", fmt.Errorf("insights: no llm provider configured")
	}
	metrics.LLMCalls.Inc()
	out, err := a.provider.Chat(ctx, llm.ChatRequest{
		System:      analyticsSystemPrompt,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.2,
		MaxTokens:   220,
	})
	if err != nil {
		metrics.LLMFailures.Inc()
	}
	return out, err
}

func formatTranscript(turns []session.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role, t.Text))
	}
	return strings.Join(lines, "\n")
}

// GenerateFlags classifies the conversation into crisis, risk, concern and
// positive flags with an overall risk level.
func (a *Adapter) GenerateFlags(ctx context.Context, turns []session.Turn) FlagReport {
	prompt := fmt.Sprintf(`You are an expert mental health counselor analyzing a conversation for potential flags and concerns.

CONVERSATION:
%s

Analyze this conversation and identify:
1. CRISIS FLAGS: Immediate safety concerns (suicide, self-harm, violence)
2. RISK FLAGS: Medium-term concerns (depression, anxiety, substance use)
3. CONCERN FLAGS: General mental health issues (stress, relationship problems)
4. POSITIVE FLAGS: Strengths, coping strategies, support systems

Respond in strict JSON (English only). If uncertain, use empty arrays and set strings to "unknown". Do not include any text outside JSON.
{
  "crisis_flags": ["flag1", "flag2"],
  "risk_flags": ["flag1", "flag2"],
  "concern_flags": ["flag1", "flag2"],
  "positive_flags": ["flag1", "flag2"],
  "overall_risk_level": "low|medium|high|crisis",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}`, formatTranscript(turns))

	raw, err := a.chat(ctx, prompt)
	if err != nil {
		logger.Warn("flag generation failed, using fallback", zap.Error(err))
		return FallbackFlags(turns)
	}
	rep, err := parseFlags(raw)
	if err != nil {
		logger.Warn("flag response unparseable, using fallback", zap.Error(err))
		return FallbackFlags(turns)
	}
	return rep
}

// parseFlags is the single decode step for flag reports: sanitize, unmarshal,
// and fill every default.
func parseFlags(raw string) (FlagReport, error) {
	var rep FlagReport
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &rep); err != nil {
		return FlagReport{}, err
	}
	if rep.CrisisFlags == nil {
		rep.CrisisFlags = []string{}
	}
	if rep.RiskFlags == nil {
		rep.RiskFlags = []string{}
	}
	if rep.ConcernFlags == nil {
		rep.ConcernFlags = []string{}
	}
	if rep.PositiveFlags == nil {
		rep.PositiveFlags = []string{}
	}
	if rep.OverallRiskLevel == "" {
		rep.OverallRiskLevel = "low"
	}
	if rep.Confidence == 0 {
		rep.Confidence = 0.5
	}
	if rep.Reasoning == "" {
		rep.Reasoning = "Analysis completed"
	}
	return rep, nil
}

// GenerateInsights derives session-level patterns, topics and engagement
func (a *Adapter) GenerateInsights(ctx context.Context, s *session.Session) InsightReport {
	turns := s.Turns
	prompt := fmt.Sprintf(`You are a mental health analytics expert analyzing a counseling session.
Output strictly valid JSON (English only). Keep JSON keys and values in English. If you cannot infer a field, return an empty array [] or the string "unknown". Do not include any extra commentary or markdown.

SESSION DATA:
- Duration: %d minutes
- Turns: %d
- User messages: %d
- Risk flags: %d

CONVERSATION:
%s

Generate comprehensive insights:
1. EMOTIONAL PATTERNS: What emotions were expressed?
2. TOPICS DISCUSSED: Main themes and concerns
3. COPING STRATEGIES: What coping mechanisms were mentioned?
4. SUPPORT SYSTEMS: Family, friends, professional support mentioned
5. PROGRESS INDICATORS: Signs of improvement or decline
6. ENGAGEMENT LEVEL: How engaged was the user?
7. THERAPEUTIC ALLIANCE: Quality of counselor-client relationship

Respond in strict JSON (English only). If uncertain, use [] or "unknown". No text outside JSON.
{
  "emotional_patterns": ["emotion1", "emotion2"],
  "main_topics": ["topic1", "topic2"],
  "coping_strategies": ["strategy1", "strategy2"],
  "support_systems": ["support1", "support2"],
  "progress_indicators": ["indicator1", "indicator2"],
  "engagement_level": "low|medium|high",
  "therapeutic_alliance": "poor|fair|good|excellent",
  "key_insights": ["insight1", "insight2"],
  "recommendations": ["rec1", "rec2"]
}`,
		int(s.Duration().Minutes()), len(turns), s.UserTurnCount(), len(s.RiskFlags),
		formatTranscript(turns))

	raw, err := a.chat(ctx, prompt)
	if err != nil {
		logger.Warn("insight generation failed, using fallback", zap.Error(err))
		return FallbackInsights()
	}
	rep, err := parseInsights(raw)
	if err != nil {
		logger.Warn("insight response unparseable, using fallback", zap.Error(err))
		return FallbackInsights()
	}
	return rep
}

func parseInsights(raw string) (InsightReport, error) {
	var rep InsightReport
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &rep); err != nil {
		return InsightReport{}, err
	}
	fillStrings := func(p *[]string) {
		if *p == nil {
			*p = []string{}
		}
	}
	fillStrings(&rep.EmotionalPatterns)
	fillStrings(&rep.MainTopics)
	fillStrings(&rep.CopingStrategies)
	fillStrings(&rep.SupportSystems)
	fillStrings(&rep.ProgressIndicators)
	fillStrings(&rep.KeyInsights)
	fillStrings(&rep.Recommendations)
	if rep.EngagementLevel == "" {
		rep.EngagementLevel = "medium"
	}
	if rep.TherapeuticAlliance == "" {
		rep.TherapeuticAlliance = "fair"
	}
	return rep, nil
}

// AssessRisk runs the structured crisis-intervention assessment
func (a *Adapter) AssessRisk(ctx context.Context, turns []session.Turn) RiskAssessment {
	prompt := fmt.Sprintf(`You are a crisis intervention specialist assessing risk level from a conversation.

CONVERSATION:
%s

Assess the risk level considering:
1. SUICIDAL IDEATION: Direct or indirect expressions
2. SELF-HARM: Mentions of self-injury
3. HOPELESSNESS: Expressions of despair or futility
4. ISOLATION: Social withdrawal or loneliness
5. SUBSTANCE USE: Alcohol or drug mentions
6. TRAUMA: Recent or past traumatic experiences
7. PROTECTIVE FACTORS: Support systems, reasons for living

Respond in strict JSON (English only). If uncertain, set arrays to [] and booleans to false, and use the string "unknown" where needed. No extra text.
{
  "risk_level": "minimal|low|medium|high|crisis",
  "suicidal_ideation": "none|passive|active|immediate",
  "self_harm_risk": "none|low|medium|high",
  "hopelessness_level": "none|mild|moderate|severe",
  "isolation_level": "none|mild|moderate|severe",
  "protective_factors": ["factor1", "factor2"],
  "immediate_concerns": ["concern1", "concern2"],
  "safety_plan_needed": true/false,
  "professional_referral_needed": true/false,
  "confidence": 0.0-1.0,
  "reasoning": "detailed explanation"
}`, formatTranscript(turns))

	raw, err := a.chat(ctx, prompt)
	if err != nil {
		logger.Warn("risk assessment failed, using fallback", zap.Error(err))
		return FallbackRiskAssessment()
	}
	rep, err := parseRiskAssessment(raw)
	if err != nil {
		logger.Warn("risk assessment unparseable, using fallback", zap.Error(err))
		return FallbackRiskAssessment()
	}
	return rep
}

func parseRiskAssessment(raw string) (RiskAssessment, error) {
	var rep RiskAssessment
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &rep); err != nil {
		return RiskAssessment{}, err
	}
	if rep.RiskLevel == "" {
		rep.RiskLevel = "low"
	}
	if rep.SuicidalIdeation == "" {
		rep.SuicidalIdeation = "none"
	}
	if rep.SelfHarmRisk == "" {
		rep.SelfHarmRisk = "none"
	}
	if rep.HopelessnessLevel == "" {
		rep.HopelessnessLevel = "none"
	}
	if rep.IsolationLevel == "" {
		rep.IsolationLevel = "none"
	}
	if rep.ProtectiveFactors == nil {
		rep.ProtectiveFactors = []string{}
	}
	if rep.ImmediateConcerns == nil {
		rep.ImmediateConcerns = []string{}
	}
	if rep.Confidence == 0 {
		rep.Confidence = 0.5
	}
	if rep.Reasoning == "" {
		rep.Reasoning = "Risk assessment completed"
	}
	return rep, nil
}

// GenerateRecommendations produces the follow-up plan from session data and
// previously generated insights.
func (a *Adapter) GenerateRecommendations(ctx context.Context, s *session.Session, ins InsightReport) Recommendations {
	insJSON, _ := json.MarshalIndent(ins, "", "  ")
	prompt := fmt.Sprintf(`You are a clinical supervisor providing recommendations based on session analysis.
Output strictly valid JSON (English only). Keep all keys and values in English. If you cannot infer a field, return [] or "unknown". No extra commentary.

SESSION DATA:
- Duration: %d minutes
- Risk level: %s
- Main topics: %s
- Engagement: %s

INSIGHTS:
%s

Provide specific recommendations:
1. IMMEDIATE ACTIONS: What needs to happen right now?
2. SHORT-TERM GOALS: Next 1-2 weeks
3. LONG-TERM PLANS: Next 1-3 months
4. RESOURCES NEEDED: Specific tools or support
5. FOLLOW-UP SCHEDULE: How often to check in
6. PROFESSIONAL REFERRALS: When to involve specialists

Respond in strict JSON (English only). If uncertain, use [] or "unknown".
{
  "immediate_actions": ["action1", "action2"],
  "short_term_goals": ["goal1", "goal2"],
  "long_term_plans": ["plan1", "plan2"],
  "resources_needed": ["resource1", "resource2"],
  "follow_up_schedule": "daily|weekly|bi-weekly|monthly",
  "professional_referrals": ["referral1", "referral2"],
  "priority_level": "low|medium|high|urgent",
  "estimated_timeline": "1-2 weeks|1 month|3 months|ongoing"
}`,
		int(s.Duration().Minutes()), s.RiskLevel,
		strings.Join(ins.MainTopics, ", "), ins.EngagementLevel, string(insJSON))

	raw, err := a.chat(ctx, prompt)
	if err != nil {
		logger.Warn("recommendation generation failed, using fallback", zap.Error(err))
		return FallbackRecommendations()
	}
	rep, err := parseRecommendations(raw)
	if err != nil {
		logger.Warn("recommendation response unparseable, using fallback", zap.Error(err))
		return FallbackRecommendations()
	}
	return rep
}

func parseRecommendations(raw string) (Recommendations, error) {
	var rep Recommendations
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &rep); err != nil {
		return Recommendations{}, err
	}
	if rep.ImmediateActions == nil {
		rep.ImmediateActions = []string{}
	}
	if rep.ShortTermGoals == nil {
		rep.ShortTermGoals = []string{}
	}
	if rep.LongTermPlans == nil {
		rep.LongTermPlans = []string{}
	}
	if rep.ResourcesNeeded == nil {
		rep.ResourcesNeeded = []string{}
	}
	if rep.ProfessionalReferrals == nil {
		rep.ProfessionalReferrals = []string{}
	}
	if rep.FollowUpSchedule == "" {
		rep.FollowUpSchedule = "weekly"
	}
	if rep.PriorityLevel == "" {
		rep.PriorityLevel = "medium"
	}
	if rep.EstimatedTimeline == "" {
		rep.EstimatedTimeline = "1 month"
	}
	return rep, nil
}
