package counselor

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

// Persona the counselor identity woven into every prompt
type Persona struct {
	Name        string
	Role        string
	Background  string
	Personality string
	Approach    string
}

var DefaultPersona = Persona{
	Name:        "Asha",
	Role:        "AI Mental Health Counselor",
	Background:  "Experienced counselor specializing in cognitive-behavioral therapy, mindfulness, and crisis intervention",
	Personality: "Empathetic, non-judgmental, warm, professional, and encouraging",
	Approach:    "Person-centered, evidence-based, trauma-informed, culturally sensitive",
}

// Counselor generates the per-turn analysis and reply. Both steps degrade to
// keyword rules and canned phrasing when the LLM is unreachable.
type Counselor struct {
	provider llm.Provider
	persona  Persona
}

func New(p llm.Provider) *Counselor {
	return &Counselor{provider: p, persona: DefaultPersona}
}

// Respond analyzes the user's message in session context and produces the
// counselor reply. Never returns an error; failure paths yield the fallback
// analysis and reply instead.
func (c *Counselor) Respond(ctx context.Context, s *session.Session, userText string) (string, session.Analysis) {
	locale := NormalizeLocale(s.Locale)
	analysis := c.analyze(ctx, s, userText, locale)
	reply := c.reply(ctx, s, userText, analysis, locale)
	return reply, analysis
}

func (c *Counselor) chat(ctx context.Context, locale, prompt string) (string, error) {
	if c.provider == nil {
		return "", fmt.Errorf("counselor: no llm provider configured")
	}
	system := fmt.Sprintf(`You are %s, an empathetic Indian college counselor.
Keep replies 2-3 sentences. First reflect briefly, then either: (a) suggest one CBT/mindfulness/sleep-hygiene step for low urgency; (b) ask one severity gauge and consent for anonymous peer support for medium urgency; (c) prioritize safety and advise SOS/helpline for high urgency and ask consent for immediate counselor booking. End with a soft check-in. Avoid clinical labels and medical advice.
Always reply in %s. If locale is a regional language not natively supported, use the closest widely-understood script and vocabulary (%s).`,
		c.persona.Name, LanguageNameFor(locale), LanguageNameFor(locale))

	metrics.LLMCalls.Inc()
	out, err := c.provider.Chat(ctx, llm.ChatRequest{
		System:      system,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.6,
		MaxTokens:   180,
	})
	if err != nil {
		metrics.LLMFailures.Inc()
	}
	return out, err
}

func (c *Counselor) analyze(ctx context.Context, s *session.Session, userText, locale string) session.Analysis {
	prompt := c.buildAnalysisPrompt(s, userText, locale)
	raw, err := c.chat(ctx, locale, prompt)
	if err != nil {
		logger.Warn("turn analysis failed, using keyword fallback",
			zap.String("sessionId", s.ID), zap.Error(err))
		return FallbackAnalysis(userText)
	}
	analysis, err := ParseAnalysis(raw)
	if err != nil {
		logger.Warn("turn analysis unparseable, using keyword fallback",
			zap.String("sessionId", s.ID), zap.Error(err))
		return FallbackAnalysis(userText)
	}
	return analysis
}

func (c *Counselor) reply(ctx context.Context, s *session.Session, userText string, analysis session.Analysis, locale string) string {
	prompt := c.buildResponsePrompt(s, userText, analysis, locale)
	raw, err := c.chat(ctx, locale, prompt)
	if err != nil {
		logger.Warn("reply generation failed, using canned fallback",
			zap.String("sessionId", s.ID), zap.Error(err))
		return FallbackReply(s)
	}
	return CleanReply(raw)
}

func historyText(s *session.Session, n int) string {
	turns := s.RecentTurns(n)
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Role, t.Text))
	}
	return strings.Join(lines, "\n")
}

func (c *Counselor) buildAnalysisPrompt(s *session.Session, userText, locale string) string {
	emotionalState := s.EmotionalState
	if emotionalState == "" {
		emotionalState = "unknown"
	}
	concerns := strings.Join(s.MainConcerns, ", ")
	if concerns == "" {
		concerns = "none identified"
	}
	interventions := strings.Join(s.Interventions, ", ")
	if interventions == "" {
		interventions = "none"
	}

	return fmt.Sprintf(`You are an expert mental health counselor analyzing a user's message. Analyze the following message and conversation context.
Output strictly valid JSON. Keep field names in English. If any free-text you produce, prefer the user's language indicated by locale. Locale: %s

USER MESSAGE: "%s"

CONVERSATION HISTORY:
%s

SESSION CONTEXT:
- Session Stage: %s
- User's Emotional State: %s
- Main Concerns: %s
- Risk Level: %s
- Previous Interventions: %s

Analyze and provide:
1. EMOTIONAL STATE: What emotions is the user expressing?
2. URGENCY LEVEL: How urgent is this situation? (low/medium/high/crisis)
3. MAIN CONCERNS: What are the primary issues being discussed?
4. RISK INDICATORS: Any signs of self-harm, suicide, or crisis?
5. COPING MECHANISMS: What coping strategies are mentioned or needed?
6. SUPPORT NEEDS: What kind of support does the user need?
7. RESPONSE APPROACH: What therapeutic approach would be most helpful?

Respond in JSON format:
{
  "emotionalState": "anxious|depressed|angry|hopeful|confused|etc",
  "urgencyLevel": "low|medium|high|crisis",
  "mainConcerns": ["concern1", "concern2"],
  "riskIndicators": ["indicator1", "indicator2"],
  "copingMechanisms": ["mechanism1", "mechanism2"],
  "supportNeeds": ["need1", "need2"],
  "responseApproach": "active_listening|crisis_intervention|cbt_technique|mindfulness|validation|etc",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}`,
		locale, userText, historyText(s, 6),
		s.Stage, emotionalState, concerns, s.RiskLevel, interventions)
}

func (c *Counselor) buildResponsePrompt(s *session.Session, userText string, a session.Analysis, locale string) string {
	return fmt.Sprintf(`You are %s, an AI mental health counselor. Respond to the user's message with empathy, professionalism, and therapeutic insight.
Reply in the user's language based on locale: %s. If mixed languages are present, mirror the user's latest message language.

PERSONA:
- Name: %s
- Role: %s
- Background: %s
- Personality: %s
- Approach: %s

USER MESSAGE: "%s"

CONVERSATION HISTORY:
%s

ANALYSIS:
- Emotional State: %s
- Urgency Level: %s
- Main Concerns: %s
- Risk Indicators: %s
- Response Approach: %s

GUIDELINES:
1. Keep replies very brief: 1-2 sentences total.
2. Be empathetic and non-judgmental.
3. Avoid clinical labels or diagnoses.
4. Tailor content to the urgency level.
5. End with a soft check-in question.

RESPONSE:`,
		c.persona.Name, locale,
		c.persona.Name, c.persona.Role, c.persona.Background, c.persona.Personality, c.persona.Approach,
		userText, historyText(s, 4),
		a.EmotionalState, a.UrgencyLevel,
		strings.Join(a.MainConcerns, ", "), strings.Join(a.RiskIndicators, ", "),
		a.ResponseApproach)
}

// ParseAnalysis is the single decode step for turn analyses: sanitize,
// unmarshal, and fill every default.
func ParseAnalysis(raw string) (session.Analysis, error) {
	var a session.Analysis
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &a); err != nil {
		return session.Analysis{}, err
	}
	if a.EmotionalState == "" {
		a.EmotionalState = "neutral"
	}
	if a.UrgencyLevel == "" {
		a.UrgencyLevel = "low"
	}
	if a.MainConcerns == nil {
		a.MainConcerns = []string{}
	}
	if a.RiskIndicators == nil {
		a.RiskIndicators = []string{}
	}
	if a.CopingMechanisms == nil {
		a.CopingMechanisms = []string{}
	}
	if a.SupportNeeds == nil {
		a.SupportNeeds = []string{}
	}
	if a.ResponseApproach == "" {
		a.ResponseApproach = "active_listening"
	}
	if a.Confidence == 0 {
		a.Confidence = 0.5
	}
	if a.Reasoning == "" {
		a.Reasoning = "Analysis completed"
	}
	return a, nil
}

// CleanReply strips prompt-echo artifacts and guarantees closing punctuation
func CleanReply(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, prefix := range []string{"RESPONSE:", "Response:", "response:", "Asha:", "Counselor:"} {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
	}
	if cleaned != "" && !strings.HasSuffix(cleaned, ".") && !strings.HasSuffix(cleaned, "!") && !strings.HasSuffix(cleaned, "?") {
		cleaned += "."
	}
	return cleaned
}
