package session

import (
	"fmt"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	gonanoid "github.com/matoous/go-nanoid"
)

// Stage counseling session stage
type Stage string

const (
	StageInitial      Stage = "initial"
	StageExploration  Stage = "exploration"
	StageIntervention Stage = "intervention"
)

// Turn one utterance in the conversation
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Analysis per-turn counselor analysis of a user message. Produced by the LLM
// or the keyword fallback; every field is always populated.
type Analysis struct {
	EmotionalState   string   `json:"emotionalState"`
	UrgencyLevel     string   `json:"urgencyLevel"`
	MainConcerns     []string `json:"mainConcerns"`
	RiskIndicators   []string `json:"riskIndicators"`
	CopingMechanisms []string `json:"copingMechanisms"`
	SupportNeeds     []string `json:"supportNeeds"`
	ResponseApproach string   `json:"responseApproach"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
}

// Session live conversation state. Mutations go through the methods below so
// replaying the same turns always yields the same state.
type Session struct {
	ID             string        `json:"sessionId"`
	Locale         string        `json:"locale"`
	Stage          Stage         `json:"stage"`
	EmotionalState string        `json:"emotionalState"`
	MainConcerns   []string      `json:"mainConcerns"`
	Interventions  []string      `json:"interventions"`
	RiskLevel      safety.Level  `json:"riskLevel"`
	RiskFlags      []safety.Flag `json:"riskFlags"`
	Turns          []Turn        `json:"turns"`
	StartedAt      time.Time     `json:"startedAt"`
	EndedAt        time.Time     `json:"endedAt,omitempty"`
}

// NewID builds a sortable session id: millisecond timestamp plus a random
// suffix to break same-millisecond collisions.
func NewID() string {
	suffix, err := gonanoid.Nanoid(8)
	if err != nil {
		suffix = fmt.Sprintf("%06d", time.Now().Nanosecond()/1000)
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}

// New starts a session in the initial stage at low risk
func New(locale string) *Session {
	return &Session{
		ID:            NewID(),
		Locale:        locale,
		Stage:         StageInitial,
		RiskLevel:     safety.LevelLow,
		MainConcerns:  []string{},
		Interventions: []string{},
		RiskFlags:     []safety.Flag{},
		Turns:         []Turn{},
		StartedAt:     time.Now().UTC(),
	}
}

// AddTurn appends one utterance
func (s *Session) AddTurn(role, text string) {
	s.Turns = append(s.Turns, Turn{Role: role, Text: text, Timestamp: time.Now().UTC()})
}

// RecentTurns returns the newest n turns, oldest first
func (s *Session) RecentTurns(n int) []Turn {
	if n <= 0 || len(s.Turns) <= n {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}

// UserTurnCount number of user utterances
func (s *Session) UserTurnCount() int {
	n := 0
	for _, t := range s.Turns {
		if t.Role == "user" {
			n++
		}
	}
	return n
}

// AddRiskFlag records a raised flag, deduplicated by reason, and escalates
// the session risk level. Unset flags are ignored.
func (s *Session) AddRiskFlag(f safety.Flag) {
	if !f.Flag {
		return
	}
	for _, have := range s.RiskFlags {
		if have.Reason == f.Reason {
			s.RiskLevel = safety.Escalate(s.RiskLevel, f.Level)
			return
		}
	}
	s.RiskFlags = append(s.RiskFlags, f)
	s.RiskLevel = safety.Escalate(s.RiskLevel, f.Level)
}

// ApplyAnalysis folds one turn's analysis into the session: emotional state
// replaces unknown, concerns union in, risk escalates monotonically with the
// urgency level, the chosen approach is recorded and the stage advances.
func (s *Session) ApplyAnalysis(a Analysis) {
	if a.EmotionalState != "" && a.EmotionalState != "unknown" {
		s.EmotionalState = a.EmotionalState
	}
	for _, c := range a.MainConcerns {
		if !contains(s.MainConcerns, c) {
			s.MainConcerns = append(s.MainConcerns, c)
		}
	}
	s.RiskLevel = safety.Escalate(s.RiskLevel, safety.ParseLevel(a.UrgencyLevel))
	if a.ResponseApproach != "" {
		s.Interventions = append(s.Interventions, a.ResponseApproach)
	}
	if s.Stage == StageInitial && len(s.MainConcerns) > 0 {
		s.Stage = StageExploration
	}
	if s.Stage == StageExploration && len(s.Interventions) > 3 {
		s.Stage = StageIntervention
	}
}

// End stamps the session finished. Idempotent.
func (s *Session) End() {
	if s.EndedAt.IsZero() {
		s.EndedAt = time.Now().UTC()
	}
}

// Ended reports whether the session has been finished
func (s *Session) Ended() bool {
	return !s.EndedAt.IsZero()
}

// Duration session length; for live sessions, time elapsed so far
func (s *Session) Duration() time.Duration {
	end := s.EndedAt
	if end.IsZero() {
		end = time.Now().UTC()
	}
	return end.Sub(s.StartedAt)
}

// LastActivity timestamp of the newest turn, or the session start
func (s *Session) LastActivity() time.Time {
	if len(s.Turns) == 0 {
		return s.StartedAt
	}
	return s.Turns[len(s.Turns)-1].Timestamp
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
