package handlers

import (
	"context"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/internal/models"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/counselor"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/events"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/metrics"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/reporting"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/response"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type startSessionRequest struct {
	Locale string `json:"locale"`
	UserID string `json:"userId"`
}

type turnRequest struct {
	SessionID string `json:"sessionId"`
	UserText  string `json:"userText"`
	// Text older clients send the utterance under this key
	Text string `json:"text"`
}

func (r turnRequest) utterance() string {
	if r.UserText != "" {
		return r.UserText
	}
	return r.Text
}

type endSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// counselorReportPayload counselor report plus the derived booking decision
type counselorReportPayload struct {
	reporting.CounselorReport
	BookingNeeded bool `json:"bookingNeeded"`
}

// StartSession creates a live session and seeds its report so the dashboard
// sees the session immediately. Seeding never touches the aggregate.
func (h *Handlers) StartSession(c *gin.Context) {
	var req startSessionRequest
	_ = c.ShouldBindJSON(&req)

	s := session.New(req.Locale)
	h.sessions.Put(s)
	h.reports.UpsertNoAggregate(h.generator.GenerateBasic(s))
	metrics.SessionsStarted.Inc()

	logger.Info("session started", zap.String("sessionId", s.ID), zap.String("locale", s.Locale))
	response.Success(c, gin.H{"sessionId": s.ID, "locale": counselor.NormalizeLocale(s.Locale)})
}

// RecordTurn processes one user utterance: keyword risk scan, counselor reply
// with analysis, session state update and a live report refresh. The
// per-session lock serializes concurrent turns on the same id.
func (h *Handlers) RecordTurn(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		response.Fail(c, "invalid_session", "Invalid sessionId")
		return
	}
	// Empty utterances are valid turns; the detector treats them as no-ops
	text := req.utterance()

	unlock := h.sessions.Lock(req.SessionID)
	defer unlock()

	s, ok := h.sessions.Get(req.SessionID)
	if !ok {
		response.Fail(c, "invalid_session", "Invalid sessionId")
		return
	}

	s.AddTurn("user", text)

	flag := safety.DetectRisk(text)
	if flag.Flag {
		s.AddRiskFlag(flag)
		h.persistRiskEvent(s.ID, flag)
	}

	reply, analysis := h.counselor.Respond(c.Request.Context(), s, text)
	s.ApplyAnalysis(analysis)
	s.AddTurn("assistant", reply)
	metrics.Turns.Inc()

	// Live refresh of the cached report; the aggregate stays untouched
	// until the session ends.
	h.reports.UpsertNoAggregate(h.generator.GenerateBasic(s))

	h.events.Push(events.Event{
		Type:      events.KindInsight,
		SessionID: s.ID,
		RiskLevel: string(s.RiskLevel),
		Summary: map[string]any{
			"turns":        len(s.Turns),
			"mainConcerns": s.MainConcerns,
			"stage":        s.Stage,
		},
	})
	if flag.Flag && safety.Rank(flag.Level) >= safety.Rank(safety.LevelHigh) {
		metrics.SOSEvents.Inc()
		h.events.Push(events.Event{
			Type:      events.KindSOS,
			SessionID: s.ID,
			RiskLevel: string(flag.Level),
			Level:     "critical",
			Message:   "crisis keyword detected",
		})
		logger.Warn("crisis keyword detected",
			zap.String("sessionId", s.ID),
			zap.String("reason", flag.Reason),
		)
	}

	locale := counselor.NormalizeLocale(s.Locale)
	style := counselor.StyleForEmotion(s.EmotionalState)

	// risk carries the per-turn detector flag plus the session's escalated
	// level, which is what dashboards key on.
	response.Success(c, gin.H{
		"sessionId": s.ID,
		"reply":     reply,
		"risk": gin.H{
			"flag":   flag.Flag,
			"level":  s.RiskLevel,
			"reason": flag.Reason,
		},
		"analysis":   analysis,
		"actionPlan": counselor.BuildActionPlan(s.RiskLevel, locale),
		"tts": gin.H{
			"voice":       counselor.VoiceForLocale(locale),
			"style":       style,
			"styleDegree": counselor.StyleDegree(style),
		},
	})
}

// EndSession finalizes a session: user report, full report with aggregate
// rebuild, counselor report, durable record, then removal from the live
// store. A persistence failure is logged and reported, never fatal.
func (h *Handlers) EndSession(c *gin.Context) {
	var req endSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		response.Fail(c, "invalid_session", "Invalid sessionId")
		return
	}

	unlock := h.sessions.Lock(req.SessionID)
	defer unlock()

	s, ok := h.sessions.Get(req.SessionID)
	if !ok {
		response.Fail(c, "invalid_session", "Invalid sessionId")
		return
	}

	s.End()
	ctx := c.Request.Context()

	userReport := reporting.GenerateUserReport(s)
	full := h.generator.Generate(ctx, s)
	h.reports.UpsertAndAggregate(full)

	adminReport := h.generator.GenerateCounselorReport(ctx, s)
	payload := counselorReportPayload{CounselorReport: adminReport, BookingNeeded: adminReport.BookingNeeded()}

	persisted := h.persistSession(s, full, adminReport)

	h.sessions.Delete(s.ID)
	metrics.SessionsEnded.Inc()

	logger.Info("session ended",
		zap.String("sessionId", s.ID),
		zap.String("overallRisk", string(full.RiskAnalysis.OverallRisk)),
		zap.String("priority", adminReport.Priority),
		zap.Bool("persisted", persisted),
	)

	response.Success(c, gin.H{
		"report":      userReport,
		"adminReport": payload,
		"persisted":   persisted,
	})
}

// FinalizeSession runs the end-of-session pipeline outside an HTTP request,
// used by the idle-session sweeper. The caller holds the per-session lock.
func (h *Handlers) FinalizeSession(ctx context.Context, s *session.Session) {
	s.End()

	full := h.generator.Generate(ctx, s)
	h.reports.UpsertAndAggregate(full)
	adminReport := h.generator.GenerateCounselorReport(ctx, s)
	persisted := h.persistSession(s, full, adminReport)

	h.sessions.Delete(s.ID)
	metrics.SessionsEnded.Inc()

	logger.Info("idle session finalized",
		zap.String("sessionId", s.ID),
		zap.String("overallRisk", string(full.RiskAnalysis.OverallRisk)),
		zap.Bool("persisted", persisted),
	)
}

func (h *Handlers) persistRiskEvent(sessionID string, flag safety.Flag) {
	if h.db == nil {
		return
	}
	ev := models.RiskEvent{
		SessionID: sessionID,
		Level:     string(flag.Level),
		Reason:    flag.Reason,
		Source:    flag.Type,
	}
	if err := h.db.Create(&ev).Error; err != nil {
		logger.Error("persist risk event failed", zap.String("sessionId", sessionID), zap.Error(err))
	}
}

func (h *Handlers) persistSession(s *session.Session, full reporting.SessionReport, adminReport reporting.CounselorReport) bool {
	if h.db == nil {
		return false
	}
	ended := s.EndedAt
	if ended.IsZero() {
		ended = time.Now().UTC()
	}
	rec := models.SessionRecord{
		SessionID:       s.ID,
		Locale:          s.Locale,
		Status:          models.SessionStatusCompleted,
		StartedAt:       s.StartedAt,
		EndedAt:         &ended,
		Duration:        full.Duration,
		RiskLevel:       string(s.RiskLevel),
		OverallRisk:     string(full.RiskAnalysis.OverallRisk),
		Priority:        adminReport.Priority,
		BookingNeeded:   adminReport.BookingNeeded(),
		Messages:        models.MustJSON(s.Turns),
		RiskFlags:       models.MustJSON(s.RiskFlags),
		RiskAssessment:  models.MustJSON(adminReport.RiskAssessment),
		Report:          models.MustJSON(full),
		CounselorReport: models.MustJSON(counselorReportPayload{CounselorReport: adminReport, BookingNeeded: adminReport.BookingNeeded()}),
	}
	if err := h.db.Create(&rec).Error; err != nil {
		logger.Error("persist session failed", zap.String("sessionId", s.ID), zap.Error(err))
		return false
	}
	return true
}
