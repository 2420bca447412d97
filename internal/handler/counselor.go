package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/codeMaverick7770/mental-health-platform-sub000/internal/models"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CounselorReport counselor-facing report for one session. Live sessions are
// reported on the fly; ended sessions come from the durable record.
func (h *Handlers) CounselorReport(c *gin.Context) {
	id := c.Param("sessionId")
	if id == "" {
		response.Fail(c, "invalid_session", "Invalid sessionId")
		return
	}

	if s, ok := h.sessions.Get(id); ok {
		rep := h.generator.GenerateCounselorReport(c.Request.Context(), s)
		response.Success(c, gin.H{
			"report":        counselorReportPayload{CounselorReport: rep, BookingNeeded: rep.BookingNeeded()},
			"bookingNeeded": rep.BookingNeeded(),
			"live":          true,
		})
		return
	}

	var rec models.SessionRecord
	err := h.db.Where("session_id = ?", id).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.FailWith(c, http.StatusNotFound, "not_found", "counselor report not found")
			return
		}
		logger.Error("counselor report lookup failed", zap.String("sessionId", id), zap.Error(err))
		response.ServerError(c, "lookup_failed")
		return
	}

	response.Success(c, gin.H{
		"report":        json.RawMessage(rec.CounselorReport),
		"bookingNeeded": rec.BookingNeeded,
		"live":          false,
	})
}

// CounselorReports persisted session records, newest first, optionally
// filtered by priority.
func (h *Handlers) CounselorReports(c *gin.Context) {
	limit := cast.ToInt(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	priority := strings.ToUpper(strings.TrimSpace(c.Query("priority")))

	q := h.db.Model(&models.SessionRecord{})
	if priority != "" {
		q = q.Where("priority = ?", priority)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		logger.Error("counselor reports count failed", zap.Error(err))
		response.ServerError(c, "lookup_failed")
		return
	}

	var recs []models.SessionRecord
	if err := q.Order("created_at desc").Limit(limit).Find(&recs).Error; err != nil {
		logger.Error("counselor reports lookup failed", zap.Error(err))
		response.ServerError(c, "lookup_failed")
		return
	}

	response.Success(c, gin.H{
		"reports":  recs,
		"total":    total,
		"filtered": len(recs),
		"priority": priority,
	})
}
