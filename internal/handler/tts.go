package handlers

import (
	"net/http"
	"strings"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/config"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/counselor"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ttsRequest struct {
	Text    string `json:"text"`
	Locale  string `json:"locale"`
	Emotion string `json:"emotion"`
	Voice   string `json:"voice"`
}

// Synthesize proxies a speech request to the TTS service, mapping the
// session emotion onto a neural voice style. Audio is streamed back as-is.
func (h *Handlers) Synthesize(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		response.Fail(c, "invalid_request", "text is required")
		return
	}

	locale := counselor.NormalizeLocale(req.Locale)
	voice := req.Voice
	if voice == "" {
		voice = counselor.VoiceForLocale(locale)
	}
	style := counselor.StyleForEmotion(req.Emotion)

	payload := map[string]any{
		"text":         req.Text,
		"voice":        voice,
		"hindiVoice":   "hi-IN-SwaraNeural",
		"urduVoice":    "ur-PK-UzmaNeural",
		"punjabiVoice": "pa-IN-GaganNeural",
		"pace":         0.95,
		"semitones":    0.5,
		"style":        style,
		"role":         "YoungAdultFemale",
		"styleDegree":  counselor.StyleDegree(style),
	}

	resp, err := h.http.R().
		SetContext(c.Request.Context()).
		SetBody(payload).
		Post(config.GlobalConfig.TTSURL + "/speak")
	if err != nil {
		logger.Error("tts upstream request failed", zap.Error(err))
		response.FailWith(c, http.StatusBadGateway, "tts_upstream", "speech synthesis unavailable")
		return
	}
	if resp.IsError() {
		logger.Error("tts upstream returned error", zap.Int("status", resp.StatusCode()))
		response.FailWith(c, http.StatusBadGateway, "tts_upstream", "speech synthesis unavailable")
		return
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	c.Data(http.StatusOK, contentType, resp.Body())
}
