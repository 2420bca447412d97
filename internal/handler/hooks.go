package handlers

import (
	"net/http"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/config"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ForwardBooking relays a booking request to the configured webhook
func (h *Handlers) ForwardBooking(c *gin.Context) {
	h.forwardHook(c, "booking", config.GlobalConfig.BookingWebhookURL)
}

// ForwardPeerSupport relays a peer-support request to the configured webhook
func (h *Handlers) ForwardPeerSupport(c *gin.Context) {
	h.forwardHook(c, "peer-support", config.GlobalConfig.PeerWebhookURL)
}

func (h *Handlers) forwardHook(c *gin.Context, hook, url string) {
	if url == "" {
		response.FailWith(c, http.StatusNotImplemented, "hook_unconfigured", hook+" webhook is not configured")
		return
	}

	payload := map[string]any{}
	_ = c.ShouldBindJSON(&payload)
	payload["source"] = "voiceAssistant"

	resp, err := h.http.R().
		SetContext(c.Request.Context()).
		SetBody(payload).
		Post(url)
	if err != nil {
		logger.Error("hook forward failed", zap.String("hook", hook), zap.Error(err))
		response.FailWith(c, http.StatusBadGateway, "hook_upstream", hook+" webhook unavailable")
		return
	}
	if resp.IsError() {
		logger.Error("hook upstream returned error", zap.String("hook", hook), zap.Int("status", resp.StatusCode()))
		response.FailWith(c, http.StatusBadGateway, "hook_upstream", hook+" webhook unavailable")
		return
	}

	response.Success(c, gin.H{"forwarded": true, "hook": hook})
}
