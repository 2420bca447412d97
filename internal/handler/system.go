package handlers

import (
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/config"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/response"
	"github.com/gin-gonic/gin"
)

// Health liveness probe
func (h *Handlers) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":       "ok",
		"service":      config.GlobalConfig.ServerName,
		"liveSessions": h.sessions.Len(),
		"time":         time.Now().UTC(),
	})
}
