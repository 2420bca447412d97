package handlers

import (
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/config"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/counselor"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/events"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/middleware"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/reporting"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/gin-gonic/gin"
	resty "github.com/go-resty/resty/v2"
	cache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Handlers struct {
	db        *gorm.DB
	sessions  session.Store
	reports   *reporting.Store
	generator *reporting.Generator
	counselor *counselor.Counselor
	events    *events.Log

	dashCache *cache.Cache
	http      *resty.Client
}

func NewHandlers(db *gorm.DB, sessions session.Store, reports *reporting.Store, generator *reporting.Generator, c *counselor.Counselor, ev *events.Log) *Handlers {
	return &Handlers{
		db:        db,
		sessions:  sessions,
		reports:   reports,
		generator: generator,
		counselor: c,
		events:    ev,
		dashCache: cache.New(5*time.Second, time.Minute),
		http:      resty.New().SetTimeout(15 * time.Second),
	}
}

func (h *Handlers) Register(engine *gin.Engine) {

	r := engine.Group(config.GlobalConfig.APIPrefix)

	// Register Global Singleton DB
	r.Use(middleware.InjectDB(h.db))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/resources", h.Resources)

	sess := r.Group("/session")
	{
		sess.POST("/start", h.StartSession)
		sess.POST("/turn", h.RecordTurn)
		sess.POST("/end", h.EndSession)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/sessions", h.ListSessions)
		admin.GET("/session/:id", h.SessionDetail)
		admin.GET("/analytics", h.Analytics)
		admin.GET("/alerts", h.Alerts)
		admin.POST("/seed-demo", h.SeedDemo)
	}

	couns := r.Group("/counselor")
	{
		couns.GET("/report/:sessionId", h.CounselorReport)
		couns.GET("/reports", h.CounselorReports)
	}

	r.POST("/tts", h.Synthesize)

	hooks := r.Group("/hooks")
	{
		hooks.POST("/booking", h.ForwardBooking)
		hooks.POST("/peer-support", h.ForwardPeerSupport)
	}
}
