package main

import (
	"flag"
	"os"

	"github.com/codeMaverick7770/mental-health-platform-sub000/cmd/bootstrap"
	handlers "github.com/codeMaverick7770/mental-health-platform-sub000/internal/handler"
	"github.com/codeMaverick7770/mental-health-platform-sub000/internal/task"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/config"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/counselor"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/events"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/insights"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/llm"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/middleware"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/reporting"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Parse Command Line Parameters
	mode := flag.String("mode", "", "running environment (development, test, production)")
	flag.Parse()

	// 2. Set Environment Variables
	if *mode != "" {
		os.Setenv("APP_ENV", *mode)
	}

	// 3. Load Global Configuration
	if err := config.Load(); err != nil {
		panic("config load failed: " + err.Error())
	}

	// 4. Load Log Configuration
	if err := logger.Init(&config.GlobalConfig.Log, config.GlobalConfig.Mode); err != nil {
		panic(err)
	}

	// 5. Load Data Source
	db, err := bootstrap.SetupDatabase(os.Stdout, &bootstrap.Options{AutoMigrate: true})
	if err != nil {
		logger.Error("database setup failed", zap.Error(err))
		return
	}

	logger.Info("checked config -- addr: ", zap.String("addr", config.GlobalConfig.Addr))
	logger.Info("checked config -- db-driver: ",
		zap.String("db-driver", config.GlobalConfig.DBDriver),
		zap.String("dsn", config.GlobalConfig.DSN),
	)
	logger.Info("checked config -- mode: ", zap.String("mode", config.GlobalConfig.Mode))

	// 6. Build the assistant core. Without an LLM provider every capability
	// runs on its deterministic fallback.
	var provider llm.Provider
	if config.GlobalConfig.UseLLM {
		provider = llm.NewProviderFromConfig(config.GlobalConfig)
	} else {
		logger.Info("LLM disabled, running on heuristic fallbacks")
	}

	sessions := session.NewMemoryStore()
	reports := reporting.NewStore()
	generator := reporting.NewGenerator(insights.NewAdapter(provider))
	asha := counselor.New(provider)
	eventLog := events.NewLog(200)

	app := handlers.NewHandlers(db, sessions, reports, generator, asha, eventLog)

	// 7. Start the idle-session sweeper
	task.StartSessionSweeper(sessions, config.GlobalConfig.SessionIdleTimeout(), app.FinalizeSession)

	// 8. Initialize Gin Routing
	if config.GlobalConfig.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Disable automatic redirects to avoid CORS issues caused by 307 redirects
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	// 9. use middleware
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(zap.L()))

	middleware.SetRateLimiterConfig(middleware.RateLimiterConfig{
		Rate:        config.GlobalConfig.RateLimit,
		Identifier:  "ip",
		AddHeaders:  true,
		DenyMessage: "Requests too frequent, please try again later",
		PerRouteRates: map[string]string{
			config.GlobalConfig.APIPrefix + "/session/turn": "120-M",
		},
		SkipPaths: []string{config.GlobalConfig.APIPrefix + "/metrics"},
	})
	r.Use(middleware.RateLimiterMiddleware())

	// 10. Register routes
	app.Register(r)

	logger.Info("server starting", zap.String("addr", config.GlobalConfig.Addr))
	if err := r.Run(config.GlobalConfig.Addr); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
}
