package middleware

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiterConfig rate limiting configuration. Rates use the limiter
// format, e.g. "1000-M" for 1000 requests per minute.
type RateLimiterConfig struct {
	Rate          string
	Identifier    string // "ip" is the only supported identifier
	AddHeaders    bool
	DenyStatus    int
	DenyMessage   string
	PerRouteRates map[string]string
	SkipPaths     []string
}

var (
	rlMu        sync.RWMutex
	rlConfig    = RateLimiterConfig{Rate: "1000-M", Identifier: "ip", AddHeaders: true, DenyStatus: 429, DenyMessage: "Requests too frequent, please try again later"}
	rlDefault   *limiter.Limiter
	rlPerRoute  map[string]*limiter.Limiter
	rlStoreOnce sync.Once
	rlStore     limiter.Store
)

func store() limiter.Store {
	rlStoreOnce.Do(func() {
		rlStore = memory.NewStore()
	})
	return rlStore
}

// SetRateLimiterConfig replaces the active configuration and rebuilds the
// limiters. Invalid rate strings fall back to the previous default.
func SetRateLimiterConfig(cfg RateLimiterConfig) {
	rlMu.Lock()
	defer rlMu.Unlock()
	if cfg.DenyStatus == 0 {
		cfg.DenyStatus = 429
	}
	rlConfig = cfg

	if rate, err := limiter.NewRateFromFormatted(cfg.Rate); err == nil {
		rlDefault = limiter.New(store(), rate)
	}
	rlPerRoute = make(map[string]*limiter.Limiter, len(cfg.PerRouteRates))
	for prefix, rateStr := range cfg.PerRouteRates {
		if rate, err := limiter.NewRateFromFormatted(rateStr); err == nil {
			rlPerRoute[prefix] = limiter.New(store(), rate)
		}
	}
}

func limiterFor(path string) *limiter.Limiter {
	for prefix, lim := range rlPerRoute {
		if strings.HasPrefix(path, prefix) {
			return lim
		}
	}
	return rlDefault
}

// RateLimiterMiddleware per-IP rate limiting with optional per-route
// overrides. Paths in SkipPaths bypass the limiter entirely.
func RateLimiterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rlMu.RLock()
		cfg := rlConfig
		lim := limiterFor(c.Request.URL.Path)
		rlMu.RUnlock()

		if lim == nil {
			c.Next()
			return
		}
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, skip) {
				c.Next()
				return
			}
		}

		rlCtx, err := lim.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}
		if cfg.AddHeaders {
			c.Header("X-RateLimit-Limit", strconv.FormatInt(rlCtx.Limit, 10))
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(rlCtx.Remaining, 10))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(rlCtx.Reset, 10))
		}
		if rlCtx.Reached {
			c.AbortWithStatusJSON(cfg.DenyStatus, gin.H{"error": cfg.DenyMessage})
			return
		}
		c.Next()
	}
}
