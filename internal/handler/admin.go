package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/config"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/response"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
	"github.com/spf13/cast"
)

const dashboardCacheKey = "dashboard"

type issueCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Dashboard aggregated admin view, snapshot-cached for a few seconds so a
// busy dashboard cannot hammer the report cache.
func (h *Handlers) Dashboard(c *gin.Context) {
	if snap, ok := h.dashCache.Get(dashboardCacheKey); ok {
		response.Success(c, snap)
		return
	}

	now := time.Now().UTC()
	agg := h.reports.Aggregate()
	if agg.TotalSessions == 0 && h.reports.Len() > 0 {
		// Cache holds seeded live sessions that were never aggregated
		h.reports.Recompute()
		agg = h.reports.Aggregate()
	}

	totalSessions := agg.TotalSessions
	if live := h.reports.Len(); live > totalSessions {
		totalSessions = live
	}

	insightsSource := "Heuristic"
	if config.GlobalConfig != nil && config.GlobalConfig.UseLLM {
		insightsSource = "LLM"
	}

	recent := make([]gin.H, 0, 10)
	for _, r := range h.reports.RecentSessions(10) {
		recent = append(recent, gin.H{
			"sessionId":   r.SessionID,
			"timestamp":   r.Timestamp,
			"duration":    r.Duration,
			"overallRisk": r.RiskAnalysis.OverallRisk,
			"concerns":    r.UserProfile.Concerns,
		})
	}

	snap := gin.H{
		"overview": gin.H{
			"totalSessions":          totalSessions,
			"activeUsers":            h.reports.ActiveUsers(now),
			"crisisInterventions":    agg.CrisisInterventions,
			"averageSessionDuration": agg.AverageSessionDuration,
			"insightsSource":         insightsSource,
			"riskDistribution":       agg.RiskLevels,
		},
		"commonIssues":      topCounts(agg.CommonIssues, 10),
		"emotionalPatterns": topCounts(agg.EmotionalPatterns, 5),
		"mainTopics":        topCounts(agg.MainTopics, 5),
		"copingStrategies":  topCounts(agg.CopingStrategies, 5),
		"heatmap":           h.reports.Heatmap(now),
		"stressTrend":       h.reports.StressTrend(now),
		"recentSessions":    recent,
		"alerts":            h.reports.ActiveAlerts(),
	}
	h.dashCache.Set(dashboardCacheKey, snap, cache.DefaultExpiration)
	response.Success(c, snap)
}

// ListSessions pages through cached reports, newest first
func (h *Handlers) ListSessions(c *gin.Context) {
	limit := cast.ToInt(c.DefaultQuery("limit", "20"))
	offset := cast.ToInt(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	all := h.reports.RecentSessions(0)
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	response.Success(c, gin.H{
		"sessions": all[offset:end],
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handlers) SessionDetail(c *gin.Context) {
	id := c.Param("id")
	r, ok := h.reports.Get(id)
	if !ok {
		response.FailWith(c, http.StatusNotFound, "not_found", "session report not found")
		return
	}
	response.Success(c, r)
}

// Analytics the aggregate plus its derived views. The timeframe parameter is
// echoed back; all views cover the trailing 28 days.
func (h *Handlers) Analytics(c *gin.Context) {
	now := time.Now().UTC()
	timeframe := cast.ToString(c.DefaultQuery("timeframe", "month"))
	response.Success(c, gin.H{
		"timeframe":   timeframe,
		"aggregate":   h.reports.Aggregate(),
		"heatmap":     h.reports.Heatmap(now),
		"stressTrend": h.reports.StressTrend(now),
		"activeUsers": h.reports.ActiveUsers(now),
	})
}

// Alerts active report alerts plus the realtime event tail
func (h *Handlers) Alerts(c *gin.Context) {
	response.Success(c, gin.H{
		"alerts":   h.reports.ActiveAlerts(),
		"realtime": h.events.Recent(50),
	})
}

// SeedDemo loads a handful of synthetic sessions into the report cache so a
// fresh install has something to show. Refused in production.
func (h *Handlers) SeedDemo(c *gin.Context) {
	if config.GlobalConfig != nil && config.GlobalConfig.Mode == "production" {
		response.FailWith(c, http.StatusForbidden, "forbidden", "demo seeding is disabled in production")
		return
	}

	demos := []struct {
		locale string
		turns  []string
	}{
		{"en-IN", []string{"I have exams next week and I can't sleep", "My parents expect too much from me"}},
		{"hi-IN", []string{"I feel very anxious about my placement", "I had a panic attack yesterday"}},
		{"en-IN", []string{"I feel worthless and hopeless lately", "Nothing I do seems to matter"}},
		{"en-IN", []string{"I am doing a bit better this week", "The breathing exercises helped"}},
	}

	seeded := make([]string, 0, len(demos))
	for _, d := range demos {
		s := session.New(d.locale)
		for _, text := range d.turns {
			s.AddTurn("user", text)
			s.AddTurn("assistant", "Thank you for sharing that with me.")
		}
		s.End()
		h.reports.UpsertAndAggregate(h.generator.GenerateBasic(s))
		seeded = append(seeded, s.ID)
	}
	h.dashCache.Delete(dashboardCacheKey)

	response.Success(c, gin.H{"seeded": seeded})
}

func topCounts(m map[string]int, limit int) []issueCount {
	out := make([]issueCount, 0, len(m))
	for name, count := range m {
		if count > 0 {
			out = append(out, issueCount{Name: name, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
