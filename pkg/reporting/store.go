package reporting

import (
	"sort"
	"sync"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
)

// Aggregate the process-wide analytics snapshot. Always rebuilt from the full
// report cache, never patched incrementally, so regenerating a session's
// report any number of times cannot drift the counts.
type Aggregate struct {
	TotalSessions          int            `json:"totalSessions"`
	CrisisInterventions    int            `json:"crisisInterventions"`
	AverageSessionDuration float64        `json:"averageSessionDuration"`
	CommonIssues           map[string]int `json:"commonIssues"`
	RiskLevels             map[string]int `json:"riskLevels"`
	EmotionalPatterns      map[string]int `json:"emotionalPatterns"`
	MainTopics             map[string]int `json:"mainTopics"`
	CopingStrategies       map[string]int `json:"copingStrategies"`
}

func emptyAggregate() Aggregate {
	return Aggregate{
		CommonIssues:      map[string]int{},
		RiskLevels:        map[string]int{"low": 0, "medium": 0, "high": 0, "crisis": 0},
		EmotionalPatterns: map[string]int{},
		MainTopics:        map[string]int{},
		CopingStrategies:  map[string]int{},
	}
}

// Store caches the latest report per session id and owns the aggregate.
// The two upsert variants make the caller's intent explicit: per-turn
// refreshes must not touch the aggregate, end-of-session writes must.
type Store struct {
	mu      sync.RWMutex
	reports map[string]SessionReport
	agg     Aggregate
}

func NewStore() *Store {
	return &Store{
		reports: make(map[string]SessionReport),
		agg:     emptyAggregate(),
	}
}

// UpsertNoAggregate overwrites the cached report without recomputing the
// aggregate. Used for live per-turn refreshes and the start-of-session seed.
func (st *Store) UpsertNoAggregate(r SessionReport) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.reports[r.SessionID] = r
}

// UpsertAndAggregate overwrites the cached report and rebuilds the aggregate
// from the full cache.
func (st *Store) UpsertAndAggregate(r SessionReport) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.reports[r.SessionID] = r
	st.agg = st.rebuild()
}

// Recompute rebuilds the aggregate without changing the cache
func (st *Store) Recompute() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.agg = st.rebuild()
}

func (st *Store) Get(sessionID string) (SessionReport, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	r, ok := st.reports[sessionID]
	return r, ok
}

func (st *Store) List() []SessionReport {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]SessionReport, 0, len(st.reports))
	for _, r := range st.reports {
		out = append(out, r)
	}
	return out
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.reports)
}

// Aggregate returns a copy of the current snapshot
func (st *Store) Aggregate() Aggregate {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := st.agg
	out.CommonIssues = copyCounts(st.agg.CommonIssues)
	out.RiskLevels = copyCounts(st.agg.RiskLevels)
	out.EmotionalPatterns = copyCounts(st.agg.EmotionalPatterns)
	out.MainTopics = copyCounts(st.agg.MainTopics)
	out.CopingStrategies = copyCounts(st.agg.CopingStrategies)
	return out
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// bucketRisk the aggregation risk bucket of a report: the more severe of the
// flag-derived level and the LLM overall level, clamped to the four histogram
// buckets. Minimal and unknown values count as low.
func bucketRisk(r SessionReport) string {
	flagLevel := r.RiskAnalysis.OverallRisk
	llmLevel := safety.Level(r.LLMFlags.OverallRiskLevel)
	if safety.Rank(llmLevel) == 0 && llmLevel != safety.LevelMinimal {
		llmLevel = safety.LevelLow
	}
	risk := safety.Escalate(flagLevel, llmLevel)
	switch risk {
	case safety.LevelMedium, safety.LevelHigh, safety.LevelCrisis:
		return string(risk)
	}
	return "low"
}

// rebuild scans the full cache once. Caller holds the write lock.
func (st *Store) rebuild() Aggregate {
	agg := emptyAggregate()
	agg.TotalSessions = len(st.reports)

	totalDuration := 0
	for _, r := range st.reports {
		risk := bucketRisk(r)
		agg.RiskLevels[risk]++
		if risk == "high" || risk == "crisis" {
			agg.CrisisInterventions++
		}
		totalDuration += r.Duration

		for _, concern := range r.UserProfile.Concerns {
			agg.CommonIssues[concern]++
		}

		// Per report: LLM lists when non-empty, else heuristics. Never both,
		// so one concept is never counted under two sources.
		if len(r.LLMInsights.EmotionalPatterns) > 0 {
			for _, p := range r.LLMInsights.EmotionalPatterns {
				agg.EmotionalPatterns[p]++
			}
		} else if r.UserProfile.EmotionalPatterns.DominantEmotion != "" {
			agg.EmotionalPatterns[r.UserProfile.EmotionalPatterns.DominantEmotion]++
		}

		if len(r.LLMInsights.MainTopics) > 0 {
			for _, t := range r.LLMInsights.MainTopics {
				agg.MainTopics[t]++
			}
		} else {
			for _, t := range r.UserProfile.Concerns {
				agg.MainTopics[t]++
			}
		}

		if len(r.LLMInsights.CopingStrategies) > 0 {
			for _, c := range r.LLMInsights.CopingStrategies {
				agg.CopingStrategies[c]++
			}
		} else {
			for _, res := range r.Recommendations.Resources {
				agg.CopingStrategies[res]++
			}
			for _, group := range [][]Recommendation{
				r.Recommendations.Immediate,
				r.Recommendations.ShortTerm,
				r.Recommendations.LongTerm,
			} {
				for _, rec := range group {
					if rec.Action != "" {
						agg.CopingStrategies[rec.Action]++
					}
				}
			}
		}
	}

	if agg.TotalSessions > 0 {
		agg.AverageSessionDuration = float64(totalDuration) / float64(agg.TotalSessions)
	}
	return agg
}

// HeatmapDay per-calendar-day session counts split by risk bucket
type HeatmapDay struct {
	Date   string `json:"date"`
	Total  int    `json:"total"`
	Low    int    `json:"low"`
	Medium int    `json:"medium"`
	High   int    `json:"high"`
	Crisis int    `json:"crisis"`
}

// Heatmap buckets cached reports by day over the trailing 28 days, zero
// filled and ordered oldest first.
func (st *Store) Heatmap(now time.Time) []HeatmapDay {
	const days = 28
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]HeatmapDay, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := now.UTC().AddDate(0, 0, i-(days-1)).Format("2006-01-02")
		out[i] = HeatmapDay{Date: date}
		index[date] = i
	}

	for _, r := range st.reports {
		i, ok := index[r.Timestamp.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		out[i].Total++
		switch r.RiskAnalysis.OverallRisk {
		case safety.LevelMedium:
			out[i].Medium++
		case safety.LevelHigh:
			out[i].High++
		case safety.LevelCrisis:
			out[i].Crisis++
		default:
			out[i].Low++
		}
	}
	return out
}

// TrendPoint daily average stress weight
type TrendPoint struct {
	Date string  `json:"date"`
	Avg  float64 `json:"avg"`
}

// StressTrend per-day average of the risk weights over the trailing 28
// days, zero on days with no sessions.
func (st *Store) StressTrend(now time.Time) []TrendPoint {
	const days = 28
	st.mu.RLock()
	defer st.mu.RUnlock()

	type acc struct{ score, total int }
	byDay := make(map[string]*acc, days)
	out := make([]TrendPoint, days)
	for i := 0; i < days; i++ {
		date := now.UTC().AddDate(0, 0, i-(days-1)).Format("2006-01-02")
		out[i] = TrendPoint{Date: date}
		byDay[date] = &acc{}
	}

	for _, r := range st.reports {
		a, ok := byDay[r.Timestamp.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		a.score += safety.Weight(r.RiskAnalysis.OverallRisk)
		a.total++
	}

	for i := range out {
		a := byDay[out[i].Date]
		if a.total > 0 {
			out[i].Avg = float64(a.score) / float64(a.total)
		}
	}
	return out
}

// ActiveUsers count of reports stamped within the last 15 minutes
func (st *Store) ActiveUsers(now time.Time) int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	cutoff := now.Add(-15 * time.Minute)
	count := 0
	for _, r := range st.reports {
		if r.Timestamp.After(cutoff) {
			count++
		}
	}
	return count
}

// RecentSessions newest reports first
func (st *Store) RecentSessions(limit int) []SessionReport {
	reports := st.List()
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.After(reports[j].Timestamp)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports
}

// ActiveAlerts alerts carried by currently cached reports
func (st *Store) ActiveAlerts() []Alert {
	st.mu.RLock()
	defer st.mu.RUnlock()
	alerts := []Alert{}
	for _, r := range st.reports {
		alerts = append(alerts, r.AdminAlerts...)
	}
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
	return alerts
}

// Delete removes a cached report and rebuilds the aggregate
func (st *Store) Delete(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.reports, sessionID)
	st.agg = st.rebuild()
}
