package reporting

import (
	"fmt"
	"testing"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/insights"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportWithRisk(id string, overall safety.Level, duration int) SessionReport {
	s := session.New("en-IN")
	s.ID = id
	gen := NewGenerator(insights.NewAdapter(nil))
	rep := gen.GenerateBasic(s)
	rep.RiskAnalysis.OverallRisk = overall
	rep.Duration = duration
	rep.Timestamp = time.Now().UTC()
	return rep
}

// Per-turn report refreshes never move the aggregate
func TestUpsertNoAggregateLeavesCountsAlone(t *testing.T) {
	st := NewStore()
	for i := 0; i < 5; i++ {
		st.UpsertNoAggregate(reportWithRisk("s1", safety.LevelHigh, 10))
	}
	agg := st.Aggregate()
	assert.Equal(t, 0, agg.TotalSessions)
	assert.Equal(t, 0, agg.CrisisInterventions)
	assert.Equal(t, 1, st.Len())
}

// Regenerating the same session any number of times counts it once
func TestUpsertAndAggregateIdempotentPerSession(t *testing.T) {
	st := NewStore()
	for i := 0; i < 10; i++ {
		st.UpsertAndAggregate(reportWithRisk("s1", safety.LevelCrisis, 12))
	}
	agg := st.Aggregate()
	assert.Equal(t, 1, agg.TotalSessions)
	assert.Equal(t, 1, agg.CrisisInterventions)
	assert.Equal(t, 1, agg.RiskLevels["crisis"])
	assert.Equal(t, 12.0, agg.AverageSessionDuration)
}

func TestAggregateRiskBuckets(t *testing.T) {
	st := NewStore()
	st.UpsertAndAggregate(reportWithRisk("a", safety.LevelMinimal, 5))
	st.UpsertAndAggregate(reportWithRisk("b", safety.LevelLow, 5))
	st.UpsertAndAggregate(reportWithRisk("c", safety.LevelMedium, 5))
	st.UpsertAndAggregate(reportWithRisk("d", safety.LevelHigh, 5))
	st.UpsertAndAggregate(reportWithRisk("e", safety.LevelCrisis, 5))

	agg := st.Aggregate()
	assert.Equal(t, 5, agg.TotalSessions)
	// Minimal folds into the low bucket
	assert.Equal(t, 2, agg.RiskLevels["low"])
	assert.Equal(t, 1, agg.RiskLevels["medium"])
	assert.Equal(t, 1, agg.RiskLevels["high"])
	assert.Equal(t, 1, agg.RiskLevels["crisis"])
	assert.Equal(t, 2, agg.CrisisInterventions)
}

// The LLM overall level can raise a session's bucket but never lower it
func TestAggregateUsesMoreSevereOfFlagAndLLMLevel(t *testing.T) {
	st := NewStore()

	up := reportWithRisk("up", safety.LevelLow, 5)
	up.LLMFlags.OverallRiskLevel = "crisis"
	st.UpsertAndAggregate(up)

	down := reportWithRisk("down", safety.LevelHigh, 5)
	down.LLMFlags.OverallRiskLevel = "low"
	st.UpsertAndAggregate(down)

	agg := st.Aggregate()
	assert.Equal(t, 1, agg.RiskLevels["crisis"])
	assert.Equal(t, 1, agg.RiskLevels["high"])
	assert.Equal(t, 2, agg.CrisisInterventions)
}

func TestAggregatePrefersLLMListsElseHeuristics(t *testing.T) {
	st := NewStore()

	withLLM := reportWithRisk("llm", safety.LevelLow, 5)
	withLLM.LLMInsights.EmotionalPatterns = []string{"anxious"}
	withLLM.LLMInsights.MainTopics = []string{"exams"}
	withLLM.UserProfile.EmotionalPatterns.DominantEmotion = "sad"
	withLLM.UserProfile.Concerns = []string{"academics"}
	st.UpsertAndAggregate(withLLM)

	agg := st.Aggregate()
	assert.Equal(t, 1, agg.EmotionalPatterns["anxious"])
	// Heuristic emotion must not be double counted for the same report
	assert.Equal(t, 0, agg.EmotionalPatterns["sad"])
	assert.Equal(t, 1, agg.MainTopics["exams"])
	assert.Equal(t, 0, agg.MainTopics["academics"])
	// Concerns still feed commonIssues independently
	assert.Equal(t, 1, agg.CommonIssues["academics"])

	heuristic := reportWithRisk("heur", safety.LevelLow, 5)
	heuristic.UserProfile.EmotionalPatterns.DominantEmotion = "sad"
	heuristic.UserProfile.Concerns = []string{"sleep"}
	st.UpsertAndAggregate(heuristic)

	agg = st.Aggregate()
	assert.Equal(t, 1, agg.EmotionalPatterns["sad"])
	assert.Equal(t, 1, agg.MainTopics["sleep"])
}

func TestHeatmapShape(t *testing.T) {
	st := NewStore()
	now := time.Now().UTC()

	st.UpsertAndAggregate(reportWithRisk("today", safety.LevelHigh, 5))
	old := reportWithRisk("old", safety.LevelLow, 5)
	old.Timestamp = now.AddDate(0, 0, -40)
	st.UpsertAndAggregate(old)

	days := st.Heatmap(now)
	require.Len(t, days, 28)

	// Oldest first, today last
	assert.Equal(t, now.AddDate(0, 0, -27).Format("2006-01-02"), days[0].Date)
	assert.Equal(t, now.Format("2006-01-02"), days[27].Date)

	total := 0
	for _, d := range days {
		total += d.Total
		assert.Equal(t, d.Total, d.Low+d.Medium+d.High+d.Crisis)
	}
	// The 40-day-old report falls outside the window
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, days[27].High)
}

func TestHeatmapZeroFilled(t *testing.T) {
	st := NewStore()
	days := st.Heatmap(time.Now().UTC())
	require.Len(t, days, 28)
	for _, d := range days {
		assert.Zero(t, d.Total)
	}
}

func TestStressTrendWeights(t *testing.T) {
	st := NewStore()
	now := time.Now().UTC()
	st.UpsertAndAggregate(reportWithRisk("a", safety.LevelCrisis, 5))
	st.UpsertAndAggregate(reportWithRisk("b", safety.LevelMedium, 5))

	trend := st.StressTrend(now)
	require.Len(t, trend, 28)
	// Today averages crisis(4) and medium(2)
	assert.Equal(t, 3.0, trend[27].Avg)
	assert.Equal(t, 0.0, trend[0].Avg)
}

func TestActiveUsersWindow(t *testing.T) {
	st := NewStore()
	now := time.Now().UTC()

	fresh := reportWithRisk("fresh", safety.LevelLow, 5)
	fresh.Timestamp = now.Add(-5 * time.Minute)
	st.UpsertNoAggregate(fresh)

	stale := reportWithRisk("stale", safety.LevelLow, 5)
	stale.Timestamp = now.Add(-30 * time.Minute)
	st.UpsertNoAggregate(stale)

	assert.Equal(t, 1, st.ActiveUsers(now))
}

func TestRecentSessionsOrderAndLimit(t *testing.T) {
	st := NewStore()
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		r := reportWithRisk(fmt.Sprintf("s%d", i), safety.LevelLow, 5)
		r.Timestamp = now.Add(time.Duration(i) * time.Minute)
		st.UpsertNoAggregate(r)
	}

	recent := st.RecentSessions(3)
	require.Len(t, recent, 3)
	assert.Equal(t, "s4", recent[0].SessionID)
	assert.Equal(t, "s2", recent[2].SessionID)
}

func TestDeleteRebuildsAggregate(t *testing.T) {
	st := NewStore()
	st.UpsertAndAggregate(reportWithRisk("a", safety.LevelCrisis, 5))
	st.UpsertAndAggregate(reportWithRisk("b", safety.LevelLow, 5))

	st.Delete("a")
	agg := st.Aggregate()
	assert.Equal(t, 1, agg.TotalSessions)
	assert.Equal(t, 0, agg.CrisisInterventions)
}
