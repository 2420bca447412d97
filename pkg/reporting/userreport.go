package reporting

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/safety"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
)

// SentimentSummary average sentiment over the early, middle and late thirds
// of the user's turns.
type SentimentSummary struct {
	Early float64 `json:"early"`
	Mid   float64 `json:"mid"`
	End   float64 `json:"end"`
}

// UserReport the private end-of-session feedback shown to the user
type UserReport struct {
	StartedAt       time.Time        `json:"startedAt"`
	EndedAt         time.Time        `json:"endedAt"`
	DurationMinutes int              `json:"durationMinutes"`
	Sentiment       SentimentSummary `json:"sentiment"`
	Topics          []string         `json:"topics"`
	CopingDiscussed []string         `json:"copingDiscussed"`
	RiskFlags       []safety.Flag    `json:"riskFlags"`
}

// UserReportEnvelope JSON payload plus a printable HTML rendering
type UserReportEnvelope struct {
	JSON UserReport `json:"json"`
	HTML string     `json:"html"`
}

var copingSuggestions = []string{
	"4-7-8 breathing",
	"brief body scan",
	"CBT-style reframing prompt",
	"sleep hygiene tips",
}

// GenerateUserReport builds the user-facing feedback from the finished
// session. No LLM involvement; purely derived from the transcript.
func GenerateUserReport(s *session.Session) UserReportEnvelope {
	rep := UserReport{
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		DurationMinutes: durationMinutes(s),
		Sentiment:       summarizeSentiment(s.Turns),
		Topics:          topKeywords(s.Turns, 5),
		CopingDiscussed: copingSuggestions,
		RiskFlags:       s.RiskFlags,
	}
	return UserReportEnvelope{JSON: rep, HTML: renderUserReportHTML(rep)}
}

// SentimentScore naive word-list polarity of one utterance
func SentimentScore(text string) float64 {
	t := strings.ToLower(text)
	score := 0
	for _, w := range positiveWords {
		if strings.Contains(t, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(t, w) {
			score--
		}
	}
	return float64(score)
}

func summarizeSentiment(turns []session.Turn) SentimentSummary {
	scores := []float64{}
	for _, t := range turns {
		if t.Role == "user" {
			scores = append(scores, SentimentScore(t.Text))
		}
	}
	if len(scores) == 0 {
		return SentimentSummary{}
	}
	third := len(scores) / 3
	if third < 1 {
		third = 1
	}
	return SentimentSummary{
		Early: mean(scores[:min(third, len(scores))]),
		Mid:   mean(sliceRange(scores, third, 2*third)),
		End:   mean(sliceRange(scores, 2*third, len(scores))),
	}
}

func sliceRange(s []float64, lo, hi int) []float64 {
	if lo > len(s) {
		lo = len(s)
	}
	if hi > len(s) {
		hi = len(s)
	}
	return s[lo:hi]
}

func mean(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// topKeywords most frequent words longer than three letters, ties broken
// alphabetically for determinism.
func topKeywords(turns []session.Turn, limit int) []string {
	freq := map[string]int{}
	for _, t := range turns {
		text := strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' {
				return r
			}
			return ' '
		}, strings.ToLower(t.Text))
		for _, w := range strings.Fields(text) {
			if len(w) > 3 {
				freq[w]++
			}
		}
	}
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

func renderUserReportHTML(rep UserReport) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"/><title>Session Feedback Report</title></head><body>`)
	b.WriteString(`<h1>Private Session Feedback</h1>`)
	fmt.Fprintf(&b, `<h2>Timing</h2><div>Start: %s<br/>End: %s<br/>Duration: %d min</div>`,
		rep.StartedAt.Format(time.RFC3339), rep.EndedAt.Format(time.RFC3339), rep.DurationMinutes)
	fmt.Fprintf(&b, `<h2>Mood Trajectory</h2><div>Early: %.1f | Mid: %.1f | End: %.1f</div>`,
		rep.Sentiment.Early, rep.Sentiment.Mid, rep.Sentiment.End)
	b.WriteString(`<h2>Topics</h2><div>`)
	for _, t := range rep.Topics {
		fmt.Fprintf(&b, `<span class="tag">%s</span> `, html.EscapeString(t))
	}
	b.WriteString(`</div><h2>Coping Strategies</h2><ul>`)
	for _, c := range rep.CopingDiscussed {
		fmt.Fprintf(&b, `<li>%s</li>`, html.EscapeString(c))
	}
	b.WriteString(`</ul><h2>Safety</h2><div>`)
	if len(rep.RiskFlags) > 0 {
		b.WriteString("Flags present")
	} else {
		b.WriteString("No risk flags detected")
	}
	b.WriteString(`</div><p>This report is private to you. It is supportive information, not a diagnosis.</p></body></html>`)
	return b.String()
}
