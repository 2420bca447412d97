package safety

import "time"

// Level risk severity, ordered from least to most severe
type Level string

const (
	LevelMinimal Level = "minimal"
	LevelLow     Level = "low"
	LevelMedium  Level = "medium"
	LevelHigh    Level = "high"
	LevelCrisis  Level = "crisis"
)

// rank single severity ordering shared by session escalation and report
// bucketing so the two derivations can never disagree
var rank = map[Level]int{
	LevelMinimal: 0,
	LevelLow:     1,
	LevelMedium:  2,
	LevelHigh:    3,
	LevelCrisis:  4,
}

// Rank returns the numeric severity of a level, 0 for unknown values
func Rank(l Level) int {
	return rank[l]
}

// ParseLevel normalizes an externally supplied level, defaulting to low
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelMinimal, LevelLow, LevelMedium, LevelHigh, LevelCrisis:
		return Level(s)
	}
	return LevelLow
}

// Weight stress-trend weight of a risk level
func Weight(l Level) int {
	return rank[l]
}

// Escalate applies the monotonic within-session rule: the result is never
// less severe than cur. Crisis always wins, high promotes from anything
// lower, medium only promotes from low or minimal.
func Escalate(cur, next Level) Level {
	if rank[next] > rank[cur] {
		return next
	}
	return cur
}

// Flag a tagged risk concern raised during a session
type Flag struct {
	Flag      bool      `json:"flag"`
	Level     Level     `json:"level,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Type      string    `json:"type,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// BucketFlags derives the overall risk of a flag set: the most severe flag
// level wins; any flags at all mean at least low; an empty set is minimal.
func BucketFlags(flags []Flag) Level {
	if len(flags) == 0 {
		return LevelMinimal
	}
	overall := LevelLow
	for _, f := range flags {
		overall = Escalate(overall, f.Level)
	}
	return overall
}
