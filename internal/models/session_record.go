package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionStatus lifecycle of a persisted counseling session
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// SessionRecord the durable record written when a live session ends. The
// live session itself only ever exists in process memory; this row is what
// counselors and dashboards see after the fact.
type SessionRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	SessionID string        `json:"sessionId" gorm:"size:64;uniqueIndex"`
	UserID    string        `json:"userId,omitempty" gorm:"size:64;index"`
	UserName  string        `json:"userName,omitempty" gorm:"size:128"`
	Locale    string        `json:"locale" gorm:"size:20"`
	Status    SessionStatus `json:"status" gorm:"size:20;index"`

	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Duration  int        `json:"duration"` // minutes

	// RiskLevel is the session's live level at end time; OverallRisk is the
	// bucket derived from accumulated flags. The two can differ.
	RiskLevel   string `json:"riskLevel" gorm:"size:20;index"`
	OverallRisk string `json:"overallRisk" gorm:"size:20;index"`

	Priority      string `json:"priority" gorm:"size:20;index"`
	BookingNeeded bool   `json:"bookingNeeded"`
	Booked        bool   `json:"booked"`
	Notes         string `json:"notes,omitempty" gorm:"type:text"`

	Messages        JSON `json:"messages,omitempty" gorm:"type:text"`
	RiskFlags       JSON `json:"riskFlags,omitempty" gorm:"type:text"`
	RiskAssessment  JSON `json:"riskAssessment,omitempty" gorm:"type:text"`
	Report          JSON `json:"report,omitempty" gorm:"type:text"`
	CounselorReport JSON `json:"counselorReport,omitempty" gorm:"type:text"`
}

// RiskEvent one raised risk flag, persisted for the audit trail
type RiskEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	SessionID string `json:"sessionId" gorm:"size:64;index"`
	Level     string `json:"level" gorm:"size:20;index"`
	Reason    string `json:"reason" gorm:"size:200"`
	Source    string `json:"source" gorm:"size:20"` // keyword or llm
}

// Migrate creates or updates the schema for all persisted models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SessionRecord{},
		&RiskEvent{},
	)
}
