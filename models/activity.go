package models

import (
	"time"
)

// ActivityType is the closed set of trackable training activities.
type ActivityType string

const (
	ActivityTagesplan       ActivityType = "tagesplan"
	ActivityFeedbackVoice   ActivityType = "feedback_voice"
	ActivityFeedbackVideo   ActivityType = "feedback_video"
	ActivityLiveMeeting     ActivityType = "live_meeting"
	ActivitySelbstreflexion ActivityType = "selbstreflexion"
	ActivityEntschuldigt    ActivityType = "entschuldigt"
	ActivityUnentschuldigt  ActivityType = "unentschuldigt"
)

// PointValues is the fixed point table. It never changes at runtime; an
// event's points are copied from here at submission time and frozen.
var PointValues = map[ActivityType]int{
	ActivityTagesplan:       2,
	ActivityFeedbackVoice:   4,
	ActivityFeedbackVideo:   6,
	ActivityLiveMeeting:     6,
	ActivitySelbstreflexion: 6,
	ActivityEntschuldigt:    1,
	ActivityUnentschuldigt:  0,
}

// CountsTowardRequirement reports whether the type maps onto one of the
// weekly requirement flags. Excused/unexcused absences carry points only.
func (t ActivityType) CountsTowardRequirement() bool {
	switch t {
	case ActivityTagesplan, ActivityFeedbackVoice, ActivityFeedbackVideo,
		ActivityLiveMeeting, ActivitySelbstreflexion:
		return true
	}
	return false
}

// ActivityEvent is one row of the append-only activity ledger. Rows are
// created by the submission gateway and never updated or deleted.
//
// Seq is the insertion-order row key; ID is the public identifier minted at
// submission time. Points are denormalized from PointValues so historical
// events keep their value even if the table ever changes.
type ActivityEvent struct {
	Seq       uint         `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        string       `gorm:"uniqueIndex;not null;type:uuid" json:"id"`
	UserID    string       `gorm:"index;not null;type:uuid" json:"user_id"`
	Type      ActivityType `gorm:"type:varchar(32);not null" json:"type"`
	Points    int          `gorm:"not null" json:"points"`
	Payload   string       `gorm:"type:jsonb" json:"payload,omitempty"` // opaque submission content (day label, free text)
	CreatedAt time.Time    `gorm:"index;not null" json:"created_at"`    // UTC instant, set at submission
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}

// Weekly requirement schedule (Tuesday–Friday; Monday and weekends carry no
// requirements):
//
//	Tue–Thu: tagesplan + feedback (voice or video)
//	Fri:     tagesplan + live meeting or self-reflection
const (
	RequiredTagesplan           = 4 // Tue, Wed, Thu, Fri
	RequiredFeedback            = 3 // Tue, Wed, Thu
	RequiredMeetingOrReflection = 1 // Fri

	// RequiredWeeklySubmissions is the total number of qualifying
	// submissions expected per week.
	RequiredWeeklySubmissions = RequiredTagesplan + RequiredFeedback + RequiredMeetingOrReflection

	// MaxWeeklyPoints is the canonical weekly maximum: 4 tagesplan (2 each)
	// + 3 feedback (4 each) + 1 meeting/reflection (6).
	MaxWeeklyPoints = 26
)
