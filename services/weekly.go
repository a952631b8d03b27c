package services

import (
	"math"
	"time"

	"github.com/BenjaminRolf85/SACADEMY-sub000/models"
)

// DayProgress holds the requirement flags for one weekday. A flag flips to
// true on the first qualifying submission; repeats are not tracked here
// (their points still count toward the weekly total).
type DayProgress struct {
	Tagesplan           bool `json:"tagesplan"`
	Feedback            bool `json:"feedback"`
	MeetingOrReflection bool `json:"meeting_or_reflection"`
}

// WeeklyProgress is the evaluated state of a user's current training week.
type WeeklyProgress struct {
	PerDay         map[string]*DayProgress `json:"per_day"`
	WeeklyPoints   int                     `json:"weekly_points"`
	CompletionRate float64                 `json:"completion_rate"`
}

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
}

// WeeklyProgress evaluates the trailing 7-day window ending at now.
//
// Events are bucketed into monday–friday by their weekday in now's location;
// Saturday/Sunday events keep their points and their share of the completion
// rate but have no day bucket. The weekly point sum is uncapped — the engine
// does not reject submissions beyond the nominal 26-point maximum.
func (s *ActivityService) WeeklyProgress(userID string, now time.Time) (*WeeklyProgress, error) {
	since := now.AddDate(0, 0, -7)

	var events []models.ActivityEvent
	if err := s.DB.
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, since, now).
		Order("seq ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}

	progress := &WeeklyProgress{
		PerDay: map[string]*DayProgress{
			"monday":    {},
			"tuesday":   {},
			"wednesday": {},
			"thursday":  {},
			"friday":    {},
		},
	}

	qualifying := 0
	for _, ev := range events {
		progress.WeeklyPoints += ev.Points
		if ev.Type.CountsTowardRequirement() {
			qualifying++
		}

		key, ok := weekdayKeys[ev.CreatedAt.In(now.Location()).Weekday()]
		if !ok {
			continue // weekend submission, no bucket
		}
		day := progress.PerDay[key]

		switch ev.Type {
		case models.ActivityTagesplan:
			day.Tagesplan = true
		case models.ActivityFeedbackVoice, models.ActivityFeedbackVideo:
			day.Feedback = true
		case models.ActivityLiveMeeting, models.ActivitySelbstreflexion:
			day.MeetingOrReflection = true
		}
	}

	// Raw submission count against the weekly quota of 8, capped at 100%.
	rate := float64(qualifying) / float64(models.RequiredWeeklySubmissions)
	progress.CompletionRate = math.Min(rate, 1) * 100

	return progress, nil
}

// WeekWindow returns the trailing 7-day window [start, end] ending at now,
// shared by the evaluator and the standings snapshots.
func WeekWindow(now time.Time) (start, end time.Time) {
	return now.AddDate(0, 0, -7), now
}
