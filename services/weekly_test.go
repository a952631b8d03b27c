package services

import (
	"testing"
	"time"

	"github.com/BenjaminRolf85/SACADEMY-sub000/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// appendEventAt backfills a ledger row with a fixed timestamp.
func appendEventAt(t *testing.T, db *gorm.DB, userID string, typ models.ActivityType, at time.Time) {
	t.Helper()

	ev := models.ActivityEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Points:    models.PointValues[typ],
		CreatedAt: at,
	}
	require.NoError(t, db.Create(&ev).Error)
}

func TestWeeklyMaximumFormulasAgree(t *testing.T) {
	// The product computes the weekly cap in two places; both must resolve
	// to the canonical constant.
	bySchedule := models.RequiredTagesplan*models.PointValues[models.ActivityTagesplan] +
		models.RequiredFeedback*models.PointValues[models.ActivityFeedbackVoice] +
		models.RequiredMeetingOrReflection*models.PointValues[models.ActivityLiveMeeting]
	assert.Equal(t, models.MaxWeeklyPoints, bySchedule)
	assert.Equal(t, 26, models.MaxWeeklyPoints)
	assert.Equal(t, 8, models.RequiredWeeklySubmissions)
}

func TestWeeklyProgressBucketsWednesday(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "kai")

	// Wed 2025-06-04, evaluated Friday evening the same week.
	wednesday := time.Date(2025, 6, 4, 9, 30, 0, 0, time.UTC)
	now := time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)
	appendEventAt(t, db, user.ID, models.ActivityTagesplan, wednesday)

	weekly, err := svc.WeeklyProgress(user.ID, now)
	require.NoError(t, err)

	assert.True(t, weekly.PerDay["wednesday"].Tagesplan)
	assert.False(t, weekly.PerDay["wednesday"].Feedback)
	assert.False(t, weekly.PerDay["wednesday"].MeetingOrReflection)
	for _, day := range []string{"monday", "tuesday", "thursday", "friday"} {
		assert.Equal(t, DayProgress{}, *weekly.PerDay[day], "day %s must stay unset", day)
	}
	assert.Equal(t, 2, weekly.WeeklyPoints)
}

func TestWeeklyProgressFullScenario(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "mia")

	tuesday := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 6, 4, 8, 0, 0, 0, time.UTC)
	friday := time.Date(2025, 6, 6, 8, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)

	appendEventAt(t, db, user.ID, models.ActivityTagesplan, tuesday)
	appendEventAt(t, db, user.ID, models.ActivityFeedbackVoice, tuesday.Add(time.Hour))
	appendEventAt(t, db, user.ID, models.ActivityTagesplan, wednesday)
	appendEventAt(t, db, user.ID, models.ActivityFeedbackVideo, wednesday.Add(time.Hour))
	appendEventAt(t, db, user.ID, models.ActivityLiveMeeting, friday)

	weekly, err := svc.WeeklyProgress(user.ID, now)
	require.NoError(t, err)

	assert.Equal(t, 2+4+2+6+6, weekly.WeeklyPoints)
	assert.Equal(t, DayProgress{Tagesplan: true, Feedback: true}, *weekly.PerDay["tuesday"])
	assert.Equal(t, DayProgress{Tagesplan: true, Feedback: true}, *weekly.PerDay["wednesday"])
	assert.Equal(t, DayProgress{MeetingOrReflection: true}, *weekly.PerDay["friday"])
	assert.Equal(t, DayProgress{}, *weekly.PerDay["monday"])
	assert.Equal(t, DayProgress{}, *weekly.PerDay["thursday"])
	assert.InDelta(t, 62.5, weekly.CompletionRate, 0.001) // 5 of 8
}

func TestCompletionRateBoundaries(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)
	now := time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)
	tuesday := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)

	// 4 qualifying events → 50%. Raw count, no per-day dedup.
	half := createTestUser(t, db, "halb")
	for i := 0; i < 4; i++ {
		appendEventAt(t, db, half.ID, models.ActivityTagesplan, tuesday.Add(time.Duration(i)*time.Minute))
	}
	weekly, err := svc.WeeklyProgress(half.ID, now)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, weekly.CompletionRate, 0.001)

	// 9 qualifying events → capped at 100%.
	full := createTestUser(t, db, "voll")
	for i := 0; i < 9; i++ {
		appendEventAt(t, db, full.ID, models.ActivityFeedbackVoice, tuesday.Add(time.Duration(i)*time.Minute))
	}
	weekly, err = svc.WeeklyProgress(full.ID, now)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, weekly.CompletionRate, 0.001)

	// Over-submission is not rejected: points run past the nominal cap.
	assert.Greater(t, weekly.WeeklyPoints, models.MaxWeeklyPoints)
}

func TestExcusedAbsencesCarryPointsOnly(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "ole")

	tuesday := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)

	appendEventAt(t, db, user.ID, models.ActivityEntschuldigt, tuesday)
	appendEventAt(t, db, user.ID, models.ActivityUnentschuldigt, tuesday.Add(time.Hour))

	weekly, err := svc.WeeklyProgress(user.ID, now)
	require.NoError(t, err)

	assert.Equal(t, 1, weekly.WeeklyPoints)
	assert.Zero(t, weekly.CompletionRate, "absences never count toward the quota")
	assert.Equal(t, DayProgress{}, *weekly.PerDay["tuesday"], "absences set no day flags")
}

func TestWeekendEventsDroppedFromBuckets(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "sam")

	saturday := time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)

	appendEventAt(t, db, user.ID, models.ActivityTagesplan, saturday)
	appendEventAt(t, db, user.ID, models.ActivitySelbstreflexion, sunday)

	weekly, err := svc.WeeklyProgress(user.ID, now)
	require.NoError(t, err)

	// Points and quota credit survive; no weekday bucket is touched.
	assert.Equal(t, 2+6, weekly.WeeklyPoints)
	assert.InDelta(t, 25.0, weekly.CompletionRate, 0.001)
	for day, flags := range weekly.PerDay {
		assert.Equal(t, DayProgress{}, *flags, "day %s must stay unset", day)
	}
}

func TestWeeklyWindowIsRolling(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)
	user := createTestUser(t, db, "rike")

	now := time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)
	inside := now.AddDate(0, 0, -6)
	outside := now.AddDate(0, 0, -8)

	appendEventAt(t, db, user.ID, models.ActivityFeedbackVideo, inside)
	appendEventAt(t, db, user.ID, models.ActivityFeedbackVideo, outside)

	weekly, err := svc.WeeklyProgress(user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 6, weekly.WeeklyPoints, "only the trailing 7 days count")
}
