package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/BenjaminRolf85/SACADEMY-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// StandingEntry is one ranked row of a group's weekly leaderboard.
type StandingEntry struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

// GroupStandings ranks a group's members by ledger points earned in the
// trailing 7-day window ending at now. Members without submissions rank last
// with zero points.
func (s *LeaderboardService) GroupStandings(groupID string, now time.Time) ([]StandingEntry, error) {
	var group models.Group
	if err := s.DB.Where("id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
		}
		return nil, err
	}

	start, end := WeekWindow(now)

	var entries []StandingEntry
	err := s.DB.Raw(`
		SELECT u.id AS user_id, u.name, COALESCE(SUM(e.points), 0) AS points
		FROM academy_users u
		LEFT JOIN activity_events e
			ON e.user_id = u.id AND e.created_at >= ? AND e.created_at <= ?
		WHERE u.group_id = ? AND u.deleted_at IS NULL
		GROUP BY u.id, u.name
		ORDER BY points DESC, u.name ASC
	`, start, end, groupID).Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// SnapshotGroup persists the current standings of one group for the window
// ending at now. Re-running within the same window updates rows in place.
func (s *LeaderboardService) SnapshotGroup(groupID string, now time.Time) error {
	entries, err := s.GroupStandings(groupID, now)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	start, end := WeekWindow(now)
	rows := make([]models.WeeklyStanding, len(entries))
	for i, e := range entries {
		rows[i] = models.WeeklyStanding{
			ID:          uuid.NewString(),
			GroupID:     groupID,
			UserID:      e.UserID,
			PeriodStart: start.Truncate(24 * time.Hour),
			PeriodEnd:   end,
			Points:      e.Points,
			Rank:        e.Rank,
		}
	}

	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "group_id"}, {Name: "user_id"}, {Name: "period_start"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"period_end", "points", "rank", "updated_at"}),
	}).Create(&rows).Error
}

// SnapshotAll snapshots every group. Returns the number of groups processed.
func (s *LeaderboardService) SnapshotAll(now time.Time) (int, error) {
	var ids []string
	if err := s.DB.Model(&models.Group{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	for i, id := range ids {
		if err := s.SnapshotGroup(id, now); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}
