package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/BenjaminRolf85/SACADEMY-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointsPerLevel: a user levels up every 200 cumulative points.
const PointsPerLevel = 200

// LevelForPoints derives the level tier from a cumulative point total.
// Level 1 covers 0–199, level 2 covers 200–399, and so on; never below 1.
func LevelForPoints(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return totalPoints/PointsPerLevel + 1
}

// Progress is the recomputed running total for a user.
type Progress struct {
	TotalPoints int `json:"total_points"`
	Level       int `json:"level"`
}

type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// SubmitActivity validates and records one activity event, then refreshes
// the user's denormalized points and level — one ledger append and one user
// update per call, in a single transaction.
//
// The event's point value comes from the fixed table, never from the caller.
func (s *ActivityService) SubmitActivity(userID string, typ models.ActivityType, payload string) (*models.ActivityEvent, error) {
	points, ok := models.PointValues[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivityType, typ)
	}

	var event models.ActivityEvent
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.AcademyUser
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
			}
			return err
		}

		event = models.ActivityEvent{
			ID:        uuid.NewString(),
			UserID:    userID,
			Type:      typ,
			Points:    points,
			Payload:   payload,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		// Re-derive the stored total from the full ledger instead of
		// patching it incrementally: the ledger is append-only, so the sum
		// always equals old total + new points unless a concurrent writer
		// clobbered the user row — in which case this heals it.
		prog, err := recomputeUserTx(tx, &user)
		if err != nil {
			return err
		}

		log.Printf("[ACTIVITY] %s submitted %s (+%d) → total=%d level=%d",
			userID, typ, points, prog.TotalPoints, prog.Level)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// RecomputeUser re-derives a user's total points and level from the ledger
// and writes them back to the user record.
func (s *ActivityService) RecomputeUser(userID string) (*Progress, error) {
	var prog *Progress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.AcademyUser
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
			}
			return err
		}
		p, err := recomputeUserTx(tx, &user)
		if err != nil {
			return err
		}
		prog = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// recomputeUserTx sums the user's ledger and saves points/level on the user
// row within the caller's transaction.
func recomputeUserTx(tx *gorm.DB, user *models.AcademyUser) (*Progress, error) {
	var total int
	if err := tx.Model(&models.ActivityEvent{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error; err != nil {
		return nil, err
	}

	oldLevel := user.Level
	user.Points = total
	user.Level = LevelForPoints(total)
	if user.Level > oldLevel {
		now := time.Now().UTC()
		user.LastLevelUpAt = &now
	}
	if err := tx.Save(user).Error; err != nil {
		return nil, err
	}
	return &Progress{TotalPoints: user.Points, Level: user.Level}, nil
}

// RecomputeAll sweeps every user, re-deriving stored totals from the ledger.
// Run periodically to bound drift from lost read-modify-write updates.
func (s *ActivityService) RecomputeAll() (int, error) {
	var ids []string
	if err := s.DB.Model(&models.AcademyUser{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	swept := 0
	for _, id := range ids {
		if _, err := s.RecomputeUser(id); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

// EventsForUser returns the user's full ledger in insertion order, oldest
// first. The result is a snapshot taken at call time.
func (s *ActivityService) EventsForUser(userID string) ([]models.ActivityEvent, error) {
	var events []models.ActivityEvent
	err := s.DB.Where("user_id = ?", userID).
		Order("seq ASC").
		Find(&events).Error
	return events, err
}

// RecentEvents returns the user's events from the trailing `days` days,
// newest first, paginated.
func (s *ActivityService) RecentEvents(userID string, days, page, size int) ([]models.ActivityEvent, int64, error) {
	if days < 1 {
		days = 7
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	var total int64
	if err := s.DB.Model(&models.ActivityEvent{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.ActivityEvent
	err := s.DB.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("seq DESC").
		Limit(size).Offset((page - 1) * size).
		Find(&events).Error
	return events, total, err
}
