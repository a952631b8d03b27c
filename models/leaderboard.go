package models

import (
	"time"
)

// WeeklyStanding is a persisted snapshot of one user's rank within their
// group over a weekly window. Snapshots are upserted by the standings worker
// so dashboards can read rankings without re-aggregating the ledger.
type WeeklyStanding struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	GroupID     string    `gorm:"index:idx_standing_group_user_week,unique;not null;type:uuid" json:"group_id"`
	UserID      string    `gorm:"index:idx_standing_group_user_week,unique;not null;type:uuid" json:"user_id"`
	PeriodStart time.Time `gorm:"index:idx_standing_group_user_week,unique;not null" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null" json:"period_end"`
	Points      int       `gorm:"not null;default:0" json:"points"`
	Rank        int       `gorm:"not null;default:0" json:"rank"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WeeklyStanding) TableName() string {
	return "weekly_standings"
}
