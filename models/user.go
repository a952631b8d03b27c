package models

import (
	"time"

	"gorm.io/gorm"
)

// AcademyUser is a platform member (learner, trainer or admin).
//
// Points and Level are denormalized from the activity ledger for cheap reads;
// the ledger remains the source of truth and RecomputeUser re-derives both.
type AcademyUser struct {
	ID      string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	Email   string  `gorm:"uniqueIndex;not null" json:"email"`
	Role    string  `gorm:"type:varchar(16);default:'learner'" json:"role"` // learner, trainer, admin
	GroupID *string `gorm:"index;type:uuid" json:"group_id,omitempty"`

	Points int `gorm:"default:0" json:"points"`
	Level  int `gorm:"default:1" json:"level"`

	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

func (AcademyUser) TableName() string {
	return "academy_users"
}

// Group is a learner group led by a trainer.
type Group struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Slug      string  `gorm:"uniqueIndex;not null" json:"slug"`
	TrainerID *string `gorm:"index;type:uuid" json:"trainer_id,omitempty"`

	Timestamps
}

func (Group) TableName() string {
	return "groups"
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
