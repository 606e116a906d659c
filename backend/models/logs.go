package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskLog is one completed study task. Rows are append-only: there is no
// edit or delete path once a task has been logged.
type TaskLog struct {
	gorm.Model
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Task          string    `gorm:"size:255;not null" json:"task"`
	Subject       string    `gorm:"size:50;not null" json:"subject"`
	DateCompleted time.Time `json:"date_completed"`
	Duration      int       `json:"duration"`   // minutes
	Difficulty    int       `json:"difficulty"` // scale of 1-5
	Notes         string    `gorm:"type:text" json:"notes"`
}

// PlatformLog records progress on the external lesson platform for one
// subject on one day. Append-only, like TaskLog.
type PlatformLog struct {
	gorm.Model
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	Subject          string    `gorm:"size:50;not null" json:"subject"`
	Date             time.Time `json:"date"`
	LessonsCompleted int       `gorm:"default:0" json:"lessons_completed"`
	TimeSpent        int       `json:"time_spent"`    // minutes
	Comprehension    int       `json:"comprehension"` // scale of 1-5
}
