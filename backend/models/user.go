package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username        string  `gorm:"unique;not null" json:"username"`
	PasswordHash    string  `gorm:"not null" json:"-"`
	OnboardingStep  int     `gorm:"default:0" json:"onboarding_step"`
	DailyStudyHours float64 `gorm:"default:4.0" json:"daily_study_hours"`
	// Completion percentages reported by the external lesson platform
	ChemProgress   int          `gorm:"default:0" json:"chem_progress"`
	BioY13Progress int          `gorm:"default:0" json:"bio_y13_progress"`
	BioY12Progress int          `gorm:"default:0" json:"bio_y12_progress"`
	Subjects       *UserSubjects `json:"subjects,omitempty"`
}

// UserSubjects holds a user's opt-in subject enrollment. The core subject
// is always studied and has no toggle here.
type UserSubjects struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex" json:"user_id"`
	Chemistry bool `gorm:"default:false" json:"chemistry"`
	Biology   bool `gorm:"default:false" json:"biology"`
}
