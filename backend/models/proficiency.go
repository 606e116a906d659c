package models

import (
	"gorm.io/gorm"
)

// TopicProficiency is a user's self-rated mastery of one curriculum topic.
// One rating per (user, subject, topic): created on the first rating and
// updated in place afterwards.
type TopicProficiency struct {
	gorm.Model
	UserID      uint   `gorm:"not null;uniqueIndex:uix_user_subject_topic" json:"user_id"`
	Subject     string `gorm:"size:50;not null;uniqueIndex:uix_user_subject_topic" json:"subject"`
	Topic       string `gorm:"size:100;not null;uniqueIndex:uix_user_subject_topic" json:"topic"`
	Proficiency int    `gorm:"not null" json:"proficiency"` // scale of 1-5
	Notes       string `gorm:"type:text" json:"notes"`
}
