package models

import (
	"time"

	"gorm.io/gorm"
)

// Exercise is a home-program item assigned to a treatment plan, optionally
// with a demonstration video hosted on Cloudinary.
type Exercise struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	PlanID       uint           `gorm:"not null;index" json:"plan_id"`
	Title        string         `gorm:"size:128;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Sets         int            `json:"sets"`
	Reps         int            `json:"reps"`
	Frequency    string         `gorm:"size:64" json:"frequency"` // e.g. "daily", "3x per week"
	VideoURL     string         `gorm:"size:512" json:"video_url"`
	ThumbnailURL string         `gorm:"size:512" json:"thumbnail_url"`
	AssignedByID uint           `json:"assigned_by_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Plan TreatmentPlan `gorm:"foreignKey:PlanID" json:"-"`
}

func (Exercise) TableName() string {
	return "exercises"
}
