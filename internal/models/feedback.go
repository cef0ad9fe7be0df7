package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback is a patient's rating of their treatment, optionally tied to a
// specific therapist.
type Feedback struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PatientID   uint           `gorm:"not null;index" json:"patient_id"`
	TherapistID *uint          `gorm:"index" json:"therapist_id"`
	Rating      int            `gorm:"not null" json:"rating"` // 1..5
	Comment     string         `gorm:"type:text" json:"comment"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
}

func (Feedback) TableName() string {
	return "feedback"
}
