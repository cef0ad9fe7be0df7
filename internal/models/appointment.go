package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	PatientID       uint           `gorm:"not null;index" json:"patient_id"`
	TherapistID     uint           `gorm:"not null;index" json:"therapist_id"`
	PlanID          *uint          `gorm:"index" json:"plan_id"`
	StartsAt        time.Time      `gorm:"not null;index" json:"starts_at"`
	DurationMinutes int            `gorm:"default:45" json:"duration_minutes"`
	Status          string         `gorm:"size:20;not null;index" json:"status"` // SCHEDULED, COMPLETED, CANCELLED, NO_SHOW
	Notes           string         `gorm:"type:text" json:"notes"`
	ReminderSentAt  *time.Time     `json:"reminder_sent_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Patient   PatientProfile   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Therapist TherapistProfile `gorm:"foreignKey:TherapistID" json:"therapist,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
