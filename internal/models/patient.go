package models

import (
	"time"

	"gorm.io/gorm"
)

// PatientProfile extends a PATIENT user with clinical intake details and the
// current therapist/doctor assignment.
type PatientProfile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	DateOfBirth *time.Time     `json:"date_of_birth"`
	Address     string         `gorm:"size:255" json:"address"`
	Diagnosis   string         `gorm:"type:text" json:"diagnosis"`
	ReferredBy  string         `gorm:"size:128" json:"referred_by"`
	DoctorID    *uint          `gorm:"index" json:"doctor_id"`    // supervising doctor (user id)
	TherapistID *uint          `gorm:"index" json:"therapist_id"` // assigned therapist profile id
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User      User              `gorm:"foreignKey:UserID" json:"-"`
	Therapist *TherapistProfile `gorm:"foreignKey:TherapistID" json:"therapist,omitempty"`
	Plans     []TreatmentPlan   `gorm:"foreignKey:PatientID" json:"plans,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
