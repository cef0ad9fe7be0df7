package models

import (
	"time"

	"gorm.io/gorm"
)

// TherapistProfile extends a THERAPIST user with clinical details. Created by
// an admin when the therapist is onboarded.
type TherapistProfile struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Specialization string         `gorm:"size:128" json:"specialization"`
	LicenseNumber  string         `gorm:"size:64" json:"license_number"`
	Bio            string         `gorm:"type:text" json:"bio"`
	SessionFee     float64        `json:"session_fee"` // default fee per session
	YearsExperience int           `json:"years_experience"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User     User             `gorm:"foreignKey:UserID" json:"-"`
	Patients []PatientProfile `gorm:"foreignKey:TherapistID" json:"patients,omitempty"`
}

func (TherapistProfile) TableName() string {
	return "therapist_profiles"
}
