package models

import (
	"time"

	"physiohub/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null;default:''" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // ADMIN | DOCTOR | THERAPIST | PATIENT
	FullName     string         `gorm:"size:128" json:"full_name"`
	Phone        string         `gorm:"size:32" json:"phone"`
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	Active       bool           `gorm:"default:true;index" json:"active"`
	FCMToken     string         `gorm:"size:512" json:"-"` // for push notifications
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	TherapistProfile *TherapistProfile `gorm:"foreignKey:UserID" json:"therapist_profile,omitempty"`
	PatientProfile   *PatientProfile   `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
	Location         *UserLocation     `gorm:"foreignKey:UserID" json:"location,omitempty"`
	Presence         *UserPresence     `gorm:"foreignKey:UserID" json:"presence,omitempty"`
}

func (u *User) IsTherapist() bool { return u.Role == domain.RoleTherapist }
func (u *User) IsPatient() bool   { return u.Role == domain.RolePatient }

// IsStaff reports whether the user can manage clinic data.
func (u *User) IsStaff() bool {
	for _, r := range domain.StaffRoles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// DisplayName resolves the label shown in lists and alerts.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
