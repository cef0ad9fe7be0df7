package models

import (
	"time"

	"gorm.io/gorm"
)

// PlanTemplate is a priced package the clinic sells (e.g. "Back rehab,
// 12 sessions"). Concrete treatment plans are created from a template.
type PlanTemplate struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Description   string         `gorm:"size:255;not null" json:"description"`
	SessionsCount uint           `gorm:"not null" json:"sessions_count"`
	Price         float64        `gorm:"not null" json:"price"` // price for the whole package
	Active        bool           `gorm:"default:true;index" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PlanTemplate) TableName() string {
	return "plan_templates"
}

// TreatmentPlan is a patient's purchased package: remaining sessions are
// decremented as attendance is marked.
type TreatmentPlan struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	PatientID    uint           `gorm:"not null;index" json:"patient_id"`
	TherapistID  uint           `gorm:"not null;index" json:"therapist_id"`
	TemplateID   uint           `gorm:"not null" json:"template_id"`
	StartDate    string         `gorm:"size:10" json:"start_date"` // YYYY-MM-DD
	Remaining    uint           `json:"remaining"`
	Discount     float64        `json:"discount"` // percentage, e.g. 10 for 10%
	TotalPrice   float64        `json:"total_price"`
	IsPaid       bool           `gorm:"default:false;index" json:"is_paid"`
	Notes        string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Patient      PatientProfile   `gorm:"foreignKey:PatientID" json:"-"`
	Therapist    TherapistProfile `gorm:"foreignKey:TherapistID" json:"-"`
	Template     PlanTemplate     `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Appointments []Appointment    `gorm:"foreignKey:PlanID" json:"appointments,omitempty"`
	Exercises    []Exercise       `gorm:"foreignKey:PlanID" json:"exercises,omitempty"`
}

func (TreatmentPlan) TableName() string {
	return "treatment_plans"
}

// SessionFee is the per-session share of the discounted package price.
func (p *TreatmentPlan) SessionFee(sessionsCount uint) float64 {
	if sessionsCount == 0 {
		return 0
	}
	return p.TotalPrice / float64(sessionsCount)
}
