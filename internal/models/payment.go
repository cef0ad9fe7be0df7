package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is money received from a patient against a treatment plan.
type Payment struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	PatientID    uint           `gorm:"not null;index" json:"patient_id"`
	PlanID       *uint          `gorm:"index" json:"plan_id"`
	Amount       float64        `gorm:"not null" json:"amount"`
	Method       string         `gorm:"size:20;not null" json:"method"`       // CASH, CARD, TRANSFER, INSURANCE
	Status       string         `gorm:"size:20;not null;index" json:"status"` // PENDING, COMPLETED, FAILED, REFUNDED
	Reference    string         `gorm:"size:255;uniqueIndex" json:"reference"`
	ReceivedByID uint           `json:"received_by_id"`
	Notes        string         `gorm:"type:text" json:"notes"`
	CompletedAt  *time.Time     `json:"completed_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
	Plan    *TreatmentPlan `gorm:"foreignKey:PlanID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
