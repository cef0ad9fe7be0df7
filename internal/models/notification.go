package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification type discriminators; clients pick icons and routes off these.
const (
	NotifAppointmentReminder  = "APPOINTMENT_REMINDER"
	NotifAppointmentCancelled = "APPOINTMENT_CANCELLED"
	NotifExerciseAssigned     = "EXERCISE_ASSIGNED"
	NotifPaymentReceived      = "PAYMENT_RECEIVED"
	NotifProximityAlert       = "PROXIMITY_ALERT"
)

// Notification is the in-app copy of every push we send; it stays readable
// even when FCM delivery fails or is disabled.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Type      string         `gorm:"size:50;not null;index" json:"type"`
	Title     string         `gorm:"size:255" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Data      string         `gorm:"type:text" json:"data"` // JSON payload
	ReadAt    *time.Time     `json:"read_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) IsRead() bool { return n.ReadAt != nil }
