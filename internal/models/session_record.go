package models

import (
	"time"

	"physiohub/pkg/earnings"

	"gorm.io/gorm"
)

// SessionRecord is one attendance/earning event: the fee a session was worth
// and what was actually collected when the patient showed up. These rows feed
// the earnings dashboards.
type SessionRecord struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	AppointmentID *uint          `gorm:"index" json:"appointment_id"`
	PlanID        *uint          `gorm:"index" json:"plan_id"`
	TherapistID   uint           `gorm:"not null;index:idx_session_therapist_date" json:"therapist_id"`
	PatientID     uint           `gorm:"not null;index" json:"patient_id"`
	Date          string         `gorm:"size:10;not null;index:idx_session_therapist_date" json:"date"` // YYYY-MM-DD
	Fee           float64        `json:"fee"` // potential revenue for the session
	Attended      bool           `gorm:"index" json:"attended"`
	Earned        float64        `json:"earned"` // collected amount, meaningful only when attended
	MarkedByID    uint           `json:"marked_by_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Therapist TherapistProfile `gorm:"foreignKey:TherapistID" json:"-"`
	Patient   PatientProfile   `gorm:"foreignKey:PatientID" json:"-"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}

// EarningsRecord converts the row for the aggregator.
func (s *SessionRecord) EarningsRecord() earnings.Record {
	return earnings.Record{
		Date:      s.Date,
		Potential: s.Fee,
		Attended:  s.Attended,
		Earned:    s.Earned,
	}
}
