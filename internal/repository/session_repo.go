package repository

import (
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(s *models.SessionRecord) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) GetByID(id uint) (*models.SessionRecord, error) {
	var s models.SessionRecord
	err := r.db.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) GetByAppointment(appointmentID uint) (*models.SessionRecord, error) {
	var s models.SessionRecord
	err := r.db.Where("appointment_id = ?", appointmentID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByTherapist returns a therapist's session records in the inclusive
// [from, to] date range (YYYY-MM-DD keys); empty bounds are open-ended.
func (r *SessionRepository) ListByTherapist(therapistID uint, from, to string) ([]models.SessionRecord, error) {
	var list []models.SessionRecord
	q := r.db.Where("therapist_id = ?", therapistID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	err := q.Order("date ASC").Find(&list).Error
	return list, err
}

// ListAll returns every session record in the date range, for clinic-wide
// dashboards.
func (r *SessionRepository) ListAll(from, to string) ([]models.SessionRecord, error) {
	var list []models.SessionRecord
	q := r.db.Session(&gorm.Session{})
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	err := q.Order("date ASC").Find(&list).Error
	return list, err
}

func (r *SessionRepository) ListByPatient(patientID uint) ([]models.SessionRecord, error) {
	var list []models.SessionRecord
	err := r.db.Where("patient_id = ?", patientID).Order("date ASC").Find(&list).Error
	return list, err
}

func (r *SessionRepository) Update(s *models.SessionRecord) error {
	return r.db.Save(s).Error
}
