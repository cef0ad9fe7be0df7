package repository

import (
	"time"

	"physiohub/internal/domain"
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(a *models.Appointment) error {
	return r.db.Create(a).Error
}

func (r *AppointmentRepository) GetByID(id uint) (*models.Appointment, error) {
	var a models.Appointment
	err := r.db.Preload("Patient").Preload("Patient.User").Preload("Therapist").Preload("Therapist.User").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) ListByPatient(patientID uint) ([]models.Appointment, error) {
	var list []models.Appointment
	err := r.db.Preload("Therapist").Preload("Therapist.User").
		Where("patient_id = ?", patientID).Order("starts_at DESC").Find(&list).Error
	return list, err
}

func (r *AppointmentRepository) ListByTherapist(therapistID uint, from, to time.Time) ([]models.Appointment, error) {
	var list []models.Appointment
	q := r.db.Preload("Patient").Preload("Patient.User").Where("therapist_id = ?", therapistID)
	if !from.IsZero() {
		q = q.Where("starts_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("starts_at < ?", to)
	}
	err := q.Order("starts_at ASC").Find(&list).Error
	return list, err
}

// ListUpcomingUnreminded returns scheduled appointments starting within the
// window that have not had a reminder sent yet.
func (r *AppointmentRepository) ListUpcomingUnreminded(window time.Duration) ([]models.Appointment, error) {
	var list []models.Appointment
	now := time.Now()
	err := r.db.Preload("Patient").Preload("Patient.User").Preload("Therapist").Preload("Therapist.User").
		Where("status = ?", domain.AppointmentScheduled).
		Where("starts_at BETWEEN ? AND ?", now, now.Add(window)).
		Where("reminder_sent_at IS NULL").
		Find(&list).Error
	return list, err
}

func (r *AppointmentRepository) MarkReminderSent(id uint) error {
	now := time.Now()
	return r.db.Model(&models.Appointment{}).Where("id = ?", id).Update("reminder_sent_at", &now).Error
}

func (r *AppointmentRepository) Update(a *models.Appointment) error {
	return r.db.Save(a).Error
}
