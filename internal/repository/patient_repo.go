package repository

import (
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(p *models.PatientProfile) error {
	return r.db.Create(p).Error
}

func (r *PatientRepository) GetByID(id uint) (*models.PatientProfile, error) {
	var p models.PatientProfile
	err := r.db.Preload("User").Preload("Therapist").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) GetByUserID(userID uint) (*models.PatientProfile, error) {
	var p models.PatientProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the complete patient roster. The map view always works from
// this full list, regardless of any therapist display filter.
func (r *PatientRepository) List() ([]models.PatientProfile, error) {
	var list []models.PatientProfile
	err := r.db.Preload("User").Find(&list).Error
	return list, err
}

func (r *PatientRepository) ListByTherapist(therapistID uint) ([]models.PatientProfile, error) {
	var list []models.PatientProfile
	err := r.db.Preload("User").Where("therapist_id = ?", therapistID).Find(&list).Error
	return list, err
}

// ListWithLocations joins patients with their users' last reported locations.
func (r *PatientRepository) ListWithLocations() ([]models.PatientProfile, error) {
	var list []models.PatientProfile
	err := r.db.Preload("User").Preload("User.Location").Find(&list).Error
	return list, err
}

func (r *PatientRepository) Update(p *models.PatientProfile) error {
	return r.db.Save(p).Error
}

func (r *PatientRepository) AssignTherapist(patientID, therapistID uint) error {
	return r.db.Model(&models.PatientProfile{}).Where("id = ?", patientID).Update("therapist_id", therapistID).Error
}
