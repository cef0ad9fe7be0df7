package repository

import (
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type TherapistRepository struct {
	db *gorm.DB
}

func NewTherapistRepository(db *gorm.DB) *TherapistRepository {
	return &TherapistRepository{db: db}
}

func (r *TherapistRepository) Create(t *models.TherapistProfile) error {
	return r.db.Create(t).Error
}

func (r *TherapistRepository) GetByID(id uint) (*models.TherapistProfile, error) {
	var t models.TherapistProfile
	err := r.db.Preload("User").First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TherapistRepository) GetByUserID(userID uint) (*models.TherapistProfile, error) {
	var t models.TherapistProfile
	err := r.db.Where("user_id = ?", userID).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TherapistRepository) List() ([]models.TherapistProfile, error) {
	var list []models.TherapistProfile
	err := r.db.Preload("User").Find(&list).Error
	return list, err
}

// ListWithLocations returns all therapists joined with their users' last
// reported locations and presence; used by the live map.
func (r *TherapistRepository) ListWithLocations() ([]models.TherapistProfile, error) {
	var list []models.TherapistProfile
	err := r.db.Preload("User").Preload("User.Location").Preload("User.Presence").Find(&list).Error
	return list, err
}

func (r *TherapistRepository) Update(t *models.TherapistProfile) error {
	return r.db.Save(t).Error
}
