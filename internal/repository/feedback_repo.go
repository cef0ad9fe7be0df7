package repository

import (
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(f *models.Feedback) error {
	return r.db.Create(f).Error
}

func (r *FeedbackRepository) List(limit, offset int) ([]models.Feedback, error) {
	var list []models.Feedback
	err := r.db.Preload("Patient").Preload("Patient.User").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *FeedbackRepository) ListByTherapist(therapistID uint) ([]models.Feedback, error) {
	var list []models.Feedback
	err := r.db.Where("therapist_id = ?", therapistID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// AverageRating returns the mean rating for a therapist, 0 when unrated.
func (r *FeedbackRepository) AverageRating(therapistID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Feedback{}).
		Where("therapist_id = ?", therapistID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error
	return avg, err
}
