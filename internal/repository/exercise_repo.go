package repository

import (
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(e *models.Exercise) error {
	return r.db.Create(e).Error
}

func (r *ExerciseRepository) GetByID(id uint) (*models.Exercise, error) {
	var e models.Exercise
	err := r.db.First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExerciseRepository) ListByPlan(planID uint) ([]models.Exercise, error) {
	var list []models.Exercise
	err := r.db.Where("plan_id = ?", planID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *ExerciseRepository) Update(e *models.Exercise) error {
	return r.db.Save(e).Error
}

func (r *ExerciseRepository) Delete(id uint) error {
	return r.db.Delete(&models.Exercise{}, id).Error
}
