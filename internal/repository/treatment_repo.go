package repository

import (
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type TreatmentRepository struct {
	db *gorm.DB
}

func NewTreatmentRepository(db *gorm.DB) *TreatmentRepository {
	return &TreatmentRepository{db: db}
}

// Templates

func (r *TreatmentRepository) CreateTemplate(t *models.PlanTemplate) error {
	return r.db.Create(t).Error
}

func (r *TreatmentRepository) GetTemplate(id uint) (*models.PlanTemplate, error) {
	var t models.PlanTemplate
	err := r.db.First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TreatmentRepository) ListTemplates(activeOnly bool) ([]models.PlanTemplate, error) {
	var list []models.PlanTemplate
	q := r.db.Order("description ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *TreatmentRepository) UpdateTemplate(t *models.PlanTemplate) error {
	return r.db.Save(t).Error
}

// Plans

func (r *TreatmentRepository) CreatePlan(p *models.TreatmentPlan) error {
	return r.db.Create(p).Error
}

func (r *TreatmentRepository) GetPlan(id uint) (*models.TreatmentPlan, error) {
	var p models.TreatmentPlan
	err := r.db.Preload("Template").Preload("Exercises").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TreatmentRepository) ListPlansByPatient(patientID uint) ([]models.TreatmentPlan, error) {
	var list []models.TreatmentPlan
	err := r.db.Preload("Template").Where("patient_id = ?", patientID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *TreatmentRepository) ListPlansByTherapist(therapistID uint) ([]models.TreatmentPlan, error) {
	var list []models.TreatmentPlan
	err := r.db.Preload("Template").Where("therapist_id = ?", therapistID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *TreatmentRepository) UpdatePlan(p *models.TreatmentPlan) error {
	return r.db.Save(p).Error
}

// DecrementRemaining consumes one session from the plan; no-op at zero.
func (r *TreatmentRepository) DecrementRemaining(planID uint) error {
	return r.db.Model(&models.TreatmentPlan{}).
		Where("id = ? AND remaining > 0", planID).
		Update("remaining", gorm.Expr("remaining - 1")).Error
}
