package repository

import (
	"time"

	"physiohub/internal/domain"
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var p models.Payment
	err := r.db.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByReference(ref string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.Where("reference = ?", ref).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByPatient(patientID uint) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *PaymentRepository) ListByPlan(planID uint) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.Where("plan_id = ?", planID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *PaymentRepository) MarkCompleted(id uint) error {
	now := time.Now()
	return r.db.Model(&models.Payment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       domain.PaymentCompleted,
		"completed_at": &now,
	}).Error
}

// TotalCompletedForPlan sums completed payments against a plan.
func (r *PaymentRepository) TotalCompletedForPlan(planID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.Payment{}).
		Where("plan_id = ? AND status = ?", planID, domain.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}
