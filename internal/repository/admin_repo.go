package repository

import (
	"time"

	"physiohub/internal/domain"
	"physiohub/internal/models"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// DashboardStats is the admin overview: roster counts plus today's load.
type DashboardStats struct {
	Patients          int64 `json:"patients"`
	Therapists        int64 `json:"therapists"`
	Doctors           int64 `json:"doctors"`
	AppointmentsToday int64 `json:"appointments_today"`
	UnpaidPlans       int64 `json:"unpaid_plans"`
	PendingFeedback   int64 `json:"pending_feedback"`
}

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats
	if err := r.db.Model(&models.User{}).Where("role = ? AND active = ?", domain.RolePatient, true).Count(&stats.Patients).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("role = ? AND active = ?", domain.RoleTherapist, true).Count(&stats.Therapists).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("role = ? AND active = ?", domain.RoleDoctor, true).Count(&stats.Doctors).Error; err != nil {
		return nil, err
	}
	dayStart := time.Now().Truncate(24 * time.Hour)
	if err := r.db.Model(&models.Appointment{}).
		Where("starts_at BETWEEN ? AND ?", dayStart, dayStart.Add(24*time.Hour)).
		Where("status = ?", domain.AppointmentScheduled).
		Count(&stats.AppointmentsToday).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.TreatmentPlan{}).Where("is_paid = ?", false).Count(&stats.UnpaidPlans).Error; err != nil {
		return nil, err
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := r.db.Model(&models.Feedback{}).Where("created_at >= ?", weekAgo).Count(&stats.PendingFeedback).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
