package handler

import (
	"net/http"
	"strconv"
	"time"

	"physiohub/config"
	"physiohub/internal/domain"
	"physiohub/internal/middleware"
	"physiohub/internal/models"
	"physiohub/internal/repository"
	"physiohub/internal/service"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	cfg             *config.Config
	appointmentRepo *repository.AppointmentRepository
	patientRepo     *repository.PatientRepository
	therapistRepo   *repository.TherapistRepository
	treatmentRepo   *repository.TreatmentRepository
	notifSvc        *service.NotificationService
}

func NewAppointmentHandler(
	cfg *config.Config,
	appointmentRepo *repository.AppointmentRepository,
	patientRepo *repository.PatientRepository,
	therapistRepo *repository.TherapistRepository,
	treatmentRepo *repository.TreatmentRepository,
	notifSvc *service.NotificationService,
) *AppointmentHandler {
	return &AppointmentHandler{
		cfg:             cfg,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		therapistRepo:   therapistRepo,
		treatmentRepo:   treatmentRepo,
		notifSvc:        notifSvc,
	}
}

type CreateAppointmentRequest struct {
	PatientID       uint   `json:"patient_id" binding:"required"`
	TherapistID     uint   `json:"therapist_id" binding:"required"`
	PlanID          *uint  `json:"plan_id"`
	StartsAt        string `json:"starts_at" binding:"required"` // RFC 3339
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at must be RFC 3339"})
		return
	}
	if startsAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at is in the past"})
		return
	}
	if _, err := h.patientRepo.GetByID(req.PatientID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	if _, err := h.therapistRepo.GetByID(req.TherapistID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
		return
	}
	if req.PlanID != nil {
		plan, err := h.treatmentRepo.GetPlan(*req.PlanID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		if plan.Remaining == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "no sessions remaining on plan"})
			return
		}
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = h.cfg.Clinic.DefaultSessionMinutes
	}
	a := &models.Appointment{
		PatientID:       req.PatientID,
		TherapistID:     req.TherapistID,
		PlanID:          req.PlanID,
		StartsAt:        startsAt,
		DurationMinutes: duration,
		Status:          domain.AppointmentScheduled,
		Notes:           req.Notes,
	}
	if err := h.appointmentRepo.Create(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": a})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}
	a, err := h.appointmentRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": a})
}

// MyAppointments lists the appointments of the authenticated patient.
func (h *AppointmentHandler) MyAppointments(c *gin.Context) {
	p, err := h.patientRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient profile not found"})
		return
	}
	appts, err := h.appointmentRepo.ListByPatient(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// Reschedule moves a SCHEDULED appointment to a new time.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}
	a, err := h.appointmentRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if a.Status != domain.AppointmentScheduled {
		c.JSON(http.StatusConflict, gin.H{"error": "only scheduled appointments can be moved"})
		return
	}
	var req struct {
		StartsAt string `json:"starts_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil || startsAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid starts_at"})
		return
	}
	a.StartsAt = startsAt
	a.ReminderSentAt = nil // moved appointments get a fresh reminder
	if err := h.appointmentRepo.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": a})
}

// Cancel marks a scheduled appointment CANCELLED and notifies the patient.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}
	a, err := h.appointmentRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if a.Status != domain.AppointmentScheduled {
		c.JSON(http.StatusConflict, gin.H{"error": "appointment is not scheduled"})
		return
	}
	a.Status = domain.AppointmentCancelled
	if err := h.appointmentRepo.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel appointment"})
		return
	}
	if p, err := h.patientRepo.GetByID(a.PatientID); err == nil {
		_ = h.notifSvc.NotifyAppointmentCancelled(p.UserID, a.ID)
	}
	c.JSON(http.StatusOK, gin.H{"appointment": a})
}
