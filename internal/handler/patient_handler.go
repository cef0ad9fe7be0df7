package handler

import (
	"net/http"
	"strconv"
	"time"

	"physiohub/internal/domain"
	"physiohub/internal/middleware"
	"physiohub/internal/repository"
	"physiohub/pkg/earnings"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientRepo   *repository.PatientRepository
	therapistRepo *repository.TherapistRepository
	treatmentRepo *repository.TreatmentRepository
	sessionRepo   *repository.SessionRepository
}

func NewPatientHandler(
	patientRepo *repository.PatientRepository,
	therapistRepo *repository.TherapistRepository,
	treatmentRepo *repository.TreatmentRepository,
	sessionRepo *repository.SessionRepository,
) *PatientHandler {
	return &PatientHandler{
		patientRepo:   patientRepo,
		therapistRepo: therapistRepo,
		treatmentRepo: treatmentRepo,
		sessionRepo:   sessionRepo,
	}
}

// List returns the full patient roster (staff only).
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patientRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list patients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return
	}
	p, err := h.patientRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": p})
}

// UpdateIntake edits clinical intake fields. Patients can edit their own
// address; diagnosis and referral are staff fields, checked here by role.
func (h *PatientHandler) UpdateIntake(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return
	}
	p, err := h.patientRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	role := middleware.GetRole(c)
	if role == domain.RolePatient && p.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your profile"})
		return
	}
	var req struct {
		DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD
		Address     *string `json:"address"`
		Diagnosis   *string `json:"diagnosis"`
		ReferredBy  *string `json:"referred_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(domain.DateLayout, *req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth"})
			return
		}
		p.DateOfBirth = &dob
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if role != domain.RolePatient {
		if req.Diagnosis != nil {
			p.Diagnosis = *req.Diagnosis
		}
		if req.ReferredBy != nil {
			p.ReferredBy = *req.ReferredBy
		}
	}
	if err := h.patientRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update patient"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": p})
}

// AssignTherapist moves a patient onto a therapist's caseload.
func (h *PatientHandler) AssignTherapist(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return
	}
	var req struct {
		TherapistID uint `json:"therapist_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.therapistRepo.GetByID(req.TherapistID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
		return
	}
	if err := h.patientRepo.AssignTherapist(uint(id), req.TherapistID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign therapist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MyProfile resolves the patient profile of the authenticated user.
func (h *PatientHandler) MyProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	p, err := h.patientRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": p})
}

// Progress returns the patient's treatment plans, their session history and
// the attendance rollup over it. Patients see their own; staff see any.
func (h *PatientHandler) Progress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return
	}
	p, err := h.patientRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	if middleware.GetRole(c) == domain.RolePatient && p.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your profile"})
		return
	}
	plans, err := h.treatmentRepo.ListPlansByPatient(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plans"})
		return
	}
	sessions, err := h.sessionRepo.ListByPatient(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}
	rows := make([]earnings.Record, 0, len(sessions))
	for i := range sessions {
		rows = append(rows, sessions[i].EarningsRecord())
	}
	result := earnings.AggregateByDate(rows)
	c.JSON(http.StatusOK, gin.H{
		"patient":    p,
		"plans":      plans,
		"sessions":   sessions,
		"attendance": result.Summary,
	})
}
