package handler

import (
	"net/http"
	"strconv"
	"time"

	"physiohub/internal/domain"
	"physiohub/internal/middleware"
	"physiohub/internal/models"
	"physiohub/internal/repository"

	"github.com/gin-gonic/gin"
)

type TreatmentHandler struct {
	treatmentRepo *repository.TreatmentRepository
	patientRepo   *repository.PatientRepository
	therapistRepo *repository.TherapistRepository
}

func NewTreatmentHandler(
	treatmentRepo *repository.TreatmentRepository,
	patientRepo *repository.PatientRepository,
	therapistRepo *repository.TherapistRepository,
) *TreatmentHandler {
	return &TreatmentHandler{
		treatmentRepo: treatmentRepo,
		patientRepo:   patientRepo,
		therapistRepo: therapistRepo,
	}
}

type CreatePlanRequest struct {
	PatientID   uint    `json:"patient_id" binding:"required"`
	TherapistID uint    `json:"therapist_id" binding:"required"`
	TemplateID  uint    `json:"template_id" binding:"required"`
	StartDate   string  `json:"start_date"`                          // YYYY-MM-DD, defaults to today
	Discount    float64 `json:"discount" binding:"min=0,max=100"`    // percentage
	Notes       string  `json:"notes"`
}

// CreatePlan sells a template package to a patient. Remaining sessions and
// the discounted total are fixed at purchase time.
func (h *TreatmentHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tmpl, err := h.treatmentRepo.GetTemplate(req.TemplateID)
	if err != nil || !tmpl.Active {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan template not found"})
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
	start := req.StartDate
	if start == "" {
		start = time.Now().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, start); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	plan := &models.TreatmentPlan{
		PatientID:   req.PatientID,
		TherapistID: req.TherapistID,
		TemplateID:  req.TemplateID,
		StartDate:   start,
		Remaining:   tmpl.SessionsCount,
		Discount:    req.Discount,
		TotalPrice:  tmpl.Price * (1 - req.Discount/100),
		Notes:       req.Notes,
	}
	if err := h.treatmentRepo.CreatePlan(plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create plan"})
		return
	}
	// keep caseload assignment in sync with the plan
	_ = h.patientRepo.AssignTherapist(req.PatientID, req.TherapistID)
	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

func (h *TreatmentHandler) GetPlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}
	plan, err := h.treatmentRepo.GetPlan(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	if middleware.GetRole(c) == domain.RolePatient {
		p, err := h.patientRepo.GetByUserID(middleware.GetUserID(c))
		if err != nil || p.ID != plan.PatientID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your plan"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *TreatmentHandler) ListPlansByPatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return
	}
	plans, err := h.treatmentRepo.ListPlansByPatient(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// MyPlans lists the treatment plans of the authenticated patient.
func (h *TreatmentHandler) MyPlans(c *gin.Context) {
	p, err := h.patientRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient profile not found"})
		return
	}
	plans, err := h.treatmentRepo.ListPlansByPatient(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// UpdatePlanNotes lets staff append clinical notes to a plan.
func (h *TreatmentHandler) UpdatePlanNotes(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}
	plan, err := h.treatmentRepo.GetPlan(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	var req struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan.Notes = req.Notes
	if err := h.treatmentRepo.UpdatePlan(plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
