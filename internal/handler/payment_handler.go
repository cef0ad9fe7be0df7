package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"physiohub/internal/domain"
	"physiohub/internal/middleware"
	"physiohub/internal/models"
	"physiohub/internal/repository"
	"physiohub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentRepo   *repository.PaymentRepository
	treatmentRepo *repository.TreatmentRepository
	patientRepo   *repository.PatientRepository
	notifSvc      *service.NotificationService
}

func NewPaymentHandler(
	paymentRepo *repository.PaymentRepository,
	treatmentRepo *repository.TreatmentRepository,
	patientRepo *repository.PatientRepository,
	notifSvc *service.NotificationService,
) *PaymentHandler {
	return &PaymentHandler{
		paymentRepo:   paymentRepo,
		treatmentRepo: treatmentRepo,
		patientRepo:   patientRepo,
		notifSvc:      notifSvc,
	}
}

type RecordPaymentRequest struct {
	PatientID uint    `json:"patient_id" binding:"required"`
	PlanID    *uint   `json:"plan_id"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required,oneof=CASH CARD TRANSFER INSURANCE"`
	Notes     string  `json:"notes"`
}

// Record writes a COMPLETED payment taken at the front desk and marks the
// plan paid once the completed total covers the discounted price.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patient, err := h.patientRepo.GetByID(req.PatientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	if req.PlanID != nil {
		if _, err := h.treatmentRepo.GetPlan(*req.PlanID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
	}
	now := time.Now()
	p := &models.Payment{
		PatientID:    req.PatientID,
		PlanID:       req.PlanID,
		Amount:       req.Amount,
		Method:       req.Method,
		Status:       domain.PaymentCompleted,
		Reference:    uuid.NewString(),
		ReceivedByID: middleware.GetUserID(c),
		Notes:        req.Notes,
		CompletedAt:  &now,
	}
	if err := h.paymentRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
		return
	}
	if req.PlanID != nil {
		h.settlePlan(*req.PlanID)
	}
	_ = h.notifSvc.NotifyPaymentReceived(patient.UserID, p.Amount, p.Reference)
	c.JSON(http.StatusCreated, gin.H{"payment": p})
}

// settlePlan flips IsPaid once completed payments cover the plan price.
func (h *PaymentHandler) settlePlan(planID uint) {
	plan, err := h.treatmentRepo.GetPlan(planID)
	if err != nil || plan.IsPaid {
		return
	}
	total, err := h.paymentRepo.TotalCompletedForPlan(planID)
	if err != nil {
		log.Printf("[payment] total for plan %d: %v", planID, err)
		return
	}
	if total >= plan.TotalPrice {
		plan.IsPaid = true
		if err := h.treatmentRepo.UpdatePlan(plan); err != nil {
			log.Printf("[payment] mark plan %d paid: %v", planID, err)
		}
	}
}

func (h *PaymentHandler) Get(c *gin.Context) {
	ref := c.Param("reference")
	p, err := h.paymentRepo.GetByReference(ref)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": p})
}

func (h *PaymentHandler) ListByPatient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return
	}
	payments, err := h.paymentRepo.ListByPatient(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// MyPayments lists the authenticated patient's payment history.
func (h *PaymentHandler) MyPayments(c *gin.Context) {
	p, err := h.patientRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient profile not found"})
		return
	}
	payments, err := h.paymentRepo.ListByPatient(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
