package handler

import (
	"log"
	"net/http"
	"strconv"

	"physiohub/internal/domain"
	"physiohub/internal/middleware"
	"physiohub/internal/models"
	"physiohub/internal/repository"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler turns completed (or missed) appointments into session
// records, the rows the earnings dashboards aggregate.
type AttendanceHandler struct {
	appointmentRepo *repository.AppointmentRepository
	sessionRepo     *repository.SessionRepository
	treatmentRepo   *repository.TreatmentRepository
	therapistRepo   *repository.TherapistRepository
}

func NewAttendanceHandler(
	appointmentRepo *repository.AppointmentRepository,
	sessionRepo *repository.SessionRepository,
	treatmentRepo *repository.TreatmentRepository,
	therapistRepo *repository.TherapistRepository,
) *AttendanceHandler {
	return &AttendanceHandler{
		appointmentRepo: appointmentRepo,
		sessionRepo:     sessionRepo,
		treatmentRepo:   treatmentRepo,
		therapistRepo:   therapistRepo,
	}
}

type MarkAttendanceRequest struct {
	Attended *bool `json:"attended" binding:"required"`
	// Earned overrides the collected amount; defaults to the session fee
	// when attended, 0 otherwise.
	Earned *float64 `json:"earned"`
}

// Mark closes out an appointment: sets COMPLETED or NO_SHOW, writes the
// session record, and burns one session off the plan when attended.
func (h *AttendanceHandler) Mark(c *gin.Context) {
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
		c.JSON(http.StatusConflict, gin.H{"error": "appointment already closed"})
		return
	}
	if existing, err := h.sessionRepo.GetByAppointment(a.ID); err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "attendance already marked"})
		return
	}
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	attended := *req.Attended

	fee := h.resolveFee(a)
	earned := 0.0
	if attended {
		earned = fee
		if req.Earned != nil && *req.Earned >= 0 {
			earned = *req.Earned
		}
	}

	apptID := a.ID
	record := &models.SessionRecord{
		AppointmentID: &apptID,
		PlanID:        a.PlanID,
		TherapistID:   a.TherapistID,
		PatientID:     a.PatientID,
		Date:          a.StartsAt.Format(domain.DateLayout),
		Fee:           fee,
		Attended:      attended,
		Earned:        earned,
		MarkedByID:    middleware.GetUserID(c),
	}
	if err := h.sessionRepo.Create(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record session"})
		return
	}

	if attended {
		a.Status = domain.AppointmentCompleted
		if a.PlanID != nil {
			if err := h.treatmentRepo.DecrementRemaining(*a.PlanID); err != nil {
				log.Printf("[attendance] decrement plan %d: %v", *a.PlanID, err)
			}
		}
	} else {
		a.Status = domain.AppointmentNoShow
	}
	if err := h.appointmentRepo.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": a, "session": record})
}

// resolveFee prefers the plan's per-session share of the discounted package
// price, falling back to the therapist's default session fee.
func (h *AttendanceHandler) resolveFee(a *models.Appointment) float64 {
	if a.PlanID != nil {
		if plan, err := h.treatmentRepo.GetPlan(*a.PlanID); err == nil {
			if fee := plan.SessionFee(plan.Template.SessionsCount); fee > 0 {
				return fee
			}
		}
	}
	if t, err := h.therapistRepo.GetByID(a.TherapistID); err == nil {
		return t.SessionFee
	}
	return 0
}

type WalkInSessionRequest struct {
	PatientID   uint     `json:"patient_id" binding:"required"`
	TherapistID uint     `json:"therapist_id" binding:"required"`
	Date        string   `json:"date"` // YYYY-MM-DD, defaults to today
	Fee         float64  `json:"fee" binding:"min=0"`
	Attended    bool     `json:"attended"`
	Earned      *float64 `json:"earned"`
}

// RecordWalkIn writes a session record with no appointment behind it, for
// drop-in sessions and backfilled history.
func (h *AttendanceHandler) RecordWalkIn(c *gin.Context) {
	var req WalkInSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := req.Date
	if date == "" {
		date = todayDate()
	} else if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	fee := req.Fee
	if fee == 0 {
		if t, err := h.therapistRepo.GetByID(req.TherapistID); err == nil {
			fee = t.SessionFee
		}
	}
	earned := 0.0
	if req.Attended {
		earned = fee
		if req.Earned != nil && *req.Earned >= 0 {
			earned = *req.Earned
		}
	}
	record := &models.SessionRecord{
		TherapistID: req.TherapistID,
		PatientID:   req.PatientID,
		Date:        date,
		Fee:         fee,
		Attended:    req.Attended,
		Earned:      earned,
		MarkedByID:  middleware.GetUserID(c),
	}
	if err := h.sessionRepo.Create(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": record})
}
