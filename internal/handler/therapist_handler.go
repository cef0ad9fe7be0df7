package handler

import (
	"net/http"
	"strconv"
	"time"

	"physiohub/internal/middleware"
	"physiohub/internal/repository"

	"github.com/gin-gonic/gin"
)

type TherapistHandler struct {
	therapistRepo   *repository.TherapistRepository
	patientRepo     *repository.PatientRepository
	appointmentRepo *repository.AppointmentRepository
	feedbackRepo    *repository.FeedbackRepository
}

func NewTherapistHandler(
	therapistRepo *repository.TherapistRepository,
	patientRepo *repository.PatientRepository,
	appointmentRepo *repository.AppointmentRepository,
	feedbackRepo *repository.FeedbackRepository,
) *TherapistHandler {
	return &TherapistHandler{
		therapistRepo:   therapistRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		feedbackRepo:    feedbackRepo,
	}
}

func (h *TherapistHandler) List(c *gin.Context) {
	therapists, err := h.therapistRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list therapists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"therapists": therapists})
}

func (h *TherapistHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}
	t, err := h.therapistRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
		return
	}
	rating, _ := h.feedbackRepo.AverageRating(t.ID)
	c.JSON(http.StatusOK, gin.H{"therapist": t, "average_rating": rating})
}

// UpdateMyProfile lets a therapist edit their own clinical details.
func (h *TherapistHandler) UpdateMyProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	t, err := h.therapistRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist profile not found"})
		return
	}
	var req struct {
		Specialization  *string  `json:"specialization"`
		Bio             *string  `json:"bio"`
		SessionFee      *float64 `json:"session_fee"`
		YearsExperience *int     `json:"years_experience"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Specialization != nil {
		t.Specialization = *req.Specialization
	}
	if req.Bio != nil {
		t.Bio = *req.Bio
	}
	if req.SessionFee != nil && *req.SessionFee >= 0 {
		t.SessionFee = *req.SessionFee
	}
	if req.YearsExperience != nil && *req.YearsExperience >= 0 {
		t.YearsExperience = *req.YearsExperience
	}
	if err := h.therapistRepo.Update(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"therapist": t})
}

// MyPatients returns the caseload of the authenticated therapist.
func (h *TherapistHandler) MyPatients(c *gin.Context) {
	userID := middleware.GetUserID(c)
	t, err := h.therapistRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist profile not found"})
		return
	}
	patients, err := h.patientRepo.ListByTherapist(t.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list patients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// MySchedule returns the therapist's appointments in a date range
// (defaults to the coming 7 days).
func (h *TherapistHandler) MySchedule(c *gin.Context) {
	userID := middleware.GetUserID(c)
	t, err := h.therapistRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist profile not found"})
		return
	}
	from, to, err := parseScheduleRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	appts, err := h.appointmentRepo.ListByTherapist(t.ID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func parseScheduleRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.Truncate(24 * time.Hour)
	to := from.Add(7 * 24 * time.Hour)
	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return from, to, err
		}
		// include the whole end day
		to = t.Add(24 * time.Hour)
	}
	return from, to, nil
}
