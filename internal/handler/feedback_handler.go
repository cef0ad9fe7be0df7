package handler

import (
	"net/http"
	"strconv"

	"physiohub/internal/middleware"
	"physiohub/internal/models"
	"physiohub/internal/repository"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackRepo  *repository.FeedbackRepository
	patientRepo   *repository.PatientRepository
	therapistRepo *repository.TherapistRepository
}

func NewFeedbackHandler(
	feedbackRepo *repository.FeedbackRepository,
	patientRepo *repository.PatientRepository,
	therapistRepo *repository.TherapistRepository,
) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackRepo:  feedbackRepo,
		patientRepo:   patientRepo,
		therapistRepo: therapistRepo,
	}
}

type SubmitFeedbackRequest struct {
	TherapistID *uint  `json:"therapist_id"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

// Submit records a patient's rating, optionally tied to a therapist.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	p, err := h.patientRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient profile not found"})
		return
	}
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TherapistID != nil {
		if _, err := h.therapistRepo.GetByID(*req.TherapistID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
			return
		}
	}
	f := &models.Feedback{
		PatientID:   p.ID,
		TherapistID: req.TherapistID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if err := h.feedbackRepo.Create(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit feedback"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": f})
}

// List pages through all feedback (staff view).
func (h *FeedbackHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	feedback, err := h.feedbackRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

// ByTherapist returns a therapist's feedback with their average rating.
func (h *FeedbackHandler) ByTherapist(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}
	feedback, err := h.feedbackRepo.ListByTherapist(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback"})
		return
	}
	rating, _ := h.feedbackRepo.AverageRating(uint(id))
	c.JSON(http.StatusOK, gin.H{"feedback": feedback, "average_rating": rating})
}
