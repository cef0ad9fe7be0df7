package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"physiohub/internal/middleware"
	"physiohub/internal/models"
	"physiohub/internal/repository"
	"physiohub/internal/service"
	"physiohub/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExerciseHandler struct {
	exerciseRepo  *repository.ExerciseRepository
	treatmentRepo *repository.TreatmentRepository
	patientRepo   *repository.PatientRepository
	cloudinary    cloudinary.Client
	notifSvc      *service.NotificationService
}

func NewExerciseHandler(
	exerciseRepo *repository.ExerciseRepository,
	treatmentRepo *repository.TreatmentRepository,
	patientRepo *repository.PatientRepository,
	cld cloudinary.Client,
	notifSvc *service.NotificationService,
) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseRepo:  exerciseRepo,
		treatmentRepo: treatmentRepo,
		patientRepo:   patientRepo,
		cloudinary:    cld,
		notifSvc:      notifSvc,
	}
}

// Assign adds a home-program exercise to a treatment plan. Multipart form:
// exercise fields plus an optional demonstration video.
func (h *ExerciseHandler) Assign(c *gin.Context) {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}
	plan, err := h.treatmentRepo.GetPlan(uint(planID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}
	sets, _ := strconv.Atoi(c.DefaultPostForm("sets", "0"))
	reps, _ := strconv.Atoi(c.DefaultPostForm("reps", "0"))

	e := &models.Exercise{
		PlanID:       uint(planID),
		Title:        title,
		Description:  c.PostForm("description"),
		Sets:         sets,
		Reps:         reps,
		Frequency:    c.PostForm("frequency"),
		AssignedByID: middleware.GetUserID(c),
	}

	if fileHeader, err := c.FormFile("video"); err == nil && h.cloudinary != nil {
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read video"})
			return
		}
		defer f.Close()
		publicID := fmt.Sprintf("exercise_%d_%s", planID, uuid.NewString())
		url, thumb, err := h.cloudinary.UploadVideo(c.Request.Context(), f, "exercises", publicID)
		if err != nil {
			log.Printf("[exercise] video upload: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "video upload failed"})
			return
		}
		e.VideoURL = url
		e.ThumbnailURL = thumb
	}

	if err := h.exerciseRepo.Create(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create exercise"})
		return
	}
	if p, err := h.patientRepo.GetByID(plan.PatientID); err == nil {
		_ = h.notifSvc.NotifyExerciseAssigned(p.UserID, e.Title, plan.ID)
	}
	c.JSON(http.StatusCreated, gin.H{"exercise": e})
}

func (h *ExerciseHandler) ListByPlan(c *gin.Context) {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}
	exercises, err := h.exerciseRepo.ListByPlan(uint(planID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list exercises"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

func (h *ExerciseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exercise id"})
		return
	}
	e, err := h.exerciseRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
		return
	}
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Sets        *int    `json:"sets"`
		Reps        *int    `json:"reps"`
		Frequency   *string `json:"frequency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != nil && *req.Title != "" {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Sets != nil && *req.Sets >= 0 {
		e.Sets = *req.Sets
	}
	if req.Reps != nil && *req.Reps >= 0 {
		e.Reps = *req.Reps
	}
	if req.Frequency != nil {
		e.Frequency = *req.Frequency
	}
	if err := h.exerciseRepo.Update(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update exercise"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercise": e})
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exercise id"})
		return
	}
	if err := h.exerciseRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete exercise"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
