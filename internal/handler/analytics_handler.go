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

// AnalyticsHandler serves the earnings dashboards. All numbers come from
// pkg/earnings, recomputed from session records on every request.
type AnalyticsHandler struct {
	sessionRepo   *repository.SessionRepository
	therapistRepo *repository.TherapistRepository
}

func NewAnalyticsHandler(sessionRepo *repository.SessionRepository, therapistRepo *repository.TherapistRepository) *AnalyticsHandler {
	return &AnalyticsHandler{sessionRepo: sessionRepo, therapistRepo: therapistRepo}
}

// MyEarnings is the therapist's own dashboard.
func (h *AnalyticsHandler) MyEarnings(c *gin.Context) {
	t, err := h.therapistRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist profile not found"})
		return
	}
	h.respondTherapistEarnings(c, t.ID)
}

// TherapistEarnings is the admin/doctor view of one therapist's numbers.
func (h *AnalyticsHandler) TherapistEarnings(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid therapist id"})
		return
	}
	if _, err := h.therapistRepo.GetByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist not found"})
		return
	}
	h.respondTherapistEarnings(c, uint(id))
}

func (h *AnalyticsHandler) respondTherapistEarnings(c *gin.Context, therapistID uint) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	records, err := h.sessionRepo.ListByTherapist(therapistID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}
	rows := make([]earnings.Record, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].EarningsRecord())
	}
	c.JSON(http.StatusOK, earnings.AggregateByDate(rows))
}

// ClinicEarnings rolls up every therapist's sessions for the period.
func (h *AnalyticsHandler) ClinicEarnings(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	records, err := h.sessionRepo.ListAll(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}
	rows := make([]earnings.Record, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].EarningsRecord())
	}
	c.JSON(http.StatusOK, earnings.AggregateByDate(rows))
}

// Preview aggregates caller-supplied raw records without touching the
// database. Used for imports from spreadsheets and legacy exports, so rows
// pass through the lenient normalizer first.
func (h *AnalyticsHandler) Preview(c *gin.Context) {
	var req struct {
		Records []map[string]any `json:"records" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows := earnings.NormalizeAll(req.Records)
	c.JSON(http.StatusOK, gin.H{
		"accepted": len(rows),
		"skipped":  len(req.Records) - len(rows),
		"result":   earnings.AggregateByDate(rows),
	})
}

// parseDateRange validates optional from/to query params (YYYY-MM-DD).
// Writes the error response itself when the input is bad.
func parseDateRange(c *gin.Context) (from, to string, ok bool) {
	from, to = c.Query("from"), c.Query("to")
	if from != "" && !validDate(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return "", "", false
	}
	if to != "" && !validDate(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return "", "", false
	}
	return from, to, true
}

func validDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}

func todayDate() string {
	return time.Now().Format(domain.DateLayout)
}
