package handler

import (
	"log"
	"net/http"
	"strconv"

	"physiohub/internal/domain"
	"physiohub/internal/middleware"
	"physiohub/internal/models"
	"physiohub/internal/repository"
	"physiohub/internal/service"
	"physiohub/pkg/earnings"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminRepo     *repository.AdminRepository
	userRepo      *repository.UserRepository
	therapistRepo *repository.TherapistRepository
	treatmentRepo *repository.TreatmentRepository
	sessionRepo   *repository.SessionRepository
	auditRepo     *repository.AuditLogRepository
	authSvc       *service.AuthService
}

func NewAdminHandler(
	adminRepo *repository.AdminRepository,
	userRepo *repository.UserRepository,
	therapistRepo *repository.TherapistRepository,
	treatmentRepo *repository.TreatmentRepository,
	sessionRepo *repository.SessionRepository,
	auditRepo *repository.AuditLogRepository,
	authSvc *service.AuthService,
) *AdminHandler {
	return &AdminHandler{
		adminRepo:     adminRepo,
		userRepo:      userRepo,
		therapistRepo: therapistRepo,
		treatmentRepo: treatmentRepo,
		sessionRepo:   sessionRepo,
		auditRepo:     auditRepo,
		authSvc:       authSvc,
	}
}

// Dashboard returns roster counts plus the clinic-wide earnings summary for
// the requested period (defaults to all recorded sessions).
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats()
	if err != nil {
		log.Printf("[admin] dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	records, err := h.sessionRepo.ListAll(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}
	rows := make([]earnings.Record, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].EarningsRecord())
	}
	result := earnings.AggregateByDate(rows)
	c.JSON(http.StatusOK, gin.H{
		"stats":    stats,
		"earnings": result,
	})
}

type CreateStaffRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN DOCTOR THERAPIST"`

	// Therapist onboarding details, ignored for other roles.
	Specialization string  `json:"specialization"`
	LicenseNumber  string  `json:"license_number"`
	SessionFee     float64 `json:"session_fee"`
}

// CreateStaff provisions an ADMIN, DOCTOR or THERAPIST account. Therapists
// also get a clinical profile.
func (h *AdminHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, _, _, err := h.authSvc.Register(req.Email, req.Username, req.Password, req.Role, req.FullName)
	if err != nil {
		switch err {
		case service.ErrEmailExists, service.ErrUsernameExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		}
		return
	}
	if u.Role == domain.RoleTherapist {
		profile := &models.TherapistProfile{
			UserID:         u.ID,
			Specialization: req.Specialization,
			LicenseNumber:  req.LicenseNumber,
			SessionFee:     req.SessionFee,
		}
		if err := h.therapistRepo.Create(profile); err != nil {
			log.Printf("[admin] therapist profile for user %d: %v", u.ID, err)
		}
	}
	adminID := middleware.GetUserID(c)
	_ = h.auditRepo.Create(&models.AuditLog{
		UserID:     &adminID,
		Action:     "create_staff",
		Resource:   "user",
		ResourceID: strconv.FormatUint(uint64(u.ID), 10),
		IP:         c.ClientIP(),
	})
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

// SetUserActive activates or deactivates any account. Deactivated users
// cannot log in or refresh tokens.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.userRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	u.Active = *req.Active
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	adminID := middleware.GetUserID(c)
	action := "deactivate_user"
	if u.Active {
		action = "activate_user"
	}
	_ = h.auditRepo.Create(&models.AuditLog{
		UserID:     &adminID,
		Action:     action,
		Resource:   "user",
		ResourceID: strconv.FormatUint(id, 10),
		IP:         c.ClientIP(),
	})
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// ListUsers returns accounts filtered by role.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role query parameter required"})
		return
	}
	users, err := h.userRepo.ListByRole(role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type PlanTemplateRequest struct {
	Description   string  `json:"description" binding:"required"`
	SessionsCount uint    `json:"sessions_count" binding:"required,min=1"`
	Price         float64 `json:"price" binding:"required,min=0"`
}

func (h *AdminHandler) CreatePlanTemplate(c *gin.Context) {
	var req PlanTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := &models.PlanTemplate{
		Description:   req.Description,
		SessionsCount: req.SessionsCount,
		Price:         req.Price,
		Active:        true,
	}
	if err := h.treatmentRepo.CreateTemplate(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create template"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": t})
}

func (h *AdminHandler) ListPlanTemplates(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	templates, err := h.treatmentRepo.ListTemplates(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *AdminHandler) UpdatePlanTemplate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}
	t, err := h.treatmentRepo.GetTemplate(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}
	var req struct {
		Description   *string  `json:"description"`
		SessionsCount *uint    `json:"sessions_count"`
		Price         *float64 `json:"price"`
		Active        *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.SessionsCount != nil && *req.SessionsCount > 0 {
		t.SessionsCount = *req.SessionsCount
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	if err := h.treatmentRepo.UpdateTemplate(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": t})
}

// ListAuditLogs pages through the audit trail, newest first.
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, err := h.auditRepo.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
