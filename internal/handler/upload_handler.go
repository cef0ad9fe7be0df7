package handler

import (
	"fmt"
	"log"
	"net/http"

	"physiohub/internal/middleware"
	"physiohub/internal/repository"
	"physiohub/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	userRepo   *repository.UserRepository
	cloudinary cloudinary.Client
}

func NewUploadHandler(userRepo *repository.UserRepository, cld cloudinary.Client) *UploadHandler {
	return &UploadHandler{userRepo: userRepo, cloudinary: cld}
}

// Avatar uploads a profile picture and stores the optimized URL.
func (h *UploadHandler) Avatar(c *gin.Context) {
	if h.cloudinary == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer f.Close()
	publicID := fmt.Sprintf("avatar_%d_%s", userID, uuid.NewString())
	url, _, err := h.cloudinary.UploadImage(c.Request.Context(), f, "avatars", publicID)
	if err != nil {
		log.Printf("[upload] avatar for user %d: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	u.AvatarURL = url
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
