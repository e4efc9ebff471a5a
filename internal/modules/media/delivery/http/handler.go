package handler

import (
	"net/http"
	"strconv"

	"anoa.com/edapp/internal/entity"
	media "anoa.com/edapp/internal/modules/media/service"
	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/response"
	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	service media.MediaService
}

func NewMediaHandler(service media.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// ownerOrAdmin lets users manage their own image; admins manage any.
func ownerOrAdmin(c *gin.Context, userID uint) bool {
	if c.GetString("role") == string(entity.RoleAdmin) {
		return true
	}
	current, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return false
	}
	if current != userID {
		response.ResponseError(c, apperror.ErrForbidden)
		return false
	}
	return true
}

func (h *MediaHandler) PutProfileImage(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok || !ownerOrAdmin(c, userID) {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	if err := h.service.PutProfileImage(c.Request.Context(), userID, file); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "uploaded successfully"})
}

func (h *MediaHandler) RetrieveProfileImage(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	url, err := h.service.ProfileImageURL(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

func (h *MediaHandler) DeleteProfileImage(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok || !ownerOrAdmin(c, userID) {
		return
	}

	if err := h.service.DeleteProfileImage(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted successfully"})
}

func (h *MediaHandler) PutOrgIcon(c *gin.Context) {
	orgID, ok := parseID(c, "org_id")
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}

	if err := h.service.PutOrgIcon(c.Request.Context(), orgID, file); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "uploaded successfully"})
}

func (h *MediaHandler) RetrieveOrgIcon(c *gin.Context) {
	orgID, ok := parseID(c, "org_id")
	if !ok {
		return
	}

	url, err := h.service.OrgIconURL(c.Request.Context(), orgID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dataUrl": url})
}
