package handler

import (
	"net/http"

	"anoa.com/edapp/internal/modules/mentor/dto"
	mentor "anoa.com/edapp/internal/modules/mentor/service"
	"anoa.com/edapp/pkg/response"
	"anoa.com/edapp/pkg/validator"
	"github.com/gin-gonic/gin"
)

type MentorHandler struct {
	service mentor.MentorService
}

func NewMentorHandler(service mentor.MentorService) *MentorHandler {
	return &MentorHandler{service: service}
}

func (h *MentorHandler) ListAll(c *gin.Context) {
	mentors, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentorsData": mentors})
}

func (h *MentorHandler) ListNames(c *gin.Context) {
	names, err := h.service.ListNames(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentors": names})
}

func (h *MentorHandler) Get(c *gin.Context) {
	var uri dto.MentorURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mentor id"})
		return
	}

	details, err := h.service.Get(c.Request.Context(), uri.MentorID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentorDetails": details})
}

func (h *MentorHandler) Create(c *gin.Context) {
	var input dto.MentorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Mentor added successfully", "mentor": created})
}

func (h *MentorHandler) Update(c *gin.Context) {
	var uri dto.MentorURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mentor id"})
		return
	}

	var input dto.MentorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), uri.MentorID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mentor updated successfully", "mentor": updated})
}

func (h *MentorHandler) Delete(c *gin.Context) {
	var uri dto.MentorURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mentor id"})
		return
	}

	removed, err := h.service.Delete(c.Request.Context(), uri.MentorID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteMentorResponse{
		Message:         "Mentor and associated students deleted successfully",
		StudentsRemoved: removed,
	})
}
