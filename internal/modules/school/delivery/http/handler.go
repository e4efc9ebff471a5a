package handler

import (
	"net/http"

	"anoa.com/edapp/internal/modules/school/dto"
	school "anoa.com/edapp/internal/modules/school/service"
	"anoa.com/edapp/pkg/response"
	"anoa.com/edapp/pkg/validator"
	"github.com/gin-gonic/gin"
)

type SchoolHandler struct {
	service school.SchoolService
}

func NewSchoolHandler(service school.SchoolService) *SchoolHandler {
	return &SchoolHandler{service: service}
}

func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schoolData": schools})
}

func (h *SchoolHandler) Get(c *gin.Context) {
	var uri dto.SchoolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	details, err := h.service.Get(c.Request.Context(), uri.SchoolID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schoolDetails": details})
}

func (h *SchoolHandler) Create(c *gin.Context) {
	var input dto.SchoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "School added successfully", "school": created})
}

func (h *SchoolHandler) Update(c *gin.Context) {
	var uri dto.SchoolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	var input dto.SchoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), uri.SchoolID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "School updated successfully", "school": updated})
}

func (h *SchoolHandler) Delete(c *gin.Context) {
	var uri dto.SchoolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.SchoolID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "School deleted successfully"})
}

func (h *SchoolHandler) UserCounts(c *gin.Context) {
	var uri dto.SchoolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	counts, err := h.service.UserCounts(c.Request.Context(), uri.SchoolID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userCounts": counts})
}
