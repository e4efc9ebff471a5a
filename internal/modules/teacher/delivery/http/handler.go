package handler

import (
	"net/http"

	"anoa.com/edapp/internal/modules/teacher/dto"
	teacher "anoa.com/edapp/internal/modules/teacher/service"
	"anoa.com/edapp/pkg/response"
	"anoa.com/edapp/pkg/validator"
	"github.com/gin-gonic/gin"
)

type TeacherHandler struct {
	service teacher.TeacherService
}

func NewTeacherHandler(service teacher.TeacherService) *TeacherHandler {
	return &TeacherHandler{service: service}
}

func (h *TeacherHandler) ListForSchool(c *gin.Context) {
	var uri dto.SchoolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	teachers, err := h.service.ListForSchool(c.Request.Context(), uri.SchoolID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teachersData": teachers})
}

func (h *TeacherHandler) Get(c *gin.Context) {
	var uri dto.TeacherURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher path"})
		return
	}

	details, err := h.service.Get(c.Request.Context(), uri.SchoolID, uri.UserID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teacherDetails": details})
}

func (h *TeacherHandler) Create(c *gin.Context) {
	var uri dto.SchoolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	var input dto.TeacherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	login, err := h.service.Create(c.Request.Context(), uri.SchoolID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTeacherResponse{
		Message: "Teacher added successfully",
		UserID:  login.UserID,
		SapID:   login.SapID,
	})
}

func (h *TeacherHandler) Update(c *gin.Context) {
	var uri dto.TeacherURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher path"})
		return
	}

	var input dto.TeacherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.Update(c.Request.Context(), uri.SchoolID, uri.UserID, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Teacher updated successfully"})
}

func (h *TeacherHandler) Delete(c *gin.Context) {
	var uri dto.TeacherURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher path"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.SchoolID, uri.UserID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Teacher deleted successfully"})
}
