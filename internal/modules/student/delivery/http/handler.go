package handler

import (
	"net/http"

	"anoa.com/edapp/internal/modules/student/dto"
	student "anoa.com/edapp/internal/modules/student/service"
	"anoa.com/edapp/pkg/response"
	"anoa.com/edapp/pkg/validator"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	service student.StudentService
}

func NewStudentHandler(service student.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

func (h *StudentHandler) ListForSchool(c *gin.Context) {
	var uri dto.SchoolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	students, err := h.service.ListForSchool(c.Request.Context(), uri.SchoolID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"studentsData": students})
}

func (h *StudentHandler) Get(c *gin.Context) {
	var uri dto.StudentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student path"})
		return
	}

	details, err := h.service.Get(c.Request.Context(), uri.SchoolID, uri.UserID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"studentDetails": details})
}

func (h *StudentHandler) Create(c *gin.Context) {
	var uri dto.SchoolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid school id"})
		return
	}

	var input dto.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	login, err := h.service.Create(c.Request.Context(), uri.SchoolID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateStudentResponse{
		Message: "Student added successfully",
		UserID:  login.UserID,
		SapID:   login.SapID,
	})
}

func (h *StudentHandler) Update(c *gin.Context) {
	var uri dto.StudentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student path"})
		return
	}

	var input dto.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.Update(c.Request.Context(), uri.SchoolID, uri.UserID, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student updated successfully"})
}

func (h *StudentHandler) Delete(c *gin.Context) {
	var uri dto.StudentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student path"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.SchoolID, uri.UserID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}
