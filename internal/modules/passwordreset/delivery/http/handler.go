package handler

import (
	"net/http"

	"anoa.com/edapp/internal/modules/passwordreset/dto"
	reset "anoa.com/edapp/internal/modules/passwordreset/service"
	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/response"
	"anoa.com/edapp/pkg/validator"
	"github.com/gin-gonic/gin"
)

type PasswordResetHandler struct {
	service reset.PasswordResetService
}

func NewPasswordResetHandler(service reset.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{service: service}
}

func (h *PasswordResetHandler) CheckEmail(c *gin.Context) {
	var input dto.EmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	exists, err := h.service.CheckEmailExists(c.Request.Context(), input.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EmailExistsResponse{Exists: exists})
}

func (h *PasswordResetHandler) SendOTP(c *gin.Context) {
	var input dto.EmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	exists, err := h.service.CheckEmailExists(c.Request.Context(), input.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !exists {
		response.ResponseError(c, apperror.New(http.StatusNotFound, "email is not registered", apperror.ErrNotFound))
		return
	}

	if err := h.service.RequestReset(c.Request.Context(), input.Email); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

func (h *PasswordResetHandler) VerifyOTP(c *gin.Context) {
	var input dto.VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	valid, err := h.service.VerifyCode(c.Request.Context(), input.Email, input.OTP)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyOTPResponse{Valid: valid})
}

func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var input dto.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.CompleteReset(c.Request.Context(), input.Email, input.OTP, input.NewPassword); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}
