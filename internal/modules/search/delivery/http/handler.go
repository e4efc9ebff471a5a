package handler

import (
	"net/http"

	"anoa.com/edapp/internal/entity"
	authService "anoa.com/edapp/internal/modules/auth/service"
	search "anoa.com/edapp/internal/modules/search/service"
	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/response"
	"anoa.com/edapp/pkg/validator"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service search.MemberSearchService
}

func NewSearchHandler(service search.MemberSearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

type searchURI struct {
	SchoolID uint `uri:"school_id" binding:"required"`
}

type searchQuery struct {
	Q     string `form:"q"`
	Role  string `form:"role" binding:"omitempty,oneof=teacher student"`
	Limit int64  `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SearchMembers looks up teachers and students of one school by name,
// email or sap id. Non-admin callers are limited to their own school.
func (h *SearchHandler) SearchMembers(c *gin.Context) {
	var uri searchURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if v, ok := c.Get("claims"); ok {
		claims := v.(*authService.Claims)
		if claims.Role != entity.RoleAdmin && (claims.SchoolID == nil || *claims.SchoolID != uri.SchoolID) {
			response.ResponseError(c, apperror.ErrForbidden)
			return
		}
	}

	if q.Limit == 0 {
		q.Limit = 20
	}

	members, err := h.service.Search(uri.SchoolID, q.Q, q.Role, q.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
