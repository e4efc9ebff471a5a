package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/edapp/internal/entity"
	authService "anoa.com/edapp/internal/modules/auth/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubVerifier struct {
	tokens map[string]*authService.Claims
}

func (v stubVerifier) VerifyToken(tokenString string) (*authService.Claims, error) {
	if claims, ok := v.tokens[tokenString]; ok {
		return claims, nil
	}
	return nil, errors.New("unauthorized")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	school := uint(4)
	m := NewAuthMiddleware(stubVerifier{tokens: map[string]*authService.Claims{
		"admin-token":   {AdminID: 7, Role: entity.RoleAdmin},
		"student-token": {UserID: 7, Role: entity.RoleStudent, SchoolID: &school},
	}})

	r := gin.New()
	r.Use(RequestID())
	authed := r.Group("", m.RequireAuth())
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetUint("user_id"),
			"admin_id":  c.GetUint("admin_id"),
			"role":      c.GetString("role"),
			"school_id": c.GetUint("school_id"),
		})
	})
	authed.GET("/admin", m.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	authed.GET("/staff", m.RequireRole(entity.RoleAdmin, entity.RoleTeacher), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{"bearer", "/me", "Bearer student-token", http.StatusOK},
		{"query fallback", "/me?token=student-token", "", http.StatusOK},
		{"missing", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic student-token", http.StatusUnauthorized},
		{"invalid", "/me", "Bearer forged", http.StatusUnauthorized},
		{"admin ok", "/admin", "Bearer admin-token", http.StatusNoContent},
		{"admin denied", "/admin", "Bearer student-token", http.StatusForbidden},
		{"role list denied", "/staff", "Bearer student-token", http.StatusForbidden},
		{"role list ok", "/staff", "Bearer admin-token", http.StatusNoContent},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireAuthSetsContext(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"student-token", `{"admin_id":0,"role":"student","school_id":4,"user_id":7}`},
		// an admin never gets a user_id, even one that equals its admin id
		{"admin-token", `{"admin_id":7,"role":"admin","school_id":0,"user_id":0}`},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tt.token)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		if w.Body.String() != tt.want {
			t.Errorf("%s: body = %s, want %s", tt.token, w.Body.String(), tt.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated id %q is not a uuid", w.Header().Get(RequestIDHeader))
	}

	given := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != given {
		t.Errorf("request id = %q, want %q", got, given)
	}
}
