package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

type stubService struct {
	exists     bool
	requested  []string
	requestErr error
	valid      bool
	resetErr   error
	resetCode  string
}

func (s *stubService) RequestReset(ctx context.Context, email string) error {
	s.requested = append(s.requested, email)
	return s.requestErr
}

func (s *stubService) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	return s.valid, nil
}

func (s *stubService) CompleteReset(ctx context.Context, email, code, newPassword string) error {
	s.resetCode = code
	return s.resetErr
}

func (s *stubService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists, nil
}

func (s *stubService) PurgeExpired(ctx context.Context) (int64, error) { return 0, nil }

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPasswordResetHandler(svc)
	r := gin.New()
	r.POST("/send-otp", h.SendOTP)
	r.POST("/verify-otp", h.VerifyOTP)
	r.POST("/reset-password", h.ResetPassword)
	return r
}

func do(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendOTP(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubService
		body       string
		wantStatus int
		wantSent   bool
	}{
		{"registered", &stubService{exists: true}, `{"email":"a@x.com"}`, http.StatusOK, true},
		{"unregistered", &stubService{}, `{"email":"a@x.com"}`, http.StatusNotFound, false},
		{"bad email", &stubService{exists: true}, `{"email":"nope"}`, http.StatusBadRequest, false},
		{"throttled", &stubService{exists: true, requestErr: ratelimit.Exceeded("wait", 1500*time.Millisecond)}, `{"email":"a@x.com"}`, http.StatusTooManyRequests, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(tt.svc), "/send-otp", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if sent := len(tt.svc.requested) > 0; sent != tt.wantSent {
				t.Errorf("requested = %v, want %v", sent, tt.wantSent)
			}
			if tt.wantStatus == http.StatusTooManyRequests && w.Header().Get("Retry-After") != "2" {
				t.Errorf("Retry-After = %q, want 2", w.Header().Get("Retry-After"))
			}
		})
	}
}

func TestVerifyOTPBinding(t *testing.T) {
	r := newRouter(&stubService{valid: true})

	if w := do(r, "/verify-otp", `{"email":"a@x.com","otp":"12345"}`); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"valid":true`) {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
	if w := do(r, "/verify-otp", `{"email":"a@x.com","otp":"12a45"}`); w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric otp status = %d", w.Code)
	}
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubService
		body       string
		wantStatus int
	}{
		{"ok", &stubService{}, `{"email":"a@x.com","otp":"12345","new_password":"long-enough"}`, http.StatusOK},
		{"missing otp", &stubService{}, `{"email":"a@x.com","new_password":"long-enough"}`, http.StatusBadRequest},
		{"short password", &stubService{}, `{"email":"a@x.com","otp":"12345","new_password":"short"}`, http.StatusBadRequest},
		{"rejected code", &stubService{resetErr: apperror.New(http.StatusBadRequest, "invalid or expired code", apperror.ErrInvalidInput)}, `{"email":"a@x.com","otp":"12345","new_password":"long-enough"}`, http.StatusBadRequest},
		{"too many attempts", &stubService{resetErr: ratelimit.Exceeded("too many code attempts", time.Minute)}, `{"email":"a@x.com","otp":"12345","new_password":"long-enough"}`, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(tt.svc), "/reset-password", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}

	svc := &stubService{}
	do(newRouter(svc), "/reset-password", `{"email":"a@x.com","otp":"12345","new_password":"long-enough"}`)
	if svc.resetCode != "12345" {
		t.Errorf("code passed to service = %q", svc.resetCode)
	}
}
