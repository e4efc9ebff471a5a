package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/edapp/pkg/apperror"
	"anoa.com/edapp/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ResponseError(c, err)
	return w
}

func TestResponseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantRetry  string
	}{
		{"wrapped sentinel", fmt.Errorf("school 4: %w", apperror.ErrNotFound), http.StatusNotFound, `{"error":"school 4: resource not found"}`, ""},
		{"app error message", apperror.New(http.StatusBadRequest, "invalid or expired code", apperror.ErrInvalidInput), http.StatusBadRequest, `{"error":"invalid or expired code"}`, ""},
		{"internal masked", errors.New("dial tcp 10.0.0.3:5432: connection refused"), http.StatusInternalServerError, `{"error":"internal server error"}`, ""},
		{"rate limited", ratelimit.Exceeded("wait", 1500*time.Millisecond), http.StatusTooManyRequests, `{"error":"rate limit exceeded: wait"}`, "2"},
		{"rate limited without wait", apperror.ErrRateLimitExceeded, http.StatusTooManyRequests, `{"error":"rate limit exceeded"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(tt.err)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.wantBody)
			}
			if got := w.Header().Get("Retry-After"); got != tt.wantRetry {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetry)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  uint
		ok    bool
	}{
		{"set", uint(7), 7, true},
		{"missing", nil, 0, false},
		{"zero", uint(0), 0, false},
		{"wrong type", "7", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.value != nil {
				c.Set("user_id", tt.value)
			}
			got, err := GetUserID(c)
			if (err == nil) != tt.ok || got != tt.want {
				t.Errorf("GetUserID() = %d, %v", got, err)
			}
			if err != nil && !errors.Is(err, apperror.ErrUnauthorized) {
				t.Errorf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
}
