package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anoa.com/edapp/internal/bootstrap"
	"anoa.com/edapp/internal/config"
	"anoa.com/edapp/internal/testutil"
	"github.com/gin-gonic/gin"
)

type outbox struct {
	bodies []string
}

func (o *outbox) Send(ctx context.Context, to, subject, body string) error {
	o.bodies = append(o.bodies, body)
	return nil
}

type nullStore struct{}

func (nullStore) Put(context.Context, string, io.Reader, string) error { return nil }
func (nullStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.example/" + key, nil
}
func (nullStore) Delete(context.Context, string) error { return nil }

type harness struct {
	t       *testing.T
	handler http.Handler
	mail    *outbox
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	if err := bootstrap.SeedCatalogue(db); err != nil {
		t.Fatal(err)
	}
	if err := bootstrap.SeedAdminUser(db, "admin@edapp.local", "admin123"); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		AllowedOrigins:     "http://localhost:3000",
		JWTSecret:          "test-secret",
		JWTTTL:             50 * time.Minute,
		OTPTTL:             5 * time.Minute,
		RateLimitOTP:       time.Minute,
		OTPCleanupInterval: time.Hour,
		PresignTTL:         time.Hour,
	}
	mail := &outbox{}
	srv, err := NewServer(cfg, Dependencies{DB: db, Storage: nullStore{}, Notifier: mail})
	if err != nil {
		t.Fatal(err)
	}

	return &harness{t: t, handler: srv.Handler(), mail: mail}
}

func (h *harness) do(method, path, token string, body any) (int, map[string]any) {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func (h *harness) login(path string, body any) string {
	h.t.Helper()
	status, resp := h.do(http.MethodPost, path, "", body)
	if status != http.StatusOK {
		h.t.Fatalf("login %s: status %d %v", path, status, resp)
	}
	return resp["token"].(string)
}

func TestTeacherOnboardingAndPasswordReset(t *testing.T) {
	h := newHarness(t)

	admin := h.login("/api/auth/admin/login", map[string]string{"email": "admin@edapp.local", "password": "admin123"})

	status, resp := h.do(http.MethodPost, "/api/schools", admin, map[string]string{"school_name": "Green Valley"})
	if status != http.StatusCreated {
		t.Fatalf("create school: %d %v", status, resp)
	}
	schoolID := uint(resp["school"].(map[string]any)["school_id"].(float64))

	status, resp = h.do(http.MethodPost, fmt.Sprintf("/api/schools/%d/teachers", schoolID), admin, map[string]string{
		"first_name": "Meera",
		"last_name":  "Iyer",
		"email":      "meera@greenvalley.edu",
	})
	if status != http.StatusCreated {
		t.Fatalf("create teacher: %d %v", status, resp)
	}
	sapID := resp["sap_id"].(string)

	// first login uses the generated sap id as the password
	teacher := h.login("/api/auth/login", map[string]string{"sap_id": sapID, "password": sapID})

	status, resp = h.do(http.MethodGet, "/api/auth/me", teacher, nil)
	if status != http.StatusOK || resp["first_name"] != "Meera" || resp["role"] != "teacher" {
		t.Fatalf("me: %d %v", status, resp)
	}

	if status, _ := h.do(http.MethodGet, "/api/schools", teacher, nil); status != http.StatusForbidden {
		t.Errorf("teacher listing schools: status %d, want 403", status)
	}

	status, _ = h.do(http.MethodPost, "/api/password-reset/send-otp", "", map[string]string{"email": "meera@greenvalley.edu"})
	if status != http.StatusOK || len(h.mail.bodies) != 1 {
		t.Fatalf("send otp: %d, mails %d", status, len(h.mail.bodies))
	}
	body := h.mail.bodies[0]
	code := body[strings.LastIndex(body, " ")+1:]

	status, resp = h.do(http.MethodPost, "/api/password-reset/verify-otp", "", map[string]string{"email": "meera@greenvalley.edu", "otp": code})
	if status != http.StatusOK || resp["valid"] != true {
		t.Fatalf("verify otp: %d %v", status, resp)
	}

	status, _ = h.do(http.MethodPost, "/api/password-reset/reset-password", "", map[string]string{"email": "meera@greenvalley.edu", "otp": code, "new_password": "new-secret-1"})
	if status != http.StatusOK {
		t.Fatalf("reset: %d", status)
	}

	if status, _ := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"sap_id": sapID, "password": sapID}); status != http.StatusUnauthorized {
		t.Errorf("old password: status %d, want 401", status)
	}
	h.login("/api/auth/login", map[string]string{"sap_id": sapID, "password": "new-secret-1"})
}

func TestPasswordResetNeedsLiveCode(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/admin/login", map[string]string{"email": "admin@edapp.local", "password": "admin123"})

	_, resp := h.do(http.MethodPost, "/api/schools", admin, map[string]string{"school_name": "Hill Top"})
	schoolID := uint(resp["school"].(map[string]any)["school_id"].(float64))
	status, resp := h.do(http.MethodPost, fmt.Sprintf("/api/schools/%d/teachers", schoolID), admin, map[string]string{
		"first_name": "Arun",
		"last_name":  "Rao",
		"email":      "arun@hilltop.edu",
	})
	if status != http.StatusCreated {
		t.Fatalf("create teacher: %d %v", status, resp)
	}
	sapID := resp["sap_id"].(string)

	reset := func(otp string) int {
		body := map[string]string{"email": "arun@hilltop.edu", "new_password": "taken-over-1"}
		if otp != "" {
			body["otp"] = otp
		}
		status, _ := h.do(http.MethodPost, "/api/password-reset/reset-password", "", body)
		return status
	}

	if status := reset(""); status != http.StatusBadRequest {
		t.Errorf("no code: status %d, want 400", status)
	}
	if status := reset("12345"); status != http.StatusBadRequest {
		t.Errorf("code never issued: status %d, want 400", status)
	}

	if status, _ := h.do(http.MethodPost, "/api/password-reset/send-otp", "", map[string]string{"email": "arun@hilltop.edu"}); status != http.StatusOK {
		t.Fatalf("send otp: %d", status)
	}
	body := h.mail.bodies[len(h.mail.bodies)-1]
	code := body[strings.LastIndex(body, " ")+1:]
	wrong := "10000"
	if code == wrong {
		wrong = "10001"
	}
	if status := reset(wrong); status != http.StatusBadRequest {
		t.Errorf("wrong code: status %d, want 400", status)
	}

	if status, _ := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"sap_id": sapID, "password": "taken-over-1"}); status != http.StatusUnauthorized {
		t.Errorf("login with unverified password: status %d, want 401", status)
	}
	h.login("/api/auth/login", map[string]string{"sap_id": sapID, "password": sapID})

	if status := reset(code); status != http.StatusOK {
		t.Fatalf("issued code: status %d", status)
	}
	if status := reset(code); status != http.StatusBadRequest {
		t.Errorf("reused code: status %d, want 400", status)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	if status, _ := h.do(http.MethodGet, "/api/subjects", "", nil); status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	if status, _ := h.do(http.MethodGet, "/api/subjects", "forged", nil); status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	if status, resp := h.do(http.MethodGet, "/healthz", "", nil); status != http.StatusOK || resp["status"] != "ok" {
		t.Fatalf("healthz: %d %v", status, resp)
	}
}

func TestAdminCatalogueFlow(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/admin/login", map[string]string{"email": "admin@edapp.local", "password": "admin123"})

	_, resp := h.do(http.MethodPost, "/api/schools", admin, map[string]string{"school_name": "Hillside"})
	schoolID := uint(resp["school"].(map[string]any)["school_id"].(float64))

	status, resp := h.do(http.MethodPost, "/api/mentors", admin, map[string]string{"mentor_first_name": "Ravi", "mentor_last_name": "Kumar"})
	if status != http.StatusCreated {
		t.Fatalf("create mentor: %d %v", status, resp)
	}
	mentorID := uint(resp["mentor"].(map[string]any)["mentor_id"].(float64))

	status, resp = h.do(http.MethodPost, fmt.Sprintf("/api/schools/%d/students", schoolID), admin, map[string]any{
		"first_name": "Anu",
		"email":      "anu@hillside.edu",
		"mentor_id":  mentorID,
	})
	if status != http.StatusCreated {
		t.Fatalf("create student: %d %v", status, resp)
	}

	status, resp = h.do(http.MethodGet, fmt.Sprintf("/api/schools/%d/students", schoolID), admin, nil)
	students, _ := resp["studentsData"].([]any)
	if status != http.StatusOK || len(students) != 1 {
		t.Fatalf("list students: %d %v", status, resp)
	}
	if name := students[0].(map[string]any)["mentor_first_name"]; name != "Ravi" {
		t.Errorf("mentor_first_name = %v, want Ravi", name)
	}

	status, resp = h.do(http.MethodGet, fmt.Sprintf("/api/schools/%d/user-counts", schoolID), admin, nil)
	counts, _ := resp["userCounts"].(map[string]any)
	if status != http.StatusOK || counts["total_students"] != float64(1) {
		t.Fatalf("user counts: %d %v", status, resp)
	}

	status, resp = h.do(http.MethodDelete, fmt.Sprintf("/api/mentors/%d", mentorID), admin, nil)
	if status != http.StatusOK || resp["students_removed"] != float64(1) {
		t.Fatalf("delete mentor: %d %v", status, resp)
	}

	if status, _ := h.do(http.MethodDelete, fmt.Sprintf("/api/mentors/%d", mentorID), admin, nil); status != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", status)
	}
}

// addTeacher onboards a teacher into a new school and returns the login id
// and a session token.
func (h *harness) addTeacher(admin, email string) (uint, string) {
	h.t.Helper()
	_, resp := h.do(http.MethodPost, "/api/schools", admin, map[string]string{"school_name": "School of " + email})
	schoolID := uint(resp["school"].(map[string]any)["school_id"].(float64))

	status, resp := h.do(http.MethodPost, fmt.Sprintf("/api/schools/%d/teachers", schoolID), admin, map[string]string{
		"first_name": "T",
		"email":      email,
	})
	if status != http.StatusCreated {
		h.t.Fatalf("create teacher %s: %d %v", email, status, resp)
	}
	sapID := resp["sap_id"].(string)
	return uint(resp["userId"].(float64)), h.login("/api/auth/login", map[string]string{"sap_id": sapID, "password": sapID})
}

func TestCourseAndImageRoutes(t *testing.T) {
	h := newHarness(t)
	admin := h.login("/api/auth/admin/login", map[string]string{"email": "admin@edapp.local", "password": "admin123"})

	course := map[string]any{
		"course_name": "Algebra I",
		"subject_id":  1,
		"class_id":    1,
	}
	if status, resp := h.do(http.MethodPost, "/api/courses", admin, course); status != http.StatusForbidden {
		t.Fatalf("admin create course: %d %v, want 403", status, resp)
	}
	if status, _ := h.do(http.MethodGet, "/api/courses/me", admin, nil); status != http.StatusForbidden {
		t.Errorf("admin courses: status %d, want 403", status)
	}

	// the first login shares its numeric id with the seeded admin
	firstID, first := h.addTeacher(admin, "first@x.edu")
	_, second := h.addTeacher(admin, "second@x.edu")

	status, resp := h.do(http.MethodPost, "/api/courses", first, course)
	if status != http.StatusCreated {
		t.Fatalf("create course: %d %v", status, resp)
	}

	status, resp = h.do(http.MethodGet, "/api/courses/me", first, nil)
	courses, _ := resp["userData"].([]any)
	if status != http.StatusOK || len(courses) != 1 {
		t.Fatalf("user courses: %d %v", status, resp)
	}

	status, resp = h.do(http.MethodGet, "/api/courses/me", second, nil)
	courses, _ = resp["userData"].([]any)
	if status != http.StatusOK || len(courses) != 0 {
		t.Errorf("other teacher's courses: %d %v", status, resp)
	}

	status, resp = h.do(http.MethodGet, "/api/auth/me", admin, nil)
	if status != http.StatusOK || resp["user_id"] != float64(0) || resp["admin_id"] == nil {
		t.Errorf("admin claims: %d %v", status, resp)
	}
	status, resp = h.do(http.MethodGet, "/api/auth/me", first, nil)
	if status != http.StatusOK || resp["user_id"] != float64(firstID) || resp["admin_id"] != nil {
		t.Errorf("teacher claims: %d %v", status, resp)
	}

	if status, resp := h.do(http.MethodGet, "/api/subjects", admin, nil); status != http.StatusOK || len(resp["subjects"].([]any)) == 0 {
		t.Fatalf("subjects: %d %v", status, resp)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/9/image?token="+admin, nil)
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "https://bucket.example/Image-EdApp:9" {
		t.Fatalf("image redirect: %d %q", w.Code, w.Header().Get("Location"))
	}

	status, resp = h.do(http.MethodGet, "/api/orgs/3/icon", admin, nil)
	if status != http.StatusOK || resp["dataUrl"] != "https://bucket.example/OrgIcon-3" {
		t.Fatalf("org icon: %d %v", status, resp)
	}
}
