package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jayprakash-mahato/dchat/internal/model"
	"github.com/jayprakash-mahato/dchat/internal/service"

	"github.com/gin-gonic/gin"
)

type stubAuthService struct {
	registerID  string
	registerErr error
	loginResult *service.LoginResult
	loginErr    error
	claims      *service.Claims
	claimsErr   error

	lastEmail string
}

func (s *stubAuthService) Register(_ context.Context, fullName, email, password string) (string, error) {
	s.lastEmail = email
	return s.registerID, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*service.LoginResult, error) {
	s.lastEmail = email
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) ValidateToken(string) (*service.Claims, error) {
	return s.claims, s.claimsErr
}

func newAuthRouter(auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(auth)
	router.POST("/api/register", h.Register)
	router.POST("/api/login", h.Login)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterReturnsCreatedID(t *testing.T) {
	auth := &stubAuthService{registerID: "abc123"}
	router := newAuthRouter(auth)

	w := postJSON(t, router, "/api/register", map[string]string{
		"fullName": "Alice Doe",
		"email":    "alice@example.com",
		"password": "s3cret",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if auth.lastEmail != "alice@example.com" {
		t.Fatalf("service saw wrong email: %q", auth.lastEmail)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != "abc123" {
		t.Fatalf("unexpected id: %q", body.ID)
	}
}

func TestRegisterRejectsIncompleteBody(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := postJSON(t, router, "/api/register", map[string]string{"email": "alice@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newAuthRouter(&stubAuthService{registerErr: service.ErrEmailTaken})

	w := postJSON(t, router, "/api/register", map[string]string{
		"fullName": "Alice",
		"email":    "alice@example.com",
		"password": "pw",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginReturnsUserAndToken(t *testing.T) {
	auth := &stubAuthService{loginResult: &service.LoginResult{
		User:  model.UserSummary{ID: "abc123", FullName: "Alice Doe", Email: "alice@example.com"},
		Token: "token-1",
	}}
	router := newAuthRouter(auth)

	w := postJSON(t, router, "/api/login", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body service.LoginResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Token != "token-1" || body.User.FullName != "Alice Doe" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newAuthRouter(&stubAuthService{loginErr: service.ErrInvalidCredentials})

	w := postJSON(t, router, "/api/login", map[string]string{
		"email":    "alice@example.com",
		"password": "nope",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
