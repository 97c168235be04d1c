package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/auth/dto"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/validator"
)

type stubAuthService struct {
	registered *dto.RegisterInput
}

func (s *stubAuthService) Register(_ context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	s.registered = &input
	return &dto.AuthResponse{
		AccessToken: "tok",
		TokenType:   "Bearer",
		ExpiresIn:   1,
		Secretary:   &entity.Secretary{ID: 1, Name: input.Name, Email: input.Email},
	}, nil
}

func (s *stubAuthService) Login(_ context.Context, input dto.LoginInput, _ string) (*dto.AuthResponse, error) {
	return nil, apperror.Unauthorized("Credenciales inválidas")
}

func (s *stubAuthService) Me(_ context.Context, id uint) (*entity.Secretary, error) {
	return &entity.Secretary{ID: id}, nil
}

func newRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Register()
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/registro/secretaria", h.Register)
	r.POST("/login/secretaria", h.Login)
	r.GET("/me", func(c *gin.Context) { c.Set("user_id", uint(7)); c.Next() }, h.Me)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return body
}

func TestRegisterCreated(t *testing.T) {
	svc := &stubAuthService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registro/secretaria",
		strings.NewReader(`{"nombre":"Ana","apellido":"Rojas","email":"ana@uni.cl","contrasena":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["status"] != "success" || body["access_token"] != "tok" || body["token_type"] != "Bearer" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["secretaria"].(map[string]any)["password_hash"]; ok {
		t.Fatal("password hash must not be serialized")
	}
}

func TestRegisterMissingField(t *testing.T) {
	svc := &stubAuthService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/registro/secretaria",
		strings.NewReader(`{"apellido":"Rojas","email":"ana@uni.cl","contrasena":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "error" || !strings.Contains(body["error"].(string), "nombre") {
		t.Fatalf("unexpected body %v", body)
	}
	if svc.registered != nil {
		t.Fatal("service must not be called on invalid input")
	}
}

func TestLoginUnauthorized(t *testing.T) {
	r := newRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/secretaria",
		strings.NewReader(`{"email":"ana@uni.cl","contrasena":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if decode(t, w)["error"] != "Credenciales inválidas" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestMe(t *testing.T) {
	r := newRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	sec := decode(t, w)["secretaria"].(map[string]any)
	if sec["id"].(float64) != 7 {
		t.Fatalf("unexpected secretary %v", sec)
	}
}
