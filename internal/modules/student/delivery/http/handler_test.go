package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/pkg/apperror"
)

type stubStudentService struct {
	students []entity.Student
	err      error
}

func (s stubStudentService) List(context.Context) ([]entity.Student, error) {
	return s.students, s.err
}

func serve(svc stubStudentService) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/estudiantes", NewStudentHandler(svc).List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/estudiantes", nil))
	return w
}

func TestListStudents(t *testing.T) {
	w := serve(stubStudentService{students: []entity.Student{
		{ID: 1, Name: "Juan", Surname: "Pérez", Email: "juan@uni.cl"},
		{ID: 2, Name: "María", Surname: "Soto", Email: "maria@uni.cl"},
	}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Status string           `json:"status"`
		Data   []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "success" || len(body.Data) != 2 || body.Data[0]["nombre"] != "Juan" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestListStudentsHidesCause(t *testing.T) {
	w := serve(stubStudentService{err: apperror.Internal(errors.New("pq: relation students does not exist"))})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Error interno del servidor" {
		t.Fatalf("cause leaked: %s", w.Body.String())
	}
}
