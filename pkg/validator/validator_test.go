package validator

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"infuct.com/seguimiento/pkg/apperror"
)

type sampleRequest struct {
	Nombre string `json:"nombre" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
}

func TestFormatValidationErrorUsesJSONNames(t *testing.T) {
	Register()

	err := binding.Validator.ValidateStruct(&sampleRequest{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := FormatValidationError(err)
	if !strings.Contains(msg, "El campo nombre es requerido") {
		t.Fatalf("missing required message: %q", msg)
	}
	if !strings.Contains(msg, "El campo email debe ser un email válido") {
		t.Fatalf("missing email message: %q", msg)
	}
}

func TestBindErrorIsValidation(t *testing.T) {
	err := BindError(errors.New("EOF"))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if apperror.MapErrorToStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if apperror.PublicMessage(err) != "El cuerpo de la solicitud es requerido" {
		t.Fatalf("unexpected message %q", apperror.PublicMessage(err))
	}
}

func TestRequiredText(t *testing.T) {
	clean, err := RequiredText("empresa", "  <b>Acme</b> ")
	if err != nil || clean != "Acme" {
		t.Fatalf("RequiredText = %q, %v", clean, err)
	}

	for _, value := range []string{"", "   ", "<b></b>", "&lt;i&gt;&lt;/i&gt;"} {
		_, err := RequiredText("empresa", value)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Fatalf("%q: expected validation error, got %v", value, err)
		}
		if apperror.PublicMessage(err) != "El campo empresa es requerido" {
			t.Fatalf("%q: message = %q", value, apperror.PublicMessage(err))
		}
	}
}
