package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/sanitize"
)

var registerOnce sync.Once

// Register makes validation errors report JSON field names instead of Go
// struct field names. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// BindError converts an error returned by gin's ShouldBind* into a
// ValidationError with a client-facing message.
func BindError(err error) error {
	return apperror.Validation(FormatValidationError(err))
}

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("El campo %s tiene un formato inválido", typeErr.Field)
	case errors.As(err, &syntaxErr):
		return "El cuerpo de la solicitud no es JSON válido"
	}

	if err.Error() == "EOF" || err.Error() == "invalid request" {
		return "El cuerpo de la solicitud es requerido"
	}
	return "Solicitud inválida"
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es requerido", field)
	case "email":
		return fmt.Sprintf("El campo %s debe ser un email válido", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe ser al menos %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("El campo %s debe tener como máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe ser como máximo %s", field, fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido", field)
	}
}

// RequiredText sanitizes value and fails when nothing is left, which happens
// when a required field holds only markup or whitespace.
func RequiredText(field, value string) (string, error) {
	clean := sanitize.Text(value)
	if clean == "" {
		return "", apperror.Validation(fmt.Sprintf("El campo %s es requerido", field))
	}
	return clean, nil
}
