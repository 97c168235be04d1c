package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("x"), http.StatusBadRequest},
		{"conflict", Conflict("x"), http.StatusBadRequest},
		{"not found", NotFound("x"), http.StatusNotFound},
		{"unauthorized", Unauthorized("x"), http.StatusUnauthorized},
		{"wrapped sentinel", fmt.Errorf("login: %w", ErrRateLimitExceeded), http.StatusTooManyRequests},
		{"unavailable", ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapErrorToStatus(tc.err); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFromDB(t *testing.T) {
	if err := FromDB(nil, "x"); err != nil {
		t.Fatalf("nil error should stay nil, got %v", err)
	}

	err := FromDB(gorm.ErrRecordNotFound, "Profesor no encontrado")
	if MapErrorToStatus(err) != http.StatusNotFound || PublicMessage(err) != "Profesor no encontrado" {
		t.Fatalf("unexpected translation: %v", err)
	}

	err = FromDB(gorm.ErrDuplicatedKey, "x")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicated key should map to conflict, got %v", err)
	}

	err = FromDB(gorm.ErrForeignKeyViolated, "x")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("foreign key violation should map to validation, got %v", err)
	}

	raw := errors.New("pq: connection refused")
	err = FromDB(raw, "x")
	if MapErrorToStatus(err) != http.StatusInternalServerError {
		t.Fatalf("unexpected status for %v", err)
	}
	if PublicMessage(err) == raw.Error() {
		t.Fatal("raw database error must not be exposed")
	}
	if !errors.Is(err, raw) {
		t.Fatal("cause should stay reachable for logging")
	}
}
