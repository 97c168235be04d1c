package internship

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/internship/dto"
	"infuct.com/seguimiento/internal/modules/internship/repository"
	studentRepo "infuct.com/seguimiento/internal/modules/student/repository"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/logger"
	"infuct.com/seguimiento/pkg/storage"
	"infuct.com/seguimiento/pkg/validator"
)

const notFoundMessage = "Práctica no encontrada"

type InternshipService interface {
	ListByType(ctx context.Context, internshipType string) ([]dto.InternshipRow, error)
	Create(ctx context.Context, internshipType string, input dto.CreateInternshipInput) (*entity.Internship, error)
	Update(ctx context.Context, id uint, input dto.UpdateInternshipInput) (*entity.Internship, error)
	Delete(ctx context.Context, id uint) error
}

type internshipService struct {
	repo     repository.InternshipRepository
	students studentRepo.StudentRepository
	files    storage.FileStorage
}

func NewInternshipService(repo repository.InternshipRepository, students studentRepo.StudentRepository, files storage.FileStorage) InternshipService {
	return &internshipService{repo: repo, students: students, files: files}
}

func (s *internshipService) ListByType(ctx context.Context, internshipType string) ([]dto.InternshipRow, error) {
	normalized, ok := entity.NormalizeInternshipType(internshipType)
	if !ok {
		return nil, apperror.Validation("Tipo de práctica no válido")
	}

	internships, err := s.repo.FindByType(ctx, normalized)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	rows := make([]dto.InternshipRow, 0, len(internships))
	for _, i := range internships {
		rows = append(rows, dto.InternshipRow{
			ID:                i.ID,
			Student:           i.Student.FullName(),
			StudentEmail:      i.Student.Email,
			Company:           i.Company,
			StartDate:         i.StartDate.String(),
			EndDate:           i.EndDate.String(),
			Supervisor:        i.Supervisor,
			SupervisorContact: i.SupervisorContact,
			Grade:             i.Grade,
		})
	}
	return rows, nil
}

func (s *internshipService) Create(ctx context.Context, internshipType string, input dto.CreateInternshipInput) (*entity.Internship, error) {
	normalized, ok := entity.NormalizeInternshipType(internshipType)
	if !ok {
		return nil, apperror.Validation("Tipo de práctica no válido")
	}

	company, err := validator.RequiredText("empresa", input.Company)
	if err != nil {
		return nil, err
	}
	supervisor, err := validator.RequiredText("supervisor", input.Supervisor)
	if err != nil {
		return nil, err
	}
	contact, err := validator.RequiredText("contacto_supervisor", input.SupervisorContact)
	if err != nil {
		return nil, err
	}

	start, errStart := entity.ParseDate(strings.TrimSpace(input.StartDate))
	end, errEnd := entity.ParseDate(strings.TrimSpace(input.EndDate))
	if errStart != nil || errEnd != nil {
		return nil, apperror.Validation("Formato de fecha inválido")
	}

	if _, err := s.students.FindByID(ctx, input.StudentID); err != nil {
		return nil, apperror.FromDB(err, "El estudiante no existe")
	}

	exists, err := s.repo.ExistsForStudent(ctx, input.StudentID, normalized)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, duplicateTypeError(normalized)
	}

	internship := &entity.Internship{
		StudentID:         input.StudentID,
		Type:              normalized,
		Company:           company,
		StartDate:         start,
		EndDate:           end,
		Supervisor:        supervisor,
		SupervisorContact: contact,
	}
	if err := s.repo.Create(ctx, internship); err != nil {
		// The composite unique index catches concurrent creates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateTypeError(normalized)
		}
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	logger.Info().Uint("internship_id", internship.ID).Str("type", normalized).Msg("internship created")
	return internship, nil
}

func (s *internshipService) Update(ctx context.Context, id uint, input dto.UpdateInternshipInput) (*entity.Internship, error) {
	internship, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	if input.Grade.Set {
		switch {
		case input.Grade.Invalid:
			return nil, apperror.Validation("La nota debe ser un número válido")
		case input.Grade.Cleared():
			internship.Grade = nil
		case !entity.ValidGrade(*input.Grade.Value):
			return nil, apperror.Validation("La nota debe estar entre 1.0 y 7.0")
		default:
			g := *input.Grade.Value
			internship.Grade = &g
		}
	}

	if input.StartDate != nil && strings.TrimSpace(*input.StartDate) != "" {
		start, err := entity.ParseDate(strings.TrimSpace(*input.StartDate))
		if err != nil {
			return nil, apperror.Validation("Formato de fecha inválido para fecha_inicio")
		}
		internship.StartDate = start
	}
	if input.EndDate != nil && strings.TrimSpace(*input.EndDate) != "" {
		end, err := entity.ParseDate(strings.TrimSpace(*input.EndDate))
		if err != nil {
			return nil, apperror.Validation("Formato de fecha inválido para fecha_termino")
		}
		internship.EndDate = end
	}

	for _, f := range []struct {
		name  string
		value *string
		dst   *string
	}{
		{"empresa", input.Company, &internship.Company},
		{"supervisor", input.Supervisor, &internship.Supervisor},
		{"contacto_supervisor", input.SupervisorContact, &internship.SupervisorContact},
	} {
		if f.value == nil {
			continue
		}
		clean, err := validator.RequiredText(f.name, *f.value)
		if err != nil {
			return nil, err
		}
		*f.dst = clean
	}

	if err := s.repo.Update(ctx, internship); err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}
	return internship, nil
}

func (s *internshipService) Delete(ctx context.Context, id uint) error {
	internship, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apperror.FromDB(err, notFoundMessage)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.FromDB(err, notFoundMessage)
	}

	for _, path := range internship.DocumentPaths() {
		if err := s.files.Delete(path); err != nil {
			logger.Warn().Err(err).Uint("internship_id", id).Str("path", path).Msg("failed to remove internship document")
		}
	}

	logger.Info().Uint("internship_id", id).Msg("internship deleted")
	return nil
}

func duplicateTypeError(internshipType string) error {
	return apperror.Conflict("El estudiante ya tiene una práctica " + strings.ToLower(internshipType) + " registrada")
}
