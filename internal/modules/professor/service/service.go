package professor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/professor/dto"
	"infuct.com/seguimiento/internal/modules/professor/repository"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/logger"
	"infuct.com/seguimiento/pkg/validator"
)

const notFoundMessage = "Profesor no encontrado"

var errEmailTaken = apperror.Conflict("El email ya está registrado")

type ProfessorService interface {
	ListActive(ctx context.Context) ([]dto.ProfessorSummary, error)
	Create(ctx context.Context, input dto.ProfessorInput) (*entity.Professor, error)
	Get(ctx context.Context, id uint) (*entity.Professor, error)
	Detail(ctx context.Context, id uint) (*dto.ProfessorDetail, error)
	Update(ctx context.Context, id uint, input dto.ProfessorInput) (*entity.Professor, error)
	Delete(ctx context.Context, id uint) error
}

type professorService struct {
	repo repository.ProfessorRepository
}

func NewProfessorService(repo repository.ProfessorRepository) ProfessorService {
	return &professorService{repo: repo}
}

func (s *professorService) ListActive(ctx context.Context) ([]dto.ProfessorSummary, error) {
	rows, err := s.repo.FindActiveWithCounts(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if rows == nil {
		rows = []dto.ProfessorSummary{}
	}
	return rows, nil
}

func (s *professorService) Create(ctx context.Context, input dto.ProfessorInput) (*entity.Professor, error) {
	name, surname, err := cleanNames(input)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	professor := &entity.Professor{
		Name:    name,
		Surname: surname,
		Email:   email,
		Active:  true,
	}
	if err := s.repo.Create(ctx, professor); err != nil {
		return nil, translateWrite(err)
	}

	logger.Info().Uint("professor_id", professor.ID).Msg("professor created")
	return professor, nil
}

func (s *professorService) Get(ctx context.Context, id uint) (*entity.Professor, error) {
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}
	return professor, nil
}

func (s *professorService) Detail(ctx context.Context, id uint) (*dto.ProfessorDetail, error) {
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	guided, err := s.repo.FindPendingGuided(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	informed, err := s.repo.FindPendingInformed(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	detail := &dto.ProfessorDetail{
		ID:               professor.ID,
		Name:             professor.Name,
		Surname:          professor.Surname,
		Email:            professor.Email,
		GuidedProjects:   toPendingProjects(guided),
		InformedProjects: toPendingProjects(informed),
	}
	detail.TotalGuided = len(detail.GuidedProjects)
	detail.TotalInformed = len(detail.InformedProjects)
	return detail, nil
}

func (s *professorService) Update(ctx context.Context, id uint, input dto.ProfessorInput) (*entity.Professor, error) {
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	name, surname, err := cleanNames(input)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.ensureEmailFree(ctx, email, id); err != nil {
		return nil, err
	}

	professor.Name = name
	professor.Surname = surname
	professor.Email = email
	if err := s.repo.Update(ctx, professor); err != nil {
		return nil, translateWrite(err)
	}
	return professor, nil
}

func cleanNames(input dto.ProfessorInput) (string, string, error) {
	name, err := validator.RequiredText("nombre", input.Name)
	if err != nil {
		return "", "", err
	}
	surname, err := validator.RequiredText("apellido", input.Surname)
	if err != nil {
		return "", "", err
	}
	return name, surname, nil
}

func (s *professorService) Delete(ctx context.Context, id uint) error {
	pending, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return apperror.FromDB(err, notFoundMessage)
	}
	if pending > 0 {
		return apperror.Conflict(fmt.Sprintf("No se puede eliminar el profesor porque tiene %d proyecto(s) activo(s)", pending))
	}

	logger.Info().Uint("professor_id", id).Msg("professor deactivated")
	return nil
}

// ensureEmailFree fails when email belongs to a professor other than selfID.
func (s *professorService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperror.Internal(err)
	}
	if existing.ID != selfID {
		return errEmailTaken
	}
	return nil
}

func translateWrite(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errEmailTaken
	}
	return apperror.FromDB(err, notFoundMessage)
}

func toPendingProjects(projects []entity.Project) []dto.PendingProject {
	out := make([]dto.PendingProject, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.PendingProject{
			ID:           p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Student:      p.Student.FullName(),
			StudentEmail: p.Student.Email,
		})
	}
	return out
}
