package project

import (
	"context"
	"net/http"
	"strings"

	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/project/dto"
	"infuct.com/seguimiento/internal/modules/project/repository"
	search "infuct.com/seguimiento/internal/modules/search/service"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/logger"
	"infuct.com/seguimiento/pkg/validator"
)

const notFoundMessage = "Proyecto no encontrado"

type ProjectService interface {
	ListPending(ctx context.Context) ([]dto.ProjectRow, error)
	ListFinalized(ctx context.Context) ([]dto.ProjectRow, error)
	Get(ctx context.Context, id uint) (*entity.Project, error)
	Create(ctx context.Context, input dto.ProjectInput) (*entity.Project, error)
	Update(ctx context.Context, id uint, input dto.ProjectInput) (*entity.Project, error)
	Finalize(ctx context.Context, id uint, input dto.FinalizeInput) (*entity.Project, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string) ([]search.ProjectDocument, error)
}

type projectService struct {
	repo     repository.ProjectRepository
	searcher search.MeiliSearchService
}

// NewProjectService builds the service. searcher may be nil, which disables
// indexing and makes Search report the service as unavailable.
func NewProjectService(repo repository.ProjectRepository, searcher search.MeiliSearchService) ProjectService {
	return &projectService{repo: repo, searcher: searcher}
}

func (s *projectService) ListPending(ctx context.Context) ([]dto.ProjectRow, error) {
	projects, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toRows(projects), nil
}

func (s *projectService) ListFinalized(ctx context.Context) ([]dto.ProjectRow, error) {
	projects, err := s.repo.FindFinalized(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toRows(projects), nil
}

func (s *projectService) Get(ctx context.Context, id uint) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, input dto.ProjectInput) (*entity.Project, error) {
	project := &entity.Project{}
	if err := apply(project, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	logger.Info().Uint("project_id", project.ID).Msg("project created")
	s.reindex(ctx, project.ID)
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id uint, input dto.ProjectInput) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	if err := apply(project, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	s.reindex(ctx, project.ID)
	return project, nil
}

func (s *projectService) Finalize(ctx context.Context, id uint, input dto.FinalizeInput) (*entity.Project, error) {
	if input.Grade.Invalid {
		return nil, apperror.Validation("La nota debe ser un número válido")
	}
	if input.Grade.Value == nil {
		return nil, apperror.Validation("La nota es requerida")
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	regraded := !project.Pending()
	project.Finalize(*input.Grade.Value)
	if err := s.repo.SaveGrade(ctx, project); err != nil {
		return nil, apperror.FromDB(err, notFoundMessage)
	}

	logger.Info().Uint("project_id", project.ID).Str("status", *project.Status).Bool("regraded", regraded).Msg("project finalized")
	s.reindex(ctx, project.ID)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.FromDB(err, notFoundMessage)
	}

	if s.searcher != nil {
		if err := s.searcher.DeleteProject(id); err != nil {
			logger.Warn().Err(err).Uint("project_id", id).Msg("failed to remove project from search index")
		}
	}
	return nil
}

func (s *projectService) Search(_ context.Context, query string) ([]search.ProjectDocument, error) {
	if s.searcher == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "La búsqueda no está disponible", apperror.ErrUnavailable)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation("El parámetro q es requerido")
	}

	hits, err := s.searcher.SearchProjects(query)
	if err != nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "La búsqueda no está disponible", err)
	}
	return hits, nil
}

// reindex pushes the current state of a project to the search index. Failures
// are only logged.
func (s *projectService) reindex(ctx context.Context, id uint) {
	if s.searcher == nil {
		return
	}

	project, err := s.repo.FindDetailedByID(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Uint("project_id", id).Msg("failed to load project for indexing")
		return
	}
	if err := s.searcher.IndexProject(project); err != nil {
		logger.Warn().Err(err).Uint("project_id", id).Msg("failed to index project")
	}
}

func apply(project *entity.Project, input dto.ProjectInput) error {
	title, err := validator.RequiredText("titulo", input.Title)
	if err != nil {
		return err
	}
	description, err := validator.RequiredText("descripcion", input.Description)
	if err != nil {
		return err
	}

	project.Title = title
	project.Description = description
	project.StudentID = input.StudentID
	project.GuidingProfessorID = input.GuidingProfessorID
	project.InformingProfessorID = input.InformingProfessorID
	return nil
}

func toRows(projects []entity.Project) []dto.ProjectRow {
	rows := make([]dto.ProjectRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, dto.ProjectRow{
			ID:                      p.ID,
			Student:                 p.Student.FullName(),
			StudentEmail:            p.Student.Email,
			Title:                   p.Title,
			GuidingProfessor:        p.GuidingProfessor.FullName(),
			GuidingProfessorEmail:   p.GuidingProfessor.Email,
			InformingProfessor:      p.InformingProfessor.FullName(),
			InformingProfessorEmail: p.InformingProfessor.Email,
			Grade:                   p.Grade,
			Status:                  p.Status,
		})
	}
	return rows
}
