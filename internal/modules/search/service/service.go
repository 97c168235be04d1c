package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/pkg/logger"
	"infuct.com/seguimiento/pkg/sanitize"
)

const (
	projectsIndex = "projects"
	searchLimit   = 20
)

// ProjectDocument is the indexed form of a project.
type ProjectDocument struct {
	ID                 string   `json:"id"`
	Title              string   `json:"titulo"`
	Description        string   `json:"descripcion"`
	Student            string   `json:"estudiante"`
	StudentEmail       string   `json:"correo"`
	GuidingProfessor   string   `json:"profesor_guia"`
	InformingProfessor string   `json:"profesor_informante"`
	Grade              *float64 `json:"nota"`
	Status             *string  `json:"estado"`
}

type MeiliSearchService interface {
	IndexProject(project *entity.Project) error
	DeleteProject(id uint) error
	SearchProjects(query string) ([]ProjectDocument, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	searchable := []string{"titulo", "descripcion", "estudiante", "profesor_guia", "profesor_informante"}
	if _, err := s.client.Index(projectsIndex).UpdateSearchableAttributes(&searchable); err != nil {
		logger.Warn().Err(err).Msg("failed to update projects searchable attributes")
	}

	filterableAttrs := []string{"estado"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(projectsIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		logger.Warn().Err(err).Msg("failed to update projects filterable attributes")
	}

	logger.Info().Msg("Meilisearch indexes initialized")
}

// NewProjectDocument flattens a project with its student and professors loaded.
func NewProjectDocument(project *entity.Project) ProjectDocument {
	return ProjectDocument{
		ID:                 strconv.FormatUint(uint64(project.ID), 10),
		Title:              project.Title,
		Description:        strings.Join(strings.Fields(sanitize.Text(project.Description)), " "),
		Student:            project.Student.FullName(),
		StudentEmail:       project.Student.Email,
		GuidingProfessor:   project.GuidingProfessor.FullName(),
		InformingProfessor: project.InformingProfessor.FullName(),
		Grade:              project.Grade,
		Status:             project.Status,
	}
}

func (s *meiliSearchService) IndexProject(project *entity.Project) error {
	doc := NewProjectDocument(project)

	task, err := s.client.Index(projectsIndex).AddDocuments([]ProjectDocument{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	logger.Debug().Str("project_id", doc.ID).Int64("task_uid", task.TaskUID).Msg("project indexed")
	return nil
}

func (s *meiliSearchService) DeleteProject(id uint) error {
	_, err := s.client.Index(projectsIndex).DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

func (s *meiliSearchService) SearchProjects(query string) ([]ProjectDocument, error) {
	raw, err := s.client.Index(projectsIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Limit: searchLimit,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Hits []ProjectDocument `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if result.Hits == nil {
		result.Hits = []ProjectDocument{}
	}
	return result.Hits, nil
}

func strPtr(s string) *string {
	return &s
}
