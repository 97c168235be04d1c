package repository

import (
	"context"

	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	Update(ctx context.Context, project *entity.Project) error
	SaveGrade(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entity.Project, error)
	FindDetailedByID(ctx context.Context, id uint) (*entity.Project, error)
	FindPending(ctx context.Context) ([]entity.Project, error)
	FindFinalized(ctx context.Context) ([]entity.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Omit("Student", "GuidingProfessor", "InformingProfessor").Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).
		Model(project).
		Select("Title", "Description", "StudentID", "GuidingProfessorID", "InformingProfessorID").
		Updates(project).Error
}

func (r *projectRepository) SaveGrade(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).
		Model(project).
		Select("Grade", "Status").
		Updates(project).Error
}

// Delete removes the project and its participation rows in one transaction.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&entity.ProfessorParticipation{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*entity.Project, error) {
	var project entity.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindDetailedByID(ctx context.Context, id uint) (*entity.Project, error) {
	var project entity.Project
	if err := r.withRelations(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindPending(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	if err := r.withRelations(ctx).Where("grade IS NULL").Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) FindFinalized(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	if err := r.withRelations(ctx).Where("grade IS NOT NULL").Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Student").
		Preload("GuidingProfessor").
		Preload("InformingProfessor")
}
