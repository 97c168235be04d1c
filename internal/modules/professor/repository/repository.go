package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/professor/dto"
)

type ProfessorRepository interface {
	Create(ctx context.Context, professor *entity.Professor) error
	Update(ctx context.Context, professor *entity.Professor) error
	FindByID(ctx context.Context, id uint) (*entity.Professor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Professor, error)
	FindActiveWithCounts(ctx context.Context) ([]dto.ProfessorSummary, error)
	FindPendingGuided(ctx context.Context, professorID uint) ([]entity.Project, error)
	FindPendingInformed(ctx context.Context, professorID uint) ([]entity.Project, error)
	// Deactivate marks the professor inactive unless it still guides or
	// informs pending projects. It returns the number of such projects; when
	// it is not zero nothing is changed.
	Deactivate(ctx context.Context, id uint) (int64, error)
}

type professorRepository struct {
	db *gorm.DB
}

func NewProfessorRepository(db *gorm.DB) ProfessorRepository {
	return &professorRepository{db: db}
}

func (r *professorRepository) Create(ctx context.Context, professor *entity.Professor) error {
	return r.db.WithContext(ctx).Create(professor).Error
}

func (r *professorRepository) Update(ctx context.Context, professor *entity.Professor) error {
	return r.db.WithContext(ctx).
		Model(professor).
		Select("Name", "Surname", "Email").
		Updates(professor).Error
}

func (r *professorRepository) FindByID(ctx context.Context, id uint) (*entity.Professor, error) {
	var professor entity.Professor
	if err := r.db.WithContext(ctx).First(&professor, id).Error; err != nil {
		return nil, err
	}
	return &professor, nil
}

func (r *professorRepository) FindByEmail(ctx context.Context, email string) (*entity.Professor, error) {
	var professor entity.Professor
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&professor).Error; err != nil {
		return nil, err
	}
	return &professor, nil
}

func (r *professorRepository) FindActiveWithCounts(ctx context.Context) ([]dto.ProfessorSummary, error) {
	query := `
		SELECT p.id, p.name, p.surname, p.email,
			(SELECT COUNT(*) FROM projects g WHERE g.guiding_professor_id = p.id AND g.grade IS NULL) AS guided_count,
			(SELECT COUNT(*) FROM projects i WHERE i.informing_professor_id = p.id AND i.grade IS NULL) AS informed_count
		FROM professors p
		WHERE p.active = TRUE
		ORDER BY p.id ASC
	`

	var rows []dto.ProfessorSummary
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *professorRepository) FindPendingGuided(ctx context.Context, professorID uint) ([]entity.Project, error) {
	return r.findPending(ctx, "guiding_professor_id", professorID)
}

func (r *professorRepository) FindPendingInformed(ctx context.Context, professorID uint) ([]entity.Project, error) {
	return r.findPending(ctx, "informing_professor_id", professorID)
}

func (r *professorRepository) findPending(ctx context.Context, column string, professorID uint) ([]entity.Project, error) {
	var projects []entity.Project
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: professorID}).
		Where("grade IS NULL").
		Order("id ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *professorRepository) Deactivate(ctx context.Context, id uint) (int64, error) {
	var pending int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var professor entity.Professor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&professor, id).Error; err != nil {
			return err
		}

		var guided, informed int64
		if err := tx.Model(&entity.Project{}).
			Where("guiding_professor_id = ? AND grade IS NULL", id).
			Count(&guided).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Project{}).
			Where("informing_professor_id = ? AND grade IS NULL", id).
			Count(&informed).Error; err != nil {
			return err
		}

		pending = guided + informed
		if pending > 0 {
			return nil
		}

		return tx.Model(&professor).Update("active", false).Error
	})
	return pending, err
}
