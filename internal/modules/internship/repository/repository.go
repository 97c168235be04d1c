package repository

import (
	"context"

	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
)

type InternshipRepository interface {
	Create(ctx context.Context, internship *entity.Internship) error
	Update(ctx context.Context, internship *entity.Internship) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entity.Internship, error)
	FindByType(ctx context.Context, internshipType string) ([]entity.Internship, error)
	ExistsForStudent(ctx context.Context, studentID uint, internshipType string) (bool, error)
	// SetDocumentPath stores path in column, or clears it when path is nil.
	SetDocumentPath(ctx context.Context, id uint, column string, path *string) error
}

type internshipRepository struct {
	db *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) InternshipRepository {
	return &internshipRepository{db: db}
}

func (r *internshipRepository) Create(ctx context.Context, internship *entity.Internship) error {
	return r.db.WithContext(ctx).Omit("Student").Create(internship).Error
}

func (r *internshipRepository) Update(ctx context.Context, internship *entity.Internship) error {
	return r.db.WithContext(ctx).
		Model(internship).
		Select("Company", "StartDate", "EndDate", "Supervisor", "SupervisorContact", "Grade").
		Updates(internship).Error
}

func (r *internshipRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Internship{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *internshipRepository) FindByID(ctx context.Context, id uint) (*entity.Internship, error) {
	var internship entity.Internship
	if err := r.db.WithContext(ctx).First(&internship, id).Error; err != nil {
		return nil, err
	}
	return &internship, nil
}

func (r *internshipRepository) FindByType(ctx context.Context, internshipType string) ([]entity.Internship, error) {
	var internships []entity.Internship
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("type ILIKE ?", internshipType).
		Order("id ASC").
		Find(&internships).Error; err != nil {
		return nil, err
	}
	return internships, nil
}

func (r *internshipRepository) ExistsForStudent(ctx context.Context, studentID uint, internshipType string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Internship{}).
		Where("student_id = ? AND type ILIKE ?", studentID, internshipType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *internshipRepository) SetDocumentPath(ctx context.Context, id uint, column string, path *string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Internship{}).
		Where("id = ?", id).
		Update(column, path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
