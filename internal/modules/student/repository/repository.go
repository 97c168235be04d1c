package repository

import (
	"context"

	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
)

type StudentRepository interface {
	FindAll(ctx context.Context) ([]entity.Student, error)
	FindByID(ctx context.Context, id uint) (*entity.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindAll(ctx context.Context) ([]entity.Student, error) {
	var students []entity.Student
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) FindByID(ctx context.Context, id uint) (*entity.Student, error) {
	var student entity.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
