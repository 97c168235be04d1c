package student

import (
	"context"

	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/student/repository"
	"infuct.com/seguimiento/pkg/apperror"
)

type StudentService interface {
	List(ctx context.Context) ([]entity.Student, error)
}

type studentService struct {
	repo repository.StudentRepository
}

func NewStudentService(repo repository.StudentRepository) StudentService {
	return &studentService{repo: repo}
}

func (s *studentService) List(ctx context.Context) ([]entity.Student, error) {
	students, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if students == nil {
		students = []entity.Student{}
	}
	return students, nil
}
