package repository

import (
	"context"

	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
)

type SecretaryRepository interface {
	Create(ctx context.Context, secretary *entity.Secretary) error
	FindByID(ctx context.Context, id uint) (*entity.Secretary, error)
	FindByEmail(ctx context.Context, email string) (*entity.Secretary, error)
}

type secretaryRepository struct {
	db *gorm.DB
}

func NewSecretaryRepository(db *gorm.DB) SecretaryRepository {
	return &secretaryRepository{db: db}
}

func (r *secretaryRepository) Create(ctx context.Context, secretary *entity.Secretary) error {
	return r.db.WithContext(ctx).Create(secretary).Error
}

func (r *secretaryRepository) FindByID(ctx context.Context, id uint) (*entity.Secretary, error) {
	var secretary entity.Secretary
	if err := r.db.WithContext(ctx).First(&secretary, id).Error; err != nil {
		return nil, err
	}
	return &secretary, nil
}

func (r *secretaryRepository) FindByEmail(ctx context.Context, email string) (*entity.Secretary, error) {
	var secretary entity.Secretary
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&secretary).Error; err != nil {
		return nil, err
	}
	return &secretary, nil
}
