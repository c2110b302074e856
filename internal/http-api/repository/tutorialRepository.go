package repository

import (
	"context"
	"fmt"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type TutorialRepository interface {
	GetAll(ctx context.Context) ([]models.Tutorial, error)
	GetByID(ctx context.Context, id int64) (*models.Tutorial, error)
	Create(ctx context.Context, t *models.Tutorial) error
	Update(ctx context.Context, t *models.Tutorial) error
	Delete(ctx context.Context, id int64) error
}

type tutorialRepository struct {
	db *gorm.DB
}

func NewTutorialRepository(db *gorm.DB) TutorialRepository {
	return &tutorialRepository{db: db}
}

func (r *tutorialRepository) GetAll(ctx context.Context) ([]models.Tutorial, error) {
	var list []models.Tutorial
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get tutorials: %w", err)
	}
	return list, nil
}

func (r *tutorialRepository) GetByID(ctx context.Context, id int64) (*models.Tutorial, error) {
	var t models.Tutorial
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tutorialRepository) Create(ctx context.Context, t *models.Tutorial) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create tutorial: %w", err)
	}
	return nil
}

func (r *tutorialRepository) Update(ctx context.Context, t *models.Tutorial) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("update tutorial: %w", err)
	}
	return nil
}

func (r *tutorialRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Tutorial{}, id).Error; err != nil {
		return fmt.Errorf("delete tutorial: %w", err)
	}
	return nil
}
