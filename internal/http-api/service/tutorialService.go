package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrTutorialNotFound = errors.New("tutorial not found")

type TutorialService interface {
	GetAll(ctx context.Context) ([]dto.TutorialResponse, error)
	Create(ctx context.Context, in dto.CreateTutorialDTO) (*dto.TutorialResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateTutorialDTO) (*dto.TutorialResponse, error)
	Delete(ctx context.Context, id int64) error
}

type tutorialService struct {
	repo repository.TutorialRepository
}

func NewTutorialService(repo repository.TutorialRepository) TutorialService {
	return &tutorialService{repo: repo}
}

func (s *tutorialService) GetAll(ctx context.Context) ([]dto.TutorialResponse, error) {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.TutorialResponse, 0, len(list))
	for _, t := range list {
		responses = append(responses, dto.TutorialFromModel(t))
	}
	return responses, nil
}

func (s *tutorialService) Create(ctx context.Context, in dto.CreateTutorialDTO) (*dto.TutorialResponse, error) {
	tutorial := models.Tutorial{
		Title:       in.Title,
		VideoURL:    in.VideoURL,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, &tutorial); err != nil {
		return nil, err
	}

	resp := dto.TutorialFromModel(tutorial)
	return &resp, nil
}

func (s *tutorialService) Update(ctx context.Context, id int64, in dto.UpdateTutorialDTO) (*dto.TutorialResponse, error) {
	tutorial, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorialNotFound
		}
		return nil, err
	}

	if in.Title != nil {
		tutorial.Title = *in.Title
	}
	if in.VideoURL != nil {
		tutorial.VideoURL = *in.VideoURL
	}
	if in.Description != nil {
		tutorial.Description = in.Description
	}

	if err := s.repo.Update(ctx, tutorial); err != nil {
		return nil, err
	}

	resp := dto.TutorialFromModel(*tutorial)
	return &resp, nil
}

func (s *tutorialService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTutorialNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
