package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrDuplicateGenre = errors.New("genre with this name already exists")
	ErrGenreInUse     = errors.New("genre is referenced by existing books")
)

type GenreService interface {
	GetAll(ctx context.Context) ([]dto.GenreResponse, error)
	Create(ctx context.Context, in dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateGenreDTO) (*dto.GenreResponse, error)
	Delete(ctx context.Context, id int64) error
}

type genreService struct {
	repo     repository.GenreRepository
	bookRepo repository.BookRepository
}

func NewGenreService(repo repository.GenreRepository, bookRepo repository.BookRepository) GenreService {
	return &genreService{
		repo:     repo,
		bookRepo: bookRepo,
	}
}

func (s *genreService) GetAll(ctx context.Context) ([]dto.GenreResponse, error) {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.GenreResponse, 0, len(list))
	for _, g := range list {
		responses = append(responses, dto.GenreFromModel(g))
	}
	return responses, nil
}

// Create rejects names that already exist ignoring case.
func (s *genreService) Create(ctx context.Context, in dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if _, err := s.repo.FindByName(ctx, in.Name); err == nil {
		return nil, ErrDuplicateGenre
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre := models.Genre{Name: in.Name, Description: in.Description}
	if err := s.repo.Create(ctx, &genre); err != nil {
		return nil, err
	}

	resp := dto.GenreFromModel(genre)
	return &resp, nil
}

func (s *genreService) Update(ctx context.Context, id int64, in dto.UpdateGenreDTO) (*dto.GenreResponse, error) {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}

	if in.Name != nil && *in.Name != genre.Name {
		// The name check ignores case, so a pure case change of the same
		// genre is allowed only when it finds itself.
		if existing, err := s.repo.FindByName(ctx, *in.Name); err == nil && existing.ID != id {
			return nil, ErrDuplicateGenre
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		genre.Name = *in.Name
	}
	if in.Description != nil {
		genre.Description = in.Description
	}

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, err
	}

	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

// Delete refuses while any book still references the genre.
func (s *genreService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}

	count, err := s.bookRepo.CountByGenre(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGenreInUse
	}

	return s.repo.Delete(ctx, id)
}
