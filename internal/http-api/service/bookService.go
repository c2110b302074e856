package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGenreNotFound = errors.New("genre not found")

// CoverUploader pushes raw image bytes to the hosting service and returns a
// durable URL. Satisfied by imagehost.Client.
type CoverUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type BookService interface {
	GetAll(ctx context.Context, page, pageSize int) (*dto.PaginatedBookResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.BookResponse, error)
	Search(ctx context.Context, query string) ([]dto.BookResponse, error)
	GetByGenre(ctx context.Context, genreID int64) ([]dto.BookResponse, error)
	Create(ctx context.Context, in dto.CreateBookDTO, cover []byte) (*dto.BookResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateBookDTO, cover []byte) (*dto.BookResponse, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	repo       repository.BookRepository
	genreRepo  repository.GenreRepository
	shelfRepo  repository.ShelfRepository
	reviewRepo repository.ReviewRepository
	covers     CoverUploader
	logger     *slog.Logger
}

func NewBookService(
	repo repository.BookRepository,
	genreRepo repository.GenreRepository,
	shelfRepo repository.ShelfRepository,
	reviewRepo repository.ReviewRepository,
	covers CoverUploader,
	logger *slog.Logger,
) BookService {
	return &bookService{
		repo:       repo,
		genreRepo:  genreRepo,
		shelfRepo:  shelfRepo,
		reviewRepo: reviewRepo,
		covers:     covers,
		logger:     logger,
	}
}

func (s *bookService) GetAll(ctx context.Context, page, pageSize int) (*dto.PaginatedBookResponse, error) {
	books, total, err := s.repo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, dto.FromModelToBookResponse(b))
	}
	return dto.NewPaginatedBookResponse(responses, int(total), page, pageSize), nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*dto.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	resp := dto.FromModelToBookResponse(*book)
	return &resp, nil
}

func (s *bookService) Search(ctx context.Context, query string) ([]dto.BookResponse, error) {
	books, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, dto.FromModelToBookResponse(b))
	}
	return responses, nil
}

func (s *bookService) GetByGenre(ctx context.Context, genreID int64) ([]dto.BookResponse, error) {
	if _, err := s.genreRepo.GetByID(ctx, genreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}

	books, err := s.repo.GetByGenre(ctx, genreID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, dto.FromModelToBookResponse(b))
	}
	return responses, nil
}

// Create adds a book to the catalog. A cover image, when present, goes to the
// hosting service first; upload failure aborts the create.
func (s *bookService) Create(ctx context.Context, in dto.CreateBookDTO, cover []byte) (*dto.BookResponse, error) {
	if in.GenreID != nil {
		if _, err := s.genreRepo.GetByID(ctx, *in.GenreID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGenreNotFound
			}
			return nil, err
		}
	}

	book := in.ToModel()

	if len(cover) > 0 {
		url, err := s.covers.Upload(ctx, coverFilename(), cover)
		if err != nil {
			return nil, fmt.Errorf("cover upload: %w", err)
		}
		book.CoverURL = &url
	}

	if err := s.repo.Create(ctx, &book); err != nil {
		return nil, err
	}

	resp := dto.FromModelToBookResponse(book)
	return &resp, nil
}

func (s *bookService) Update(ctx context.Context, id int64, in dto.UpdateBookDTO, cover []byte) (*dto.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if in.GenreID != nil {
		if _, err := s.genreRepo.GetByID(ctx, *in.GenreID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGenreNotFound
			}
			return nil, err
		}
	}

	in.ApplyTo(book)

	if len(cover) > 0 {
		url, err := s.covers.Upload(ctx, coverFilename(), cover)
		if err != nil {
			return nil, fmt.Errorf("cover upload: %w", err)
		}
		book.CoverURL = &url
	}

	if err := s.repo.Update(ctx, id, book); err != nil {
		return nil, err
	}

	resp := dto.FromModelToBookResponse(*book)
	return &resp, nil
}

// Delete removes a book and everything hanging off it: shelf entries first,
// then reviews, then the book row itself.
func (s *bookService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	if err := s.shelfRepo.DeleteByBook(ctx, id); err != nil {
		return err
	}
	if err := s.reviewRepo.DeleteByBook(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func coverFilename() string {
	return fmt.Sprintf("cover-%s.jpg", uuid.New().String())
}
