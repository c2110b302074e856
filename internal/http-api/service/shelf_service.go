package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bookhive/internal/cache"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrShelfEntryNotFound = errors.New("book is not on your shelf")
	ErrInvalidShelf       = errors.New("invalid shelf")
)

type ShelfService interface {
	SetShelf(ctx context.Context, userID string, bookID int64, shelf string) (*models.UserBook, error)
	UpdateProgress(ctx context.Context, userID string, bookID int64, pagesRead, percentage *int) (*models.UserBook, error)
	Get(ctx context.Context, userID string, bookID int64) (*models.UserBook, error)
	List(ctx context.Context, userID string, shelf string) ([]models.UserBook, error)
	Remove(ctx context.Context, userID string, bookID int64) error
}

type shelfService struct {
	repo     repository.ShelfRepository
	bookRepo repository.BookRepository
	recCache *cache.RecommendationCache
	logger   *slog.Logger
}

func NewShelfService(repo repository.ShelfRepository, bookRepo repository.BookRepository, recCache *cache.RecommendationCache, logger *slog.Logger) ShelfService {
	return &shelfService{
		repo:     repo,
		bookRepo: bookRepo,
		recCache: recCache,
		logger:   logger,
	}
}

// SetShelf creates or moves a shelf entry and keeps the book's denormalized
// shelf counters in step. Reading timestamps are set once and never
// overwritten.
func (s *shelfService) SetShelf(ctx context.Context, userID string, bookID int64, shelf string) (*models.UserBook, error) {
	if !models.ValidShelf(shelf) {
		return nil, ErrInvalidShelf
	}

	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	now := time.Now()

	entry, err := s.repo.Get(ctx, userID, bookID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// First shelve for this (user, book) pair.
		entry = &models.UserBook{
			UserID: userID,
			BookID: bookID,
			Shelf:  shelf,
		}
		switch shelf {
		case models.ShelfCurrentlyReading:
			entry.StartedReading = &now
		case models.ShelfRead:
			entry.FinishedReading = &now
			entry.Percentage = 100
		}
		if err := s.repo.Create(ctx, entry); err != nil {
			return nil, err
		}
		if err := s.bookRepo.AdjustShelfCount(ctx, bookID, shelf, +1); err != nil {
			return nil, err
		}
		s.invalidateRecommendations(ctx, userID)
		return entry, nil
	}

	if entry.Shelf == shelf {
		// Same shelf, nothing to count.
		return entry, nil
	}

	oldShelf := entry.Shelf
	entry.Shelf = shelf
	if shelf == models.ShelfCurrentlyReading && entry.StartedReading == nil {
		entry.StartedReading = &now
	}
	if shelf == models.ShelfRead {
		entry.Percentage = 100
		if entry.FinishedReading == nil {
			entry.FinishedReading = &now
		}
	} else if oldShelf == models.ShelfRead {
		// Re-shelving a finished book starts it over. Full progress only
		// belongs to the read shelf, and a stale 100% would push the entry
		// straight back there on the next progress update.
		entry.Percentage = 0
		entry.PagesRead = 0
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.bookRepo.AdjustShelfCount(ctx, bookID, oldShelf, -1); err != nil {
		return nil, err
	}
	if err := s.bookRepo.AdjustShelfCount(ctx, bookID, shelf, +1); err != nil {
		return nil, err
	}

	s.invalidateRecommendations(ctx, userID)
	return entry, nil
}

// UpdateProgress records pages read and completion percentage. Reaching 100%
// moves the entry to the read shelf; that is the only shelf change a progress
// update can trigger, and repeating the call at 100% changes nothing further.
func (s *shelfService) UpdateProgress(ctx context.Context, userID string, bookID int64, pagesRead, percentage *int) (*models.UserBook, error) {
	entry, err := s.repo.Get(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShelfEntryNotFound
		}
		return nil, err
	}

	if pagesRead != nil {
		pages := *pagesRead
		if pages < 0 {
			pages = 0
		}
		entry.PagesRead = pages

		// Derive percentage from pages when the client sent none and the
		// book's length is known.
		if percentage == nil {
			if book, err := s.bookRepo.GetByID(ctx, bookID); err == nil &&
				book.TotalPages != nil && *book.TotalPages > 0 {
				derived := pages * 100 / *book.TotalPages
				percentage = &derived
			}
		}
	}

	if percentage != nil {
		pct := clampPercentage(*percentage)
		entry.Percentage = pct
	}

	if entry.Percentage >= 100 && entry.Shelf != models.ShelfRead {
		oldShelf := entry.Shelf
		now := time.Now()
		entry.Shelf = models.ShelfRead
		entry.Percentage = 100
		if entry.FinishedReading == nil {
			entry.FinishedReading = &now
		}
		if err := s.repo.Save(ctx, entry); err != nil {
			return nil, err
		}
		if err := s.bookRepo.AdjustShelfCount(ctx, bookID, oldShelf, -1); err != nil {
			return nil, err
		}
		if err := s.bookRepo.AdjustShelfCount(ctx, bookID, models.ShelfRead, +1); err != nil {
			return nil, err
		}
		s.invalidateRecommendations(ctx, userID)
		return entry, nil
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *shelfService) Get(ctx context.Context, userID string, bookID int64) (*models.UserBook, error) {
	entry, err := s.repo.Get(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShelfEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *shelfService) List(ctx context.Context, userID string, shelf string) ([]models.UserBook, error) {
	if shelf != "" && !models.ValidShelf(shelf) {
		return nil, ErrInvalidShelf
	}
	return s.repo.ListByUser(ctx, userID, shelf)
}

// Remove takes a book off the user's shelf and decrements its counter.
func (s *shelfService) Remove(ctx context.Context, userID string, bookID int64) error {
	entry, err := s.repo.Get(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShelfEntryNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, userID, bookID); err != nil {
		return err
	}
	if err := s.bookRepo.AdjustShelfCount(ctx, bookID, entry.Shelf, -1); err != nil {
		return err
	}

	s.invalidateRecommendations(ctx, userID)
	return nil
}

// invalidateRecommendations drops the user's cached recommendation list. A
// stale list is harmless, so failures only get logged.
func (s *shelfService) invalidateRecommendations(ctx context.Context, userID string) {
	if err := s.recCache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("recommendation cache invalidation failed", "user_id", userID, "error", err)
	}
}

func clampPercentage(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
