package service

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review already exists for this book")
	ErrNotReviewOwner  = errors.New("review belongs to another user")
	ErrInvalidStatus   = errors.New("invalid review status")
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID string, bookID int64, rating int, comment string) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID string, bookID int64, rating int, comment string) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID string, bookID int64) error
	GetUserReview(ctx context.Context, userID string, bookID int64) (*dto.ReviewResponse, error)
	GetBookReviews(ctx context.Context, bookID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	ListByStatus(ctx context.Context, status string, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	SetStatus(ctx context.Context, reviewID int64, status string) (*dto.ReviewResponse, error)
	DeleteByID(ctx context.Context, reviewID int64) error
	RecomputeRating(ctx context.Context, bookID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
	logger     *slog.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository, logger *slog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		logger:     logger,
	}
}

// CreateReview submits a new review in pending state. Pending reviews do not
// touch the book's rating aggregate, so no recompute here.
func (s *reviewService) CreateReview(ctx context.Context, userID string, bookID int64, rating int, comment string) (*dto.ReviewResponse, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.GetByUserAndBook(ctx, userID, bookID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  rating,
		Comment: comment,
		Status:  models.ReviewPending,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// Reload with user data
	review, err := s.reviewRepo.GetByUserAndBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

// UpdateReview edits the caller's own review. The edit goes back through
// moderation; if the old version was approved and counted, the aggregate has
// to drop it, hence the recompute.
func (s *reviewService) UpdateReview(ctx context.Context, userID string, bookID int64, rating int, comment string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByUserAndBook(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	wasApproved := review.Status == models.ReviewApproved

	review.Rating = rating
	review.Comment = comment
	review.Status = models.ReviewPending
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	if wasApproved {
		s.recomputeBestEffort(ctx, bookID)
	}

	return dto.FromModelToReviewResponse(review), nil
}

// DeleteReview removes the caller's own review and recomputes the book's
// aggregate. Recompute is idempotent, so it runs for any prior status.
func (s *reviewService) DeleteReview(ctx context.Context, userID string, bookID int64) error {
	review, err := s.reviewRepo.GetByUserAndBook(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return err
	}

	s.recomputeBestEffort(ctx, bookID)
	return nil
}

func (s *reviewService) GetUserReview(ctx context.Context, userID string, bookID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByUserAndBook(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// GetBookReviews lists the approved reviews of a book with pagination.
func (s *reviewService) GetBookReviews(ctx context.Context, bookID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByBook(ctx, bookID, models.ReviewApproved, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&review))
	}

	return dto.NewPaginatedReviewResponse(responses, int(total), page, pageSize), nil
}

// ListByStatus is the moderation queue view.
func (s *reviewService) ListByStatus(ctx context.Context, status string, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if !models.ValidReviewStatus(status) {
		return nil, ErrInvalidStatus
	}

	reviews, total, err := s.reviewRepo.ListByStatus(ctx, status, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&review))
	}

	return dto.NewPaginatedReviewResponse(responses, int(total), page, pageSize), nil
}

// SetStatus moves a review through moderation. The aggregate is recomputed
// whenever the transition can change the counted set: entering approved, or
// leaving it.
func (s *reviewService) SetStatus(ctx context.Context, reviewID int64, status string) (*dto.ReviewResponse, error) {
	if !models.ValidReviewStatus(status) {
		return nil, ErrInvalidStatus
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	wasApproved := review.Status == models.ReviewApproved
	review.Status = status
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	if wasApproved != (status == models.ReviewApproved) {
		s.recomputeBestEffort(ctx, review.BookID)
	}

	return dto.FromModelToReviewResponse(review), nil
}

// DeleteByID is the admin delete; it always recomputes.
func (s *reviewService) DeleteByID(ctx context.Context, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return err
	}

	s.recomputeBestEffort(ctx, review.BookID)
	return nil
}

// RecomputeRating rebuilds a book's average rating and ratings count from its
// approved reviews: 0/0 when none, otherwise the mean rounded to one decimal.
// Safe to call at any time.
func (s *reviewService) RecomputeRating(ctx context.Context, bookID int64) error {
	count, err := s.reviewRepo.CountApproved(ctx, bookID)
	if err != nil {
		return err
	}

	var avg float64
	if count > 0 {
		avg, err = s.reviewRepo.AverageApprovedRating(ctx, bookID)
		if err != nil {
			return err
		}
		avg = math.Round(avg*10) / 10
	}

	return s.bookRepo.SetRatingAggregate(ctx, bookID, avg, count)
}

// recomputeBestEffort logs and swallows aggregation failures so the parent
// review mutation still succeeds.
func (s *reviewService) recomputeBestEffort(ctx context.Context, bookID int64) {
	if err := s.RecomputeRating(ctx, bookID); err != nil {
		s.logger.Error("rating recompute failed", "book_id", bookID, "error", err)
	}
}
