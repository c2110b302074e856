package repository

import (
	"context"
	"fmt"
	"time"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Save(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	DeleteByBook(ctx context.Context, bookID int64) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetByUserAndBook(ctx context.Context, userID string, bookID int64) (*models.Review, error)
	ListByBook(ctx context.Context, bookID int64, status string, page, pageSize int) ([]models.Review, int64, error)
	ListByStatus(ctx context.Context, status string, page, pageSize int) ([]models.Review, int64, error)
	AverageApprovedRating(ctx context.Context, bookID int64) (float64, error)
	CountApproved(ctx context.Context, bookID int64) (int64, error)
	ListApprovedSince(ctx context.Context, userIDs []string, since time.Time, limit int) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Save(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByBook removes every review of a book, used by the book-delete cascade.
func (r *reviewRepository) DeleteByBook(ctx context.Context, bookID int64) error {
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Delete(&models.Review{}).Error; err != nil {
		return fmt.Errorf("delete reviews for book: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByUserAndBook(ctx context.Context, userID string, bookID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Preload("User").
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByBook retrieves reviews of a book with pagination, optionally filtered
// by moderation status (empty status = all).
func (r *reviewRepository) ListByBook(ctx context.Context, bookID int64, status string, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Review{}).Where("book_id = ?", bookID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := db.
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// ListByStatus retrieves reviews in a moderation state across all books,
// oldest first so the moderation queue is FIFO.
func (r *reviewRepository) ListByStatus(ctx context.Context, status string, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Review{}).Where("status = ?", status)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := db.
		Preload("User").
		Preload("Book").
		Order("created_at ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// AverageApprovedRating computes the mean rating over approved reviews of a
// book, 0 when there are none.
func (r *reviewRepository) AverageApprovedRating(ctx context.Context, bookID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("book_id = ? AND status = ?", bookID, models.ReviewApproved).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}

func (r *reviewRepository) CountApproved(ctx context.Context, bookID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("book_id = ? AND status = ?", bookID, models.ReviewApproved).
		Count(&count).Error
	return count, err
}

// ListApprovedSince returns approved reviews by the given users created after
// `since`, newest first. Feeds the activity timeline.
func (r *reviewRepository) ListApprovedSince(ctx context.Context, userIDs []string, since time.Time, limit int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Where("user_id IN ? AND status = ? AND created_at >= ?", userIDs, models.ReviewApproved, since).
		Order("created_at desc").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list recent reviews: %w", err)
	}
	return reviews, nil
}
