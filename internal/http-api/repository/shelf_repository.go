package repository

import (
	"context"
	"fmt"
	"time"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type ShelfRepository interface {
	Get(ctx context.Context, userID string, bookID int64) (*models.UserBook, error)
	Create(ctx context.Context, entry *models.UserBook) error
	Save(ctx context.Context, entry *models.UserBook) error
	Delete(ctx context.Context, userID string, bookID int64) error
	DeleteByBook(ctx context.Context, bookID int64) error
	ListByUser(ctx context.Context, userID string, shelf string) ([]models.UserBook, error)
	ListUpdatedSince(ctx context.Context, userIDs []string, since time.Time, limit int) ([]models.UserBook, error)
}

type shelfRepository struct {
	db *gorm.DB
}

func NewShelfRepository(db *gorm.DB) ShelfRepository {
	return &shelfRepository{db: db}
}

func (r *shelfRepository) Get(ctx context.Context, userID string, bookID int64) (*models.UserBook, error) {
	var entry models.UserBook
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *shelfRepository) Create(ctx context.Context, entry *models.UserBook) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create shelf entry: %w", err)
	}
	return nil
}

func (r *shelfRepository) Save(ctx context.Context, entry *models.UserBook) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("save shelf entry: %w", err)
	}
	return nil
}

func (r *shelfRepository) Delete(ctx context.Context, userID string, bookID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.UserBook{})
	if result.Error != nil {
		return fmt.Errorf("delete shelf entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByBook removes every shelf entry for a book, used by the book-delete
// cascade.
func (r *shelfRepository) DeleteByBook(ctx context.Context, bookID int64) error {
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Delete(&models.UserBook{}).Error; err != nil {
		return fmt.Errorf("delete shelf entries for book: %w", err)
	}
	return nil
}

// ListByUser returns a user's shelf entries with Book and Genre preloaded,
// optionally filtered to one shelf (empty shelf = all).
func (r *shelfRepository) ListByUser(ctx context.Context, userID string, shelf string) ([]models.UserBook, error) {
	var list []models.UserBook
	db := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Book.Genre").
		Where("user_id = ?", userID)
	if shelf != "" {
		db = db.Where("shelf = ?", shelf)
	}
	if err := db.Order("updated_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list shelf: %w", err)
	}
	return list, nil
}

// ListUpdatedSince returns shelf entries of the given users touched after
// `since`, newest first. Feeds the activity timeline.
func (r *shelfRepository) ListUpdatedSince(ctx context.Context, userIDs []string, since time.Time, limit int) ([]models.UserBook, error) {
	var list []models.UserBook
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Where("user_id IN ? AND updated_at >= ?", userIDs, since).
		Order("updated_at desc").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list shelf updates: %w", err)
	}
	return list, nil
}
