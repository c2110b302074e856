package repository

import (
	"context"
	"fmt"
	"strings"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, id int64, b *models.Book) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Book, error)
	GetByGenre(ctx context.Context, genreID int64) ([]models.Book, error)
	CountByGenre(ctx context.Context, genreID int64) (int64, error)
	SetRatingAggregate(ctx context.Context, id int64, avg float64, count int64) error
	AdjustShelfCount(ctx context.Context, id int64, shelf string, delta int) error
	FindByGenresAboveRating(ctx context.Context, genreIDs []int64, excludeIDs []int64, minRating float64, limit int) ([]models.Book, error)
	FindPopular(ctx context.Context, excludeIDs []int64, limit int) ([]models.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Preload("Genre").
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).Preload("Genre").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) Update(ctx context.Context, id int64, b *models.Book) error {
	b.ID = id
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Book{}, id).Error; err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// Search performs case-insensitive partial match on title, author and description.
// Splits query into tokens and requires each token to appear in at least one of
// the fields.
func (r *bookRepository) Search(ctx context.Context, query string) ([]models.Book, error) {
	var list []models.Book
	tokens := strings.Fields(query)
	db := r.db.WithContext(ctx)

	if len(tokens) == 0 {
		return list, nil
	}

	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*3)
	for _, t := range tokens {
		p := "%" + t + "%"
		// COALESCE avoids NULL description breaking ILIKE
		clauses = append(clauses, "(title ILIKE ? OR author ILIKE ? OR COALESCE(description,'') ILIKE ?)")
		args = append(args, p, p, p)
	}

	where := strings.Join(clauses, " AND ")
	if err := db.Where(where, args...).Preload("Genre").Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return list, nil
}

func (r *bookRepository) GetByGenre(ctx context.Context, genreID int64) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).
		Where("genre_id = ?", genreID).
		Preload("Genre").
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get books by genre: %w", err)
	}
	return list, nil
}

func (r *bookRepository) CountByGenre(ctx context.Context, genreID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("genre_id = ?", genreID).Count(&count).Error
	return count, err
}

// SetRatingAggregate persists the recomputed average rating and ratings count.
// Only the rating aggregator calls this.
func (r *bookRepository) SetRatingAggregate(ctx context.Context, id int64, avg float64, count int64) error {
	result := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).
		Updates(map[string]any{"average_rating": avg, "ratings_count": count})
	if result.Error != nil {
		return fmt.Errorf("set rating aggregate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustShelfCount atomically bumps one of the denormalized shelf counters by
// delta, flooring at zero. Single-column increment, no transaction.
func (r *bookRepository) AdjustShelfCount(ctx context.Context, id int64, shelf string, delta int) error {
	var column string
	switch shelf {
	case models.ShelfWantToRead:
		column = "want_count"
	case models.ShelfCurrentlyReading:
		column = "current_count"
	case models.ShelfRead:
		column = "read_count"
	default:
		return fmt.Errorf("unknown shelf %q", shelf)
	}

	expr := gorm.Expr("GREATEST("+column+" + ?, 0)", delta)
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).
		Update(column, expr).Error; err != nil {
		return fmt.Errorf("adjust shelf count: %w", err)
	}
	return nil
}

// FindByGenresAboveRating returns candidate books for recommendations: in one
// of the given genres, not in excludeIDs, rated at least minRating, best first.
func (r *bookRepository) FindByGenresAboveRating(ctx context.Context, genreIDs []int64, excludeIDs []int64, minRating float64, limit int) ([]models.Book, error) {
	var list []models.Book
	db := r.db.WithContext(ctx).
		Where("genre_id IN ?", genreIDs).
		Where("average_rating >= ?", minRating)
	if len(excludeIDs) > 0 {
		db = db.Where("id NOT IN ?", excludeIDs)
	}
	if err := db.Preload("Genre").
		Order("average_rating desc, ratings_count desc").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find recommendation candidates: %w", err)
	}
	return list, nil
}

// FindPopular returns globally popular books (best rated, most rated first),
// skipping excludeIDs. Used to pad short recommendation lists.
func (r *bookRepository) FindPopular(ctx context.Context, excludeIDs []int64, limit int) ([]models.Book, error) {
	var list []models.Book
	db := r.db.WithContext(ctx)
	if len(excludeIDs) > 0 {
		db = db.Where("id NOT IN ?", excludeIDs)
	}
	if err := db.Preload("Genre").
		Order("average_rating desc, ratings_count desc").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find popular books: %w", err)
	}
	return list, nil
}
