package repository

import (
	"context"
	"fmt"

	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Get(ctx context.Context, followerID, followeeID string) (*models.Follow, error)
	Create(ctx context.Context, edge *models.Follow) error
	Delete(ctx context.Context, followerID, followeeID string) error
	FolloweeIDs(ctx context.Context, followerID string) ([]string, error)
	ListFollowing(ctx context.Context, followerID string) ([]models.User, error)
	ListFollowers(ctx context.Context, followeeID string) ([]models.User, error)
	Counts(ctx context.Context, userID string) (following int64, followers int64, err error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Get(ctx context.Context, followerID, followeeID string) (*models.Follow, error) {
	var edge models.Follow
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *followRepository) Create(ctx context.Context, edge *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("delete follow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FolloweeIDs returns the ids of everyone the user follows.
func (r *followRepository) FolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list followee ids: %w", err)
	}
	return ids, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows f ON f.followee_id = users.id").
		Where("f.follower_id = ?", followerID).
		Order("f.created_at desc").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, followeeID string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows f ON f.follower_id = users.id").
		Where("f.followee_id = ?", followeeID).
		Order("f.created_at desc").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) Counts(ctx context.Context, userID string) (int64, int64, error) {
	var following, followers int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followee_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, err
	}
	return following, followers, nil
}
