package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

type FollowService interface {
	Toggle(ctx context.Context, userID, targetID string) (following bool, err error)
	ListFollowing(ctx context.Context, userID string) ([]dto.UserSummary, error)
	ListFollowers(ctx context.Context, userID string) ([]dto.UserSummary, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Toggle follows the target if no edge exists, unfollows otherwise. One row
// covers both the following and followers views, so the relation stays
// symmetric by construction.
func (s *followService) Toggle(ctx context.Context, userID, targetID string) (bool, error) {
	if userID == targetID {
		return false, ErrSelfFollow
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	_, err := s.followRepo.Get(ctx, userID, targetID)
	if err == nil {
		if err := s.followRepo.Delete(ctx, userID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	edge := &models.Follow{
		FollowerID: userID,
		FolloweeID: targetID,
	}
	if err := s.followRepo.Create(ctx, edge); err != nil {
		return false, err
	}
	return true, nil
}

func (s *followService) ListFollowing(ctx context.Context, userID string) ([]dto.UserSummary, error) {
	users, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSummaries(users), nil
}

func (s *followService) ListFollowers(ctx context.Context, userID string) ([]dto.UserSummary, error) {
	users, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSummaries(users), nil
}

func toSummaries(users []models.User) []dto.UserSummary {
	summaries := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, dto.UserSummary{ID: u.ID, Username: u.Username})
	}
	return summaries
}
