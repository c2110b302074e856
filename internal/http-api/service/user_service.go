package service

import (
	"context"
	"errors"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	GetPublicProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateGoal(ctx context.Context, userID string, year, target int) error
}

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GetProfile returns the caller's own profile, email and role included.
func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	return s.profile(ctx, userID, true)
}

// GetPublicProfile returns another user's profile without email or role.
func (s *userService) GetPublicProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	return s.profile(ctx, userID, false)
}

func (s *userService) profile(ctx context.Context, userID string, private bool) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	following, followers, err := s.followRepo.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		GoalYear:  user.GoalYear,
		GoalBooks: user.GoalBooks,
		Following: following,
		Followers: followers,
		CreatedAt: user.CreatedAt,
	}
	if private {
		resp.Email = user.Email
		resp.Role = user.Role
	}
	return resp, nil
}

// UpdateGoal sets the caller's yearly reading target.
func (s *userService) UpdateGoal(ctx context.Context, userID string, year, target int) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.UpdateGoal(userID, year, target)
}
