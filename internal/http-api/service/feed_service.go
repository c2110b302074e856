package service

import (
	"context"
	"sort"
	"time"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/repository"
)

const (
	feedWindow  = 30 * 24 * time.Hour
	feedMaxSize = 20
)

type FeedService interface {
	BuildFeed(ctx context.Context, userID string) ([]dto.FeedEvent, error)
}

type feedService struct {
	followRepo repository.FollowRepository
	shelfRepo  repository.ShelfRepository
	reviewRepo repository.ReviewRepository
}

func NewFeedService(followRepo repository.FollowRepository, shelfRepo repository.ShelfRepository, reviewRepo repository.ReviewRepository) FeedService {
	return &feedService{
		followRepo: followRepo,
		shelfRepo:  shelfRepo,
		reviewRepo: reviewRepo,
	}
}

// BuildFeed merges recent shelf changes and approved reviews from followed
// users into one reverse-chronological timeline, capped at 20 events over the
// last 30 days. A user who follows nobody gets an empty feed without any
// activity queries.
func (s *feedService) BuildFeed(ctx context.Context, userID string) ([]dto.FeedEvent, error) {
	followeeIDs, err := s.followRepo.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followeeIDs) == 0 {
		return []dto.FeedEvent{}, nil
	}

	since := time.Now().Add(-feedWindow)

	shelfEntries, err := s.shelfRepo.ListUpdatedSince(ctx, followeeIDs, since, feedMaxSize)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListApprovedSince(ctx, followeeIDs, since, feedMaxSize)
	if err != nil {
		return nil, err
	}

	events := make([]dto.FeedEvent, 0, len(shelfEntries)+len(reviews))

	for _, entry := range shelfEntries {
		event := dto.FeedEvent{
			Type:      dto.FeedEventShelfUpdate,
			UserID:    entry.UserID,
			Shelf:     entry.Shelf,
			Timestamp: entry.UpdatedAt,
		}
		if entry.User != nil {
			event.Username = entry.User.Username
		}
		if entry.Book != nil {
			book := dto.FromModelToBookResponse(*entry.Book)
			event.Book = &book
		}
		events = append(events, event)
	}

	for _, review := range reviews {
		event := dto.FeedEvent{
			Type:      dto.FeedEventReview,
			UserID:    review.UserID,
			Rating:    review.Rating,
			Timestamp: review.CreatedAt,
		}
		if review.User != nil {
			event.Username = review.User.Username
		}
		if review.Book != nil {
			book := dto.FromModelToBookResponse(*review.Book)
			event.Book = &book
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	if len(events) > feedMaxSize {
		events = events[:feedMaxSize]
	}

	return events, nil
}
