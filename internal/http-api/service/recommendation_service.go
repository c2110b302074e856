package service

import (
	"context"
	"log/slog"
	"sort"

	"bookhive/internal/cache"
	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"
)

const (
	// Personalized recommendations need a minimal reading history to say
	// anything about taste.
	minReadBooks = 3

	topGenres       = 3
	minCandidateAvg = 3.5

	DefaultRecommendationLimit = 12
)

type RecommendationService interface {
	Recommend(ctx context.Context, userID string, limit int) ([]dto.BookResponse, error)
}

type recommendationService struct {
	shelfRepo repository.ShelfRepository
	bookRepo  repository.BookRepository
	recCache  *cache.RecommendationCache
	logger    *slog.Logger
}

func NewRecommendationService(shelfRepo repository.ShelfRepository, bookRepo repository.BookRepository, recCache *cache.RecommendationCache, logger *slog.Logger) RecommendationService {
	return &recommendationService{
		shelfRepo: shelfRepo,
		bookRepo:  bookRepo,
		recCache:  recCache,
		logger:    logger,
	}
}

// Recommend proposes up to limit unread books. Books from the user's three
// most-read genres come first (best rated, most rated), then globally popular
// books pad the list. No duplicates, already-read books never appear.
func (s *recommendationService) Recommend(ctx context.Context, userID string, limit int) ([]dto.BookResponse, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	var cached []dto.BookResponse
	hit, err := s.recCache.Get(ctx, userID, limit, &cached)
	if err != nil {
		s.logger.Warn("recommendation cache read failed", "user_id", userID, "error", err)
	} else if hit {
		return cached, nil
	}

	readEntries, err := s.shelfRepo.ListByUser(ctx, userID, models.ShelfRead)
	if err != nil {
		return nil, err
	}

	readIDs := make([]int64, 0, len(readEntries))
	for _, entry := range readEntries {
		readIDs = append(readIDs, entry.BookID)
	}

	var picks []models.Book
	if len(readEntries) >= minReadBooks {
		genreIDs := rankGenres(readEntries, topGenres)
		if len(genreIDs) > 0 {
			picks, err = s.bookRepo.FindByGenresAboveRating(ctx, genreIDs, readIDs, minCandidateAvg, limit)
			if err != nil {
				return nil, err
			}
		}
	}

	// Pad with globally popular books until the limit is reached or the
	// catalog runs out.
	if len(picks) < limit {
		exclude := make([]int64, 0, len(readIDs)+len(picks))
		exclude = append(exclude, readIDs...)
		for _, b := range picks {
			exclude = append(exclude, b.ID)
		}

		popular, err := s.bookRepo.FindPopular(ctx, exclude, limit-len(picks))
		if err != nil {
			return nil, err
		}
		picks = append(picks, popular...)
	}

	responses := make([]dto.BookResponse, 0, len(picks))
	for _, b := range picks {
		responses = append(responses, dto.FromModelToBookResponse(b))
	}

	if err := s.recCache.Set(ctx, userID, limit, responses); err != nil {
		s.logger.Warn("recommendation cache write failed", "user_id", userID, "error", err)
	}

	return responses, nil
}

// rankGenres returns the ids of the top-n genres by frequency among the
// entries' books. Equal frequencies are broken by ascending genre id so the
// ranking is deterministic.
func rankGenres(entries []models.UserBook, n int) []int64 {
	counts := make(map[int64]int)
	for _, entry := range entries {
		if entry.Book == nil || entry.Book.GenreID == nil {
			continue
		}
		counts[*entry.Book.GenreID]++
	}

	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
