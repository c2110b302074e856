package service

import (
	"context"
	"errors"
	"math"
	"time"

	"bookhive/internal/http-api/dto"
	"bookhive/internal/http-api/models"
	"bookhive/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// The genre bucket for read books whose genre was deleted or never set.
const unknownGenre = "Unknown"

type StatsService interface {
	ComputeStats(ctx context.Context, userID string, year int) (*dto.StatsResponse, error)
}

type statsService struct {
	shelfRepo repository.ShelfRepository
	userRepo  repository.UserRepository
}

func NewStatsService(shelfRepo repository.ShelfRepository, userRepo repository.UserRepository) StatsService {
	return &statsService{
		shelfRepo: shelfRepo,
		userRepo:  userRepo,
	}
}

// ComputeStats derives a user's yearly reading summary from their shelf
// entries in a single pass. Nothing is persisted.
func (s *statsService) ComputeStats(ctx context.Context, userID string, year int) (*dto.StatsResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if year == 0 {
		year = time.Now().Year()
	}

	entries, err := s.shelfRepo.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsResponse{
		Year:           year,
		TotalBooks:     len(entries),
		GenreBreakdown: make(map[string]int),
	}

	for _, entry := range entries {
		switch entry.Shelf {
		case models.ShelfWantToRead:
			stats.BooksWantToRead++
		case models.ShelfCurrentlyReading:
			stats.BooksReading++
		case models.ShelfRead:
			stats.BooksRead++

			if entry.Book != nil && entry.Book.TotalPages != nil {
				stats.TotalPages += *entry.Book.TotalPages
			}

			genre := unknownGenre
			if entry.Book != nil && entry.Book.Genre != nil {
				genre = entry.Book.Genre.Name
			}
			stats.GenreBreakdown[genre]++

			if entry.FinishedReading != nil && entry.FinishedReading.Year() == year {
				stats.BooksThisYear++
				stats.MonthlyProgress[int(entry.FinishedReading.Month())-1]++
			}
		}
	}

	stats.ReadingGoal = dto.ReadingGoalStats{
		Year:      year,
		Completed: stats.BooksThisYear,
	}
	if user.GoalYear == year {
		stats.ReadingGoal.Target = user.GoalBooks
	}
	if stats.ReadingGoal.Target > 0 {
		stats.ReadingGoal.Percentage = int(math.Round(float64(stats.BooksThisYear) / float64(stats.ReadingGoal.Target) * 100))
	}

	return stats, nil
}
