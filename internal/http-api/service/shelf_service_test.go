package service

import (
	"context"
	"testing"
	"time"

	"bookhive/internal/cache"
	"bookhive/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newShelfService(shelfRepo *MockShelfRepository, bookRepo *MockBookRepository) ShelfService {
	return NewShelfService(shelfRepo, bookRepo, cache.NewDisabled(), testLogger())
}

func TestSetShelf_FirstShelve(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	mockBookRepo.On("GetByID", ctx, int64(1)).Return(&models.Book{ID: 1}, nil)
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(nil, gorm.ErrRecordNotFound)
	mockShelfRepo.On("Create", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfWantToRead, 1).Return(nil)

	entry, err := svc.SetShelf(ctx, "user-1", 1, models.ShelfWantToRead)

	assert.NoError(t, err)
	assert.Equal(t, models.ShelfWantToRead, entry.Shelf)
	assert.Nil(t, entry.StartedReading)
	assert.Nil(t, entry.FinishedReading)
	mockBookRepo.AssertExpectations(t)
}

func TestSetShelf_FirstShelveCurrentlyReadingStampsStart(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	mockBookRepo.On("GetByID", ctx, int64(1)).Return(&models.Book{ID: 1}, nil)
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(nil, gorm.ErrRecordNotFound)
	mockShelfRepo.On("Create", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfCurrentlyReading, 1).Return(nil)

	entry, err := svc.SetShelf(ctx, "user-1", 1, models.ShelfCurrentlyReading)

	assert.NoError(t, err)
	assert.NotNil(t, entry.StartedReading)
	assert.Nil(t, entry.FinishedReading)
}

func TestSetShelf_DirectToReadSetsFinishAndFullProgress(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	mockBookRepo.On("GetByID", ctx, int64(1)).Return(&models.Book{ID: 1}, nil)
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(nil, gorm.ErrRecordNotFound)
	mockShelfRepo.On("Create", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfRead, 1).Return(nil)

	entry, err := svc.SetShelf(ctx, "user-1", 1, models.ShelfRead)

	assert.NoError(t, err)
	assert.NotNil(t, entry.FinishedReading)
	assert.Equal(t, 100, entry.Percentage)
}

func TestSetShelf_MoveAdjustsBothCounters(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	existing := &models.UserBook{UserID: "user-1", BookID: 1, Shelf: models.ShelfWantToRead}
	mockBookRepo.On("GetByID", ctx, int64(1)).Return(&models.Book{ID: 1}, nil)
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)
	mockShelfRepo.On("Save", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfWantToRead, -1).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfCurrentlyReading, 1).Return(nil)

	entry, err := svc.SetShelf(ctx, "user-1", 1, models.ShelfCurrentlyReading)

	assert.NoError(t, err)
	assert.Equal(t, models.ShelfCurrentlyReading, entry.Shelf)
	assert.NotNil(t, entry.StartedReading)
	mockBookRepo.AssertExpectations(t)
}

func TestSetShelf_LeavingReadResetsProgress(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	finished := time.Now().Add(-24 * time.Hour)
	existing := &models.UserBook{
		UserID:          "user-1",
		BookID:          1,
		Shelf:           models.ShelfRead,
		Percentage:      100,
		PagesRead:       320,
		FinishedReading: &finished,
	}
	mockBookRepo.On("GetByID", ctx, int64(1)).Return(&models.Book{ID: 1}, nil)
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)
	mockShelfRepo.On("Save", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfRead, -1).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfCurrentlyReading, 1).Return(nil)

	entry, err := svc.SetShelf(ctx, "user-1", 1, models.ShelfCurrentlyReading)

	assert.NoError(t, err)
	assert.Equal(t, models.ShelfCurrentlyReading, entry.Shelf)
	assert.Equal(t, 0, entry.Percentage)
	assert.Equal(t, 0, entry.PagesRead)
	// The finish timestamp records history and is never cleared.
	assert.NotNil(t, entry.FinishedReading)
}

func TestSetShelf_SameShelfIsNoop(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	existing := &models.UserBook{UserID: "user-1", BookID: 1, Shelf: models.ShelfRead, Percentage: 100}
	mockBookRepo.On("GetByID", ctx, int64(1)).Return(&models.Book{ID: 1}, nil)
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)

	_, err := svc.SetShelf(ctx, "user-1", 1, models.ShelfRead)

	assert.NoError(t, err)
	mockShelfRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockBookRepo.AssertNotCalled(t, "AdjustShelfCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetShelf_TimestampsSetOnlyOnce(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finished := time.Date(2026, 4, 2, 20, 0, 0, 0, time.UTC)
	existing := &models.UserBook{
		UserID:          "user-1",
		BookID:          1,
		Shelf:           models.ShelfWantToRead,
		StartedReading:  &started,
		FinishedReading: &finished,
	}
	mockBookRepo.On("GetByID", ctx, int64(1)).Return(&models.Book{ID: 1}, nil)
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)
	mockShelfRepo.On("Save", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfWantToRead, -1).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfRead, 1).Return(nil)

	entry, err := svc.SetShelf(ctx, "user-1", 1, models.ShelfRead)

	// A re-read keeps the original timestamps.
	assert.NoError(t, err)
	assert.Equal(t, started, *entry.StartedReading)
	assert.Equal(t, finished, *entry.FinishedReading)
}

func TestSetShelf_InvalidShelf(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)

	entry, err := svc.SetShelf(context.Background(), "user-1", 1, "abandoned")

	assert.Nil(t, entry)
	assert.Equal(t, ErrInvalidShelf, err)
}

func TestUpdateProgress_ClampsPercentage(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	existing := &models.UserBook{UserID: "user-1", BookID: 1, Shelf: models.ShelfCurrentlyReading, Percentage: 40}
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)
	mockShelfRepo.On("Save", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)

	pct := -10
	entry, err := svc.UpdateProgress(ctx, "user-1", 1, nil, &pct)

	assert.NoError(t, err)
	assert.Equal(t, 0, entry.Percentage)
	assert.Equal(t, models.ShelfCurrentlyReading, entry.Shelf)
}

func TestUpdateProgress_DerivesPercentageFromPages(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	totalPages := 400
	existing := &models.UserBook{UserID: "user-1", BookID: 1, Shelf: models.ShelfCurrentlyReading}
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)
	mockBookRepo.On("GetByID", ctx, int64(1)).Return(&models.Book{ID: 1, TotalPages: &totalPages}, nil)
	mockShelfRepo.On("Save", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)

	pages := 100
	entry, err := svc.UpdateProgress(ctx, "user-1", 1, &pages, nil)

	assert.NoError(t, err)
	assert.Equal(t, 100, entry.PagesRead)
	assert.Equal(t, 25, entry.Percentage)
}

func TestUpdateProgress_ReachingFullMovesToRead(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	existing := &models.UserBook{UserID: "user-1", BookID: 1, Shelf: models.ShelfCurrentlyReading, Percentage: 80}
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)
	mockShelfRepo.On("Save", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfCurrentlyReading, -1).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfRead, 1).Return(nil)

	pct := 120
	entry, err := svc.UpdateProgress(ctx, "user-1", 1, nil, &pct)

	assert.NoError(t, err)
	assert.Equal(t, models.ShelfRead, entry.Shelf)
	assert.Equal(t, 100, entry.Percentage)
	assert.NotNil(t, entry.FinishedReading)
	mockBookRepo.AssertExpectations(t)
}

func TestUpdateProgress_RepeatAtFullIsStable(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	finished := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	existing := &models.UserBook{
		UserID:          "user-1",
		BookID:          1,
		Shelf:           models.ShelfRead,
		Percentage:      100,
		FinishedReading: &finished,
	}
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)
	mockShelfRepo.On("Save", ctx, mock.AnythingOfType("*models.UserBook")).Return(nil)

	pct := 100
	entry, err := svc.UpdateProgress(ctx, "user-1", 1, nil, &pct)

	// Already read: no shelf change, no counter moves, timestamp untouched.
	assert.NoError(t, err)
	assert.Equal(t, models.ShelfRead, entry.Shelf)
	assert.Equal(t, finished, *entry.FinishedReading)
	mockBookRepo.AssertNotCalled(t, "AdjustShelfCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProgress_NotOnShelf(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(nil, gorm.ErrRecordNotFound)

	pct := 50
	entry, err := svc.UpdateProgress(ctx, "user-1", 1, nil, &pct)

	assert.Nil(t, entry)
	assert.Equal(t, ErrShelfEntryNotFound, err)
}

func TestRemove_DecrementsCounter(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)
	ctx := context.Background()

	existing := &models.UserBook{UserID: "user-1", BookID: 1, Shelf: models.ShelfCurrentlyReading}
	mockShelfRepo.On("Get", ctx, "user-1", int64(1)).Return(existing, nil)
	mockShelfRepo.On("Delete", ctx, "user-1", int64(1)).Return(nil)
	mockBookRepo.On("AdjustShelfCount", ctx, int64(1), models.ShelfCurrentlyReading, -1).Return(nil)

	err := svc.Remove(ctx, "user-1", 1)

	assert.NoError(t, err)
	mockBookRepo.AssertExpectations(t)
}

func TestList_InvalidShelfFilter(t *testing.T) {
	mockShelfRepo := new(MockShelfRepository)
	mockBookRepo := new(MockBookRepository)
	svc := newShelfService(mockShelfRepo, mockBookRepo)

	list, err := svc.List(context.Background(), "user-1", "finished")

	assert.Nil(t, list)
	assert.Equal(t, ErrInvalidShelf, err)
}
