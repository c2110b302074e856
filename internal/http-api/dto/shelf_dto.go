package dto

import (
	"time"

	"bookhive/internal/http-api/models"
)

// SetShelfRequest: payload to put a book on one of the three shelves
type SetShelfRequest struct {
	Shelf string `json:"shelf" binding:"required,oneof=want_to_read currently_reading read"`
}

// UpdateProgressRequest: payload for PUT /api/shelf/:book_id/progress.
// Both fields optional; percentage is clamped to [0,100] in the service.
type UpdateProgressRequest struct {
	PagesRead  *int `json:"pages_read,omitempty" binding:"omitempty,min=0"`
	Percentage *int `json:"percentage,omitempty"`
}

// ShelfEntryResponse: one shelf entry with its book
type ShelfEntryResponse struct {
	ID              int64         `json:"id"`
	BookID          int64         `json:"book_id"`
	Shelf           string        `json:"shelf"`
	PagesRead       int           `json:"pages_read"`
	Percentage      int           `json:"percentage"`
	StartedReading  *time.Time    `json:"started_reading,omitempty"`
	FinishedReading *time.Time    `json:"finished_reading,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Book            *BookResponse `json:"book,omitempty"`
}

// ShelfListResponse: a user's shelf
type ShelfListResponse struct {
	Items []ShelfEntryResponse `json:"items"`
	Total int                  `json:"total"`
}

func FromModelToShelfEntryResponse(entry models.UserBook) ShelfEntryResponse {
	resp := ShelfEntryResponse{
		ID:              entry.ID,
		BookID:          entry.BookID,
		Shelf:           entry.Shelf,
		PagesRead:       entry.PagesRead,
		Percentage:      entry.Percentage,
		StartedReading:  entry.StartedReading,
		FinishedReading: entry.FinishedReading,
		UpdatedAt:       entry.UpdatedAt,
	}
	if entry.Book != nil {
		book := FromModelToBookResponse(*entry.Book)
		resp.Book = &book
	}
	return resp
}
