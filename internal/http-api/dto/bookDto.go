package dto

import (
	"bookhive/internal/http-api/models"
	"time"
)

// CreateBookDTO used for POST /api/books
type CreateBookDTO struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Description *string `json:"description,omitempty"`
	GenreID     *int64  `json:"genre_id,omitempty"`
	TotalPages  *int    `json:"total_pages,omitempty" binding:"omitempty,min=1"`
	CoverImage  *string `json:"cover_image,omitempty"` // base64-encoded image bytes
}

// UpdateBookDTO used for PUT /api/books/:id (partial updates allowed)
type UpdateBookDTO struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Description *string `json:"description,omitempty"`
	GenreID     *int64  `json:"genre_id,omitempty"`
	TotalPages  *int    `json:"total_pages,omitempty" binding:"omitempty,min=1"`
	CoverImage  *string `json:"cover_image,omitempty"`
}

// BookResponse DTO for responses
type BookResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Description   *string    `json:"description,omitempty"`
	Genre         *string    `json:"genre,omitempty"`
	GenreID       *int64     `json:"genre_id,omitempty"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	TotalPages    *int       `json:"total_pages,omitempty"`
	AverageRating float64    `json:"average_rating"`
	RatingsCount  int64      `json:"ratings_count"`
	WantCount     int64      `json:"want_count"`
	CurrentCount  int64      `json:"current_count"`
	ReadCount     int64      `json:"read_count"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// PaginatedBookResponse for book listings
type PaginatedBookResponse struct {
	Data       []BookResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// Converters
func (d CreateBookDTO) ToModel() models.Book {
	return models.Book{
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		GenreID:     d.GenreID,
		TotalPages:  d.TotalPages,
	}
}

func (d UpdateBookDTO) ApplyTo(b *models.Book) {
	if d.Title != nil {
		b.Title = *d.Title
	}
	if d.Author != nil {
		b.Author = *d.Author
	}
	if d.Description != nil {
		b.Description = d.Description
	}
	if d.GenreID != nil {
		b.GenreID = d.GenreID
	}
	if d.TotalPages != nil {
		b.TotalPages = d.TotalPages
	}
}

func FromModelToBookResponse(b models.Book) BookResponse {
	resp := BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		GenreID:       b.GenreID,
		CoverURL:      b.CoverURL,
		TotalPages:    b.TotalPages,
		AverageRating: b.AverageRating,
		RatingsCount:  b.RatingsCount,
		WantCount:     b.WantCount,
		CurrentCount:  b.CurrentCount,
		ReadCount:     b.ReadCount,
		CreatedAt:     b.CreatedAt,
	}
	if b.Genre != nil {
		resp.Genre = &b.Genre.Name
	}
	return resp
}

// NewPaginatedBookResponse builds the standard paginated envelope.
func NewPaginatedBookResponse(data []BookResponse, total, page, pageSize int) *PaginatedBookResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedBookResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
