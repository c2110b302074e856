package dto

import "bookhive/internal/http-api/models"

// CreateGenreDTO used for POST /api/genres
type CreateGenreDTO struct {
	Name        string  `json:"name" binding:"required,min=2,max=50"`
	Description *string `json:"description,omitempty"`
}

// UpdateGenreDTO used for PUT /api/genres/:id
type UpdateGenreDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=50"`
	Description *string `json:"description,omitempty"`
}

type GenreResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
	}
}
