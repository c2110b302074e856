package dto

import "bookhive/internal/http-api/models"

// CreateTutorialDTO used for POST /api/tutorials
type CreateTutorialDTO struct {
	Title       string  `json:"title" binding:"required,min=2,max=200"`
	VideoURL    string  `json:"video_url" binding:"required,url"`
	Description *string `json:"description,omitempty"`
}

// UpdateTutorialDTO used for PUT /api/tutorials/:id
type UpdateTutorialDTO struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=2,max=200"`
	VideoURL    *string `json:"video_url,omitempty" binding:"omitempty,url"`
	Description *string `json:"description,omitempty"`
}

type TutorialResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	VideoURL    string  `json:"video_url"`
	Description *string `json:"description,omitempty"`
}

func TutorialFromModel(t models.Tutorial) TutorialResponse {
	return TutorialResponse{
		ID:          t.ID,
		Title:       t.Title,
		VideoURL:    t.VideoURL,
		Description: t.Description,
	}
}
