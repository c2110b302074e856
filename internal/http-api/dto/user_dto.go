package dto

import "time"

// UpdateGoalRequest: payload for PUT /api/users/me/goal
type UpdateGoalRequest struct {
	Year   int `json:"year" binding:"required,min=2000,max=2100"`
	Target int `json:"target" binding:"min=0"`
}

// ProfileResponse: the caller's own profile
type ProfileResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role,omitempty"`
	GoalYear   int       `json:"goal_year"`
	GoalBooks  int       `json:"goal_books"`
	Following  int64     `json:"following"`
	Followers  int64     `json:"followers"`
	CreatedAt  time.Time `json:"created_at"`
}
