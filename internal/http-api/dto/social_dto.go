package dto

import "time"

// Feed event types
const (
	FeedEventShelfUpdate = "shelf_update"
	FeedEventReview      = "review"
)

// FeedEvent: one entry in the activity timeline. Shelf updates carry Shelf,
// review events carry Rating.
type FeedEvent struct {
	Type      string        `json:"type"`
	UserID    string        `json:"user_id"`
	Username  string        `json:"username"`
	Book      *BookResponse `json:"book,omitempty"`
	Shelf     string        `json:"shelf,omitempty"`
	Rating    int           `json:"rating,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// FeedResponse: reverse-chronological activity of followed users
type FeedResponse struct {
	Events []FeedEvent `json:"events"`
	Total  int         `json:"total"`
}

// FollowToggleResponse reports the state after a toggle call.
type FollowToggleResponse struct {
	Following bool `json:"following"`
}

// UserSummary: public view of a user in follower/following lists
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
