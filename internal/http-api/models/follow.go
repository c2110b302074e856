package models

import "time"

// Follow is one directed edge in the follow graph. A single row serves both
// directions: it appears in the follower's "following" list and in the
// followee's "followers" list, so the two views can never drift apart.
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FolloweeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follow_edge;index" json:"followee_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	Follower *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee *User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

func (Follow) TableName() string {
	return "follows"
}
