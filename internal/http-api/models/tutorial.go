package models

import "time"

// Tutorial is a curated video tutorial shown to all users and managed by
// administrators.
type Tutorial struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"not null"`
	VideoURL    string     `json:"video_url" gorm:"not null"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`
}

func (Tutorial) TableName() string {
	return "tutorials"
}
