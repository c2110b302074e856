package models

import "time"

// Shelf states. A book sits on exactly one shelf per user.
const (
	ShelfWantToRead       = "want_to_read"
	ShelfCurrentlyReading = "currently_reading"
	ShelfRead             = "read"
)

// ValidShelf reports whether s is one of the three shelf states.
func ValidShelf(s string) bool {
	return s == ShelfWantToRead || s == ShelfCurrentlyReading || s == ShelfRead
}

// UserBook represents one shelf entry: a user's relationship with a book.
type UserBook struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string     `gorm:"type:uuid;not null;uniqueIndex:idx_user_book" json:"user_id"`
	BookID          int64      `gorm:"not null;uniqueIndex:idx_user_book" json:"book_id"`
	Shelf           string     `gorm:"not null" json:"shelf"`
	PagesRead       int        `gorm:"default:0" json:"pages_read"`
	Percentage      int        `gorm:"default:0" json:"percentage"` // 0..100
	StartedReading  *time.Time `json:"started_reading,omitempty"`
	FinishedReading *time.Time `json:"finished_reading,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (UserBook) TableName() string {
	return "user_books"
}
