package models

import "time"

type Book struct {
	ID            int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string     `json:"title" gorm:"not null"`
	Author        string     `json:"author" gorm:"not null"`
	Description   *string    `json:"description,omitempty"`
	GenreID       *int64     `json:"genre_id,omitempty" gorm:"index"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	TotalPages    *int       `json:"total_pages,omitempty"`
	AverageRating float64    `json:"average_rating" gorm:"type:decimal(3,1);default:0"`
	RatingsCount  int64      `json:"ratings_count" gorm:"default:0"`
	WantCount     int64      `json:"want_count" gorm:"default:0"`
	CurrentCount  int64      `json:"current_count" gorm:"default:0"`
	ReadCount     int64      `json:"read_count" gorm:"default:0"`
	CreatedAt     *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`

	// association
	Genre *Genre `json:"genre,omitempty" gorm:"foreignKey:GenreID"`
}

func (Book) TableName() string {
	return "books"
}

// ShelfCount returns the denormalized counter for the given shelf.
func (b *Book) ShelfCount(shelf string) int64 {
	switch shelf {
	case ShelfWantToRead:
		return b.WantCount
	case ShelfCurrentlyReading:
		return b.CurrentCount
	case ShelfRead:
		return b.ReadCount
	}
	return 0
}
