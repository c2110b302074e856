package models

type Genre struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	// Uniqueness ignores case; enforced by a functional index on
	// LOWER(name) created during migration.
	Name        string  `json:"name" gorm:"not null"`
	Description *string `json:"description,omitempty"`
}

func (Genre) TableName() string {
	return "genres"
}
