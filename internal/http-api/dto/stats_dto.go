package dto

// ReadingGoalStats: goal completion for the requested year
type ReadingGoalStats struct {
	Year       int `json:"year"`
	Target     int `json:"target"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// StatsResponse: a user's reading summary for one year. Pure projection,
// nothing here is persisted.
type StatsResponse struct {
	Year            int            `json:"year"`
	TotalBooks      int            `json:"total_books"`
	BooksRead       int            `json:"books_read"`
	BooksReading    int            `json:"books_reading"`
	BooksWantToRead int            `json:"books_want_to_read"`
	TotalPages      int            `json:"total_pages"`
	BooksThisYear   int            `json:"books_this_year"`
	MonthlyProgress [12]int        `json:"monthly_progress"` // index 0 = January
	GenreBreakdown  map[string]int `json:"genre_breakdown"`
	ReadingGoal     ReadingGoalStats `json:"reading_goal"`
}
