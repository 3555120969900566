package model

import (
	"math"
	"time"
)

// Movie represents a row of the `movies` table.  Nullable columns are
// pointers so that they render as JSON null.  IsActive doubles as the
// soft-delete flag: deleting a movie flips it to false.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	BackdropURL *string   `json:"backdrop_url"`
	TrailerURL  *string   `json:"trailer_url"`
	Duration    *int      `json:"duration"` // minutes
	Rating      *float64  `json:"rating"`   // 0–5
	ReleaseDate *string   `json:"release_date"`
	Director    *string   `json:"director"`
	Cast        []string  `json:"cast"`
	Genres      []string  `json:"genres"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovieCard is the reduced shape used by the public "latest movies" widget.
type MovieCard struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	ImageURL *string  `json:"image_url"`
	Rating   *float64 `json:"rating"`
	Genres   []string `json:"genres"`
	Duration *int     `json:"duration"`
}

// Card projects m onto the public listing shape.
func (m Movie) Card() MovieCard {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return MovieCard{
		ID:       m.ID,
		Title:    m.Title,
		ImageURL: m.ImageURL,
		Rating:   m.Rating,
		Genres:   genres,
		Duration: m.Duration,
	}
}

// MovieStats are the summary figures shown above the admin movie table.
type MovieStats struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Inactive      int     `json:"inactive"`
	AverageRating float64 `json:"average_rating"`
}

// SummarizeMovies reduces movies to MovieStats.  Unrated movies count as 0
// towards the average, which is rounded to one decimal place.
func SummarizeMovies(movies []Movie) MovieStats {
	var st MovieStats
	var sum float64
	for _, m := range movies {
		st.Total++
		if m.IsActive {
			st.Active++
		} else {
			st.Inactive++
		}
		if m.Rating != nil {
			sum += *m.Rating
		}
	}
	if st.Total > 0 {
		st.AverageRating = math.Round(sum/float64(st.Total)*10) / 10
	}
	return st
}
