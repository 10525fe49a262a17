package model

import "time"

// Genre is a row of the genres table.
type Genre struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Film is a row of the films table. Genre is nil until a service attaches it.
type Film struct {
	ID                uint64 `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	ReleaseYear       int    `json:"release_year"`
	GenreID           uint64 `json:"genre_id"`
	MinimalAge        int    `json:"minimal_age"`
	DurationInMinutes int    `json:"duration_in_minutes"`
	FileID            uint64 `json:"file_id"`
	Genre             *Genre `json:"genre,omitempty"`
}

// FilmSession is one screening of a film in a hall. Film is nil until a
// service attaches it.
type FilmSession struct {
	ID        uint64    `json:"id"`
	FilmID    uint64    `json:"film_id"`
	HallID    uint64    `json:"hall_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Price     int       `json:"price"`
	Film      *Film     `json:"film,omitempty"`
}
