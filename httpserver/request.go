package httpserver

import (
	"movietrack/movie"
)

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,notblank,min=4"`
	Description string `json:"description" validate:"required,notblank,min=4"`
	ReleaseYear int    `json:"release_year" validate:"required,gte=1900"`
	Watched     bool   `json:"watched"`
}

func (r CreateMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title:       r.Title,
		Description: r.Description,
		ReleaseYear: r.ReleaseYear,
		Watched:     r.Watched,
	}
}

type MovieCreatedResponse struct {
	ID string `json:"id"`
}

type SearchMoviesRequest struct {
	Title string `query:"title" validate:"required,notblank,min=3"`
	Skip  int    `query:"skip" validate:"gte=0"`
	Limit int    `query:"limit" validate:"omitempty,gte=1,lte=1000"`
}

func (r SearchMoviesRequest) Page() movie.Page {
	return movie.Page{Skip: r.Skip, Limit: r.Limit}.Normalize()
}

// UpdateMovieRequest is decoded strictly: a field outside this set fails the
// request. ID is accepted only so the change can be refused explicitly.
type UpdateMovieRequest struct {
	ID          *string `json:"id"`
	Title       *string `json:"title" validate:"omitempty,notblank,min=4"`
	Description *string `json:"description" validate:"omitempty,notblank,min=4"`
	ReleaseYear *int    `json:"release_year" validate:"omitempty,gte=1900"`
	Watched     *bool   `json:"watched"`
}

func (r UpdateMovieRequest) ToUpdate() movie.Update {
	return movie.Update{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ReleaseYear: r.ReleaseYear,
		Watched:     r.Watched,
	}
}
