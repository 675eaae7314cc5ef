package memory

import (
	"context"
	"sort"
	"sync"

	"movietrack/movie"
)

// MovieRepository keeps movies in a map keyed by id. It is meant for tests,
// demos and STORAGE_DRIVER=memory; nothing survives a restart.
type MovieRepository struct {
	mu     sync.RWMutex
	movies map[string]movie.Movie
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{movies: map[string]movie.Movie{}}
}

func (r *MovieRepository) Create(_ context.Context, m movie.Movie) error {
	if m.ID == "" {
		return movie.ErrMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[m.ID]; ok {
		return movie.ErrAlreadyExists
	}
	r.movies[m.ID] = m
	return nil
}

func (r *MovieRepository) GetByID(_ context.Context, id string) (movie.Movie, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movies[id]
	return m, ok, nil
}

// GetByTitle scans every entry and keeps all exact matches. Matches are
// ordered by id so that skip/limit windows are stable between calls.
func (r *MovieRepository) GetByTitle(_ context.Context, title string, page movie.Page) ([]movie.Movie, error) {
	page = page.Normalize()

	r.mu.RLock()
	matches := make([]movie.Movie, 0)
	for _, m := range r.movies {
		if m.Title == title {
			matches = append(matches, m)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ID < matches[j].ID
	})

	if page.Skip >= len(matches) {
		return []movie.Movie{}, nil
	}
	end := page.Skip + page.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[page.Skip:end], nil
}

func (r *MovieRepository) Update(_ context.Context, id string, u movie.Update) error {
	if u.ID != nil {
		return movie.ErrCannotUpdateID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return movie.ErrNotFound
	}
	r.movies[id] = u.Apply(m)
	return nil
}

func (r *MovieRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.movies, id)
	return nil
}
