package movie

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Service interface {
	AddMovie(ctx context.Context, m Movie) (Movie, error)
	GetMovie(ctx context.Context, id string) (Movie, error)
	SearchMovies(ctx context.Context, title string, page Page) ([]Movie, error)
	UpdateMovie(ctx context.Context, id string, u Update) error
	DeleteMovie(ctx context.Context, id string) error
}

// Repository is the storage contract shared by every movie backend.
//
// GetByID reports a missing movie through its bool result and never through
// the error, which is reserved for backend faults. Update must refuse a
// change of ID before it touches storage.
type Repository interface {
	Create(ctx context.Context, m Movie) error
	GetByID(ctx context.Context, id string) (Movie, bool, error)
	GetByTitle(ctx context.Context, title string, page Page) ([]Movie, error)
	Update(ctx context.Context, id string, u Update) error
	Delete(ctx context.Context, id string) error
}

type Usecase struct {
	r     Repository
	newID func() string
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{
		r:     r,
		newID: uuid.NewString,
	}
}

// WithIDGenerator replaces the uuid generator, mostly for tests.
func (uc *Usecase) WithIDGenerator(fn func() string) *Usecase {
	uc.newID = fn
	return uc
}

// AddMovie assigns a fresh id to m, validates it and stores it.
func (uc *Usecase) AddMovie(ctx context.Context, m Movie) (Movie, error) {
	created, err := New(uc.newID(), strings.TrimSpace(m.Title), strings.TrimSpace(m.Description), m.ReleaseYear, m.Watched)
	if err != nil {
		return Movie{}, err
	}
	if err := created.Validate(); err != nil {
		return Movie{}, err
	}
	if err := uc.r.Create(ctx, created); err != nil {
		return Movie{}, err
	}
	return created, nil
}

func (uc *Usecase) GetMovie(ctx context.Context, id string) (Movie, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Movie{}, ErrMissingID
	}
	m, ok, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Movie{}, err
	}
	if !ok {
		return Movie{}, ErrNotFound
	}
	return m, nil
}

func (uc *Usecase) SearchMovies(ctx context.Context, title string, page Page) ([]Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidQuery
	}
	return uc.r.GetByTitle(ctx, title, page.Normalize())
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id string, u Update) error {
	u = u.Trimmed()
	if err := u.Validate(); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	return uc.r.Update(ctx, id, u)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	return uc.r.Delete(ctx, id)
}
