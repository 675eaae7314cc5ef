package movie

import (
	"strings"

	"movietrack/errs"
)

const (
	MinTitleLength       = 4
	MinDescriptionLength = 4
	MinReleaseYear       = 1900

	// DefaultLimit caps a title lookup when the caller gives no limit.
	DefaultLimit = 1000
)

var (
	ErrMissingID          = errs.Errorf(errs.EINVALID, "movie id is required")
	ErrInvalidTitle       = errs.Errorf(errs.EINVALID, "title must be at least 4 characters")
	ErrInvalidDescription = errs.Errorf(errs.EINVALID, "description must be at least 4 characters")
	ErrInvalidReleaseYear = errs.Errorf(errs.EINVALID, "release year must be 1900 or later")
	ErrInvalidQuery       = errs.Errorf(errs.EINVALID, "invalid search query")

	// Repository errors.
	ErrNotFound       = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrCannotUpdateID = errs.Errorf(errs.EINVALID, "cannot update id")
	ErrAlreadyExists  = errs.Errorf(errs.ECONFLICT, "movie already exists")
)

type Movie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
	Watched     bool   `json:"watched"`
}

// New builds a movie and refuses a blank id.
func New(id, title, description string, releaseYear int, watched bool) (Movie, error) {
	if strings.TrimSpace(id) == "" {
		return Movie{}, ErrMissingID
	}
	return Movie{
		ID:          id,
		Title:       title,
		Description: description,
		ReleaseYear: releaseYear,
		Watched:     watched,
	}, nil
}

func (m Movie) Validate() error {
	if m.ID == "" {
		return ErrMissingID
	}
	if err := validateTitle(m.Title); err != nil {
		return err
	}
	if err := validateDescription(m.Description); err != nil {
		return err
	}
	return validateReleaseYear(m.ReleaseYear)
}

// Update is the closed set of fields a caller may change on a stored movie.
// Nil fields are left untouched. ID exists only so that an attempt to change
// the identifier can be detected and refused.
type Update struct {
	ID          *string
	Title       *string
	Description *string
	ReleaseYear *int
	Watched     *bool
}

// Empty reports whether the update carries no field at all.
func (u Update) Empty() bool {
	return u.ID == nil && u.Title == nil && u.Description == nil &&
		u.ReleaseYear == nil && u.Watched == nil
}

// Apply merges the supplied fields into m. The id is never touched.
func (u Update) Apply(m Movie) Movie {
	if u.Title != nil {
		m.Title = *u.Title
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.ReleaseYear != nil {
		m.ReleaseYear = *u.ReleaseYear
	}
	if u.Watched != nil {
		m.Watched = *u.Watched
	}
	return m
}

func (u Update) Validate() error {
	if u.ID != nil {
		return ErrCannotUpdateID
	}
	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := validateDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.ReleaseYear != nil {
		return validateReleaseYear(*u.ReleaseYear)
	}
	return nil
}

// Trimmed returns a copy with title and description stripped of surrounding
// whitespace, matching what AddMovie stores.
func (u Update) Trimmed() Update {
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		u.Title = &title
	}
	if u.Description != nil {
		description := strings.TrimSpace(*u.Description)
		u.Description = &description
	}
	return u
}

// Page windows a title lookup.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps a page to the values every backend understands.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

func validateTitle(title string) error {
	if len([]rune(strings.TrimSpace(title))) < MinTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func validateDescription(description string) error {
	if len([]rune(strings.TrimSpace(description))) < MinDescriptionLength {
		return ErrInvalidDescription
	}
	return nil
}

func validateReleaseYear(year int) error {
	if year < MinReleaseYear {
		return ErrInvalidReleaseYear
	}
	return nil
}
