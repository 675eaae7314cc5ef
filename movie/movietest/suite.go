// Package movietest holds the behavior every movie.Repository must share.
// Backends run it from their own tests with a fresh repository per test.
package movietest

import (
	"context"
	"fmt"
	"testing"

	"movietrack/movie"

	"github.com/stretchr/testify/suite"
)

type RepositorySuite struct {
	suite.Suite

	// NewRepository must return an empty repository.
	NewRepository func(t testing.TB) movie.Repository

	repo movie.Repository
	ctx  context.Context
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepository(s.T())
}

func (s *RepositorySuite) mustCreate(movies ...movie.Movie) {
	for _, m := range movies {
		s.Require().NoError(s.repo.Create(s.ctx, m))
	}
}

func dune() movie.Movie {
	return movie.Movie{ID: "dune-1984", Title: "Dune", Description: "Desert planet saga", ReleaseYear: 1984}
}

func (s *RepositorySuite) TestCreateThenGetByID() {
	m := dune()
	s.mustCreate(m)

	got, ok, err := s.repo.GetByID(s.ctx, m.ID)

	s.Require().NoError(err)
	s.True(ok)
	s.Equal(m, got)
}

func (s *RepositorySuite) TestCreateDuplicateID() {
	s.mustCreate(dune())

	err := s.repo.Create(s.ctx, dune())

	s.ErrorIs(err, movie.ErrAlreadyExists)
}

func (s *RepositorySuite) TestGetByIDUnknown() {
	got, ok, err := s.repo.GetByID(s.ctx, "never-created")

	s.NoError(err)
	s.False(ok)
	s.Zero(got)
}

func (s *RepositorySuite) TestGetByTitleReturnsAllMatches() {
	first := dune()
	second := movie.Movie{ID: "dune-2021", Title: "Dune", Description: "Desert planet saga again", ReleaseYear: 2021}
	other := movie.Movie{ID: "arrival", Title: "Arrival", Description: "Linguist meets heptapods", ReleaseYear: 2016}
	s.mustCreate(second, other, first)

	got, err := s.repo.GetByTitle(s.ctx, "Dune", movie.Page{})

	s.Require().NoError(err)
	s.ElementsMatch([]movie.Movie{first, second}, got)
}

func (s *RepositorySuite) TestGetByTitleNoMatch() {
	s.mustCreate(dune())

	got, err := s.repo.GetByTitle(s.ctx, "dune", movie.Page{})

	s.Require().NoError(err)
	s.Empty(got)
}

func (s *RepositorySuite) TestGetByTitleWindow() {
	for i := 0; i < 5; i++ {
		s.mustCreate(movie.Movie{
			ID:          fmt.Sprintf("heat-%d", i),
			Title:       "Heat",
			Description: "Cops and robbers",
			ReleaseYear: 1995,
		})
	}

	all, err := s.repo.GetByTitle(s.ctx, "Heat", movie.Page{})
	s.Require().NoError(err)
	s.Len(all, 5)

	window, err := s.repo.GetByTitle(s.ctx, "Heat", movie.Page{Skip: 1, Limit: 2})
	s.Require().NoError(err)
	s.Len(window, 2)

	tail, err := s.repo.GetByTitle(s.ctx, "Heat", movie.Page{Skip: 4, Limit: 10})
	s.Require().NoError(err)
	s.Len(tail, 1)

	past, err := s.repo.GetByTitle(s.ctx, "Heat", movie.Page{Skip: 10})
	s.Require().NoError(err)
	s.Empty(past)
}

func (s *RepositorySuite) TestUpdateRefusesID() {
	s.mustCreate(dune())
	newID := "x"

	s.ErrorIs(s.repo.Update(s.ctx, "dune-1984", movie.Update{ID: &newID}), movie.ErrCannotUpdateID)
	s.ErrorIs(s.repo.Update(s.ctx, "missing", movie.Update{ID: &newID}), movie.ErrCannotUpdateID)

	got, ok, err := s.repo.GetByID(s.ctx, "dune-1984")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(dune(), got)
}

func (s *RepositorySuite) TestUpdateMissing() {
	title := "x"

	err := s.repo.Update(s.ctx, "missing", movie.Update{Title: &title})

	s.ErrorIs(err, movie.ErrNotFound)
}

func (s *RepositorySuite) TestUpdateMergesSuppliedFields() {
	s.mustCreate(dune())
	watched := true

	s.Require().NoError(s.repo.Update(s.ctx, "dune-1984", movie.Update{Watched: &watched}))

	got, ok, err := s.repo.GetByID(s.ctx, "dune-1984")
	s.Require().NoError(err)
	s.True(ok)
	want := dune()
	want.Watched = true
	s.Equal(want, got)
}

func (s *RepositorySuite) TestUpdateWithSameValues() {
	s.mustCreate(dune())
	title := dune().Title

	s.NoError(s.repo.Update(s.ctx, "dune-1984", movie.Update{Title: &title}))
}

func (s *RepositorySuite) TestEmptyUpdate() {
	s.mustCreate(dune())

	s.NoError(s.repo.Update(s.ctx, "dune-1984", movie.Update{}))
	s.ErrorIs(s.repo.Update(s.ctx, "missing", movie.Update{}), movie.ErrNotFound)
}

func (s *RepositorySuite) TestUpdateTitleMovesBetweenLookups() {
	s.mustCreate(dune())
	title := "Dune Part One"

	s.Require().NoError(s.repo.Update(s.ctx, "dune-1984", movie.Update{Title: &title}))

	old, err := s.repo.GetByTitle(s.ctx, "Dune", movie.Page{})
	s.Require().NoError(err)
	s.Empty(old)
	renamed, err := s.repo.GetByTitle(s.ctx, title, movie.Page{})
	s.Require().NoError(err)
	s.Len(renamed, 1)
}

func (s *RepositorySuite) TestDeleteIsIdempotent() {
	s.mustCreate(dune())

	s.NoError(s.repo.Delete(s.ctx, "dune-1984"))
	s.NoError(s.repo.Delete(s.ctx, "dune-1984"))

	_, ok, err := s.repo.GetByID(s.ctx, "dune-1984")
	s.NoError(err)
	s.False(ok)
}

func (s *RepositorySuite) TestDuneScenario() {
	uc := movie.NewUsecase(s.repo)

	created, err := uc.AddMovie(s.ctx, movie.Movie{Title: "Dune", Description: "Desert planet saga", ReleaseYear: 1984})
	s.Require().NoError(err)

	got, err := s.repo.GetByTitle(s.ctx, "Dune", movie.Page{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.NotEmpty(got[0].ID)
	s.Equal(created, got[0])
	s.Equal("Desert planet saga", got[0].Description)
	s.Equal(1984, got[0].ReleaseYear)
	s.False(got[0].Watched)
}
