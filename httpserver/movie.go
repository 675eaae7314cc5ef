package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"movietrack/errs"
	"movietrack/movie"

	"github.com/labstack/echo/v4"
)

var errMalformedBody = errs.Errorf(errs.EINVALID, "malformed request body")

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.POST("/movies", s.handleCreateMovie)
	g.GET("/movies", s.handleSearchMovies)
	g.GET("/movies/:id", s.handleGetMovie)
	g.PATCH("/movies/:id", s.handleUpdateMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Store a new movie and return its generated id
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie details"
// @Success 201 {object} APIResponse{result=MovieCreatedResponse}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/v1/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errMalformedBody
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	created, err := s.MovieService.AddMovie(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, MovieCreatedResponse{ID: created.ID})
}

// handleGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} APIResponse{result=movie.Movie}
// @Failure 404 {object} APIResponse
// @Router /api/v1/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description List movies whose title matches exactly
// @Tags movies
// @Produce json
// @Param title query string true "Exact title"
// @Param skip query int false "Number of movies to skip, default 0"
// @Param limit query int false "Max results (1-1000), default 1000"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/v1/movies [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req SearchMoviesRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid search query")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	page := req.Page()
	results, err := s.MovieService.SearchMovies(c.Request().Context(), req.Title, page)
	if err != nil {
		return err
	}

	return writePagedList(c, http.StatusOK, results, page.Skip, page.Limit)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Change some fields of a movie. The id cannot be changed.
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param movie body UpdateMovieRequest true "Fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/movies/{id} [patch]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req UpdateMovieRequest
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.Errorf(errs.EINVALID, "request body is required")
		}
		return errs.Errorf(errs.EINVALID, "invalid update: %v", err)
	}
	if req.ID != nil {
		return movie.ErrCannotUpdateID
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := s.MovieService.UpdateMovie(c.Request().Context(), c.Param("id"), req.ToUpdate()); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, map[string]string{"message": "Movie updated."})
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Remove a movie. Deleting an unknown id is not an error.
// @Tags movies
// @Param id path string true "Movie ID"
// @Success 204
// @Router /api/v1/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	if err := s.MovieService.DeleteMovie(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
