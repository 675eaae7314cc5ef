package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"movietrack/httpserver"
	"movietrack/memory"
	"movietrack/mongodb"
	"movietrack/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func MustCreateServer(t testing.TB, repo movie.Repository) *httpserver.Server {
	t.Helper()

	server := httpserver.Default(testConfig())
	server.MovieService = movie.NewUsecase(repo)

	return server
}

// MustCreateMongoRepository starts a MongoDB container and returns an
// indexed repository on a fresh database.
func MustCreateMongoRepository(t testing.TB) *mongodb.MovieRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start mongodb container")
	t.Cleanup(func() {
		assert.NoError(t, testcontainers.TerminateContainer(container), "failed to terminate mongodb container")
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	client, err := mongodb.NewClient(ctx, mongodb.Options{URI: uri})
	require.NoError(t, err, "failed to connect to mongodb")
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	repo, err := mongodb.NewMovieRepository(client, "movie_track_it", mongodb.DefaultMovieCollection)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndexes(ctx))
	return repo
}

func TestKeepingTrackOfMovies(t *testing.T) {
	backends := map[string]func(t testing.TB) movie.Repository{
		"memory": func(testing.TB) movie.Repository { return memory.NewMovieRepository() },
		"mongodb": func(t testing.TB) movie.Repository {
			return MustCreateMongoRepository(t)
		},
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			server := MustCreateServer(t, newRepo(t))
			var id string

			t.Run("add new movie", func(t *testing.T) {
				rec := serve(server, jsonRequest(http.MethodPost, "/api/v1/movies",
					`{"title":"Dune","description":"Desert planet saga","release_year":1984,"watched":false}`))

				require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
				var created httpserver.MovieCreatedResponse
				decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &created)
				require.NotEmpty(t, created.ID)
				id = created.ID
			})

			t.Run("find it by title", func(t *testing.T) {
				serve(server, jsonRequest(http.MethodPost, "/api/v1/movies",
					`{"title":"Arrival","description":"Linguist meets heptapods","release_year":2016}`))

				rec := serve(server, withBasicAuth(httptest.NewRequest(http.MethodGet, "/api/v1/movies?title=Dune", nil)))

				require.Equal(t, http.StatusOK, rec.Code)
				var result struct {
					Data []movie.Movie `json:"data"`
				}
				decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &result)
				assert.Equal(t, []movie.Movie{{
					ID:          id,
					Title:       "Dune",
					Description: "Desert planet saga",
					ReleaseYear: 1984,
				}}, result.Data)
			})

			t.Run("mark it watched", func(t *testing.T) {
				rec := serve(server, jsonRequest(http.MethodPatch, "/api/v1/movies/"+id, `{"watched":true}`))
				require.Equal(t, http.StatusOK, rec.Code)

				rec = serve(server, withBasicAuth(httptest.NewRequest(http.MethodGet, "/api/v1/movies/"+id, nil)))
				require.Equal(t, http.StatusOK, rec.Code)
				var got movie.Movie
				decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &got)
				assert.True(t, got.Watched)
				assert.Equal(t, "Dune", got.Title)
				assert.Equal(t, 1984, got.ReleaseYear)
			})

			t.Run("refuse id change", func(t *testing.T) {
				rec := serve(server, jsonRequest(http.MethodPatch, "/api/v1/movies/"+id, `{"id":"other"}`))

				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})

			t.Run("delete it twice", func(t *testing.T) {
				for i := 0; i < 2; i++ {
					rec := serve(server, withBasicAuth(httptest.NewRequest(http.MethodDelete, "/api/v1/movies/"+id, nil)))
					assert.Equal(t, http.StatusNoContent, rec.Code)
				}

				rec := serve(server, withBasicAuth(httptest.NewRequest(http.MethodGet, "/api/v1/movies/"+id, nil)))
				assert.Equal(t, http.StatusNotFound, rec.Code)
			})
		})
	}
}
