package httpserver_test

import (
	"testing"

	"movietrack/errs"
	"movietrack/httpserver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomValidator_Validate(t *testing.T) {
	v := httpserver.NewValidator()

	t.Run("should accept a valid request", func(t *testing.T) {
		req := httpserver.CreateMovieRequest{Title: "Dune", Description: "Desert planet saga", ReleaseYear: 1984}

		assert.NoError(t, v.Validate(req))
	})

	t.Run("should report fields by their json name", func(t *testing.T) {
		err := v.Validate(httpserver.CreateMovieRequest{Title: "   ", Description: "Desert planet saga", ReleaseYear: 1984})

		require.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Equal(t, "validation error: title failed on notblank", errs.ErrorMessage(err))
	})

	t.Run("should keep percent signs in field names verbatim", func(t *testing.T) {
		type ratioRequest struct {
			Ratio int `json:"ratio%" validate:"gte=1"`
		}

		err := v.Validate(ratioRequest{})

		require.Error(t, err)
		assert.Equal(t, "validation error: ratio% failed on gte", errs.ErrorMessage(err))
	})
}
