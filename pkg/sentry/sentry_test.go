package sentry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSentry_Builder(t *testing.T) {
	ctx := echo.New().NewContext(nil, nil)
	err := errors.New("test error")
	tags := map[string]string{"route": "/api/v1/movies/:id"}

	s := WithContext(ctx).
		WithError(err).
		WithLevel(sentrygo.LevelError).
		WithTags(tags)

	assert.Equal(t, ctx, s.context)
	assert.Equal(t, err, s.error)
	assert.Equal(t, sentrygo.LevelError, s.level)
	assert.Equal(t, tags, s.tags)
}

func TestSentry_DisabledEnvironments(t *testing.T) {
	tests := []struct {
		name   string
		appEnv string
		dsn    string
	}{
		{name: "local environment", appEnv: "local", dsn: "https://test@sentry.io/123"},
		{name: "missing dsn", appEnv: "production", dsn: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.appEnv)
			t.Setenv("SENTRY_DSN", tt.dsn)
			original := FlushTime
			FlushTime = 0
			t.Cleanup(func() { FlushTime = original })

			assert.False(t, enabled())
			assert.NotPanics(t, func() {
				Error(errors.New("boom"))
				Fatal(errors.New("fatal"))
			})
		})
	}
}

func TestSentry_SendsWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")
	assert.NoError(t, sentrygo.Init(sentrygo.ClientOptions{Dsn: "https://public@sentry.example.com/1"}))
	defer sentrygo.Flush(0)

	assert.True(t, enabled())
	assert.NotPanics(t, func() {
		new(Sentry).
			WithError(errors.New("test error")).
			WithLevel(sentrygo.LevelError).
			WithTags(map[string]string{"env": "test"}).
			sendError()
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("falls back to current hub without context", func(t *testing.T) {
		assert.NotNil(t, new(Sentry).getHub())
	})

	t.Run("falls back to current hub when echo context has none", func(t *testing.T) {
		ctx := echo.New().NewContext(nil, nil)

		assert.Equal(t, sentrygo.CurrentHub(), WithContext(ctx).getHub())
	})

	t.Run("uses hub stored on echo context", func(t *testing.T) {
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		hub := sentrygo.CurrentHub().Clone()
		ctx.Set("sentry", hub)

		assert.Same(t, hub, WithContext(ctx).getHub())
	})
}

func TestSentry_ConfigScope(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set(echo.HeaderXRequestID, "req-1")
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	s := WithContext(ctx).
		WithLevel(sentrygo.LevelError).
		WithTags(map[string]string{"env": "test"})

	scope := sentrygo.NewScope()
	assert.NotPanics(t, func() { s.configScope(scope) })
}
