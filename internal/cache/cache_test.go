package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaultTTL(t *testing.T) {
	c := New(nil, 0)
	assert.Equal(t, 30*time.Second, c.ttl)

	c = New(nil, 5*time.Minute)
	assert.Equal(t, 5*time.Minute, c.ttl)
}

func TestMiddlewarePassesThroughWithoutClient(t *testing.T) {
	e := echo.New()
	e.Use(New(nil, time.Minute).Middleware())
	e.GET("/api/movies/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "yes"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/movies/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// A disabled cache never marks responses as hits or misses.
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestMiddlewareIgnoresWrites(t *testing.T) {
	e := echo.New()
	e.Use(New(nil, time.Minute).Middleware())
	e.POST("/api/movies/", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/movies/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestInvalidateWithoutClientIsNoOp(t *testing.T) {
	c := New(nil, time.Minute)
	assert.NotPanics(t, func() {
		c.Invalidate(context.Background(), "/api/movies/")
	})
}

func TestCaptureWriterRecordsStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &captureWriter{ResponseWriter: rec, status: http.StatusOK}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte(`{"message":"Movie not found"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, w.status)
	assert.Equal(t, `{"message":"Movie not found"}`, w.buf.String())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
