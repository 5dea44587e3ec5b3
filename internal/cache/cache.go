// Package cache is a memoizing decorator for GET responses, keyed by resource
// identity and invalidated synchronously by the write pipeline.
package cache

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "moviereview:cache:"

// Cache wraps a Redis client. A nil client degrades to a pass-through so the
// API keeps working without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{client: client, ttl: ttl}
}

// captureWriter duplicates the response body while it is written to the
// client so a successful GET can be stored afterwards.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves cached GET bodies and stores fresh 200 responses. Only
// the body is memoized; every cached entry is a JSON hypermedia document.
func (c *Cache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			if c.client == nil || ec.Request().Method != http.MethodGet {
				return next(ec)
			}

			ctx := ec.Request().Context()
			key := keyPrefix + ec.Request().URL.Path

			if body, err := c.client.Get(ctx, key).Bytes(); err == nil {
				ec.Response().Header().Set("X-Cache", "HIT")
				return ec.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
			}

			writer := &captureWriter{ResponseWriter: ec.Response().Writer, status: http.StatusOK}
			ec.Response().Writer = writer
			ec.Response().Header().Set("X-Cache", "MISS")

			if err := next(ec); err != nil {
				return err
			}

			if writer.status == http.StatusOK {
				c.client.SetEx(context.Background(), key, writer.buf.Bytes(), c.ttl)
			}
			return nil
		}
	}
}

// Invalidate drops the cached documents for the given resource paths. It runs
// synchronously on the write path so a subsequent GET never sees stale data.
func (c *Cache) Invalidate(ctx context.Context, paths ...string) {
	if c.client == nil || len(paths) == 0 {
		return
	}
	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = keyPrefix + path
	}
	c.client.Del(ctx, keys...)
}
