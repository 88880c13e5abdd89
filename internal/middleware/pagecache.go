package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PageCache is the slice of the cache service the guard needs. Satisfied by
// cache.PageStore; an interface here keeps the middleware free of a
// dependency on the cache package (which imports this one for metrics).
type PageCache interface {
	GetPage(ctx context.Context, key string) (contentType string, body []byte, ok bool, err error)
	PutPage(ctx context.Context, key, contentType string, body []byte, ttl time.Duration) error
}

// CachePage wraps a handler with a whole-response cache under a fixed key.
// A hit serves the stored bytes to every caller regardless of identity or
// query string; a miss runs the handler and stores any 200 response for ttl.
// Cache errors fall through to the handler.
func CachePage(store PageCache, key string, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil || ttl <= 0 {
			return c.Next()
		}

		contentType, body, ok, err := store.GetPage(c.UserContext(), key)
		if err == nil && ok {
			PageCacheHits.WithLabelValues(key).Inc()
			c.Set(fiber.HeaderContentType, contentType)
			return c.Send(body)
		}
		PageCacheMisses.WithLabelValues(key).Inc()

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			// Fiber reuses the response buffer after the handler returns.
			stored := make([]byte, len(c.Response().Body()))
			copy(stored, c.Response().Body())
			_ = store.PutPage(c.UserContext(), key,
				string(c.Response().Header.ContentType()), stored, ttl)
		}
		return nil
	}
}
