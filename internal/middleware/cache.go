package middleware

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CacheConfig holds cache middleware configuration
type CacheConfig struct {
	// MaxAge is the cache duration in seconds (for Cache-Control header)
	MaxAge int
	// Public allows caching by CDNs and proxies if true
	Public bool
	// MustRevalidate forces revalidation after cache expires
	MustRevalidate bool
}

// CacheMiddleware adds ETag and Cache-Control headers to GET responses
// and answers If-None-Match with 304. Used on the static endpoints
// (/supported, /metrics) whose bodies rarely change.
func CacheMiddleware(cfg CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			return nil
		}

		etag := generateETag(c.Response().Body())
		c.Set(fiber.HeaderETag, etag)
		c.Set(fiber.HeaderCacheControl, buildCacheControl(cfg))

		if clientETag := c.Get(fiber.HeaderIfNoneMatch); clientETag == etag {
			c.Status(fiber.StatusNotModified)
			c.Response().SetBodyRaw(nil)
		}

		return nil
	}
}

// NoCacheMiddleware disables caching for specific routes
func NoCacheMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, private")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}

// generateETag creates ETag from response body using MD5 hash
func generateETag(body []byte) string {
	hash := md5.Sum(body)
	return `"` + hex.EncodeToString(hash[:]) + `"`
}

// buildCacheControl constructs Cache-Control header value
func buildCacheControl(cfg CacheConfig) string {
	directives := make([]string, 0, 3)

	if cfg.Public {
		directives = append(directives, "public")
	} else {
		directives = append(directives, "private")
	}

	if cfg.MaxAge > 0 {
		directives = append(directives, "max-age="+strconv.Itoa(cfg.MaxAge))
	}

	if cfg.MustRevalidate {
		directives = append(directives, "must-revalidate")
	}

	return strings.Join(directives, ", ")
}
