package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
)

// CompressionMiddleware compresses JSON responses. Proxied media bodies
// under /d/ are skipped: they are already compressed and must stream
// through untouched.
func CompressionMiddleware() fiber.Handler {
	return compress.New(compress.Config{
		Level: compress.LevelBestSpeed,

		Next: func(c *fiber.Ctx) bool {
			if strings.HasPrefix(c.Path(), "/d/") {
				return true
			}

			contentType := string(c.Response().Header.ContentType())
			return isCompressedContentType(contentType)
		},
	})
}

// isCompressedContentType checks if content type is already compressed
func isCompressedContentType(contentType string) bool {
	compressedTypes := []string{
		"video/",
		"audio/",
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"application/zip",
		"application/gzip",
		"application/x-gzip",
	}

	for _, ct := range compressedTypes {
		if strings.HasPrefix(contentType, ct) {
			return true
		}
	}

	return false
}
