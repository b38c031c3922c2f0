// Package resolver turns a source URL into a title, thumbnail and raw
// format list. Handlers depend on the Resolver interface; the
// production implementation shells out to yt-dlp.
package resolver

import (
	"context"

	"github.com/auraflux/auraflux/internal/types"
)

// Options parametrizes a single resolution.
type Options struct {
	// Headers sent with the platform request. User-Agent is passed via
	// its own flag; everything else goes through --add-headers.
	Headers map[string]string

	// CookieFile, when non-empty, points at a Netscape cookie file and
	// makes the resolver attempt authenticated access.
	CookieFile string
}

// Resolver resolves a source URL into its downloadable variants.
// Failure is a single undifferentiated resolution error carrying a
// human-readable message.
type Resolver interface {
	Resolve(ctx context.Context, url string, opts Options) (*types.Resolution, error)
}

// DefaultHeaders is the browser-like header set sent with every
// resolution, matching what the public endpoint has always advertised
// to platforms.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/116.0.5845.188 Safari/537.36",
		"Accept":                    "*/*",
		"Accept-Language":           "en-US,en;q=0.9",
		"Accept-Encoding":           "gzip, deflate, br",
		"Connection":                "keep-alive",
		"DNT":                       "1",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
	}
}
