// Package cookies maps a request URL to an optional credential file.
// A hit only means the resolver may attempt authenticated access; a
// missing file degrades silently to anonymous resolution.
package cookies

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// domainFiles maps a domain substring to the cookie file expected for
// it, relative to the configured cookie directory. First match wins in
// the iteration below, which is fine because the domains are disjoint.
var domainFiles = map[string]string{
	"youtube.com":    "youtube.txt",
	"youtu.be":       "youtube.txt",
	"instagram.com":  "instagram.txt",
	"facebook.com":   "facebook.txt",
	"fb.watch":       "facebook.txt",
	"twitter.com":    "twitter.txt",
	"x.com":          "twitter.txt",
	"tiktok.com":     "tiktok.txt",
	"soundcloud.com": "soundcloud.txt",
	"bilibili.com":   "bilibili.txt",
}

// Resolver locates cookie files for outbound resolutions.
type Resolver struct {
	dir    string
	logger *zap.Logger
}

// NewResolver creates a cookie resolver rooted at dir.
func NewResolver(dir string, logger *zap.Logger) *Resolver {
	return &Resolver{dir: dir, logger: logger}
}

// FileFor returns the path of the cookie file matching the request URL,
// or "" when no domain matches or the matched file does not exist on
// disk. It never returns an error.
func (r *Resolver) FileFor(rawURL string) string {
	lowered := strings.ToLower(rawURL)

	for domain, file := range domainFiles {
		if !strings.Contains(lowered, domain) {
			continue
		}

		path := filepath.Join(r.dir, file)
		if _, err := os.Stat(path); err != nil {
			r.logger.Debug("cookie file not present, resolving anonymously",
				zap.String("domain", domain),
				zap.String("path", path),
			)
			return ""
		}
		return path
	}

	return ""
}
