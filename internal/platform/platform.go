// Package platform holds the static registry of content platforms the
// API advertises. The registry is descriptive: routes are derived from
// the platform names, but the media resolver dispatches on the request
// URL itself, not on which route was hit.
package platform

import (
	"regexp"
	"strings"
)

// Entry describes one supported platform.
type Entry struct {
	URLs []string `json:"urls"`
}

// Registry maps a human-readable platform name to its known origin URL
// prefixes. Exposed verbatim on GET /supported.
var Registry = map[string]Entry{
	"YouTube": {URLs: []string{
		"https://www.youtube.com",
		"https://youtube.com",
		"https://youtu.be",
		"https://m.youtube.com",
		"https://music.youtube.com",
	}},
	"Instagram": {URLs: []string{
		"https://www.instagram.com",
		"https://instagram.com",
		"https://www.instagram.com/reel",
		"https://www.instagram.com/stories",
	}},
	"Facebook": {URLs: []string{
		"https://www.facebook.com",
		"https://facebook.com",
		"https://fb.watch",
		"https://m.facebook.com",
	}},
	"Twitter (X)": {URLs: []string{
		"https://twitter.com",
		"https://x.com",
		"https://mobile.twitter.com",
		"https://fxtwitter.com",
	}},
	"TikTok": {URLs: []string{
		"https://www.tiktok.com",
		"https://tiktok.com",
		"https://vm.tiktok.com",
	}},
	"Vimeo": {URLs: []string{
		"https://vimeo.com",
		"https://www.vimeo.com",
		"https://player.vimeo.com",
	}},
	"SoundCloud": {URLs: []string{
		"https://soundcloud.com",
		"https://m.soundcloud.com",
	}},
	"Bandcamp": {URLs: []string{
		"https://bandcamp.com",
		"https://*.bandcamp.com",
	}},
	"Twitch": {URLs: []string{
		"https://www.twitch.tv",
		"https://twitch.tv",
		"https://clips.twitch.tv",
	}},
	"Dailymotion": {URLs: []string{
		"https://www.dailymotion.com",
		"https://dailymotion.com",
	}},
	"Mixcloud": {URLs: []string{
		"https://www.mixcloud.com",
		"https://mixcloud.com",
	}},
	"Audiomack": {URLs: []string{
		"https://audiomack.com",
		"https://www.audiomack.com",
	}},
	"Rumble": {URLs: []string{
		"https://rumble.com",
		"https://www.rumble.com",
	}},
	"Odysee": {URLs: []string{
		"https://odysee.com",
		"https://www.odysee.com",
	}},
	"Bilibili": {URLs: []string{
		"https://www.bilibili.com",
		"https://bilibili.com",
		"https://m.bilibili.com",
	}},
	"Streamable": {URLs: []string{
		"https://streamable.com",
		"https://www.streamable.com",
	}},
	"TED": {URLs: []string{
		"https://www.ted.com",
		"https://ted.com",
	}},
}

var nonWord = regexp.MustCompile(`[^0-9A-Za-z_]`)

// PathSegment derives the canonical route segment for a platform name:
// all non-word characters stripped, then lowercased. "Twitter (X)"
// becomes "twitterx".
func PathSegment(name string) string {
	return strings.ToLower(nonWord.ReplaceAllString(name, ""))
}

// Names returns the registered platform names in unspecified order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}
