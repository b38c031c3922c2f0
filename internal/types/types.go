package types

// CodecNone is the sentinel yt-dlp uses for a missing stream codec.
const CodecNone = "none"

// RawMediaFormat is a single format descriptor as reported by the media
// resolver. It is transient: produced by one resolution, consumed by one
// classification pass, never stored.
type RawMediaFormat struct {
	FormatID   string   `json:"format_id"`
	Ext        string   `json:"ext"`
	Height     *int     `json:"height"`
	ABR        *float64 `json:"abr"`
	AudioCodec string   `json:"acodec"`
	VideoCodec string   `json:"vcodec"`
	URL        string   `json:"url"`
}

// HasVideo reports whether the format carries a video stream.
func (f RawMediaFormat) HasVideo() bool {
	return f.VideoCodec != "" && f.VideoCodec != CodecNone
}

// HasAudio reports whether the format carries an audio stream.
func (f RawMediaFormat) HasAudio() bool {
	return f.AudioCodec != "" && f.AudioCodec != CodecNone
}

// ClassifiedFormat is one surviving entry in a MediaInfo category list.
// Height is set for progressive and video-only entries, ABR for
// audio-only entries; the unset field marshals as null.
type ClassifiedFormat struct {
	FormatID    string   `json:"format_id"`
	Ext         string   `json:"ext"`
	Height      *int     `json:"height"`
	ABR         *float64 `json:"abr"`
	OriginalURL string   `json:"original_url"`
	DownloadURL string   `json:"download_url"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// MediaInfo is the response payload for a platform route. Each list is
// sorted descending by its quality field (height or abr), nil treated
// as zero for ordering only.
type MediaInfo struct {
	Success            bool               `json:"success"`
	Title              string             `json:"title"`
	Thumbnail          string             `json:"thumbnail"`
	ProgressiveFormats []ClassifiedFormat `json:"progressive_formats"`
	VideoFormats       []ClassifiedFormat `json:"video_formats"`
	AudioFormats       []ClassifiedFormat `json:"audio_formats"`
}

// Resolution is what the media resolver returns for a source URL.
type Resolution struct {
	Title      string           `json:"title"`
	Thumbnail  string           `json:"thumbnail"`
	RawFormats []RawMediaFormat `json:"formats"`
}

// ErrorResponse is the flat error body shared by every failure path.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
