// Package classifier turns the raw, unordered format list produced by
// the media resolver into three deduplicated, quality-sorted category
// lists, minting one short link per surviving entry.
package classifier

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/auraflux/auraflux/internal/shortlink"
	"github.com/auraflux/auraflux/internal/types"
)

// MergeSuggestion is attached to every video-only entry.
const MergeSuggestion = "This is a video-only format. It has no audio. " +
	"To get sound, download the matching audio and merge using FFmpeg " +
	"or use the 'Merged Download' option if available."

// Classifier partitions raw formats and issues short links for the
// survivors.
type Classifier struct {
	store   *shortlink.Store
	baseURL string
	logger  *zap.Logger
}

// New creates a classifier. baseURL is the public prefix minted into
// download URLs, without a trailing slash.
func New(store *shortlink.Store, baseURL string, logger *zap.Logger) *Classifier {
	return &Classifier{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Classify processes formats in input order and returns the populated
// MediaInfo. Per format it determines the category from the codec
// sentinels, drops duplicates of an already-seen dedup key, issues a
// short link for each survivor and finally sorts each category by
// quality descending. Malformed entries never fail the call; a nil
// height or abr simply participates in keys and ordering as null/zero.
func (c *Classifier) Classify(title string, formats []types.RawMediaFormat) *types.MediaInfo {
	info := &types.MediaInfo{
		Success:            true,
		Title:              title,
		ProgressiveFormats: []types.ClassifiedFormat{},
		VideoFormats:       []types.ClassifiedFormat{},
		AudioFormats:       []types.ClassifiedFormat{},
	}

	seenProgressive := make(map[string]struct{})
	seenVideo := make(map[string]struct{})
	seenAudio := make(map[string]struct{})

	for _, f := range formats {
		switch {
		case f.HasVideo() && f.HasAudio():
			key := videoKey(f.Height, f.Ext)
			if _, dup := seenProgressive[key]; dup {
				continue
			}
			entry, ok := c.mint(f, progressiveFilename(title, f))
			if !ok {
				continue
			}
			entry.ABR = nil
			seenProgressive[key] = struct{}{}
			info.ProgressiveFormats = append(info.ProgressiveFormats, entry)

		case f.HasVideo():
			key := videoKey(f.Height, f.Ext)
			if _, dup := seenVideo[key]; dup {
				continue
			}
			entry, ok := c.mint(f, videoOnlyFilename(title, f))
			if !ok {
				continue
			}
			entry.ABR = nil
			entry.Suggestion = MergeSuggestion
			seenVideo[key] = struct{}{}
			info.VideoFormats = append(info.VideoFormats, entry)

		case f.HasAudio():
			key := audioKey(f.ABR, f.Ext)
			if _, dup := seenAudio[key]; dup {
				continue
			}
			entry, ok := c.mint(f, audioOnlyFilename(title, f))
			if !ok {
				continue
			}
			entry.Height = nil
			seenAudio[key] = struct{}{}
			info.AudioFormats = append(info.AudioFormats, entry)

		default:
			// Neither stream present: nothing playable, drop it.
		}
	}

	sortByHeight(info.ProgressiveFormats)
	sortByHeight(info.VideoFormats)
	sortByABR(info.AudioFormats)

	return info
}

// mint issues a short link for the format and builds the classified
// entry pointing at it. A failed issue (code space exhausted) drops the
// format rather than failing the whole classification.
func (c *Classifier) mint(f types.RawMediaFormat, filename string) (types.ClassifiedFormat, bool) {
	code, err := c.store.Issue(f.URL, filename)
	if err != nil {
		c.logger.Error("failed to issue short link, dropping format",
			zap.String("format_id", f.FormatID),
			zap.Error(err),
		)
		return types.ClassifiedFormat{}, false
	}

	return types.ClassifiedFormat{
		FormatID:    f.FormatID,
		Ext:         f.Ext,
		Height:      f.Height,
		ABR:         f.ABR,
		OriginalURL: f.URL,
		DownloadURL: c.baseURL + "/d/" + code,
	}, true
}

// Dedup keys: null quality values are distinct from zero, matching the
// first-wins semantics of the classification pass.

func videoKey(height *int, ext string) string {
	if height == nil {
		return "null|" + ext
	}
	return strconv.Itoa(*height) + "|" + ext
}

func audioKey(abr *float64, ext string) string {
	if abr == nil {
		return "null|" + ext
	}
	return strconv.FormatFloat(*abr, 'f', -1, 64) + "|" + ext
}

func progressiveFilename(title string, f types.RawMediaFormat) string {
	return safeTitle(title) + "_" + heightLabel(f.Height) + "p." + f.Ext
}

func videoOnlyFilename(title string, f types.RawMediaFormat) string {
	return safeTitle(title) + "_" + heightLabel(f.Height) + "p_video." + f.Ext
}

func audioOnlyFilename(title string, f types.RawMediaFormat) string {
	return safeTitle(title) + "_" + abrLabel(f.ABR) + "kbps_audio." + f.Ext
}

func safeTitle(title string) string {
	return strings.ReplaceAll(title, " ", "_")
}

func heightLabel(height *int) string {
	if height == nil {
		return "0"
	}
	return strconv.Itoa(*height)
}

func abrLabel(abr *float64) string {
	if abr == nil {
		return "0"
	}
	return strconv.FormatFloat(*abr, 'f', -1, 64)
}

func sortByHeight(list []types.ClassifiedFormat) {
	sort.SliceStable(list, func(i, j int) bool {
		return heightOrZero(list[i].Height) > heightOrZero(list[j].Height)
	})
}

func sortByABR(list []types.ClassifiedFormat) {
	sort.SliceStable(list, func(i, j int) bool {
		return abrOrZero(list[i].ABR) > abrOrZero(list[j].ABR)
	})
}

func heightOrZero(h *int) int {
	if h == nil {
		return 0
	}
	return *h
}

func abrOrZero(a *float64) float64 {
	if a == nil {
		return 0
	}
	return *a
}
