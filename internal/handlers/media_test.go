package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/auraflux/auraflux/internal/classifier"
	"github.com/auraflux/auraflux/internal/cookies"
	"github.com/auraflux/auraflux/internal/dedup"
	apperrors "github.com/auraflux/auraflux/internal/errors"
	"github.com/auraflux/auraflux/internal/platform"
	"github.com/auraflux/auraflux/internal/shortlink"
	"github.com/auraflux/auraflux/internal/testutil"
	"github.com/auraflux/auraflux/internal/types"
)

func newMediaApp(t *testing.T, mock *testutil.MockResolver) (*fiber.App, *shortlink.Store) {
	t.Helper()

	logger := zap.NewNop()
	store := shortlink.New(100, 0, logger)
	cls := classifier.New(store, "http://localhost:8000", logger)
	cookieResolver := cookies.NewResolver(t.TempDir(), logger)
	flight := dedup.NewSingleflight()

	h := NewMediaHandler(mock, cls, cookieResolver, flight, logger)

	app := fiber.New()
	h.Register(app)
	return app, store
}

func sampleResolution() *types.Resolution {
	return &types.Resolution{
		Title:     "Sample Clip",
		Thumbnail: "https://i.example.com/thumb.jpg",
		RawFormats: []types.RawMediaFormat{
			{
				FormatID:   "22",
				Ext:        "mp4",
				Height:     testutil.IntPtr(720),
				VideoCodec: "avc1.64001F",
				AudioCodec: "mp4a.40.2",
				URL:        "https://cdn.example.com/progressive",
			},
			{
				FormatID:   "251",
				Ext:        "webm",
				ABR:        testutil.FloatPtr(160),
				VideoCodec: "none",
				AudioCodec: "opus",
				URL:        "https://cdn.example.com/audio",
			},
		},
	}
}

func TestMediaRouteSuccess(t *testing.T) {
	mock := &testutil.MockResolver{Resolution: sampleResolution()}
	app, _ := newMediaApp(t, mock)

	resp, err := app.Test(httptest.NewRequest("GET", "/youtube?url=https://youtu.be/abc", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var info types.MediaInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if !info.Success {
		t.Error("success = false, want true")
	}
	if info.Title != "Sample Clip" {
		t.Errorf("title = %q", info.Title)
	}
	if info.Thumbnail != "https://i.example.com/thumb.jpg" {
		t.Errorf("thumbnail = %q", info.Thumbnail)
	}
	if len(info.ProgressiveFormats) != 1 || len(info.AudioFormats) != 1 || len(info.VideoFormats) != 0 {
		t.Fatalf("category sizes = %d/%d/%d, want 1/0/1",
			len(info.ProgressiveFormats), len(info.VideoFormats), len(info.AudioFormats))
	}
	if !strings.HasPrefix(info.ProgressiveFormats[0].DownloadURL, "http://localhost:8000/d/") {
		t.Errorf("download_url = %q", info.ProgressiveFormats[0].DownloadURL)
	}

	calls := mock.Calls()
	if len(calls) != 1 || calls[0] != "https://youtu.be/abc" {
		t.Errorf("resolver calls = %v", calls)
	}
}

func TestMediaRouteResolverFailure(t *testing.T) {
	mock := &testutil.MockResolver{
		Err: apperrors.ErrResolutionFailed.WithMessage("Video unavailable"),
	}
	app, _ := newMediaApp(t, mock)

	resp, err := app.Test(httptest.NewRequest("GET", "/youtube?url=https://youtu.be/gone", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	// Resolution failures keep HTTP 200; only the body signals failure.
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Error("success = true, want false")
	}
	if body.Error != "Video unavailable" {
		t.Errorf("error = %q, want the resolver's message", body.Error)
	}
}

func TestMediaRouteMissingURL(t *testing.T) {
	app, _ := newMediaApp(t, &testutil.MockResolver{Resolution: sampleResolution()})

	resp, err := app.Test(httptest.NewRequest("GET", "/youtube", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "url query parameter is required") {
		t.Errorf("body = %s", raw)
	}
}

func TestMediaRoutesExistForAllPlatforms(t *testing.T) {
	app, _ := newMediaApp(t, &testutil.MockResolver{Resolution: sampleResolution()})

	for _, name := range platform.Names() {
		segment := platform.PathSegment(name)
		resp, err := app.Test(httptest.NewRequest("GET", "/"+segment, nil), -1)
		if err != nil {
			t.Fatalf("app.Test(/%s) error = %v", segment, err)
		}
		resp.Body.Close()

		// No url parameter: a registered route answers 400, an
		// unregistered one would answer 404.
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("GET /%s status = %d, want 400", segment, resp.StatusCode)
		}
	}
}

func TestMediaRoutePassesBrowserHeaders(t *testing.T) {
	mock := &testutil.MockResolver{Resolution: sampleResolution()}
	app, _ := newMediaApp(t, mock)

	resp, err := app.Test(httptest.NewRequest("GET", "/vimeo?url=https://vimeo.com/1", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()

	opts, ok := mock.LastOptions()
	if !ok {
		t.Fatal("resolver was never called")
	}
	if ua := opts.Headers["User-Agent"]; !strings.Contains(ua, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want a browser identity", ua)
	}
	if opts.CookieFile != "" {
		t.Errorf("CookieFile = %q, want empty with no cookie files on disk", opts.CookieFile)
	}
}
