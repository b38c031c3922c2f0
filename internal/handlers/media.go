package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/auraflux/auraflux/internal/classifier"
	"github.com/auraflux/auraflux/internal/cookies"
	"github.com/auraflux/auraflux/internal/dedup"
	apperrors "github.com/auraflux/auraflux/internal/errors"
	"github.com/auraflux/auraflux/internal/metrics"
	"github.com/auraflux/auraflux/internal/platform"
	"github.com/auraflux/auraflux/internal/resolver"
	"github.com/auraflux/auraflux/internal/types"
)

// MediaHandler serves the per-platform format listing routes. One route
// is registered per platform name; all of them share the same handler
// logic because the resolver dispatches on the URL itself.
type MediaHandler struct {
	resolver   resolver.Resolver
	classifier *classifier.Classifier
	cookies    *cookies.Resolver
	flight     *dedup.Singleflight
	logger     *zap.Logger
}

// NewMediaHandler creates a media handler.
func NewMediaHandler(
	res resolver.Resolver,
	cls *classifier.Classifier,
	cookieResolver *cookies.Resolver,
	flight *dedup.Singleflight,
	logger *zap.Logger,
) *MediaHandler {
	return &MediaHandler{
		resolver:   res,
		classifier: cls,
		cookies:    cookieResolver,
		flight:     flight,
		logger:     logger,
	}
}

// Register binds one GET route per registered platform, each closing
// over its platform name.
func (h *MediaHandler) Register(app *fiber.App) {
	for _, name := range platform.Names() {
		segment := platform.PathSegment(name)
		app.Get("/"+segment, h.handle(segment))
		h.logger.Debug("registered platform route",
			zap.String("platform", name),
			zap.String("path", "/"+segment),
		)
	}
}

// handle resolves the source URL, classifies its formats and returns
// the MediaInfo payload. A resolution failure is reported with HTTP 200
// and success=false; only the success field signals the outcome. This
// mirrors the long-standing public contract of the API.
func (h *MediaHandler) handle(platformSegment string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sourceURL := c.Query("url")
		if sourceURL == "" {
			return c.Status(apperrors.ErrInvalidURL.StatusCode).JSON(fiber.Map{
				"error": apperrors.ErrInvalidURL.Message,
			})
		}

		opts := resolver.Options{
			Headers:    resolver.DefaultHeaders(),
			CookieFile: h.cookies.FileFor(sourceURL),
		}

		// Resolution outlives the inbound request on purpose: a
		// coalesced result may be shared with callers whose own
		// request contexts differ.
		result := h.flight.Do(sourceURL, func() (*types.Resolution, error) {
			return h.resolver.Resolve(context.Background(), sourceURL, opts)
		})

		if result.Err != nil {
			metrics.GetMetrics().RecordResolution(platformSegment, false)
			h.logger.Warn("resolution failed",
				zap.String("platform", platformSegment),
				zap.String("url", sourceURL),
				zap.Bool("coalesced", result.Shared),
				zap.Error(result.Err),
			)
			return c.JSON(types.ErrorResponse{
				Success: false,
				Error:   apperrors.GetErrorMessage(result.Err),
			})
		}

		metrics.GetMetrics().RecordResolution(platformSegment, true)

		info := h.classifier.Classify(result.Res.Title, result.Res.RawFormats)
		info.Thumbnail = result.Res.Thumbnail

		return c.JSON(info)
	}
}
