package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/auraflux/auraflux/internal/errors"
	"github.com/auraflux/auraflux/internal/metrics"
	"github.com/auraflux/auraflux/internal/proxy"
	"github.com/auraflux/auraflux/internal/shortlink"
	"github.com/auraflux/auraflux/internal/types"
)

// DownloadHandler redeems short codes via the redirect proxy.
type DownloadHandler struct {
	store  *shortlink.Store
	proxy  *proxy.Proxy
	logger *zap.Logger
}

// NewDownloadHandler creates a download handler.
func NewDownloadHandler(store *shortlink.Store, p *proxy.Proxy, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		store:  store,
		proxy:  p,
		logger: logger,
	}
}

// Register binds the redeem route.
func (h *DownloadHandler) Register(app *fiber.App) {
	app.Get("/d/:code", h.Download)
}

// Download resolves the code and streams the origin response. Unknown
// codes yield 404, transport failures 500; both carry the flat
// {success:false, error} body.
func (h *DownloadHandler) Download(c *fiber.Ctx) error {
	code := c.Params("code")

	entry, ok := h.store.Resolve(code)
	if !ok {
		metrics.GetMetrics().RecordUnknownCode()
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Success: false,
			Error:   "Invalid or expired short code",
		})
	}

	if err := h.proxy.Stream(c, entry); err != nil {
		metrics.GetMetrics().RecordFetchFailure()
		return c.Status(apperrors.GetStatusCode(err)).JSON(types.ErrorResponse{
			Success: false,
			Error:   apperrors.GetErrorMessage(err),
		})
	}

	return nil
}
