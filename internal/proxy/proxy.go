// Package proxy redeems short codes: it fetches the origin media URL
// server-side and forwards the bytes to the caller under the suggested
// filename. Bodies are streamed chunk-by-chunk, never buffered whole.
package proxy

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/auraflux/auraflux/internal/errors"
	"github.com/auraflux/auraflux/internal/metrics"
	"github.com/auraflux/auraflux/internal/pool"
	"github.com/auraflux/auraflux/internal/shortlink"
)

// Proxy streams origin responses for redeemed short links.
type Proxy struct {
	httpPool *pool.HTTPClientPool
	logger   *zap.Logger
}

// New creates a proxy using the shared outbound client.
func New(httpPool *pool.HTTPClientPool, logger *zap.Logger) *Proxy {
	return &Proxy{
		httpPool: httpPool,
		logger:   logger,
	}
}

// Stream fetches the entry's origin URL and writes the response to the
// fiber context. The origin's status code and content type are
// forwarded as-is; the entry's filename is attached via a
// Content-Disposition header. A transport-level failure returns
// FETCH_FAILED; origin HTTP error statuses are not special-cased.
func (p *Proxy) Stream(c *fiber.Ctx, entry shortlink.Entry) error {
	origin := decodeOriginURL(entry.OriginURL)

	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, origin, nil)
	if err != nil {
		return apperrors.ErrFetchFailed.WithCause(err)
	}

	resp, err := p.httpPool.Client().Do(req)
	if err != nil {
		p.logger.Error("origin fetch failed",
			zap.String("code", entry.Code),
			zap.Error(err),
		)
		return apperrors.ErrFetchFailed.WithCause(err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Status(resp.StatusCode)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(entry.Filename)))

	if resp.ContentLength >= 0 && fitsInt(resp.ContentLength) {
		// Known size: hand the body straight to fasthttp, which sets
		// Content-Length and closes the reader when done.
		c.Set(fiber.HeaderContentLength, strconv.FormatInt(resp.ContentLength, 10))
		c.Context().Response.SetBodyStream(resp.Body, int(resp.ContentLength))
		metrics.GetMetrics().RecordProxiedDownload(resp.ContentLength)
		return nil
	}

	// Unknown (or int-overflowing) size: chunked copy with a pooled
	// buffer, counting the bytes actually forwarded.
	logger := p.logger
	code := entry.Code
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer resp.Body.Close()

		buffer := pool.StreamSlicePool.Get()
		defer pool.StreamSlicePool.Put(buffer)

		var written int64
		defer func() {
			metrics.GetMetrics().RecordProxiedDownload(written)
		}()

		for {
			n, readErr := resp.Body.Read(buffer)
			if n > 0 {
				if _, writeErr := w.Write(buffer[:n]); writeErr != nil {
					return
				}
				if flushErr := w.Flush(); flushErr != nil {
					return
				}
				written += int64(n)
			}
			if readErr == io.EOF {
				return
			}
			if readErr != nil {
				logger.Warn("origin stream interrupted",
					zap.String("code", code),
					zap.Error(readErr),
				)
				return
			}
		}
	})

	return nil
}

// fitsInt reports whether a Content-Length survives conversion to int,
// which fasthttp's SetBodyStream requires. On 32-bit builds bodies over
// 2 GiB fall through to the chunked path instead of truncating.
func fitsInt(n int64) bool {
	return int64(int(n)) == n
}

// decodeOriginURL percent-decodes the stored origin URL, falling back
// to the raw value when it is not valid percent-encoding.
func decodeOriginURL(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
