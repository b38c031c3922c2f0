package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/auraflux/auraflux/internal/cache"
	apperrors "github.com/auraflux/auraflux/internal/errors"
	"github.com/auraflux/auraflux/internal/types"
)

// YtDlp resolves URLs by invoking the yt-dlp binary in metadata-only
// mode and parsing its single-JSON output.
type YtDlp struct {
	binaryPath string
	timeout    time.Duration
	logger     *zap.Logger
	cache      *cache.ResolutionCache // optional
}

// NewYtDlp creates a yt-dlp backed resolver. cache may be nil.
func NewYtDlp(binaryPath string, timeout time.Duration, logger *zap.Logger, resCache *cache.ResolutionCache) *YtDlp {
	return &YtDlp{
		binaryPath: binaryPath,
		timeout:    timeout,
		logger:     logger,
		cache:      resCache,
	}
}

// Resolve extracts title, thumbnail and raw formats for url. The raw
// resolution (never the classified output) is cached, so repeated
// requests skip the subprocess but still mint fresh short links.
func (y *YtDlp) Resolve(ctx context.Context, url string, opts Options) (*types.Resolution, error) {
	if y.cache != nil {
		if res, err := y.cache.Get(ctx, url); err == nil && res != nil {
			y.logger.Debug("resolution cache hit", zap.String("url", url))
			return res, nil
		}
	}

	res, err := y.execute(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	if y.cache != nil {
		if err := y.cache.Set(ctx, url, res); err != nil {
			y.logger.Warn("failed to cache resolution", zap.Error(err))
		}
	}

	return res, nil
}

func (y *YtDlp) execute(ctx context.Context, url string, opts Options) (*types.Resolution, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	args := y.buildArgs(url, opts)

	y.logger.Debug("invoking yt-dlp",
		zap.String("url", url),
		zap.Bool("authenticated", opts.CookieFile != ""),
	)

	cmd := exec.CommandContext(ctx, y.binaryPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := extractorMessage(stderr.String())
		if message == "" {
			message = err.Error()
		}
		y.logger.Warn("yt-dlp resolution failed",
			zap.String("url", url),
			zap.String("stderr", message),
			zap.Error(err),
		)
		return nil, apperrors.ErrResolutionFailed.WithMessage(message).WithCause(err)
	}

	var res types.Resolution
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		y.logger.Error("failed to parse yt-dlp output", zap.Error(err))
		return nil, apperrors.ErrResolutionFailed.
			WithMessage("could not parse resolver output").
			WithCause(err)
	}

	return &res, nil
}

// buildArgs constructs the yt-dlp invocation: metadata only, one JSON
// document, no playlist expansion, browser-like headers.
func (y *YtDlp) buildArgs(url string, opts Options) []string {
	args := []string{
		"--dump-single-json",
		"--no-playlist",
		"--no-warnings",
		"--skip-download",
	}

	for key, value := range opts.Headers {
		if strings.EqualFold(key, "User-Agent") {
			args = append(args, "--user-agent", value)
			continue
		}
		args = append(args, "--add-headers", fmt.Sprintf("%s:%s", key, value))
	}

	if opts.CookieFile != "" {
		args = append(args, "--cookies", opts.CookieFile)
	}

	return append(args, url)
}

// extractorMessage pulls the most useful line out of yt-dlp's stderr:
// the last "ERROR:" line if any, otherwise the last non-empty line.
func extractorMessage(stderr string) string {
	lines := strings.Split(stderr, "\n")

	var lastNonEmpty string
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if lastNonEmpty == "" {
			lastNonEmpty = line
		}
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}

	return lastNonEmpty
}

// IsResolutionError reports whether err came from a failed resolution
// as opposed to an internal fault.
func IsResolutionError(err error) bool {
	return errors.Is(err, apperrors.ErrResolutionFailed)
}
