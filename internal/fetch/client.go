// Package fetch downloads rendered images from the generation endpoint.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jasonKoogler/iqc/internal/api"
	apperrors "github.com/jasonKoogler/iqc/internal/errors"
)

// DefaultTimeout bounds a single fetch when none is configured
const DefaultTimeout = 30 * time.Second

// maxImageBytes caps the response body; rendered chats are well under this
const maxImageBytes = 20 << 20

// Payload is a fetched image
type Payload struct {
	Data        []byte
	ContentType string
}

// Fetcher retrieves image bytes for a URL
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Payload, error)
}

// Client fetches images over HTTP
type Client struct {
	httpClient *http.Client
	limiter    *api.RateLimiter
	userAgent  string
}

// NewClient creates a fetch client. limiter may be nil.
func NewClient(timeout time.Duration, limiter *api.RateLimiter) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		userAgent:  "iqc-client",
	}
}

// Fetch performs a single GET; there are no retries. Any failure wraps
// errors.ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Payload, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: invalid url: %v", apperrors.ErrFetchFailed, err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, u.Host); err != nil {
			return Payload{}, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: failed to create request: %v", apperrors.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Payload{}, fmt.Errorf("%w: unexpected status code: %d", apperrors.ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: failed to read response: %v", apperrors.ErrFetchFailed, err)
	}
	if len(data) > maxImageBytes {
		return Payload{}, fmt.Errorf("%w: response exceeds %d bytes", apperrors.ErrFetchFailed, maxImageBytes)
	}

	contentType := imageContentType(resp.Header.Get("Content-Type"), data)
	if contentType == "" {
		return Payload{}, fmt.Errorf("%w: response is not an image", apperrors.ErrFetchFailed)
	}

	return Payload{Data: data, ContentType: contentType}, nil
}

// imageContentType prefers the declared media type and falls back to sniffing
func imageContentType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return ""
}
