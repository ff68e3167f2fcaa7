// internal/preview/panel.go
package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	apperrors "github.com/jasonKoogler/iqc/internal/errors"
	"github.com/jasonKoogler/iqc/internal/export"
	"github.com/jasonKoogler/iqc/internal/fetch"
	"github.com/jasonKoogler/iqc/internal/generation"
	"github.com/jasonKoogler/iqc/internal/logging"
	_ "golang.org/x/image/webp"
)

// State is the panel display state
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateRendering
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateRendering:
		return "rendering"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

const (
	ShareFileName = "iqc-chat.png"
	ShareTitle    = "IQC iPhone Generator"
	ShareText     = "Check out the iPhone chat I made!"
)

// DownloadFileName embeds the unix millisecond timestamp
func DownloadFileName(t time.Time) string {
	return fmt.Sprintf("iqc-iphone-generator-%d.png", t.UnixMilli())
}

// ImageInfo describes a decoded image
type ImageInfo struct {
	Format string
	Width  int
	Height int
	Size   int
}

func (i ImageInfo) String() string {
	return fmt.Sprintf("%dx%d %s, %s", i.Width, i.Height, i.Format, humanize.Bytes(uint64(i.Size)))
}

// Panel tracks the preview derived from the generation session and gates
// the export actions on a confirmed image decode.
type Panel struct {
	mu      sync.RWMutex
	url     string
	loading bool
	decoded bool
	info    ImageInfo
	loadErr error

	fetcher fetch.Fetcher
	saver   export.Saver
	sharer  export.Sharer
	now     func() time.Time
	logger  logging.Logger
}

// Option configures a Panel
type Option func(*Panel)

// WithClock overrides the clock used for download file names
func WithClock(now func() time.Time) Option {
	return func(p *Panel) {
		p.now = now
	}
}

// WithLogger sets the panel logger
func WithLogger(l logging.Logger) Option {
	return func(p *Panel) {
		p.logger = l
	}
}

// NewPanel creates an empty panel
func NewPanel(fetcher fetch.Fetcher, saver export.Saver, sharer export.Sharer, opts ...Option) *Panel {
	if sharer == nil {
		sharer = export.UnavailableSharer{}
	}
	p := &Panel{
		fetcher: fetcher,
		saver:   saver,
		sharer:  sharer,
		now:     time.Now,
		logger:  logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sync derives the panel from a session snapshot. It reports whether the
// URL changed, in which case the caller should start a Load.
func (p *Panel) Sync(s generation.Session) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loading = s.Status == generation.StatusLoading
	if s.ResultURL == p.url {
		return false
	}

	p.url = s.ResultURL
	p.decoded = false
	p.info = ImageInfo{}
	p.loadErr = nil
	return p.url != ""
}

// State returns the current display state
func (p *Panel) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stateLocked()
}

func (p *Panel) stateLocked() State {
	switch {
	case p.loading:
		return StateLoading
	case p.url == "":
		return StateEmpty
	case !p.decoded:
		return StateRendering
	default:
		return StateLoaded
	}
}

// URL returns the current image URL
func (p *Panel) URL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.url
}

// Info returns the decoded image description, valid only when Loaded
func (p *Panel) Info() ImageInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// LoadError returns the error from the last failed load of the current URL
func (p *Panel) LoadError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadErr
}

// CanExport reports whether download and share are enabled
func (p *Panel) CanExport() bool {
	return p.State() == StateLoaded
}

// Load fetches the current URL and decodes it. It does not change the panel
// state; pass the result to MarkDecoded or MarkFailed.
func (p *Panel) Load(ctx context.Context) (string, ImageInfo, error) {
	url := p.URL()
	if url == "" {
		return "", ImageInfo{}, apperrors.ErrNotLoaded
	}

	payload, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return url, ImageInfo{}, err
	}

	info, err := Decode(payload.Data)
	if err != nil {
		return url, ImageInfo{}, err
	}
	return url, info, nil
}

// MarkDecoded moves Rendering to Loaded if url is still current
func (p *Panel) MarkDecoded(url string, info ImageInfo) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if url == "" || url != p.url || p.loading {
		return false
	}
	p.decoded = true
	p.info = info
	p.loadErr = nil
	p.logger.Info("Preview loaded: %s", info)
	return true
}

// MarkFailed records a load failure for url; the panel stays in Rendering
func (p *Panel) MarkFailed(url string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if url != p.url {
		return
	}
	p.loadErr = err
	p.logger.Warn("Preview load failed: %v", err)
}

// RetryLoad clears a recorded load failure so the current URL can be loaded
// again. It reports false when there is nothing to retry.
func (p *Panel) RetryLoad() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.url == "" || p.decoded || p.loadErr == nil {
		return false
	}
	p.loadErr = nil
	return true
}

// Decode validates that data is an image and reports its dimensions
func Decode(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return ImageInfo{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   len(data),
	}, nil
}

// exportURL returns the URL when export is allowed
func (p *Panel) exportURL() (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stateLocked() != StateLoaded {
		return "", apperrors.ErrNotLoaded
	}
	return p.url, nil
}

// Download fetches the image and saves it with a timestamped name
func (p *Panel) Download(ctx context.Context) (string, error) {
	url, err := p.exportURL()
	if err != nil {
		return "", err
	}

	payload, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		p.logger.Error("Download fetch failed: %v", err)
		return "", apperrors.NewAppError(err, "download",
			"Failed to download the image. Try saving it manually.")
	}

	path, err := p.saver.Save(export.File{
		Name:        DownloadFileName(p.now()),
		ContentType: payload.ContentType,
		Data:        payload.Data,
	})
	if err != nil {
		p.logger.Error("Saving download failed: %v", err)
		return "", apperrors.NewAppError(err, "download",
			"Failed to download the image. Try saving it manually.")
	}

	p.logger.Info("Image saved to %s", path)
	return path, nil
}

// Share fetches the image and hands it to the share capability. The fetch
// happens before the capability check.
func (p *Panel) Share(ctx context.Context) error {
	url, err := p.exportURL()
	if err != nil {
		return err
	}

	payload, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		p.logger.Error("Share fetch failed: %v", err)
		return apperrors.NewAppError(err, "share", "Failed to process sharing.")
	}

	file := export.File{
		Name:        ShareFileName,
		ContentType: "image/png",
		Data:        payload.Data,
	}

	if p.sharer.Capability() != export.Available {
		return apperrors.ErrShareUnsupported
	}

	if err := p.sharer.Share(ctx, file, ShareTitle, ShareText); err != nil {
		p.logger.Error("Share failed: %v", err)
		return apperrors.NewAppError(err, "share", "Failed to process sharing.")
	}
	return nil
}

// ShareCapability exposes the resolved share capability
func (p *Panel) ShareCapability() export.Capability {
	return p.sharer.Capability()
}
