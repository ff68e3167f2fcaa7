// internal/update/version_checker.go
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/dustin/go-humanize"
)

// UpdateInfo holds information about the latest version
type UpdateInfo struct {
	LatestVersion string    `json:"latest_version"`
	ReleaseDate   time.Time `json:"release_date"`
	ReleaseNotes  string    `json:"release_notes"`
	DownloadURL   string    `json:"download_url"`
	CheckedAt     time.Time `json:"checked_at"`
}

// VersionChecker checks for new releases of iqc
type VersionChecker struct {
	currentVersion string
	configDir      string
	updateURL      string
	cacheDuration  time.Duration
	client         *http.Client
	now            func() time.Time
}

// NewVersionChecker creates a new version checker polling updateURL
func NewVersionChecker(currentVersion, configDir, updateURL string) *VersionChecker {
	return &VersionChecker{
		currentVersion: strings.TrimPrefix(currentVersion, "v"),
		configDir:      configDir,
		updateURL:      updateURL,
		cacheDuration:  24 * time.Hour,
		client:         &http.Client{Timeout: 5 * time.Second},
		now:            time.Now,
	}
}

// CheckForUpdates returns release info when a newer version exists, nil otherwise
func (vc *VersionChecker) CheckForUpdates(ctx context.Context, force bool) (*UpdateInfo, error) {
	if !force {
		cachedInfo, err := vc.loadCachedInfo()
		if err == nil && vc.now().Sub(cachedInfo.CheckedAt) < vc.cacheDuration {
			if vc.isNewerVersion(cachedInfo.LatestVersion) {
				return cachedInfo, nil
			}
			return nil, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, vc.updateURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "iqc-cli")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := vc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var release struct {
		TagName     string    `json:"tag_name"`
		PublishedAt time.Time `json:"published_at"`
		Body        string    `json:"body"`
		HTMLURL     string    `json:"html_url"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	info := &UpdateInfo{
		LatestVersion: strings.TrimPrefix(release.TagName, "v"),
		ReleaseDate:   release.PublishedAt,
		ReleaseNotes:  release.Body,
		DownloadURL:   release.HTMLURL,
		CheckedAt:     vc.now(),
	}

	// A failed cache write only costs an extra request next time.
	_ = vc.cacheUpdateInfo(info)

	if vc.isNewerVersion(info.LatestVersion) {
		return info, nil
	}
	return nil, nil
}

// isNewerVersion checks if the latest version is newer than the current version
func (vc *VersionChecker) isNewerVersion(latestVersion string) bool {
	current, err := semver.NewVersion(vc.currentVersion)
	if err != nil {
		// dev builds always see the latest release
		return true
	}

	latest, err := semver.NewVersion(latestVersion)
	if err != nil {
		return false
	}

	return latest.GreaterThan(current)
}

func (vc *VersionChecker) cachePath() string {
	return filepath.Join(vc.configDir, "cache", "update_info.json")
}

// cacheUpdateInfo saves update information to cache
func (vc *VersionChecker) cacheUpdateInfo(info *UpdateInfo) error {
	if err := os.MkdirAll(filepath.Dir(vc.cachePath()), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal update info: %w", err)
	}

	if err := os.WriteFile(vc.cachePath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// loadCachedInfo loads cached update information
func (vc *VersionChecker) loadCachedInfo() (*UpdateInfo, error) {
	data, err := os.ReadFile(vc.cachePath())
	if err != nil {
		return nil, err
	}

	var info UpdateInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse cached update info: %w", err)
	}
	return &info, nil
}

// GetUpdateMessage returns a formatted message about an available update
func (vc *VersionChecker) GetUpdateMessage(info *UpdateInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Update available: v%s", info.LatestVersion)
	if !info.ReleaseDate.IsZero() {
		fmt.Fprintf(&sb, " (released %s)", humanize.RelTime(info.ReleaseDate, vc.now(), "ago", "from now"))
	}
	fmt.Fprintf(&sb, "\n   Current version: v%s\n", vc.currentVersion)
	if notes := strings.TrimSpace(info.ReleaseNotes); notes != "" {
		fmt.Fprintf(&sb, "\n   %s\n", notes)
	}
	if info.DownloadURL != "" {
		fmt.Fprintf(&sb, "\n   Download: %s\n", info.DownloadURL)
	}
	return sb.String()
}
