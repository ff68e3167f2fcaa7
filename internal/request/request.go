// internal/request/request.go
package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/jasonKoogler/iqc/internal/errors"
)

// DefaultEndpoint is the public rendering endpoint used when none is configured
const DefaultEndpoint = "https://api-faa.my.id/faa/iqcv2"

// Query parameter names understood by the rendering endpoint
const (
	ParamPrompt  = "prompt"
	ParamTime    = "jam"
	ParamBattery = "batre"
)

// Carrier is the network label shown in the status bar of the rendered phone
type Carrier string

const (
	CarrierTelkomsel Carrier = "Telkomsel"
	CarrierXL        Carrier = "XL"
	CarrierIndosat   Carrier = "Indosat"
	CarrierSmartfren Carrier = "Smartfren"
	Carrier5G        Carrier = "5G"
	CarrierLTE       Carrier = "LTE"

	DefaultCarrier = Carrier5G
)

// Carriers returns the selectable carriers in display order
func Carriers() []Carrier {
	return []Carrier{
		CarrierTelkomsel,
		CarrierXL,
		CarrierIndosat,
		CarrierSmartfren,
		Carrier5G,
		CarrierLTE,
	}
}

// ParseCarrier matches a carrier label case-insensitively
func ParseCarrier(s string) (Carrier, error) {
	for _, c := range Carriers() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown carrier %q", s)
}

// GenerationRequest holds the fields collected by the form
type GenerationRequest struct {
	Text           string
	Time           string
	BatteryPercent int
	Carrier        Carrier
}

// DefaultTime formats t the way the time field expects it
func DefaultTime(t time.Time) string {
	return t.Format("15:04")
}

// HasText reports whether the message is non-empty after trimming whitespace
func (r GenerationRequest) HasText() bool {
	return strings.TrimSpace(r.Text) != ""
}

// Builder turns requests into fetch URLs against a fixed endpoint
type Builder struct {
	base *url.URL
}

// NewBuilder validates endpoint and returns a builder for it
func NewBuilder(endpoint string) (*Builder, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}
	u.Fragment = ""
	return &Builder{base: u}, nil
}

// Endpoint returns the base endpoint without the generated query
func (b *Builder) Endpoint() string {
	return b.base.String()
}

// BuildURL encodes text, time and battery as prompt, jam and batre.
// The carrier is never part of the URL.
func (b *Builder) BuildURL(req GenerationRequest) (string, error) {
	if !utf8.ValidString(req.Text) {
		return "", fmt.Errorf("%w: message text is not valid UTF-8", apperrors.ErrBuildFailed)
	}
	if !utf8.ValidString(req.Time) {
		return "", fmt.Errorf("%w: time is not valid UTF-8", apperrors.ErrBuildFailed)
	}

	params := []struct{ key, value string }{
		{ParamPrompt, req.Text},
		{ParamTime, req.Time},
		{ParamBattery, strconv.Itoa(req.BatteryPercent)},
	}

	var sb strings.Builder
	sb.WriteString(b.base.RawQuery)
	for _, p := range params {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}

	u := *b.base
	u.RawQuery = sb.String()
	return u.String(), nil
}
