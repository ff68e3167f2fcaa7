package tui

import "time"

// Constants for TUI configuration
const (
	// Form limits
	MessageCharLimit = 500
	TimeCharLimit    = 5
	BatteryStep      = 1
	BatteryBigStep   = 10

	// Component sizing percentages
	FormViewWidth    = 55 // percentage of screen width
	PreviewViewWidth = 45 // percentage of screen width
	StackBelowWidth  = 80 // narrower terminals stack the preview under the form

	// Timeouts
	PreviewLoadTimeout = 30 * time.Second
	ExportTimeout      = 60 * time.Second
	ToastDuration      = 4 * time.Second

	// Status messages
	EmptyPreviewMsg = "Your generated image will appear here."
	GeneratingMsg   = "Generating image..."
	RenderingMsg    = "Rendering image..."
	LoadRetryMsg    = "The image could not be read. Press ctrl+r to retry."
	FetchRetryMsg   = "Check your internet connection, then press ctrl+r to retry."
	SavedMsg        = "✓ Image saved to %s"
	SharedMsg       = "✓ Image shared."
)
