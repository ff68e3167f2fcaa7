package tui

// LayoutManager helps calculate component dimensions based on terminal size
type LayoutManager struct {
	Width  int
	Height int
}

// NewLayoutManager creates a new layout manager with the given dimensions
func NewLayoutManager(width, height int) *LayoutManager {
	return &LayoutManager{
		Width:  width,
		Height: height,
	}
}

// Stacked reports whether the preview goes below the form instead of beside it
func (l *LayoutManager) Stacked() bool {
	return l.Width < StackBelowWidth
}

// FormDimensions returns the dimensions for the request form
func (l *LayoutManager) FormDimensions() (width, height int) {
	if l.Stacked() {
		return l.Width, l.ContentHeight() / 2
	}
	return l.Width * FormViewWidth / 100, l.ContentHeight()
}

// PreviewDimensions returns the dimensions for the preview panel
func (l *LayoutManager) PreviewDimensions() (width, height int) {
	if l.Stacked() {
		return l.Width, l.ContentHeight() - l.ContentHeight()/2
	}
	return l.Width * PreviewViewWidth / 100, l.ContentHeight()
}

// ContentHeight returns the available height for content (excluding status and help lines)
func (l *LayoutManager) ContentHeight() int {
	h := l.Height - 3
	if h < 0 {
		return 0
	}
	return h
}
