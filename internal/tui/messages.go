package tui

import (
	"github.com/jasonKoogler/iqc/internal/generation"
	"github.com/jasonKoogler/iqc/internal/preview"
)

// Common message types used across TUI components

// sessionMsg carries a session snapshot published by the controller
type sessionMsg struct {
	session generation.Session
}

// previewLoadedMsg reports a successful fetch and decode of url
type previewLoadedMsg struct {
	url  string
	info preview.ImageInfo
}

// previewFailedMsg reports a failed load of url
type previewFailedMsg struct {
	url string
	err error
}

// exportKind distinguishes the two export actions
type exportKind int

const (
	exportDownload exportKind = iota
	exportShare
)

// exportDoneMsg reports the outcome of a download or share
type exportDoneMsg struct {
	kind exportKind
	path string
	err  error
}

// toastExpiredMsg dismisses the toast with the given id
type toastExpiredMsg struct {
	id int
}
