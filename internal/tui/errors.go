package tui

import (
	"fmt"

	apperrors "github.com/jasonKoogler/iqc/internal/errors"
)

// RenderLoadError renders a failed preview load with what to do next
func RenderLoadError(theme Theme, err error) string {
	_, message := apperrors.Classify(err)

	suggestion := LoadRetryMsg
	if apperrors.Is(err, apperrors.ErrFetchFailed) {
		suggestion = FetchRetryMsg
	}

	return theme.Error.Render(fmt.Sprintf("Error: %s\n\n%s", message, suggestion))
}
