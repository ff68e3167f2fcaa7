package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleErrorRoundsUp(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      int
	}{
		{2 * time.Second, 2},
		{1999 * time.Millisecond, 2},
		{1 * time.Millisecond, 1},
		{5 * time.Second, 5},
	}

	for _, c := range cases {
		err := &ThrottleError{Remaining: c.remaining}
		assert.Equal(t, c.want, err.Seconds(), "remaining %s", c.remaining)
		assert.Contains(t, err.Error(), fmt.Sprintf("wait %d more seconds", c.want))
	}
}

func TestThrottleErrorIsThrottled(t *testing.T) {
	err := fmt.Errorf("submit: %w", &ThrottleError{Remaining: time.Second})

	assert.True(t, Is(err, ErrThrottled))
	assert.True(t, IsGenerationError(err))
	assert.False(t, IsExportError(err))
}

func TestClassify(t *testing.T) {
	level, msg := Classify(&ThrottleError{Remaining: 2 * time.Second})
	assert.Equal(t, LevelWarning, level)
	assert.Contains(t, msg, "2")

	level, _ = Classify(fmt.Errorf("share: %w", ErrShareUnsupported))
	assert.Equal(t, LevelInfo, level)

	level, msg = Classify(NewAppError(ErrFetchFailed, "download", "Failed to download the image."))
	assert.Equal(t, LevelError, level)
	assert.Equal(t, "Failed to download the image.", msg)

	level, msg = Classify(fmt.Errorf("build: %w", ErrBuildFailed))
	assert.Equal(t, LevelError, level)
	assert.Equal(t, "Failed to create the image. Try again later.", msg)
}
