package export

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSaverWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	s, err := NewDirSaver(dir)
	require.NoError(t, err)

	path, err := s.Save(File{Name: "iqc.png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "iqc.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestDirSaverStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirSaver(dir)
	require.NoError(t, err)

	path, err := s.Save(File{Name: "../../escape.png", Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.png"), path)
}

func TestDetectSharerUnknownCommand(t *testing.T) {
	s := DetectSharer("definitely-not-a-share-command-iqc")
	assert.Equal(t, Unavailable, s.Capability())
	assert.Error(t, s.Share(context.Background(), File{Name: "x.png"}, "", ""))
}

func TestCommandSharerRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "shared.txt")
	script := filepath.Join(dir, "share.sh")
	body := "#!/bin/sh\ncp \"$1\" " + out + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0755))

	s := DetectSharer(script)
	require.Equal(t, Available, s.Capability())

	err := s.Share(context.Background(), File{Name: "iqc-chat.png", Data: []byte("payload")}, "title", "text")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}
