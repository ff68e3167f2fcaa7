// Package export provides the platform capabilities used to hand a rendered
// image to the user: saving it as a file and passing it to a share sheet.
package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Capability reports whether a platform feature can be used
type Capability int

const (
	Unavailable Capability = iota
	Available
)

func (c Capability) String() string {
	if c == Available {
		return "available"
	}
	return "unavailable"
}

// File is a named payload ready to be saved or shared
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Saver stores a file locally and returns where it went
type Saver interface {
	Save(f File) (string, error)
}

// Sharer hands a file to the platform share sheet
type Sharer interface {
	Capability() Capability
	Share(ctx context.Context, f File, title, text string) error
}

// DirSaver writes files into a directory
type DirSaver struct {
	dir string
}

// NewDirSaver expands ~ in dir and returns a saver for it
func NewDirSaver(dir string) (*DirSaver, error) {
	if dir == "" {
		dir = "."
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to expand download directory %q: %w", dir, err)
	}
	return &DirSaver{dir: expanded}, nil
}

// Dir returns the target directory
func (s *DirSaver) Dir() string {
	return s.dir
}

// Save writes f into the directory, creating it when missing
func (s *DirSaver) Save(f File) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path := filepath.Join(s.dir, filepath.Base(f.Name))
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// UnavailableSharer is used when no share mechanism exists
type UnavailableSharer struct{}

func (UnavailableSharer) Capability() Capability { return Unavailable }

func (UnavailableSharer) Share(context.Context, File, string, string) error {
	return fmt.Errorf("no share mechanism available")
}

// CommandSharer shares by running an external command with the file path as
// its last argument, e.g. termux-share on Android.
type CommandSharer struct {
	path string
	args []string
}

func (s *CommandSharer) Capability() Capability { return Available }

// Share writes f to a temporary directory and runs the share command on it
func (s *CommandSharer) Share(ctx context.Context, f File, title, text string) error {
	tmpDir, err := os.MkdirTemp("", "iqc-share-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, filepath.Base(f.Name))
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return fmt.Errorf("failed to stage share payload: %w", err)
	}

	args := append(append([]string(nil), s.args...), path)
	cmd := exec.CommandContext(ctx, s.path, args...)
	cmd.Env = append(os.Environ(), "IQC_SHARE_TITLE="+title, "IQC_SHARE_TEXT="+text)

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("share command failed: %w, output: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// DefaultShareCommands are probed in order when no command is configured
var DefaultShareCommands = []string{"termux-share"}

// DetectSharer resolves the share capability once at startup. command may
// carry arguments ("termux-share -a send"); an empty command probes the defaults.
func DetectSharer(command string) Sharer {
	candidates := DefaultShareCommands
	if strings.TrimSpace(command) != "" {
		candidates = []string{command}
	}

	for _, candidate := range candidates {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		path, err := exec.LookPath(fields[0])
		if err != nil {
			continue
		}
		return &CommandSharer{path: path, args: fields[1:]}
	}
	return UnavailableSharer{}
}
