// Package device wraps the machine-local capabilities the commands need,
// camera capture and speech output, behind small interfaces so the command
// logic can be exercised with stubs.
package device

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Camera is an exclusive capture device with a scoped lifetime: Start
// acquires it, Capture produces one image, Stop releases it. Stop must be
// called on every exit path once Start has succeeded.
type Camera interface {
	Start() error
	Capture(ctx context.Context) (string, error)
	Stop()
}

// ExecCamera drives an external capture command (fswebcam by default) that
// writes a still image to the path given as its final argument.
type ExecCamera struct {
	command []string
	workDir string
}

// NewExecCamera returns a camera backed by command. command must name the
// executable followed by its fixed arguments.
func NewExecCamera(command []string) *ExecCamera {
	return &ExecCamera{command: command}
}

// Start verifies the capture command exists and acquires a scratch directory
// for captured frames.
func (c *ExecCamera) Start() error {
	if len(c.command) == 0 {
		return fmt.Errorf("no capture command configured")
	}
	if _, err := exec.LookPath(c.command[0]); err != nil {
		return fmt.Errorf("capture command %q not found: %w", c.command[0], err)
	}
	dir, err := os.MkdirTemp("", "foodtrack-capture-")
	if err != nil {
		return fmt.Errorf("failed to create capture dir: %w", err)
	}
	c.workDir = dir
	return nil
}

// Capture takes one frame and returns the image path. The file lives until
// Stop releases the camera.
func (c *ExecCamera) Capture(ctx context.Context) (string, error) {
	if c.workDir == "" {
		return "", fmt.Errorf("camera not started")
	}
	out := filepath.Join(c.workDir, "capture.jpg")

	args := append(append([]string{}, c.command[1:]...), out)
	cmd := exec.CommandContext(ctx, c.command[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("capture failed: %w (%s)", err, output)
	}
	if _, err := os.Stat(out); err != nil {
		return "", fmt.Errorf("capture produced no image: %w", err)
	}
	return out, nil
}

// Stop releases the camera and removes captured frames. Safe to call when
// Start failed or was never called.
func (c *ExecCamera) Stop() {
	if c.workDir != "" {
		os.RemoveAll(c.workDir)
		c.workDir = ""
	}
}
