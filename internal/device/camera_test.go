package device

import (
	"context"
	"os"
	"runtime"
	"testing"
)

func TestExecCamera_CaptureRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}

	// sh -c receives the output path as $0 and plays the capture command.
	cam := NewExecCamera([]string{"sh", "-c", `echo test > "$0"`})

	if err := cam.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cam.Stop()

	path, err := cam.Capture(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected captured file: %v", err)
	}
	if string(data) != "test\n" {
		t.Errorf("unexpected capture contents: %q", data)
	}
}

func TestExecCamera_StopRemovesWorkDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}

	cam := NewExecCamera([]string{"sh", "-c", `echo test > "$0"`})
	if err := cam.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := cam.workDir

	path, err := cam.Capture(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cam.Stop()

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("expected work dir removed on stop")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected captured frame removed on stop")
	}

	// Stop is idempotent.
	cam.Stop()
}

func TestExecCamera_CaptureBeforeStart(t *testing.T) {
	cam := NewExecCamera([]string{"true"})
	if _, err := cam.Capture(context.Background()); err == nil {
		t.Error("expected error capturing before start")
	}
}

func TestExecCamera_MissingCommand(t *testing.T) {
	cam := NewExecCamera([]string{"definitely-not-a-real-binary-xyz"})
	if err := cam.Start(); err == nil {
		cam.Stop()
		t.Error("expected error for missing capture command")
	}
}

func TestExecCamera_NoCommandConfigured(t *testing.T) {
	cam := NewExecCamera(nil)
	if err := cam.Start(); err == nil {
		t.Error("expected error with no command configured")
	}
}

func TestExecCamera_StopWithoutStart(t *testing.T) {
	cam := NewExecCamera([]string{"true"})
	cam.Stop() // must not panic
}

func TestExecCamera_CaptureProducesNoImage(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}

	// The command succeeds but never writes the output file.
	cam := NewExecCamera([]string{"sh", "-c", "true"})
	if err := cam.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cam.Stop()

	if _, err := cam.Capture(context.Background()); err == nil {
		t.Error("expected error when no image is produced")
	}
}
