package device

import (
	"context"
	"runtime"
	"testing"
	"time"
)

func TestExecSpeaker_Speak(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix tools")
	}

	spk := NewExecSpeaker([]string{"true"})
	if err := spk.Speak(context.Background(), "hello"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExecSpeaker_MissingCommand(t *testing.T) {
	spk := NewExecSpeaker([]string{"definitely-not-a-real-binary-xyz"})
	if err := spk.Speak(context.Background(), "hello"); err == nil {
		t.Error("expected error for missing speak command")
	}
}

func TestExecSpeaker_NoCommandConfigured(t *testing.T) {
	spk := NewExecSpeaker(nil)
	if err := spk.Speak(context.Background(), "hello"); err == nil {
		t.Error("expected error with no command configured")
	}
}

func TestExecSpeaker_ContextCancellation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix tools")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	spk := NewExecSpeaker([]string{"sleep", "10"})
	start := time.Now()
	err := spk.Speak(ctx, "hello")
	if err != nil {
		t.Errorf("a cancelled utterance is not an error: %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("speak did not stop on context cancellation")
	}
}

func TestExecSpeaker_Cancel(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix tools")
	}

	spk := NewExecSpeaker([]string{"sleep", "10"})

	done := make(chan error, 1)
	go func() {
		done <- spk.Speak(context.Background(), "hello")
	}()

	// Give the process a moment to start, then kill it.
	time.Sleep(100 * time.Millisecond)
	spk.Cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("speak did not return after cancel")
	}
}

func TestExecSpeaker_CancelIdle(t *testing.T) {
	spk := NewExecSpeaker([]string{"true"})
	spk.Cancel() // must not panic with nothing in flight
}
