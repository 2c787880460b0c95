package device

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// Speaker announces text out loud. Cancel stops any in-flight utterance.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Cancel()
}

// ExecSpeaker runs an external text-to-speech command (espeak by default)
// with the text as its final argument.
type ExecSpeaker struct {
	command []string

	mu      sync.Mutex
	current *exec.Cmd
}

// NewExecSpeaker returns a speaker backed by command.
func NewExecSpeaker(command []string) *ExecSpeaker {
	return &ExecSpeaker{command: command}
}

// Speak blocks until the utterance finishes, the context ends, or Cancel is
// called.
func (s *ExecSpeaker) Speak(ctx context.Context, text string) error {
	if len(s.command) == 0 {
		return fmt.Errorf("no speak command configured")
	}
	if _, err := exec.LookPath(s.command[0]); err != nil {
		return fmt.Errorf("speak command %q not found: %w", s.command[0], err)
	}

	args := append(append([]string{}, s.command[1:]...), text)
	cmd := exec.CommandContext(ctx, s.command[0], args...)

	s.mu.Lock()
	s.current = cmd
	s.mu.Unlock()

	err := cmd.Run()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("speak failed: %w", err)
	}
	return nil
}

// Cancel kills the in-flight utterance, if any.
func (s *ExecSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
	}
}
