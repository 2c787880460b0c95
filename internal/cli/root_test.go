package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"foodtrack/internal/session"
)

func TestRootCommandTree(t *testing.T) {
	want := []string{
		"login", "logout", "whoami", "register", "refresh",
		"classify", "dashboard", "history", "profile", "status", "admin",
	}

	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}

	for _, name := range want {
		if !have[name] {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}

func TestRootHelp(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	help := out.String()
	for _, want := range []string{"foodtrack", "classify", "history", "login"} {
		if !strings.Contains(help, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a very long food name indeed", 10, "a very ..."},
		{"abc", 2, "ab"},
		{"Crème brûlée", 8, "Crème..."},
		{"Crème brûlée", 12, "Crème brûlée"},
	}

	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.in, tt.n, got)
		}
	}
}

func TestAPIURLFlagOverridesConfig(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "freebsd" {
		t.Skip("test isolates via XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	apiURL = "http://flag.example:9000"
	defer func() { apiURL = "" }()

	env, err := newEnv(&cobra.Command{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.client.BaseURL() != "http://flag.example:9000" {
		t.Errorf("expected flag override to reach the client, got %q", env.client.BaseURL())
	}
}

func TestRequireAuthMessage(t *testing.T) {
	env := &appEnv{session: session.NewManager(session.NewMemoryStore(""), nil)}

	err := env.requireAuth()
	if err == nil {
		t.Fatal("expected error without a session")
	}
	if err.Error() != "not logged in, run `foodtrack login` first" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestColorizeRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if got := colorGreen("ok"); got != "ok" {
		t.Errorf("expected plain text under NO_COLOR, got %q", got)
	}
}
