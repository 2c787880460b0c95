// Package cli implements the foodtrack command tree. Commands are thin
// consumers: they build the client and session manager, call the backend and
// render; all state that outlives a run lives in the session token store.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"foodtrack/internal/api"
	"foodtrack/internal/config"
	"foodtrack/internal/session"
)

var (
	jsonOut   bool
	outFormat string
	apiURL    string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "foodtrack",
	Short: "foodtrack tracks calories from classified food photos",
	Long: `foodtrack is the terminal client for the Food Classification API.

Snap a photo of a meal, let the backend classify it and estimate calories,
and keep your daily and weekly intake in view.

Examples:
  foodtrack login
  foodtrack classify lunch.jpg --meal lunch
  foodtrack dashboard
  foodtrack history --days 7`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (default from config or FOODTRACK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output JSON instead of tables")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "output", "o", "", "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
}

// appEnv bundles the wired client and session manager for one command run.
type appEnv struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Manager
}

var expiredNotice sync.Once

// newEnv loads configuration, wires client and session manager and runs the
// launch-time session validation. Protected commands then gate on
// Snapshot().Authenticated().
func newEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	store, err := session.NewFileStore()
	if err != nil {
		return nil, err
	}

	mgr := session.NewManager(store, logger)
	client := api.NewClient(
		api.WithBaseURL(cfg.APIURL),
		api.WithTimeout(cfg.Timeout),
		api.WithTokenSource(mgr),
		api.WithLogger(logger),
		api.WithAuthFailureHandler(func() {
			mgr.HandleAuthFailure()
			expiredNotice.Do(func() {
				fmt.Fprintln(cmd.ErrOrStderr(), colorYellow("Session expired, run `foodtrack login` to sign in again."))
			})
		}),
	)
	mgr.Bind(client)
	mgr.Init(cmd.Context())

	return &appEnv{cfg: cfg, client: client, session: mgr}, nil
}

// requireAuth fails early when no validated session exists.
func (e *appEnv) requireAuth() error {
	if !e.session.Snapshot().Authenticated() {
		return fmt.Errorf("not logged in, run `foodtrack login` first")
	}
	return nil
}

// machineOutput reports whether a structured output format was requested and
// renders v in it.
func machineOutput(cmd *cobra.Command, v interface{}) (bool, error) {
	switch {
	case jsonOut || outFormat == "json":
		return true, printJSON(cmd, v)
	case outFormat == "yaml":
		return true, printYAML(cmd, v)
	}
	return false, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(cmd *cobra.Command, v interface{}) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(v)
}

// printError renders a normalized API error; validation failures get
// per-field lines in addition to the joined message.
func printError(cmd *cobra.Command, err error) {
	apiErr, ok := api.AsError(err)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", colorRed("✗"), err)
		return
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", colorRed("✗"), apiErr.Message)
	if apiErr.IsValidation() {
		for _, fe := range apiErr.Fields {
			fmt.Fprintf(cmd.ErrOrStderr(), "    %s: %s\n", colorBold(fe.Field), fe.Message)
		}
	}
}

// Table helpers

func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func printTableHeader(w *tabwriter.Writer, cols ...string) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, colorBold(c))
	}
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	// Slice on runes so multi-byte names are never cut mid-character.
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// Color helpers. Respects NO_COLOR.

func colorEnabled() bool {
	_, disabled := os.LookupEnv("NO_COLOR")
	return !disabled
}

func colorize(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func colorGreen(s string) string  { return colorize("32", s) }
func colorYellow(s string) string { return colorize("33", s) }
func colorRed(s string) string    { return colorize("31", s) }
func colorCyan(s string) string   { return colorize("36", s) }
func colorBold(s string) string   { return colorize("1", s) }
