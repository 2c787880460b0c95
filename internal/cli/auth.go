package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"foodtrack/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and store the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account",
	Long: `Create a new account. Registration does not log you in; run
"foodtrack login" afterwards.

Examples:
  foodtrack register alice --email alice@example.com
  foodtrack register bob --email bob@example.com --age 34 --weight 82 --height 180 \
    --activity moderate --goal 2200`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the session token",
	RunE:  runRefresh,
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")

	registerCmd.Flags().String("email", "", "email address (required)")
	registerCmd.Flags().String("password", "", "password (prompted when omitted)")
	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().Int("age", 0, "age in years")
	registerCmd.Flags().Float64("weight", 0, "weight in kg")
	registerCmd.Flags().Float64("height", 0, "height in cm")
	registerCmd.Flags().String("activity", "", "activity level: sedentary, light, moderate or active")
	registerCmd.Flags().Int("goal", 0, "daily calorie goal")
	_ = registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(refreshCmd)
}

// promptPassword reads a password without echo, falling back to a plain line
// read when stdin is not a terminal (tests, pipes).
func promptPassword(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(data), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func promptLine(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}

	var username string
	if len(args) == 1 {
		username = args[0]
	} else {
		username, err = promptLine(cmd, "Username")
		if err != nil {
			return err
		}
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password, err = promptPassword(cmd, "Password")
		if err != nil {
			return err
		}
	}

	if err := env.session.Login(cmd.Context(), username, password); err != nil {
		printError(cmd, err)
		return err
	}

	snap := env.session.Snapshot()
	if done, err := machineOutput(cmd, snap.User); done {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Logged in as %s\n", colorGreen("✓"), colorBold(snap.User.Username))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	env.session.Logout()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Logged out\n", colorGreen("✓"))
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	user := env.session.Snapshot().User
	if done, err := machineOutput(cmd, user); done {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Username:  %s\n", user.Username)
	fmt.Fprintf(cmd.OutOrStdout(), "Email:     %s\n", user.Email)
	if user.FullName != nil && *user.FullName != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Name:      %s\n", *user.FullName)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Goal:      %s/day\n", formatCalories(user.DailyCalorieGoal))
	return nil
}

// validateRegistration runs the client-side field checks before any network
// call and flattens validator output into per-field messages.
func validateRegistration(req api.RegisterRequest) []api.FieldError {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(req)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []api.FieldError{{Field: "request", Message: err.Error()}}
	}

	fields := make([]api.FieldError, 0, len(invalid))
	for _, fe := range invalid {
		fields = append(fields, api.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: registrationMessage(fe),
		})
	}
	return fields
}

func registrationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func runRegister(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		var err error
		password, err = promptPassword(cmd, "Password")
		if err != nil {
			return err
		}
	}

	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	activity, _ := cmd.Flags().GetString("activity")

	req := api.RegisterRequest{
		Username:      args[0],
		Email:         email,
		Password:      password,
		FullName:      name,
		ActivityLevel: activity,
	}
	if age, _ := cmd.Flags().GetInt("age"); age != 0 {
		req.Age = &age
	}
	if weight, _ := cmd.Flags().GetFloat64("weight"); weight != 0 {
		req.Weight = &weight
	}
	if height, _ := cmd.Flags().GetFloat64("height"); height != 0 {
		req.Height = &height
	}
	if goal, _ := cmd.Flags().GetInt("goal"); goal != 0 {
		req.DailyCalorieGoal = &goal
	}

	// Validation runs before the client is even wired, so a bad request never
	// touches the network.
	if fields := validateRegistration(req); len(fields) > 0 {
		for _, fe := range fields {
			fmt.Fprintf(cmd.ErrOrStderr(), "    %s: %s\n", colorBold(fe.Field), fe.Message)
		}
		return fmt.Errorf("registration fields are invalid")
	}

	env, err := newEnv(cmd)
	if err != nil {
		return err
	}

	user, err := env.session.Register(cmd.Context(), req)
	if err != nil {
		printError(cmd, err)
		return err
	}

	if done, err := machineOutput(cmd, user); done {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Account %s created, run `foodtrack login` to sign in\n",
		colorGreen("✓"), colorBold(user.Username))
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	if err := env.session.RefreshToken(cmd.Context()); err != nil {
		printError(cmd, err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Token refreshed\n", colorGreen("✓"))
	return nil
}
