package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"foodtrack/internal/session"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long: `Update profile fields. Only the flags you pass change; everything else
keeps its current value. The username cannot be changed.

Examples:
  foodtrack profile update --weight 79.5
  foodtrack profile update --activity active --goal 2500`,
	RunE: runProfileUpdate,
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change your password",
	RunE:  runChangePassword,
}

var deleteAccountCmd = &cobra.Command{
	Use:   "delete-account",
	Short: "Deactivate your account",
	Long: `Deactivate your account. Your logged meals stay on the server but the
account can no longer sign in.`,
	RunE: runDeleteAccount,
}

func init() {
	profileUpdateCmd.Flags().String("email", "", "email address")
	profileUpdateCmd.Flags().String("name", "", "full name")
	profileUpdateCmd.Flags().Int("age", 0, "age in years")
	profileUpdateCmd.Flags().Float64("weight", 0, "weight in kg")
	profileUpdateCmd.Flags().Float64("height", 0, "height in cm")
	profileUpdateCmd.Flags().String("activity", "", "activity level: sedentary, light, moderate or active")
	profileUpdateCmd.Flags().Int("goal", 0, "daily calorie goal")

	deleteAccountCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(changePasswordCmd)
	profileCmd.AddCommand(deleteAccountCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	summary, err := env.client.Food.ProfileSummary(cmd.Context())
	if err != nil {
		printError(cmd, err)
		return err
	}

	if done, err := machineOutput(cmd, summary); done {
		return err
	}

	out := cmd.OutOrStdout()
	p := summary.UserProfile

	fmt.Fprintf(out, "%s\n", colorBold(p.Username))
	if p.FullName != nil && *p.FullName != "" {
		fmt.Fprintf(out, "  Name:       %s\n", *p.FullName)
	}
	fmt.Fprintf(out, "  Email:      %s\n", p.Email)
	if p.Age != nil {
		fmt.Fprintf(out, "  Age:        %d\n", *p.Age)
	}
	if p.Weight != nil {
		fmt.Fprintf(out, "  Weight:     %.1f kg\n", *p.Weight)
	}
	if p.Height != nil {
		fmt.Fprintf(out, "  Height:     %.0f cm\n", *p.Height)
	}
	if p.Weight != nil && p.Height != nil {
		if v := bmi(*p.Weight, *p.Height); v > 0 {
			fmt.Fprintf(out, "  BMI:        %.1f (%s)\n", v, bmiCategory(v))
		}
	}
	fmt.Fprintf(out, "  Activity:   %s\n", p.ActivityLevel)
	fmt.Fprintf(out, "  Goal:       %s/day\n", formatCalories(p.DailyCalorieGoal))
	fmt.Fprintf(out, "  Member:     since %s\n", p.MemberSince)

	stats := summary.ActivityStats
	fmt.Fprintf(out, "\n%s\n", colorBold("Stats"))
	fmt.Fprintf(out, "  Meals logged:   %d total, %d this week\n", stats.TotalFoodLogs, stats.LogsThisWeek)
	fmt.Fprintf(out, "  7-day average:  %s/day\n", formatCalories(int(stats.AverageDailyCalories)))
	fmt.Fprintf(out, "  Goal hit:       %.0f%%\n", stats.GoalAchievementRate)
	return nil
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	var update session.ProfileUpdate
	changed := false

	if cmd.Flags().Changed("email") {
		v, _ := cmd.Flags().GetString("email")
		update.Email = &v
		changed = true
	}
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		update.FullName = &v
		changed = true
	}
	if cmd.Flags().Changed("age") {
		v, _ := cmd.Flags().GetInt("age")
		update.Age = &v
		changed = true
	}
	if cmd.Flags().Changed("weight") {
		v, _ := cmd.Flags().GetFloat64("weight")
		update.Weight = &v
		changed = true
	}
	if cmd.Flags().Changed("height") {
		v, _ := cmd.Flags().GetFloat64("height")
		update.Height = &v
		changed = true
	}
	if cmd.Flags().Changed("activity") {
		v, _ := cmd.Flags().GetString("activity")
		update.ActivityLevel = &v
		changed = true
	}
	if cmd.Flags().Changed("goal") {
		v, _ := cmd.Flags().GetInt("goal")
		update.DailyCalorieGoal = &v
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	user, err := env.session.UpdateProfile(cmd.Context(), update)
	if err != nil {
		printError(cmd, err)
		return err
	}

	if done, err := machineOutput(cmd, user); done {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Profile updated\n", colorGreen("✓"))
	return nil
}

func runChangePassword(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	current, err := promptPassword(cmd, "Current password")
	if err != nil {
		return err
	}
	next, err := promptPassword(cmd, "New password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword(cmd, "Repeat new password")
	if err != nil {
		return err
	}
	if next != confirm {
		return fmt.Errorf("new passwords do not match")
	}

	if err := env.session.ChangePassword(cmd.Context(), current, next); err != nil {
		printError(cmd, err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Password updated\n", colorGreen("✓"))
	return nil
}

func runDeleteAccount(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		answer, err := promptLine(cmd, fmt.Sprintf("%s Deactivate account %s? [y/N]",
			colorYellow("⚠"), env.session.Snapshot().User.Username))
		if err != nil {
			return err
		}
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	if err := env.session.DeleteAccount(cmd.Context()); err != nil {
		printError(cmd, err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Account deactivated\n", colorGreen("✓"))
	return nil
}
