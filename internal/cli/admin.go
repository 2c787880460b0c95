package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Development and inspection endpoints",
	Long: `Read-only inspection endpoints. Access control is whatever the backend
enforces; these commands add none of their own.

Examples:
  foodtrack admin stats
  foodtrack admin logs --limit 50
  foodtrack admin users`,
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runAdminStats,
}

var adminLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List recent food logs across all users",
	RunE:  runAdminLogs,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE:  runAdminUsers,
}

func init() {
	adminLogsCmd.Flags().Int("limit", 20, "maximum number of logs")
	adminUsersCmd.Flags().Int("skip", 0, "number of users to skip")
	adminUsersCmd.Flags().Int("limit", 10, "maximum number of users")

	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminLogsCmd)
	adminCmd.AddCommand(adminUsersCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminStats(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	stats, err := env.client.Food.DatabaseStats(cmd.Context())
	if err != nil {
		printError(cmd, err)
		return err
	}

	if done, err := machineOutput(cmd, stats); done {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", colorBold("Database"))
	fmt.Fprintf(out, "  Users:      %d\n", stats.Database.TotalUsers)
	fmt.Fprintf(out, "  Food logs:  %d\n", stats.Database.TotalFoodLogs)
	fmt.Fprintf(out, "  Summaries:  %d\n", stats.Database.TotalDailySummaries)
	fmt.Fprintf(out, "  Status:     %s\n", stats.Database.DatabaseStatus)

	fmt.Fprintf(out, "\n%s\n", colorBold(stats.CurrentUser.Username))
	fmt.Fprintf(out, "  Food logs:  %d\n", stats.CurrentUser.FoodLogs)
	fmt.Fprintf(out, "  Summaries:  %d\n", stats.CurrentUser.DailySummaries)
	fmt.Fprintf(out, "  Member:     since %s\n", stats.CurrentUser.MemberSince)
	return nil
}

func runAdminLogs(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	logs, err := env.client.Food.AllLogs(cmd.Context(), limit)
	if err != nil {
		printError(cmd, err)
		return err
	}

	if done, err := machineOutput(cmd, logs); done {
		return err
	}

	if logs.TotalLogs == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No logs found")
		return nil
	}

	w := newTable(cmd)
	printTableHeader(w, "ID", "USER", "DATE", "MEAL", "FOOD", "CALORIES")
	for _, l := range logs.Logs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			l.ID, l.UserID, l.Date, colorMeal(l.MealType),
			truncate(l.FoodName, 32), formatCalories(l.Calories))
	}
	return w.Flush()
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	users, err := env.client.Auth.ListUsers(cmd.Context(), skip, limit)
	if err != nil {
		printError(cmd, err)
		return err
	}

	if done, err := machineOutput(cmd, users); done {
		return err
	}

	w := newTable(cmd)
	printTableHeader(w, "ID", "USERNAME", "EMAIL", "ACTIVE", "GOAL")
	for _, u := range users {
		active := colorGreen("yes")
		if !u.IsActive {
			active = colorRed("no")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			u.ID, u.Username, u.Email, active, formatCalories(u.DailyCalorieGoal))
	}
	return w.Flush()
}
