package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"foodtrack/internal/api"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's intake, the weekly trend and your stats",
	Long: `Render the daily calorie summary, the weekly trend and the profile
statistics in one view. The three fetches run independently; if one fails the
other panels still render.

Examples:
  foodtrack dashboard
  foodtrack dashboard --date 2026-08-01 --weeks-back 1`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().String("date", "", "daily summary date (YYYY-MM-DD, default today)")
	dashboardCmd.Flags().Int("weeks-back", 0, "weekly summary offset (0 = current week)")

	rootCmd.AddCommand(dashboardCmd)
}

// dashboardData collects the three independent fetches. Each slot is filled
// by its own goroutine; a nil value with an entry in Errors means that panel
// failed on its own. Errors is part of the encoded payload so machine output
// carries the failures too.
type dashboardData struct {
	Daily   *api.DailySummary   `json:"daily,omitempty"`
	Weekly  *api.WeeklySummary  `json:"weekly,omitempty"`
	Profile *api.ProfileSummary `json:"profile,omitempty"`
	Errors  map[string]string   `json:"errors,omitempty"`

	dailyErr   error
	weeklyErr  error
	profileErr error
}

func (d *dashboardData) allFailed() bool {
	return d.dailyErr != nil && d.weeklyErr != nil && d.profileErr != nil
}

// fetchDashboard issues the three panel fetches concurrently and gathers their
// results. No fetch depends on another.
func fetchDashboard(ctx context.Context, client *api.Client, date string, weeksBack int) dashboardData {
	var data dashboardData
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		data.Daily, data.dailyErr = client.Food.DailySummary(ctx, date)
	}()
	go func() {
		defer wg.Done()
		data.Weekly, data.weeklyErr = client.Food.WeeklySummary(ctx, weeksBack)
	}()
	go func() {
		defer wg.Done()
		data.Profile, data.profileErr = client.Food.ProfileSummary(ctx)
	}()
	wg.Wait()

	errs := map[string]string{}
	for name, err := range map[string]error{
		"daily":   data.dailyErr,
		"weekly":  data.weeklyErr,
		"profile": data.profileErr,
	} {
		if err != nil {
			errs[name] = err.Error()
		}
	}
	if len(errs) > 0 {
		data.Errors = errs
	}
	return data
}

func runDashboard(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	weeksBack, _ := cmd.Flags().GetInt("weeks-back")

	data := fetchDashboard(cmd.Context(), env.client, date, weeksBack)

	if done, err := machineOutput(cmd, data); done {
		if err != nil {
			return err
		}
		if data.allFailed() {
			return fmt.Errorf("dashboard unavailable")
		}
		return nil
	}

	out := cmd.OutOrStdout()

	if data.dailyErr != nil {
		printError(cmd, data.dailyErr)
	} else {
		renderDaily(cmd, data.Daily)
	}

	if data.weeklyErr != nil {
		printError(cmd, data.weeklyErr)
	} else {
		renderWeekly(cmd, data.Weekly)
	}

	if data.profileErr != nil {
		printError(cmd, data.profileErr)
	} else {
		stats := data.Profile.ActivityStats
		fmt.Fprintf(out, "\n%s\n", colorBold("Activity"))
		fmt.Fprintf(out, "  Meals logged:     %d total, %d this week\n", stats.TotalFoodLogs, stats.LogsThisWeek)
		fmt.Fprintf(out, "  7-day average:    %s/day\n", formatCalories(int(stats.AverageDailyCalories)))
	}

	if data.allFailed() {
		return fmt.Errorf("dashboard unavailable")
	}
	return nil
}

func renderDaily(cmd *cobra.Command, daily *api.DailySummary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s - %s\n", colorBold("Today"), formatDate(daily.Date))

	goal := daily.UserInfo.DailyCalorieGoal
	total := daily.Summary.TotalCalories
	pct := goalProgress(float64(total), float64(goal))
	fmt.Fprintf(out, "  %s %s of %s (%.0f%%)\n",
		progressBar(pct), formatCalories(total), formatCalories(goal), pct)

	for _, meal := range []string{"breakfast", "lunch", "dinner", "snacks"} {
		items := daily.Meals[meal]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n  %s\n", colorMeal(meal))
		for _, item := range items {
			fmt.Fprintf(out, "    %s  %s  %s  (%s)\n",
				item.Time, item.FoodName, formatCalories(item.Calories),
				colorConfidence(normalizeConfidence(item.Confidence)))
		}
	}
	if daily.Summary.TotalCaloriesLLM != "" {
		fmt.Fprintf(out, "\n  Estimate: %s\n", daily.Summary.TotalCaloriesLLM)
	}
}

func renderWeekly(cmd *cobra.Command, weekly *api.WeeklySummary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\n%s - %s to %s\n", colorBold("Week"),
		formatDate(weekly.WeekStart), formatDate(weekly.WeekEnd))
	fmt.Fprintf(out, "  Total: %s, average %s/day, goal hit %.0f%%\n",
		formatCalories(weekly.Summary.TotalWeekCalories),
		formatCalories(int(weekly.Summary.AverageDailyCalories)),
		weekly.Summary.GoalAchievementRate)

	for _, day := range weekly.DailyBreakdown {
		pct := goalProgress(float64(day.Calories), float64(weekly.Summary.DailyGoal))
		fmt.Fprintf(out, "  %-9s %s %s (%d meals)\n",
			day.DayName, progressBar(pct), formatCalories(day.Calories), day.MealsLogged)
	}
}
