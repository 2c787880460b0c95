package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"foodtrack/internal/api"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse logged meals",
	Long: `List logged meals from the last days, newest first.

Examples:
  foodtrack history
  foodtrack history --days 30 --limit 100
  foodtrack history --meal dinner
  foodtrack history delete 42
  foodtrack history prune`,
	RunE: runHistoryList,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged meal by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Interactively delete logged meals",
	Long: `Fetch the history once, then repeatedly prompt for entry ids to delete.
Deleted entries disappear from the displayed list without refetching.`,
	RunE: runHistoryPrune,
}

func init() {
	for _, cmd := range []*cobra.Command{historyCmd, historyPruneCmd} {
		cmd.Flags().Int("days", 7, "number of days to look back")
		cmd.Flags().Int("limit", 50, "maximum number of entries")
	}
	historyCmd.Flags().String("meal", "", "only show this meal type")

	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

// dropEntry removes the entry with the given id from a locally held history
// list, preserving order. Used after a successful server-side delete so the
// view updates without a refetch.
func dropEntry(entries []api.FoodLogEntry, id int) []api.FoodLogEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return kept
}

// filterMeal keeps only entries of the given meal type; an empty filter keeps
// everything.
func filterMeal(entries []api.FoodLogEntry, meal string) []api.FoodLogEntry {
	if meal == "" {
		return entries
	}
	kept := make([]api.FoodLogEntry, 0, len(entries))
	for _, e := range entries {
		if e.MealType == meal {
			kept = append(kept, e)
		}
	}
	return kept
}

func renderHistory(cmd *cobra.Command, entries []api.FoodLogEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No meals logged")
		return nil
	}

	w := newTable(cmd)
	printTableHeader(w, "ID", "DATE", "TIME", "MEAL", "FOOD", "CALORIES", "CONFIDENCE")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Date,
			e.Time,
			colorMeal(e.MealType),
			truncate(e.FoodName, 32),
			formatCalories(e.Calories),
			colorConfidence(normalizeConfidence(e.Confidence)),
		)
	}
	return w.Flush()
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	days, _ := cmd.Flags().GetInt("days")
	limit, _ := cmd.Flags().GetInt("limit")
	meal, _ := cmd.Flags().GetString("meal")
	if meal != "" && !api.ValidMealType(meal) {
		return fmt.Errorf("invalid meal type %q", meal)
	}

	history, err := env.client.Food.History(cmd.Context(), days, limit)
	if err != nil {
		printError(cmd, err)
		return err
	}

	entries := filterMeal(history.History, meal)

	if done, err := machineOutput(cmd, entries); done {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s - last %d days, %d entries\n\n",
		colorBold("History"), history.PeriodDays, len(entries))
	return renderHistory(cmd, entries)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid entry id %q", args[0])
	}

	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	deleted, err := env.client.Food.DeleteEntry(cmd.Context(), id)
	if err != nil {
		printError(cmd, err)
		return err
	}

	if done, err := machineOutput(cmd, deleted); done {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted entry %d\n", colorGreen("✓"), deleted.DeletedID)
	return nil
}

// runHistoryPrune fetches the history once and then deletes entries the user
// names, dropping each from the local list as the delete succeeds. The list
// is never refetched inside the loop.
func runHistoryPrune(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	days, _ := cmd.Flags().GetInt("days")
	limit, _ := cmd.Flags().GetInt("limit")

	history, err := env.client.Food.History(cmd.Context(), days, limit)
	if err != nil {
		printError(cmd, err)
		return err
	}
	entries := history.History

	for {
		if err := renderHistory(cmd, entries); err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		input, err := promptLine(cmd, "Entry id to delete (empty to finish)")
		if err != nil || input == "" {
			return nil
		}
		id, err := strconv.Atoi(input)
		if err != nil || id <= 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s invalid id %q\n", colorYellow("⚠"), input)
			continue
		}

		if _, err := env.client.Food.DeleteEntry(cmd.Context(), id); err != nil {
			printError(cmd, err)
			continue
		}
		entries = dropEntry(entries, id)
		fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted entry %d\n\n", colorGreen("✓"), id)
	}
}
