package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend and model availability",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Bool("predict", false, "also run the prediction pipeline check")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	health, err := env.client.Food.Health(cmd.Context())
	if err != nil {
		printError(cmd, err)
		return fmt.Errorf("backend unreachable at %s", env.client.BaseURL())
	}

	status, err := env.client.Food.ModelStatus(cmd.Context())
	if err != nil {
		printError(cmd, err)
		return err
	}

	if jsonOut || outFormat != "" {
		payload := map[string]interface{}{
			"health": health,
			"model":  status,
		}
		if done, err := machineOutput(cmd, payload); done {
			return err
		}
	}

	fmt.Fprintf(out, "Backend:  %s (%s)\n", env.client.BaseURL(), health.Status)
	fmt.Fprintf(out, "Model:    %s\n", onOff(status.ModelLoaded))
	fmt.Fprintf(out, "Gemini:   %s\n", onOff(status.GeminiConfigured))
	fmt.Fprintf(out, "Status:   %s\n", status.Status)

	if predict, _ := cmd.Flags().GetBool("predict"); predict {
		check, err := env.client.Food.TestPrediction(cmd.Context())
		if err != nil {
			printError(cmd, err)
			return err
		}
		fmt.Fprintf(out, "Pipeline: %s\n", check.Message)
	}
	return nil
}

func onOff(ready bool) string {
	if ready {
		return colorGreen("ready")
	}
	return colorRed("unavailable")
}
