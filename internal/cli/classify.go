package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"foodtrack/internal/api"
	"foodtrack/internal/device"
)

// maxImageSize is the largest upload the client accepts.
const maxImageSize = 10 << 20 // 10MB

// Pre-upload validation failures. The wording is part of the contract: these
// exact messages surface to the user before any network call happens.
var (
	errNotAnImage   = errors.New("Please select an image file.")
	errImageTooBig  = errors.New("Image size should be less than 10MB.")
	errImageMissing = errors.New("image file not found")
)

var classifyCmd = &cobra.Command{
	Use:   "classify [image]",
	Short: "Classify a food photo and log its calories",
	Long: `Submit a food photo for classification. The backend identifies the dish,
estimates calories and, unless --no-save is given, logs it as a meal.

Examples:
  foodtrack classify lunch.jpg --meal lunch
  foodtrack classify dinner.png --meal dinner --no-save
  foodtrack classify --camera --meal breakfast
  foodtrack classify snack.jpg --meal snack --speak`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("meal", "", "meal type: breakfast, lunch, dinner or snack (required)")
	classifyCmd.Flags().Bool("no-save", false, "classify without logging the meal")
	classifyCmd.Flags().Bool("camera", false, "capture the photo from the camera instead of a file")
	classifyCmd.Flags().Bool("speak", false, "announce the result out loud")
	_ = classifyCmd.MarkFlagRequired("meal")

	rootCmd.AddCommand(classifyCmd)
}

// validateImage enforces the client-side upload rules: the file must exist,
// must be an image, and must be under 10MB. Runs before any network I/O.
func validateImage(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", errImageMissing, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if contentType := http.DetectContentType(head[:n]); !isImageType(contentType) {
		return errNotAnImage
	}

	if info.Size() > maxImageSize {
		return errImageTooBig
	}
	return nil
}

func isImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp":
		return true
	}
	return false
}

func runClassify(cmd *cobra.Command, args []string) error {
	meal, _ := cmd.Flags().GetString("meal")
	if !api.ValidMealType(meal) {
		return fmt.Errorf("invalid meal type %q: must be breakfast, lunch, dinner or snack", meal)
	}

	useCamera, _ := cmd.Flags().GetBool("camera")
	if !useCamera && len(args) == 0 {
		return fmt.Errorf("an image file is required unless --camera is given")
	}

	env, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := env.requireAuth(); err != nil {
		return err
	}

	if useCamera {
		return classifyFromCamera(cmd, env, device.NewExecCamera(env.cfg.CaptureCommand), meal)
	}
	return classifyFile(cmd, env, args[0], meal)
}

// classifyFromCamera captures one frame and classifies it. Once Start has
// succeeded the camera is released on every exit path: success, capture
// error, or a failure further down.
func classifyFromCamera(cmd *cobra.Command, env *appEnv, cam device.Camera, meal string) error {
	if err := cam.Start(); err != nil {
		return err
	}
	defer cam.Stop()

	fmt.Fprintln(cmd.OutOrStdout(), "Capturing...")
	imagePath, err := cam.Capture(cmd.Context())
	if err != nil {
		return err
	}
	return classifyFile(cmd, env, imagePath, meal)
}

func classifyFile(cmd *cobra.Command, env *appEnv, imagePath, meal string) error {
	if err := validateImage(imagePath); err != nil {
		return err
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", imagePath, err)
	}

	noSave, _ := cmd.Flags().GetBool("no-save")

	fmt.Fprintf(cmd.OutOrStdout(), "Classifying %s...\n", filepath.Base(imagePath))
	result, err := env.client.Food.Classify(cmd.Context(), api.ClassifyRequest{
		Filename: filepath.Base(imagePath),
		Image:    bytes.NewReader(data),
		MealType: api.MealType(meal),
		Save:     !noSave,
	})
	if err != nil {
		printError(cmd, err)
		return err
	}

	if done, err := machineOutput(cmd, result); done {
		return err
	}

	confidence := normalizeConfidence(result.Confidence)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s\n\n", colorGreen("✓"), colorBold(result.FoodName))
	fmt.Fprintf(cmd.OutOrStdout(), "  Meal:       %s\n", colorMeal(result.MealType))
	fmt.Fprintf(cmd.OutOrStdout(), "  Calories:   %s (%s)\n", formatCalories(result.CaloriesNumeric), result.Calories)
	fmt.Fprintf(cmd.OutOrStdout(), "  Confidence: %s\n", colorConfidence(confidence))
	if result.Ingredients != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  About:      %s\n", result.Ingredients)
	}
	if result.SavedToDB {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s Logged as entry %d\n", colorGreen("✓"), derefInt(result.FoodLogID))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s Not saved\n", colorYellow("ℹ"))
	}

	if speak, _ := cmd.Flags().GetBool("speak"); speak {
		spk := device.NewExecSpeaker(env.cfg.SpeakCommand)
		text := fmt.Sprintf("%s, about %d calories", result.FoodName, result.CaloriesNumeric)
		if err := spk.Speak(cmd.Context(), text); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", colorYellow("⚠"), err)
		}
	}

	return nil
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
