package cli

import (
	"fmt"
	"strings"
	"time"
)

// Pure presentation helpers. No I/O here.

// goalProgress returns current/goal as a percentage clamped to [0, 100].
// A zero or missing goal yields 0.
func goalProgress(current, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	pct := current / goal * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// progressBar renders a ten-cell bar for a 0-100 percentage.
func progressBar(pct float64) string {
	filled := int(pct / 10)
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "]"
}

// Confidence tiers. Boundary values belong to the higher tier.
const (
	tierGood   = "good"
	tierMedium = "medium"
	tierLow    = "low"
)

// normalizeConfidence maps model confidences onto 0-100. Older backends
// report 0-1 fractions; anything at or below 1 is treated as one.
func normalizeConfidence(v float64) float64 {
	if v <= 1 {
		return v * 100
	}
	return v
}

// confidenceTier buckets a 0-100 confidence value.
func confidenceTier(confidence float64) string {
	switch {
	case confidence >= 80:
		return tierGood
	case confidence >= 60:
		return tierMedium
	default:
		return tierLow
	}
}

// colorConfidence renders a confidence with its tier color.
func colorConfidence(confidence float64) string {
	s := fmt.Sprintf("%.1f%%", confidence)
	switch confidenceTier(confidence) {
	case tierGood:
		return colorGreen(s)
	case tierMedium:
		return colorYellow(s)
	default:
		return colorRed(s)
	}
}

// colorMeal renders a meal type with a fixed per-meal color.
func colorMeal(mealType string) string {
	switch mealType {
	case "breakfast":
		return colorYellow(mealType)
	case "lunch":
		return colorGreen(mealType)
	case "dinner":
		return colorCyan(mealType)
	case "snack", "snacks":
		return colorRed(mealType)
	default:
		return mealType
	}
}

// formatCalories renders a calorie count for display.
func formatCalories(calories int) string {
	return fmt.Sprintf("%d kcal", calories)
}

// bmi computes body mass index from weight in kg and height in cm. Returns
// 0 when either input is unusable.
func bmi(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	h := heightCm / 100
	return weightKg / (h * h)
}

// bmiCategory buckets a BMI value into the standard WHO classes.
func bmiCategory(v float64) string {
	switch {
	case v < 18.5:
		return "Underweight"
	case v < 25:
		return "Normal"
	case v < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// formatDate renders a backend YYYY-MM-DD date for humans; unparseable input
// passes through untouched.
func formatDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("Mon, Jan 2 2006")
}
