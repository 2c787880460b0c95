package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
)

// FoodService covers the /food endpoints.
type FoodService struct {
	client *Client
}

// ModelStatus reports whether the backend's classification model is ready.
func (s *FoodService) ModelStatus(ctx context.Context) (*ModelStatus, error) {
	var status ModelStatus
	if err := s.client.get(ctx, "/food/model-status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// TestPrediction checks the prediction pipeline end to end.
func (s *FoodService) TestPrediction(ctx context.Context) (*PredictionCheck, error) {
	var check PredictionCheck
	if err := s.client.get(ctx, "/food/test-prediction", nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// ClassifyRequest describes one image submission.
type ClassifyRequest struct {
	// Filename is the original file name; the backend uses its extension.
	Filename string
	// Image is the raw image bytes.
	Image io.Reader
	// MealType must be one of breakfast, lunch, dinner, snack.
	MealType MealType
	// Save persists the result as a food log entry when true.
	Save bool
}

// Classify submits a food image for classification.
func (s *FoodService) Classify(ctx context.Context, req ClassifyRequest) (*ClassificationResult, error) {
	fields := map[string]string{
		"meal_type":  string(req.MealType),
		"save_to_db": strconv.FormatBool(req.Save),
	}

	var result ClassificationResult
	err := s.client.postMultipart(ctx, "/food/classify", "file", req.Filename, req.Image, fields, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DailySummary returns the calorie summary for targetDate (YYYY-MM-DD), or
// for today when targetDate is empty.
func (s *FoodService) DailySummary(ctx context.Context, targetDate string) (*DailySummary, error) {
	query := url.Values{}
	if targetDate != "" {
		query.Set("target_date", targetDate)
	}

	var summary DailySummary
	if err := s.client.get(ctx, "/food/daily-calorie-summary", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// History returns up to limit food log entries from the last days days.
func (s *FoodService) History(ctx context.Context, days, limit int) (*History, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var history History
	if err := s.client.get(ctx, "/food/history", query, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// WeeklySummary returns the summary for the week weeksBack weeks before the
// current one (0 = current week).
func (s *FoodService) WeeklySummary(ctx context.Context, weeksBack int) (*WeeklySummary, error) {
	query := url.Values{}
	if weeksBack > 0 {
		query.Set("weeks_back", strconv.Itoa(weeksBack))
	}

	var summary WeeklySummary
	if err := s.client.get(ctx, "/food/weekly-summary", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DeleteEntry deletes a food log entry by id. Only the owner may delete.
func (s *FoodService) DeleteEntry(ctx context.Context, id int) (*DeletedEntry, error) {
	var deleted DeletedEntry
	if err := s.client.delete(ctx, fmt.Sprintf("/food/food-entry/%d", id), &deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}

// ProfileSummary returns the aggregated profile and activity statistics.
func (s *FoodService) ProfileSummary(ctx context.Context) (*ProfileSummary, error) {
	var summary ProfileSummary
	if err := s.client.get(ctx, "/food/user-profile-summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DatabaseStats returns database-wide and per-user counters.
func (s *FoodService) DatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	var stats DatabaseStats
	if err := s.client.get(ctx, "/food/admin/database-stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AllLogs returns the most recent food logs across all users.
func (s *FoodService) AllLogs(ctx context.Context, limit int) (*AdminLogs, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var logs AdminLogs
	if err := s.client.get(ctx, "/food/admin/view-all-food-logs", query, &logs); err != nil {
		return nil, err
	}
	return &logs, nil
}

// Health checks the backend's liveness endpoint. Lives outside /food but is
// grouped here with the other status probes.
func (s *FoodService) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := s.client.get(ctx, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
