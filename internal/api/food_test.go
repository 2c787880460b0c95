package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestFoodService_Classify(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/food/classify" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart body: %v", err)
		}
		if got := r.FormValue("meal_type"); got != "lunch" {
			t.Errorf("expected meal_type lunch, got %q", got)
		}
		if got := r.FormValue("save_to_db"); got != "true" {
			t.Errorf("expected save_to_db true, got %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("expected file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "plate.jpg" {
			t.Errorf("expected filename plate.jpg, got %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "jpeg-bytes" {
			t.Errorf("expected file contents forwarded, got %q", data)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ClassificationResult{
			FoodName:        "Caesar Salad",
			Calories:        "~300-350 kcal",
			CaloriesNumeric: 325,
			Confidence:      91.5,
			MealType:        "lunch",
			SavedToDB:       true,
		})
	})

	result, err := client.Food.Classify(context.Background(), ClassifyRequest{
		Filename: "plate.jpg",
		Image:    strings.NewReader("jpeg-bytes"),
		MealType: MealLunch,
		Save:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FoodName != "Caesar Salad" || result.CaloriesNumeric != 325 {
		t.Errorf("unexpected result: %+v", result)
	}
	if !result.SavedToDB {
		t.Error("expected saved_to_db carried over")
	}
}

func TestFoodService_ClassifyNoSave(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart body: %v", err)
		}
		if got := r.FormValue("save_to_db"); got != "false" {
			t.Errorf("expected save_to_db false, got %q", got)
		}
		w.Write([]byte(`{}`))
	})

	_, err := client.Food.Classify(context.Background(), ClassifyRequest{
		Filename: "plate.png",
		Image:    strings.NewReader("png-bytes"),
		MealType: MealDinner,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFoodService_DailySummary(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/daily-calorie-summary" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("target_date"); got != "2024-06-01" {
			t.Errorf("expected target_date query, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"date": "2024-06-01",
			"username": "alice",
			"meals": {
				"breakfast": [{"food_name": "Oatmeal", "calories": 150, "confidence": 88.0, "time": "08:12"}],
				"snacks": [{"food_name": "Apple", "calories": 95, "confidence": 97.0, "time": "15:30"}]
			},
			"summary": {"breakfast_calories": 150, "snack_calories": 95, "total_calories": 245},
			"user_info": {"daily_calorie_goal": 2000, "activity_level": "moderate"}
		}`))
	})

	summary, err := client.Food.DailySummary(context.Background(), "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Summary.TotalCalories != 245 {
		t.Errorf("expected total 245, got %d", summary.Summary.TotalCalories)
	}
	// Snacks are keyed "snacks", not "snack".
	if len(summary.Meals["snacks"]) != 1 {
		t.Errorf("expected one snack entry, got %+v", summary.Meals)
	}
	if summary.UserInfo.DailyCalorieGoal != 2000 {
		t.Errorf("expected goal 2000, got %d", summary.UserInfo.DailyCalorieGoal)
	}
}

func TestFoodService_DailySummaryDefaultsToToday(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query for today's summary, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{}`))
	})

	if _, err := client.Food.DailySummary(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFoodService_History(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/history" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("days") != "14" || q.Get("limit") != "25" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(History{
			Username:     "alice",
			PeriodDays:   14,
			TotalEntries: 2,
			History: []FoodLogEntry{
				{ID: 41, FoodName: "Pizza", Calories: 600, MealType: "dinner"},
				{ID: 42, FoodName: "Salad", Calories: 200, MealType: "lunch"},
			},
		})
	})

	history, err := client.Food.History(context.Background(), 14, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history.TotalEntries != 2 || len(history.History) != 2 {
		t.Errorf("unexpected history: %+v", history)
	}
	if history.History[1].ID != 42 {
		t.Errorf("expected entries in order, got %+v", history.History)
	}
}

func TestFoodService_WeeklySummary(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/weekly-summary" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("weeks_back"); got != "2" {
			t.Errorf("expected weeks_back 2, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"week_start": "2024-05-13",
			"week_end": "2024-05-19",
			"summary": {"total_week_calories": 9800, "average_daily_calories": 1400.0, "daily_goal": 2000, "goal_achievement_rate": 70.0},
			"daily_breakdown": [{"date": "2024-05-13", "day_name": "Monday", "calories": 1500, "meals_logged": 3}]
		}`))
	})

	summary, err := client.Food.WeeklySummary(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Summary.TotalWeekCalories != 9800 {
		t.Errorf("unexpected summary: %+v", summary.Summary)
	}
	if len(summary.DailyBreakdown) != 1 || summary.DailyBreakdown[0].DayName != "Monday" {
		t.Errorf("unexpected breakdown: %+v", summary.DailyBreakdown)
	}
}

func TestFoodService_DeleteEntry(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/food/food-entry/42" {
			t.Errorf("expected id in path, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DeletedEntry{Message: "Food entry deleted successfully", DeletedID: 42})
	})

	deleted, err := client.Food.DeleteEntry(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted.DeletedID != 42 {
		t.Errorf("expected deleted id 42, got %d", deleted.DeletedID)
	}
}

func TestFoodService_DeleteEntryNotOwned(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Food entry not found"})
	})

	_, err := client.Food.DeleteEntry(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := AsError(err)
	if !ok || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestFoodService_ProfileSummary(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/user-profile-summary" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"user_profile": {"id": 7, "username": "alice", "daily_calorie_goal": 2000},
			"activity_stats": {"total_food_logs": 120, "logs_this_week": 9, "average_daily_calories": 1850.5}
		}`))
	})

	summary, err := client.Food.ProfileSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.UserProfile.Username != "alice" {
		t.Errorf("unexpected profile: %+v", summary.UserProfile)
	}
	if summary.ActivityStats.TotalFoodLogs != 120 {
		t.Errorf("unexpected stats: %+v", summary.ActivityStats)
	}
}

func TestFoodService_ModelStatus(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/model-status" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ModelStatus{ModelLoaded: true, GeminiConfigured: true, Status: "ready"})
	})

	status, err := client.Food.ModelStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.ModelLoaded || status.Status != "ready" {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestFoodService_DatabaseStats(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/admin/database-stats" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"database_stats": {"total_users": 3, "total_food_logs": 250, "database_status": "connected"},
			"current_user_stats": {"user_id": 7, "username": "alice", "food_logs": 120}
		}`))
	})

	stats, err := client.Food.DatabaseStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Database.TotalUsers != 3 || stats.CurrentUser.FoodLogs != 120 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestFoodService_AllLogs(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/food/admin/view-all-food-logs" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("expected limit 20, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AdminLogs{
			TotalLogs:   1,
			RequestedBy: "alice",
			Logs:        []AdminLogEntry{{ID: 1, FoodName: "Pizza", Calories: 600}},
		})
	})

	logs, err := client.Food.AllLogs(context.Background(), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs.TotalLogs != 1 || logs.Logs[0].FoodName != "Pizza" {
		t.Errorf("unexpected logs: %+v", logs)
	}
}

func TestFoodService_Health(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Health{Status: "healthy"})
	})

	health, err := client.Food.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("unexpected health: %+v", health)
	}
}
