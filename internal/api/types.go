package api

// MealType is a classification tag on a food log entry.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ValidMealType reports whether s is one of the meal types the backend accepts.
func ValidMealType(s string) bool {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// ActivityLevel buckets a user's typical physical activity.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

// User is the backend's user record as returned by /auth/me.
type User struct {
	ID               int      `json:"id"`
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	FullName         *string  `json:"full_name"`
	Age              *int     `json:"age"`
	Weight           *float64 `json:"weight"` // kg
	Height           *float64 `json:"height"` // cm
	ActivityLevel    string   `json:"activity_level"`
	DailyCalorieGoal int      `json:"daily_calorie_goal"`
	IsActive         bool     `json:"is_active"`
	CreatedAt        string   `json:"created_at"`
}

// Token is the response of /auth/login and /auth/refresh-token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
}

// RegisterRequest is the body of POST /auth/register.
//
// The validate tags are enforced client-side before any network call so a
// typo'd registration fails fast instead of round-tripping to the backend.
type RegisterRequest struct {
	Username         string   `json:"username" validate:"required,min=3,max=50"`
	Email            string   `json:"email" validate:"required,email"`
	Password         string   `json:"password" validate:"required,min=8"`
	FullName         string   `json:"full_name,omitempty" validate:"max=100"`
	Age              *int     `json:"age,omitempty" validate:"omitempty,min=1,max=120"`
	Weight           *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Height           *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	ActivityLevel    string   `json:"activity_level,omitempty" validate:"omitempty,oneof=sedentary light moderate active"`
	DailyCalorieGoal *int     `json:"daily_calorie_goal,omitempty" validate:"omitempty,min=500,max=10000"`
}

// UserUpdate is the body of PUT /auth/me. The backend reuses its registration
// shape here: username must match the current user's and an empty password
// means "leave it unchanged".
type UserUpdate struct {
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	FullName         *string  `json:"full_name,omitempty"`
	Age              *int     `json:"age,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	ActivityLevel    string   `json:"activity_level,omitempty"`
	DailyCalorieGoal *int     `json:"daily_calorie_goal,omitempty"`
}

// PasswordChange is the body of PUT /auth/change-password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Ack is a generic {"message": ...} acknowledgement.
type Ack struct {
	Message string `json:"message"`
}

// ModelStatus is the response of GET /food/model-status.
type ModelStatus struct {
	ModelLoaded      bool   `json:"model_loaded"`
	GeminiConfigured bool   `json:"gemini_configured"`
	Status           string `json:"status"`
}

// PredictionCheck is the response of GET /food/test-prediction.
type PredictionCheck struct {
	ModelReady  bool   `json:"model_ready"`
	GeminiReady bool   `json:"gemini_ready"`
	Message     string `json:"message"`
}

// Health is the response of GET /health.
type Health struct {
	Status string `json:"status"`
}

// ClassificationResult is the response of POST /food/classify.
// Calories is the model's free-form estimate ("~300-350 kcal");
// CaloriesNumeric is the backend's parsed midpoint.
type ClassificationResult struct {
	ID              string  `json:"id"`
	FoodLogID       *int    `json:"food_log_id"`
	FoodName        string  `json:"food_name"`
	Calories        string  `json:"calories"`
	CaloriesNumeric int     `json:"calories_numeric"`
	Confidence      float64 `json:"confidence"`
	MealType        string  `json:"meal_type"`
	Ingredients     string  `json:"ingredients"`
	Timestamp       string  `json:"timestamp"`
	SavedToDB       bool    `json:"saved_to_db"`
	UserID          int     `json:"user_id"`
}

// MealItem is one logged food inside a daily summary.
type MealItem struct {
	FoodName   string  `json:"food_name"`
	Calories   int     `json:"calories"`
	Confidence float64 `json:"confidence"`
	Time       string  `json:"time"`
}

// DailyTotals holds the per-meal calorie breakdown for one day.
type DailyTotals struct {
	BreakfastCalories int    `json:"breakfast_calories"`
	LunchCalories     int    `json:"lunch_calories"`
	DinnerCalories    int    `json:"dinner_calories"`
	SnackCalories     int    `json:"snack_calories"`
	TotalCalories     int    `json:"total_calories"`
	TotalCaloriesLLM  string `json:"total_calories_llm"`
}

// DailySummary is the response of GET /food/daily-calorie-summary.
// The "snack" meal type is keyed as "snacks" in the meals map.
type DailySummary struct {
	Date     string                `json:"date"`
	UserID   int                   `json:"user_id"`
	Username string                `json:"username"`
	Meals    map[string][]MealItem `json:"meals"`
	Summary  DailyTotals           `json:"summary"`
	UserInfo struct {
		DailyCalorieGoal int    `json:"daily_calorie_goal"`
		ActivityLevel    string `json:"activity_level"`
	} `json:"user_info"`
}

// FoodLogEntry is one row of the food history.
type FoodLogEntry struct {
	ID          int     `json:"id"`
	FoodName    string  `json:"food_name"`
	Calories    int     `json:"calories"`
	MealType    string  `json:"meal_type"`
	Confidence  float64 `json:"confidence"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Ingredients string  `json:"ingredients"`
}

// History is the response of GET /food/history.
type History struct {
	UserID       int            `json:"user_id"`
	Username     string         `json:"username"`
	PeriodDays   int            `json:"period_days"`
	TotalEntries int            `json:"total_entries"`
	History      []FoodLogEntry `json:"history"`
}

// DeletedEntry is the response of DELETE /food/food-entry/{id}.
type DeletedEntry struct {
	Message   string `json:"message"`
	DeletedID int    `json:"deleted_id"`
}

// WeekDay is one day inside a weekly summary breakdown.
type WeekDay struct {
	Date        string `json:"date"`
	DayName     string `json:"day_name"`
	Calories    int    `json:"calories"`
	MealsLogged int    `json:"meals_logged"`
}

// WeeklySummary is the response of GET /food/weekly-summary.
type WeeklySummary struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Summary   struct {
		TotalWeekCalories    int     `json:"total_week_calories"`
		AverageDailyCalories float64 `json:"average_daily_calories"`
		DailyGoal            int     `json:"daily_goal"`
		GoalAchievementRate  float64 `json:"goal_achievement_rate"`
	} `json:"summary"`
	DailyBreakdown []WeekDay `json:"daily_breakdown"`
}

// ProfileSummary is the response of GET /food/user-profile-summary.
type ProfileSummary struct {
	UserProfile struct {
		ID               int      `json:"id"`
		Username         string   `json:"username"`
		Email            string   `json:"email"`
		FullName         *string  `json:"full_name"`
		Age              *int     `json:"age"`
		Weight           *float64 `json:"weight"`
		Height           *float64 `json:"height"`
		ActivityLevel    string   `json:"activity_level"`
		DailyCalorieGoal int      `json:"daily_calorie_goal"`
		MemberSince      string   `json:"member_since"`
		IsActive         bool     `json:"is_active"`
	} `json:"user_profile"`
	ActivityStats struct {
		TotalFoodLogs        int     `json:"total_food_logs"`
		LogsThisWeek         int     `json:"logs_this_week"`
		AverageDailyCalories float64 `json:"average_daily_calories"`
		GoalAchievementRate  float64 `json:"goal_achievement_rate"`
	} `json:"activity_stats"`
}

// DatabaseStats is the response of GET /food/admin/database-stats.
type DatabaseStats struct {
	Database struct {
		TotalUsers          int    `json:"total_users"`
		TotalFoodLogs       int    `json:"total_food_logs"`
		TotalDailySummaries int    `json:"total_daily_summaries"`
		DatabaseStatus      string `json:"database_status"`
	} `json:"database_stats"`
	CurrentUser struct {
		UserID         int    `json:"user_id"`
		Username       string `json:"username"`
		FoodLogs       int    `json:"food_logs"`
		DailySummaries int    `json:"daily_summaries"`
		MemberSince    string `json:"member_since"`
	} `json:"current_user_stats"`
}

// AdminLogEntry is one row of the raw admin log listing.
type AdminLogEntry struct {
	ID         int     `json:"id"`
	UserID     int     `json:"user_id"`
	FoodName   string  `json:"food_name"`
	Calories   int     `json:"calories"`
	MealType   string  `json:"meal_type"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"`
	Date       string  `json:"date"`
}

// AdminLogs is the response of GET /food/admin/view-all-food-logs.
type AdminLogs struct {
	TotalLogs   int             `json:"total_logs"`
	RequestedBy string          `json:"requested_by"`
	Logs        []AdminLogEntry `json:"logs"`
}
