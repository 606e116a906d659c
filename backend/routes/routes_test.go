package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/config"
	"project/backend/planner"
	"project/backend/utils"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		DBDriver:      "sqlite",
		SQLitePath:    filepath.Join(t.TempDir(), "test.db"),
		JWTSecret:     "test-secret",
		MinDailyTasks: 3,
		CoreSubject:   "Psychology",
	}
	db, err := utils.InitDB(cfg)
	require.NoError(t, err)

	app := fiber.New()
	SetupRoutes(app, db, cfg, planner.DefaultCurriculum())
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	decoded := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func registerUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := request(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"username": username,
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// dataOf unwraps the {success, data} envelope.
func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	require.Equal(t, true, body["success"], "body: %v", body)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "body: %v", body)
	return data
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	status, body := request(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])

	status, body = request(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"username": "alice",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username already exists", body["error"])

	status, _ = request(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = request(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	user = body["user"].(map[string]interface{})
	assert.Equal(t, float64(0), user["onboarding_step"])
}

func TestRegisterRequiresCredentials(t *testing.T) {
	app := newTestApp(t)

	status, _ := request(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"username": "bob",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	status, _ := request(t, app, "GET", "/api/tasks/daily", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, app, "GET", "/api/logs/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestTaskLogRoundTrip(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "carol")

	status, body := request(t, app, "POST", "/api/logs/task", token, fiber.Map{
		"task":       "Review notes on Bonding",
		"subject":    "Chemistry",
		"duration":   40,
		"difficulty": 4,
		"notes":      "struggled with dative bonds",
	})
	require.Equal(t, http.StatusCreated, status)
	dataOf(t, body)

	time.Sleep(10 * time.Millisecond)

	status, _ = request(t, app, "POST", "/api/logs/task", token, fiber.Map{
		"task":       "Practice questions on Enzymes",
		"subject":    "Biology",
		"duration":   25,
		"difficulty": 2,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = request(t, app, "GET", "/api/logs/", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)

	logs := data["task_logs"].([]interface{})
	require.Len(t, logs, 2)

	// Newest first.
	newest := logs[0].(map[string]interface{})
	assert.Equal(t, "Practice questions on Enzymes", newest["task"])
	assert.Equal(t, "Biology", newest["subject"])
	assert.Equal(t, float64(25), newest["duration"])

	oldest := logs[1].(map[string]interface{})
	assert.Equal(t, "Review notes on Bonding", oldest["task"])
	assert.Equal(t, float64(40), oldest["duration"])
	assert.Equal(t, float64(4), oldest["difficulty"])
	assert.Equal(t, "struggled with dative bonds", oldest["notes"])

	stats := data["platform_stats"].(map[string]interface{})
	require.Contains(t, stats, "Chemistry")
	chem := stats["Chemistry"].(map[string]interface{})
	assert.Len(t, chem["daily"].([]interface{}), 14)
	assert.Len(t, chem["weekly"].([]interface{}), 8)
}

func TestTaskLogRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "dave")

	status, _ := request(t, app, "POST", "/api/logs/task", token, fiber.Map{
		"task":       "Review",
		"subject":    "Chemistry",
		"duration":   "abc",
		"difficulty": 3,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = request(t, app, "POST", "/api/logs/task", token, fiber.Map{
		"task":       "Review",
		"subject":    "Chemistry",
		"duration":   30.5,
		"difficulty": 3,
	})
	assert.Equal(t, http.StatusBadRequest, status, "fractional durations are rejected, not truncated")

	status, _ = request(t, app, "POST", "/api/logs/task", token, fiber.Map{
		"subject":    "Chemistry",
		"duration":   30,
		"difficulty": 3,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// No partial writes from the rejected submissions.
	status, body := request(t, app, "GET", "/api/logs/", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)
	assert.Empty(t, data["task_logs"])
}

func TestPlatformLogRoundTrip(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "erin")

	status, _ := request(t, app, "POST", "/api/logs/platform", token, fiber.Map{
		"subject":           "Chemistry",
		"lessons_completed": 2,
		"time_spent":        50,
		"comprehension":     4,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := request(t, app, "GET", "/api/logs/", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)

	logs := data["platform_logs"].([]interface{})
	require.Len(t, logs, 1)
	entry := logs[0].(map[string]interface{})
	assert.Equal(t, "Chemistry", entry["subject"])
	assert.Equal(t, float64(2), entry["lessons_completed"])

	// Today's lessons show up in the daily platform history.
	stats := data["platform_stats"].(map[string]interface{})
	chem := stats["Chemistry"].(map[string]interface{})
	today := chem["daily"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(2), today["lessons"])
}

func TestRatingsUpsert(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "frank")

	status, _ := request(t, app, "POST", "/api/ratings", token, fiber.Map{
		"topic_id": "memory",
		"rating":   2,
	})
	require.Equal(t, http.StatusOK, status)

	// A later save replaces the rating in place.
	status, _ = request(t, app, "POST", "/api/ratings", token, fiber.Map{
		"topic_id": "memory",
		"rating":   4,
	})
	require.Equal(t, http.StatusOK, status)

	status, body := request(t, app, "GET", "/api/ratings", token, nil)
	require.Equal(t, http.StatusOK, status)
	ratings := dataOf(t, body)["ratings"].(map[string]interface{})
	assert.Len(t, ratings, 1)
	assert.Equal(t, float64(4), ratings["memory"])
}

func TestRatingsValidation(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "grace")

	status, _ := request(t, app, "POST", "/api/ratings", token, fiber.Map{
		"topic_id": "memory",
		"rating":   6,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = request(t, app, "POST", "/api/ratings", token, fiber.Map{
		"rating": 3,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDailyTasks(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "heidi")

	status, body := request(t, app, "GET", "/api/tasks/daily", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)

	assert.Equal(t, time.Now().Format("2006-01-02"), data["date"])

	tasks := data["tasks"].([]interface{})
	require.GreaterOrEqual(t, len(tasks), 3)
	for _, raw := range tasks {
		task := raw.(map[string]interface{})
		assert.NotEmpty(t, task["subject"])
		assert.NotEmpty(t, task["task"])
		assert.NotEmpty(t, task["type"])
		assert.Greater(t, task["duration"].(float64), float64(0))
	}
}

func TestCompleteTask(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "ivan")

	status, body := request(t, app, "POST", "/api/tasks/complete", token, fiber.Map{
		"task":    "Review notes on Memory",
		"subject": "Psychology",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["message"], "marked as complete")

	status, body = request(t, app, "GET", "/api/logs/", token, nil)
	require.Equal(t, http.StatusOK, status)
	logs := dataOf(t, body)["task_logs"].([]interface{})
	require.Len(t, logs, 1)
	entry := logs[0].(map[string]interface{})
	assert.Equal(t, float64(30), entry["duration"])
	assert.Equal(t, float64(3), entry["difficulty"])
	assert.Equal(t, "Completed via quick action", entry["notes"])
}

func TestOnboardingAndSubjects(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "judy")

	status, body := request(t, app, "PUT", "/api/user/onboarding", token, fiber.Map{
		"step":              1,
		"chemistry":         true,
		"biology":           false,
		"daily_study_hours": 5.0,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Subject preferences saved!", body["message"])

	status, body = request(t, app, "GET", "/api/subjects", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)
	assert.Equal(t, true, data["chemistry"])
	assert.Equal(t, false, data["biology"])
	assert.Equal(t, "Psychology", data["core_subject"])

	status, _ = request(t, app, "PUT", "/api/subjects", token, fiber.Map{
		"chemistry": false,
		"biology":   true,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = request(t, app, "GET", "/api/subjects", token, nil)
	require.Equal(t, http.StatusOK, status)
	data = dataOf(t, body)
	assert.Equal(t, false, data["chemistry"])
	assert.Equal(t, true, data["biology"])

	status, _ = request(t, app, "PUT", "/api/user/onboarding", token, fiber.Map{
		"step": 2,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = request(t, app, "GET", "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	profile := dataOf(t, body)
	assert.Equal(t, "judy", profile["username"])
	assert.Equal(t, float64(2), profile["onboarding_step"])
	assert.Equal(t, float64(5), profile["daily_study_hours"])
	assert.NotContains(t, profile, "password_hash")
}

func TestUpdateProgress(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "mallory")

	status, body := request(t, app, "PUT", "/api/user/progress", token, fiber.Map{
		"chem_progress": 40,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Progress updated successfully!", body["message"])

	status, body = request(t, app, "PUT", "/api/user/progress", token, fiber.Map{
		"chem_progress": 40,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No changes", body["message"])

	status, _ = request(t, app, "PUT", "/api/user/progress", token, fiber.Map{
		"chem_progress": "not a number",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = request(t, app, "GET", "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(40), dataOf(t, body)["chem_progress"])
}

func TestAnalyticsOnEmptyHistory(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "nina")

	status, body := request(t, app, "GET", "/api/analytics/study", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)
	assert.Len(t, data["week_stats"].([]interface{}), 12)
	assert.Equal(t, float64(0), data["productivity"])
	assert.Equal(t, float64(0), data["current_streak"])
	assert.Equal(t, float64(0), data["max_streak"])
	assert.Equal(t, float64(0), data["task_count"])

	status, body = request(t, app, "GET", "/api/analytics/time", token, nil)
	require.Equal(t, http.StatusOK, status)
	data = dataOf(t, body)
	assert.Len(t, data["time_of_day"].(map[string]interface{}), 4)
	assert.Len(t, data["time_distribution"].(map[string]interface{}), 7)
}

func TestAnalyticsAfterLogging(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "oscar")

	status, _ := request(t, app, "POST", "/api/logs/task", token, fiber.Map{
		"task":       "Essay plan on Attachment",
		"subject":    "Psychology",
		"duration":   60,
		"difficulty": 3,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := request(t, app, "GET", "/api/analytics/study", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)

	assert.Equal(t, float64(1), data["task_count"])
	assert.Equal(t, float64(1), data["current_streak"])
	assert.Equal(t, float64(1), data["max_streak"])
	// 1 task in 1 hour.
	assert.Equal(t, float64(1), data["productivity"])

	avg := data["avg_duration_by_subject"].(map[string]interface{})
	assert.Equal(t, float64(60), avg["Psychology"])
	assert.NotContains(t, avg, "Chemistry")

	weeks := data["week_stats"].([]interface{})
	thisWeek := weeks[0].(map[string]interface{})
	assert.Equal(t, float64(1), thisWeek["tasks"])
	assert.Equal(t, 1.0, thisWeek["time_spent"])
}

func TestPlannerEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "peggy")

	status, body := request(t, app, "GET", "/api/planner", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)

	calendar := data["calendar"].([]interface{})
	require.Len(t, calendar, 15)
	week := calendar[0].(map[string]interface{})
	assert.Len(t, week["days"].([]interface{}), 7)

	// No enrollment: only core-subject entries survive the filters.
	tasks := data["weekend_tasks"].([]interface{})
	require.Len(t, tasks, 3)
	for _, raw := range tasks {
		task := raw.(map[string]interface{})
		assert.Contains(t, task["task"], "Psychology")
	}

	timetable := data["timetable"].(map[string]interface{})
	for _, slots := range timetable {
		require.Len(t, slots.([]interface{}), 1)
	}

	assert.Contains(t, data, "upcoming_exams")
	assert.Contains(t, data, "exam_dates")
}

func TestLogPoints(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "quinn")

	// Indexes 0 and 1 are worth 3 and 4 points; out-of-range and
	// non-numeric entries are skipped.
	status, body := request(t, app, "POST", "/api/planner/points", token, fiber.Map{
		"tasks": []interface{}{0, 1, 50, "junk"},
	})
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)
	assert.Equal(t, float64(7), data["points"])
}

func TestCurriculumEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := registerUser(t, app, "rupert")

	status, _ := request(t, app, "POST", "/api/ratings", token, fiber.Map{
		"topic_id": "memory",
		"rating":   3,
	})
	require.Equal(t, http.StatusOK, status)

	status, body := request(t, app, "GET", "/api/curriculum", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := dataOf(t, body)

	curriculum := data["curriculum"].(map[string]interface{})
	assert.Contains(t, curriculum, "Psychology")
	assert.Contains(t, curriculum, "Chemistry")
	assert.Contains(t, curriculum, "Biology")

	prof := data["proficiencies"].(map[string]interface{})
	psych := prof["Psychology"].(map[string]interface{})
	assert.Equal(t, float64(3), psych["Memory"])
}

func TestUsersAreIsolated(t *testing.T) {
	app := newTestApp(t)
	alice := registerUser(t, app, "alice2")
	bob := registerUser(t, app, "bob2")

	status, _ := request(t, app, "POST", "/api/logs/task", alice, fiber.Map{
		"task":       "Review",
		"subject":    "Chemistry",
		"duration":   30,
		"difficulty": 3,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := request(t, app, "GET", "/api/logs/", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, dataOf(t, body)["task_logs"])
}
