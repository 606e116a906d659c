package controllers

import (
	"time"

	"project/backend/config"
	"project/backend/models"
	"project/backend/planner"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LogsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLogsController(db *gorm.DB, cfg *config.Config) *LogsController {
	return &LogsController{DB: db, Cfg: cfg}
}

// LogTask appends a completed study task. The insert is all-or-nothing:
// any invalid numeric field rejects the submission and leaves the log
// unmodified.
func (lc *LogsController) LogTask(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	body := map[string]interface{}{}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	task, _ := body["task"].(string)
	subject, _ := body["subject"].(string)
	if task == "" || subject == "" {
		return utils.BadRequest(c, "Task and subject are required")
	}

	duration, err := coerceInt(body["duration"])
	if err != nil {
		return utils.BadRequest(c, "Invalid duration")
	}
	difficulty, err := coerceInt(body["difficulty"])
	if err != nil {
		return utils.BadRequest(c, "Invalid difficulty")
	}
	notes, _ := body["notes"].(string)

	entry := models.TaskLog{
		UserID:        userID,
		Task:          task,
		Subject:       subject,
		DateCompleted: time.Now(),
		Duration:      duration,
		Difficulty:    difficulty,
		Notes:         notes,
	}
	if err := lc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not log task")
	}

	return utils.Created(c, entry)
}

// LogPlatform appends one day of external platform progress for a
// subject. Same all-or-nothing validation as LogTask.
func (lc *LogsController) LogPlatform(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	body := map[string]interface{}{}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	subject, _ := body["subject"].(string)
	if subject == "" {
		return utils.BadRequest(c, "Subject is required")
	}

	lessons, err := coerceInt(body["lessons_completed"])
	if err != nil {
		return utils.BadRequest(c, "Invalid lessons_completed")
	}
	timeSpent, err := coerceInt(body["time_spent"])
	if err != nil {
		return utils.BadRequest(c, "Invalid time_spent")
	}
	comprehension, err := coerceInt(body["comprehension"])
	if err != nil {
		return utils.BadRequest(c, "Invalid comprehension")
	}

	entry := models.PlatformLog{
		UserID:           userID,
		Subject:          subject,
		Date:             time.Now(),
		LessonsCompleted: lessons,
		TimeSpent:        timeSpent,
		Comprehension:    comprehension,
	}
	if err := lc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not log platform progress")
	}

	return utils.Created(c, entry)
}

// GetLogs returns the caller's full activity history, newest first,
// plus recent per-subject platform statistics.
func (lc *LogsController) GetLogs(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var taskLogs []models.TaskLog
	if err := lc.DB.Where("user_id = ?", userID).
		Order("date_completed desc").Find(&taskLogs).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch task logs")
	}

	var platformLogs []models.PlatformLog
	if err := lc.DB.Where("user_id = ?", userID).
		Order("date desc").Find(&platformLogs).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch platform logs")
	}

	platformSubjects := []string{"Chemistry", "Biology Y12", "Biology Y13"}
	stats := planner.PlatformHistory(platformLogs, platformSubjects, time.Now())

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"task_logs":      taskLogs,
		"platform_logs":  platformLogs,
		"platform_stats": stats,
	})
}
