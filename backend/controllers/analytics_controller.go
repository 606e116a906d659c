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

type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

func (ac *AnalyticsController) history(userID uint) ([]models.TaskLog, []models.PlatformLog, error) {
	var taskLogs []models.TaskLog
	if err := ac.DB.Where("user_id = ?", userID).
		Order("date_completed desc").Find(&taskLogs).Error; err != nil {
		return nil, nil, err
	}
	var platformLogs []models.PlatformLog
	if err := ac.DB.Where("user_id = ?", userID).
		Order("date desc").Find(&platformLogs).Error; err != nil {
		return nil, nil, err
	}
	return taskLogs, platformLogs, nil
}

// GetStudyAnalytics godoc
// @Summary Study analytics
// @Description Weekly aggregates, per-subject averages, productivity,
// weekday time distribution and streaks over the full history
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Router /analytics/study [get]
func (ac *AnalyticsController) GetStudyAnalytics(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	taskLogs, platformLogs, err := ac.history(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch activity logs")
	}

	now := time.Now()
	avgDuration, avgDifficulty := planner.AverageBySubject(taskLogs)
	current, max := planner.Streaks(taskLogs, now)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"week_stats":              planner.WeeklyStats(taskLogs, platformLogs, 12, now),
		"avg_duration_by_subject": avgDuration,
		"avg_difficulty_by_subject": avgDifficulty,
		"productivity":            planner.OverallProductivity(taskLogs),
		"productivity_by_day":     planner.ProductivityByDay(taskLogs),
		"time_distribution":       planner.TimeByWeekday(taskLogs, platformLogs),
		"current_streak":          current,
		"max_streak":              max,
		"task_count":              len(taskLogs),
		"platform_log_count":      len(platformLogs),
	})
}

// GetTimeAnalytics godoc
// @Summary Time-of-day analytics
// @Description Time-of-day quadrant and weekday distributions with
// productivity and streaks
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Router /analytics/time [get]
func (ac *AnalyticsController) GetTimeAnalytics(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	taskLogs, platformLogs, err := ac.history(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch activity logs")
	}

	current, max := planner.Streaks(taskLogs, time.Now())

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"time_of_day":         planner.TimeByQuadrant(taskLogs),
		"time_distribution":   planner.TimeByWeekday(taskLogs, platformLogs),
		"productivity_by_day": planner.ProductivityByDay(taskLogs),
		"current_streak":      current,
		"max_streak":          max,
	})
}
