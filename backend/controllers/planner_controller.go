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

// PlannerController serves the study calendar: exam countdowns, the
// fixed weekday timetable and the weekend points tasks, all filtered by
// the caller's enrollment. The timetables are built once at startup and
// held as immutable configuration.
type PlannerController struct {
	DB           *gorm.DB
	Cfg          *config.Config
	Exams        planner.ExamTimetable
	Timetable    planner.WeekdayTimetable
	WeekendTasks []planner.WeekendTask
}

func NewPlannerController(db *gorm.DB, cfg *config.Config) *PlannerController {
	return &PlannerController{
		DB:           db,
		Cfg:          cfg,
		Exams:        planner.DefaultExamTimetable(),
		Timetable:    planner.DefaultWeekdayTimetable(),
		WeekendTasks: planner.DefaultWeekendTasks(),
	}
}

func (pc *PlannerController) enrolledFor(userID uint) []string {
	var enrolled []string
	var subjects models.UserSubjects
	if err := pc.DB.Where("user_id = ?", userID).First(&subjects).Error; err == nil {
		if subjects.Biology {
			enrolled = append(enrolled, "Biology")
		}
		if subjects.Chemistry {
			enrolled = append(enrolled, "Chemistry")
		}
	}
	return enrolled
}

// GetPlanner returns the 15-week study calendar with exam dates, the
// filtered weekday timetable and weekend tasks, and the next exam per
// subject.
func (pc *PlannerController) GetPlanner(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	enrolled := pc.enrolledFor(userID)
	now := time.Now()

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"calendar":       planner.BuildCalendar(pc.Exams, pc.Timetable, now, 15),
		"timetable":      planner.FilterTimetable(pc.Timetable, enrolled, pc.Cfg.CoreSubject),
		"weekend_tasks":  planner.FilterWeekendTasks(pc.WeekendTasks, enrolled, pc.Cfg.CoreSubject),
		"upcoming_exams": planner.UpcomingExams(pc.Exams, now),
		"exam_dates":     pc.Exams,
	})
}

// LogPoints totals the points for the weekend tasks the user ticked
// off. Indexes outside the catalog are skipped, as is non-numeric
// input.
func (pc *PlannerController) LogPoints(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, pc.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type PointsInput struct {
		Tasks []interface{} `json:"tasks"`
	}
	var input PointsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	total := 0
	for _, raw := range input.Tasks {
		idx, err := coerceInt(raw)
		if err != nil {
			continue
		}
		if idx >= 0 && idx < len(pc.WeekendTasks) {
			total += pc.WeekendTasks[idx].Points
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"points":  total,
		"message": "You earned points today!",
	})
}
