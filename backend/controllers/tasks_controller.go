package controllers

import (
	"log"
	"math/rand"
	"time"

	"project/backend/config"
	"project/backend/models"
	"project/backend/planner"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TasksController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Curriculum planner.Curriculum
	// Rand overrides the per-request random source; tests set it to a
	// seeded source.
	Rand *rand.Rand
}

func NewTasksController(db *gorm.DB, cfg *config.Config, cur planner.Curriculum) *TasksController {
	return &TasksController{DB: db, Cfg: cfg, Curriculum: cur}
}

func (tc *TasksController) rng() *rand.Rand {
	if tc.Rand != nil {
		return tc.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GetDailyTasks godoc
// @Summary Get the daily task list
// @Description Generates today's study tasks from the curriculum,
// enrollment and proficiency ratings
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Router /tasks/daily [get]
func (tc *TasksController) GetDailyTasks(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	enrolled, platformLinked := tc.enrollmentFor(userID)

	// Missing proficiency data downgrades to unweighted generation.
	prof := planner.ProficiencyMap{}
	var ratings []models.TopicProficiency
	if err := tc.DB.Where("user_id = ?", userID).Find(&ratings).Error; err != nil {
		log.Printf("tasks: unable to load topic proficiencies: %v", err)
	} else {
		for _, rating := range ratings {
			if prof[rating.Subject] == nil {
				prof[rating.Subject] = make(map[string]int)
			}
			prof[rating.Subject][rating.Topic] = rating.Proficiency
		}
	}

	generator := planner.NewGenerator(planner.GeneratorConfig{
		MinTasks:    tc.Cfg.MinDailyTasks,
		CoreSubject: tc.Cfg.CoreSubject,
	}, tc.rng())
	tasks := generator.Generate(tc.Curriculum, enrolled, platformLinked, prof)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"tasks": tasks,
		"date":  time.Now().Format("2006-01-02"),
	})
}

// CompleteTask quickly logs a generated task as done, with default
// duration and difficulty when the client sends none.
func (tc *TasksController) CompleteTask(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
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
		return utils.BadRequest(c, "Missing task information")
	}

	duration, err := coerceIntDefault(body["duration"], 30)
	if err != nil {
		return utils.BadRequest(c, "Invalid duration")
	}
	difficulty, err := coerceIntDefault(body["difficulty"], 3)
	if err != nil {
		return utils.BadRequest(c, "Invalid difficulty")
	}

	entry := models.TaskLog{
		UserID:        userID,
		Task:          task,
		Subject:       subject,
		DateCompleted: time.Now(),
		Duration:      duration,
		Difficulty:    difficulty,
		Notes:         "Completed via quick action",
	}
	if err := tc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not log task")
	}

	return utils.Message(c, "Task '"+task+"' marked as complete.")
}

// enrollmentFor builds the enrolled and platform-linked subject lists
// for a user. The core subject is always enrolled; opted-in subjects are
// also platform-linked.
func (tc *TasksController) enrollmentFor(userID uint) (enrolled, platformLinked []string) {
	var subjects models.UserSubjects
	if err := tc.DB.Where("user_id = ?", userID).First(&subjects).Error; err == nil {
		if subjects.Biology {
			enrolled = append(enrolled, "Biology")
			platformLinked = append(platformLinked, "Biology")
		}
		if subjects.Chemistry {
			enrolled = append(enrolled, "Chemistry")
			platformLinked = append(platformLinked, "Chemistry")
		}
	}
	if tc.Curriculum.Has(tc.Cfg.CoreSubject) {
		enrolled = append(enrolled, tc.Cfg.CoreSubject)
	}
	return enrolled, platformLinked
}
