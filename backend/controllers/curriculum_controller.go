package controllers

import (
	"log"

	"project/backend/config"
	"project/backend/models"
	"project/backend/planner"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CurriculumController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Curriculum planner.Curriculum
}

func NewCurriculumController(db *gorm.DB, cfg *config.Config, cur planner.Curriculum) *CurriculumController {
	return &CurriculumController{DB: db, Cfg: cfg, Curriculum: cur}
}

// GetCurriculum returns the syllabus tree together with the caller's
// proficiency ratings, grouped by subject.
func (cc *CurriculumController) GetCurriculum(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	subjects := make(map[string]planner.Subject)
	for _, name := range cc.Curriculum.Subjects() {
		if subject, ok := cc.Curriculum.Subject(name); ok {
			subjects[name] = subject
		}
	}

	proficiencies := make(map[string]map[string]int)
	var rows []models.TopicProficiency
	if err := cc.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		log.Printf("curriculum: unable to load topic proficiencies: %v", err)
	} else {
		for _, row := range rows {
			if proficiencies[row.Subject] == nil {
				proficiencies[row.Subject] = make(map[string]int)
			}
			proficiencies[row.Subject][row.Topic] = row.Proficiency
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"curriculum":    subjects,
		"proficiencies": proficiencies,
	})
}
