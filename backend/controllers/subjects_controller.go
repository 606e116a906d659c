package controllers

import (
	"errors"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubjectsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubjectsController(db *gorm.DB, cfg *config.Config) *SubjectsController {
	return &SubjectsController{DB: db, Cfg: cfg}
}

// GetSubjects returns the caller's enrollment. The core subject is
// implicit and always studied.
func (sc *SubjectsController) GetSubjects(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var subjects models.UserSubjects
	if err := sc.DB.Where("user_id = ?", userID).First(&subjects).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			subjects = models.UserSubjects{UserID: userID}
		} else {
			return utils.InternalServerError(c, "Could not query database")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"chemistry":    subjects.Chemistry,
		"biology":      subjects.Biology,
		"core_subject": sc.Cfg.CoreSubject,
	})
}

// UpdateSubjects updates the caller's opt-in enrollment booleans.
func (sc *SubjectsController) UpdateSubjects(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type SubjectsInput struct {
		Chemistry bool `json:"chemistry"`
		Biology   bool `json:"biology"`
	}

	var input SubjectsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var subjects models.UserSubjects
	err = sc.DB.Where("user_id = ?", userID).First(&subjects).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		subjects = models.UserSubjects{UserID: userID}
	} else if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	subjects.Chemistry = input.Chemistry
	subjects.Biology = input.Biology
	if err := sc.DB.Save(&subjects).Error; err != nil {
		return utils.InternalServerError(c, "Could not save subjects")
	}

	return utils.Message(c, "Subjects updated successfully!")
}
