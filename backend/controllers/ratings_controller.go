package controllers

import (
	"errors"
	"log"

	"project/backend/config"
	"project/backend/models"
	"project/backend/planner"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RatingsController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Curriculum planner.Curriculum
}

func NewRatingsController(db *gorm.DB, cfg *config.Config, cur planner.Curriculum) *RatingsController {
	return &RatingsController{DB: db, Cfg: cfg, Curriculum: cur}
}

// SaveRating upserts a topic proficiency rating. One rating exists per
// (user, subject, topic); the first save creates it, later saves update
// it in place. The subject is resolved from the curriculum when the
// client does not send one.
func (rc *RatingsController) SaveRating(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	body := map[string]interface{}{}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	topicID, _ := body["topic_id"].(string)
	if topicID == "" {
		return utils.BadRequest(c, "Missing required fields")
	}
	rating, err := coerceInt(body["rating"])
	if err != nil || rating < 1 || rating > 5 {
		return utils.BadRequest(c, "Rating must be an integer between 1 and 5")
	}

	subject, _ := body["subject"].(string)
	topic := planner.TopicTitle(topicID)
	if resolvedSubject, resolvedTitle, ok := rc.Curriculum.FindTopic(topicID); ok {
		topic = resolvedTitle
		if subject == "" {
			subject = resolvedSubject
		}
	}
	if subject == "" {
		return utils.BadRequest(c, "Could not determine subject for topic")
	}

	var existing models.TopicProficiency
	err = rc.DB.Where("user_id = ? AND subject = ? AND topic = ?", userID, subject, topic).
		First(&existing).Error
	switch {
	case err == nil:
		existing.Proficiency = rating
		if err := rc.DB.Save(&existing).Error; err != nil {
			return utils.InternalServerError(c, "Could not save rating")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry := models.TopicProficiency{
			UserID:      userID,
			Subject:     subject,
			Topic:       topic,
			Proficiency: rating,
		}
		if err := rc.DB.Create(&entry).Error; err != nil {
			return utils.InternalServerError(c, "Could not save rating")
		}
	default:
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Message(c, "Rating saved")
}

// GetRatings returns the caller's ratings keyed by normalized topic id.
// A missing proficiency table is not an error: the client just sees no
// ratings.
func (rc *RatingsController) GetRatings(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	ratings := map[string]int{}
	var rows []models.TopicProficiency
	if err := rc.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		log.Printf("ratings: unable to load topic proficiencies: %v", err)
	} else {
		for _, row := range rows {
			ratings[planner.TopicID(row.Topic)] = row.Proficiency
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"ratings": ratings,
	})
}
