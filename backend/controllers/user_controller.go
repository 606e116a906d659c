package controllers

import (
	"errors"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

func (uc *UserController) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the profile, enrollment and platform progress
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var subjects models.UserSubjects
	if err := uc.DB.Where("user_id = ?", user.ID).First(&subjects).Error; err == nil {
		user.Subjects = &subjects
	}

	return utils.Success(c, fiber.StatusOK, user)
}

// UpdateProgress updates the platform course completion percentages.
// Writes happen only when a value actually changed; non-integer input
// rejects the whole submission.
func (uc *UserController) UpdateProgress(c *fiber.Ctx) error {
	user, err := uc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	body := map[string]interface{}{}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	parse := func(key string, current int) (int, error) {
		raw, ok := body[key]
		if !ok || raw == nil {
			return current, nil
		}
		return coerceInt(raw)
	}

	chem, err := parse("chem_progress", user.ChemProgress)
	if err != nil {
		return utils.BadRequest(c, "Error updating progress. Please check your inputs.")
	}
	bioY13, err := parse("bio_y13_progress", user.BioY13Progress)
	if err != nil {
		return utils.BadRequest(c, "Error updating progress. Please check your inputs.")
	}
	bioY12, err := parse("bio_y12_progress", user.BioY12Progress)
	if err != nil {
		return utils.BadRequest(c, "Error updating progress. Please check your inputs.")
	}

	if chem == user.ChemProgress && bioY13 == user.BioY13Progress && bioY12 == user.BioY12Progress {
		return utils.Message(c, "No changes")
	}

	user.ChemProgress = chem
	user.BioY13Progress = bioY13
	user.BioY12Progress = bioY12
	if err := uc.DB.Save(user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}
	return utils.Message(c, "Progress updated successfully!")
}

// UpdateOnboarding advances the onboarding flow. Step 1 saves subject
// enrollment and daily study hours; step 2 marks onboarding complete.
func (uc *UserController) UpdateOnboarding(c *fiber.Ctx) error {
	user, err := uc.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	type OnboardingInput struct {
		Step            int      `json:"step"`
		Chemistry       *bool    `json:"chemistry"`
		Biology         *bool    `json:"biology"`
		DailyStudyHours *float64 `json:"daily_study_hours"`
	}

	var input OnboardingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	switch input.Step {
	case 1:
		subjects, err := uc.subjectsFor(user.ID)
		if err != nil {
			return utils.InternalServerError(c, "Could not load subjects")
		}
		if input.Chemistry != nil {
			subjects.Chemistry = *input.Chemistry
		}
		if input.Biology != nil {
			subjects.Biology = *input.Biology
		}
		if err := uc.DB.Save(subjects).Error; err != nil {
			return utils.InternalServerError(c, "Could not save subjects")
		}

		user.DailyStudyHours = 4.0
		if input.DailyStudyHours != nil && *input.DailyStudyHours > 0 {
			user.DailyStudyHours = *input.DailyStudyHours
		}
		if user.OnboardingStep < 1 {
			user.OnboardingStep = 1
		}
		if err := uc.DB.Save(user).Error; err != nil {
			return utils.InternalServerError(c, "Could not save user")
		}
		return utils.Message(c, "Subject preferences saved!")

	case 2:
		user.OnboardingStep = 2
		if err := uc.DB.Save(user).Error; err != nil {
			return utils.InternalServerError(c, "Could not save user")
		}
		return utils.Message(c, "Setup complete! Welcome to your personalized study planner.")

	default:
		return utils.BadRequest(c, "Unknown onboarding step")
	}
}

func (uc *UserController) subjectsFor(userID uint) (*models.UserSubjects, error) {
	var subjects models.UserSubjects
	err := uc.DB.Where("user_id = ?", userID).First(&subjects).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		subjects = models.UserSubjects{UserID: userID}
		if err := uc.DB.Create(&subjects).Error; err != nil {
			return nil, err
		}
		return &subjects, nil
	}
	if err != nil {
		return nil, err
	}
	return &subjects, nil
}
