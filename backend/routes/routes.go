package routes

import (
	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"
	"project/backend/planner"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, cur planner.Curriculum) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/progress", authMiddleware, userController.UpdateProgress)
	app.Put("/api/user/onboarding", authMiddleware, userController.UpdateOnboarding)

	// Subject enrollment routes
	subjectsController := controllers.NewSubjectsController(db, cfg)
	app.Get("/api/subjects", authMiddleware, subjectsController.GetSubjects)
	app.Put("/api/subjects", authMiddleware, subjectsController.UpdateSubjects)

	// Daily task routes
	tasksController := controllers.NewTasksController(db, cfg, cur)
	app.Get("/api/tasks/daily", authMiddleware, tasksController.GetDailyTasks)
	app.Post("/api/tasks/complete", authMiddleware, tasksController.CompleteTask)

	// Activity log routes
	logsController := controllers.NewLogsController(db, cfg)
	logs := app.Group("/api/logs", authMiddleware)
	logs.Get("/", logsController.GetLogs)
	logs.Post("/task", logsController.LogTask)
	logs.Post("/platform", logsController.LogPlatform)

	// Proficiency rating routes
	ratingsController := controllers.NewRatingsController(db, cfg, cur)
	app.Get("/api/ratings", authMiddleware, ratingsController.GetRatings)
	app.Post("/api/ratings", authMiddleware, ratingsController.SaveRating)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	app.Get("/api/analytics/study", authMiddleware, analyticsController.GetStudyAnalytics)
	app.Get("/api/analytics/time", authMiddleware, analyticsController.GetTimeAnalytics)

	// Study planner routes
	plannerController := controllers.NewPlannerController(db, cfg)
	app.Get("/api/planner", authMiddleware, plannerController.GetPlanner)
	app.Post("/api/planner/points", authMiddleware, plannerController.LogPoints)

	// Curriculum route
	curriculumController := controllers.NewCurriculumController(db, cfg, cur)
	app.Get("/api/curriculum", authMiddleware, curriculumController.GetCurriculum)
}
