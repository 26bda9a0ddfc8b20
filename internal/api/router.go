package api

import (
	"finwise/internal/api/handlers"
	"finwise/internal/models"
	"finwise/pkg/auth"
	"finwise/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Transactions  *handlers.TransactionHandler
	Goals         *handlers.GoalHandler
	Budgets       *handlers.BudgetHandler
	Notifications *handlers.NotificationHandler
	Reports       *handlers.ReportHandler
	Dashboard     *handlers.DashboardHandler
	Admin         *handlers.AdminHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	revoked *auth.RevocationStore,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})

	protect := middleware.AuthMiddleware(jwtManager, revoked, appLogger)
	adminOnly := middleware.RequireRole(appLogger, string(models.RoleAdmin))

	// Auth routes
	users := app.Group("/api/users")
	users.Post("/register", h.Auth.Register)
	users.Post("/login", h.Auth.Login)
	users.Post("/refresh", h.Auth.RefreshToken)
	users.Post("/logout", protect, h.Auth.Logout)
	users.Get("/profile", protect, h.Auth.Profile)

	// Transaction routes
	transactions := app.Group("/api/transactions", protect)
	transactions.Post("/", h.Transactions.Create)
	transactions.Get("/", h.Transactions.List)
	transactions.Put("/:id", h.Transactions.Update)
	transactions.Delete("/:id", h.Transactions.Delete)

	// Goal routes
	goals := app.Group("/api/goals", protect)
	goals.Post("/", h.Goals.Create)
	goals.Get("/", h.Goals.List)
	goals.Put("/:id", h.Goals.Update)
	goals.Delete("/:id", h.Goals.Delete)

	// Budget routes; status and adjustments must register before /:id
	budgets := app.Group("/api/budgets", protect)
	budgets.Get("/status", h.Budgets.Status)
	budgets.Get("/adjustments", h.Budgets.Adjustments)
	budgets.Post("/", h.Budgets.Create)
	budgets.Get("/", h.Budgets.List)
	budgets.Put("/:id", h.Budgets.Update)
	budgets.Delete("/:id", h.Budgets.Delete)

	// Notification routes
	notifications := app.Group("/api/notifications", protect)
	notifications.Post("/", h.Notifications.Create)
	notifications.Get("/", h.Notifications.List)
	notifications.Patch("/:id/read", h.Notifications.MarkRead)
	notifications.Put("/mark-all-read", h.Notifications.MarkAllRead)
	notifications.Delete("/", h.Notifications.DeleteAll)
	notifications.Delete("/:id", h.Notifications.Delete)

	// Report and dashboard routes
	app.Get("/api/reports", protect, h.Reports.Generate)
	app.Get("/api/dashboard", protect, h.Dashboard.UserDashboard)

	// Admin routes
	admin := app.Group("/api/admin", protect, adminOnly)
	admin.Get("/users", h.Admin.ListUsers)
	admin.Delete("/users/:id", h.Admin.DeleteUser)
	admin.Get("/transactions", h.Admin.ListTransactions)
	admin.Delete("/transactions/:id", h.Admin.DeleteTransaction)
	admin.Get("/dashboard", h.Admin.Dashboard)

	return app
}
