package userRoutes

import (
	controllers "learnhub/controllers/user"
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up the admin user-management routes.
func SetupUserRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	adminGroup.Get("/users", middleware.JWTMiddleware, controllers.UserList)
	adminGroup.Get("/users/:id", middleware.JWTMiddleware, controllers.GetUser)
	adminGroup.Delete("/users/:id", middleware.JWTMiddleware, controllers.DeleteUser)
}
