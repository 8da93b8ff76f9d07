package authRoutes

import (
	authControllers "learnhub/controllers/auth"
	"learnhub/middleware"
	authValidators "learnhub/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/refresh", authControllers.Refresh)

	userGroup := app.Group("/users")
	userGroup.Post("/register", authValidators.Register(), authControllers.Register)
	userGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
}
