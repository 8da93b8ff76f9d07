package enrollmentRoutes

import (
	controllers "learnhub/controllers/enrollment"
	"learnhub/middleware"
	validators "learnhub/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	enrollmentGroup := app.Group("/enrollments")

	enrollmentGroup.Get("/", middleware.JWTMiddleware, validators.EnrollmentList(), controllers.GetEnrollments)
	enrollmentGroup.Post("/", middleware.JWTMiddleware, validators.CreateEnrollment(), controllers.EnrollInCourse)
	enrollmentGroup.Get("/:id", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.GetEnrollmentDetails)
	enrollmentGroup.Delete("/:id", middleware.JWTMiddleware, validators.EnrollmentID(), controllers.Unenroll)
}
