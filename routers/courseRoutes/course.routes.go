package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes. The /deleted route must be
// registered before /:id so it is not captured as a course ID.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)

	// Soft-delete management (admin only)
	courseGroup.Get("/deleted", middleware.JWTMiddleware, controllers.GetDeletedCourses)
	courseGroup.Post("/:id/restore", middleware.JWTMiddleware, validators.CourseID(), controllers.RestoreCourse)

	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Patch("/:id", middleware.JWTMiddleware, validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.DeleteCourse)
}
