package courseController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/policy"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetDeletedCourses lists soft-deleted courses. Admin only.
func GetDeletedCourses(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !policy.Allowed(principal, policy.ActionListDeleted, policy.Resource{Entity: policy.EntityCourse}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", true).
		Order("deleted_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch deleted courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deleted courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// RestoreCourse brings a soft-deleted course back into the default view. Admin only.
func RestoreCourse(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !policy.Allowed(principal, policy.ActionRestore, policy.Resource{Entity: policy.EntityCourse}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Deleted course not found!", nil)
	}

	if err := course.Restore(database.Database.Db); err != nil {
		log.Printf("Error restoring course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course restored successfully!", course)
}
