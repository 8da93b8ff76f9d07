package enrollmentController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/policy"
	"learnhub/services"
	"learnhub/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

func EnrollInCourse(c *fiber.Ctx) error {
	principal, user, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		CourseID uint `json:"course_id" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment, err := services.CreateEnrollment(database.Database.Db, principal, reqData.CourseID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	go func(email, username, courseTitle string) {
		if err := utils.SendEnrollmentEmail(email, username, courseTitle); err != nil {
			log.Printf("Error sending enrollment email: %v", err)
		}
	}(user.Email, user.Username, enrollment.Course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

func GetEnrollments(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  int `query:"page"`
		Limit int `query:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Visibility scoping: admins see every enrollment, students their own,
	// instructors none. Out-of-scope rows read as absent, not forbidden.
	db := database.Database.Db.Model(&models.Enrollment{}).Where("is_deleted = ?", false)
	switch {
	case principal.IsStaff:
	case principal.Role == models.RoleStudent:
		db = db.Where("student_id = ?", principal.UserID)
	default:
		db = db.Where("1 = 0")
	}

	var total int64
	db.Count(&total)

	offset := (reqData.Page - 1) * reqData.Limit

	var enrollments []models.Enrollment
	if err := db.Preload("Course").Offset(offset).Limit(reqData.Limit).
		Order("enrollment_date desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}

func GetEnrollmentDetails(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(uint)

	var enrollment models.Enrollment
	if err := database.Database.Db.Preload("Course").
		Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionRetrieve, policy.Resource{
		Entity:  policy.EntityEnrollment,
		OwnerID: enrollment.StudentID,
	}) {
		// Hidden rather than forbidden, so other students' enrollments do not leak.
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

func Unenroll(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(uint)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionDelete, policy.Resource{
		Entity:  policy.EntityEnrollment,
		OwnerID: enrollment.StudentID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot delete this enrollment!", nil)
	}

	if err := enrollment.SoftDelete(database.Database.Db); err != nil {
		log.Printf("Error deleting enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll!", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
