package quizController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/policy"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// courseInstructor returns the instructor of a non-deleted course, for the
// ownership checks on quiz-scoped writes.
func courseInstructor(db *gorm.DB, courseID uint) (uint, error) {
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return 0, err
	}
	if course.InstructorID == nil {
		return 0, nil
	}
	return *course.InstructorID, nil
}

func GetAllQuizzes(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !policy.Allowed(principal, policy.ActionList, policy.Resource{Entity: policy.EntityQuiz}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	db := database.Database.Db.Model(&models.Quiz{})
	if courseID := c.QueryInt("course_id"); courseID > 0 {
		db = db.Where("course_id = ?", courseID)
	}

	var quizzes []models.Quiz
	if err := db.Order("created_at asc").Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", fiber.Map{
		"quizzes": quizzes,
	})
}

func GetQuizDetails(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !policy.Allowed(principal, policy.ActionRetrieve, policy.Resource{Entity: policy.EntityQuiz}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	var quiz models.Quiz
	if err := database.Database.Db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("display_order asc") }).
		Preload("Questions.Choices").
		First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

func CreateQuiz(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		CourseID         uint   `json:"course_id" validate:"required"`
		Title            string `json:"title" validate:"required,min=3,max=255"`
		Description      string `json:"description"`
		TimeLimitMinutes *uint  `json:"time_limit_minutes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	instructorID, err := courseInstructor(database.Database.Db, reqData.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionCreate, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course instructor or admin can add a quiz!", nil)
	}

	quiz := models.Quiz{
		CourseID:         reqData.CourseID,
		Title:            reqData.Title,
		Description:      reqData.Description,
		TimeLimitMinutes: reqData.TimeLimitMinutes,
	}

	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

func UpdateQuiz(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	instructorID, err := courseInstructor(database.Database.Db, quiz.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionUpdate, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this quiz!", nil)
	}

	reqData, ok := c.Locals("validatedQuizUpdate").(*struct {
		Title            *string `json:"title"`
		Description      *string `json:"description"`
		TimeLimitMinutes *uint   `json:"time_limit_minutes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		quiz.Title = *reqData.Title
	}
	if reqData.Description != nil {
		quiz.Description = *reqData.Description
	}
	if reqData.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = reqData.TimeLimitMinutes
	}

	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		log.Printf("Error updating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

func DeleteQuiz(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	instructorID, err := courseInstructor(database.Database.Db, quiz.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionDelete, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete this quiz!", nil)
	}

	if err := database.Database.Db.Delete(&quiz).Error; err != nil {
		log.Printf("Error deleting quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
