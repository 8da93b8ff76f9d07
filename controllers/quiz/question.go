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

// quizInstructor resolves the instructor of a quiz's parent course.
func quizInstructor(db *gorm.DB, quizID uint) (uint, error) {
	var quiz models.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return 0, err
	}
	return courseInstructor(db, quiz.CourseID)
}

func CreateQuestion(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		QuizID uint   `json:"quiz_id" validate:"required"`
		Text   string `json:"text" validate:"required"`
		Type   string `json:"type" validate:"required,oneof=MC SC TF TEXT"`
		Order  int    `json:"order" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	instructorID, err := quizInstructor(database.Database.Db, reqData.QuizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionCreate, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course instructor or admin can add questions!", nil)
	}

	question := models.Question{
		QuizID: reqData.QuizID,
		Text:   reqData.Text,
		Type:   reqData.Type,
		Order:  reqData.Order,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

func UpdateQuestion(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	questionID := c.Locals("questionID").(uint)

	var question models.Question
	if err := database.Database.Db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	instructorID, err := quizInstructor(database.Database.Db, question.QuizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionUpdate, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this question!", nil)
	}

	reqData, ok := c.Locals("validatedQuestionUpdate").(*struct {
		Text  *string `json:"text"`
		Type  *string `json:"type"`
		Order *int    `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Text != nil {
		question.Text = *reqData.Text
	}
	if reqData.Type != nil {
		question.Type = *reqData.Type
	}
	if reqData.Order != nil {
		question.Order = *reqData.Order
	}

	if err := database.Database.Db.Save(&question).Error; err != nil {
		log.Printf("Error updating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

func DeleteQuestion(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	questionID := c.Locals("questionID").(uint)

	var question models.Question
	if err := database.Database.Db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	instructorID, err := quizInstructor(database.Database.Db, question.QuizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionDelete, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete this question!", nil)
	}

	if err := database.Database.Db.Delete(&question).Error; err != nil {
		log.Printf("Error deleting question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func CreateChoice(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedChoice").(*struct {
		QuestionID uint   `json:"question_id" validate:"required"`
		Text       string `json:"text" validate:"required"`
		IsCorrect  bool   `json:"is_correct"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var question models.Question
	if err := database.Database.Db.First(&question, reqData.QuestionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	instructorID, err := quizInstructor(database.Database.Db, question.QuizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionCreate, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course instructor or admin can add choices!", nil)
	}

	choice := models.Choice{
		QuestionID: reqData.QuestionID,
		Text:       reqData.Text,
		IsCorrect:  reqData.IsCorrect,
	}

	if err := database.Database.Db.Create(&choice).Error; err != nil {
		log.Printf("Error creating choice: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create choice!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Choice created successfully!", choice)
}

func UpdateChoice(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	choiceID := c.Locals("choiceID").(uint)

	var choice models.Choice
	if err := database.Database.Db.First(&choice, choiceID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Choice not found!", nil)
	}

	var question models.Question
	if err := database.Database.Db.First(&question, choice.QuestionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	instructorID, err := quizInstructor(database.Database.Db, question.QuizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionUpdate, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this choice!", nil)
	}

	reqData, ok := c.Locals("validatedChoiceUpdate").(*struct {
		Text      *string `json:"text"`
		IsCorrect *bool   `json:"is_correct"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Text != nil {
		choice.Text = *reqData.Text
	}
	if reqData.IsCorrect != nil {
		choice.IsCorrect = *reqData.IsCorrect
	}

	if err := database.Database.Db.Save(&choice).Error; err != nil {
		log.Printf("Error updating choice: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update choice!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Choice updated successfully!", choice)
}

func DeleteChoice(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	choiceID := c.Locals("choiceID").(uint)

	var choice models.Choice
	if err := database.Database.Db.First(&choice, choiceID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Choice not found!", nil)
	}

	var question models.Question
	if err := database.Database.Db.First(&question, choice.QuestionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	instructorID, err := quizInstructor(database.Database.Db, question.QuizID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !policy.Allowed(principal, policy.ActionDelete, policy.Resource{
		Entity:       policy.EntityQuiz,
		InstructorID: instructorID,
	}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete this choice!", nil)
	}

	if err := database.Database.Db.Delete(&choice).Error; err != nil {
		log.Printf("Error deleting choice: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete choice!", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
