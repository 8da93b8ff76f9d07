package quizController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/policy"
	"learnhub/services"

	"github.com/gofiber/fiber/v2"
)

// StartSubmission opens (or resumes) the principal's in-progress submission
// for a quiz. Returns 200 with the existing submission or 201 with a new one.
func StartSubmission(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	submission, created, err := services.StartSubmission(database.Database.Db, principal, quizID)
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	status := fiber.StatusOK
	message := "Submission already in progress."
	if created {
		status = fiber.StatusCreated
		message = "Submission started!"
	}
	return middleware.JsonResponse(c, status, true, message, submission)
}

func GetSubmissions(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Staff see all submissions, instructors those of their own courses,
	// students their own.
	db := database.Database.Db.Model(&models.Submission{}).Preload("Quiz")
	switch {
	case principal.IsStaff:
	case principal.Role == models.RoleInstructor:
		db = db.Joins("JOIN quizzes ON quizzes.id = submissions.quiz_id").
			Joins("JOIN courses ON courses.id = quizzes.course_id").
			Where("courses.instructor_id = ?", principal.UserID)
	default:
		db = db.Where("student_id = ?", principal.UserID)
	}

	var submissions []models.Submission
	if err := db.Order("started_at desc").Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"submissions": submissions,
	})
}

func GetSubmissionDetails(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(uint)

	var submission models.Submission
	if err := database.Database.Db.Preload("Quiz").Preload("Answers").
		First(&submission, submissionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	instructorID, err := courseInstructor(database.Database.Db, submission.Quiz.CourseID)
	if err != nil {
		instructorID = 0
	}

	if !policy.Allowed(principal, policy.ActionRetrieve, policy.Resource{
		Entity:       policy.EntitySubmission,
		OwnerID:      submission.StudentID,
		InstructorID: instructorID,
	}) {
		// Hidden rather than forbidden, so other students' work does not leak.
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", submission)
}

// SubmitAnswer upserts an answer on an in-progress submission. Only the owning
// student may answer, staff included: nobody submits answers for someone else.
func SubmitAnswer(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(uint)

	var submission models.Submission
	if err := database.Database.Db.First(&submission, submissionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	if !submission.OwnedBy(principal.UserID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot submit answers for another student!", nil)
	}

	reqData, ok := c.Locals("validatedAnswer").(*struct {
		QuestionID       uint    `json:"question_id" validate:"required"`
		SelectedChoiceID *uint   `json:"selected_choice_id"`
		TextAnswer       *string `json:"text_answer"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	answer, err := services.SubmitAnswer(database.Database.Db, &submission, services.SubmitAnswerInput{
		QuestionID:       reqData.QuestionID,
		SelectedChoiceID: reqData.SelectedChoiceID,
		TextAnswer:       reqData.TextAnswer,
	})
	if err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted!", answer)
}

// FinalizeSubmission closes and grades the submission. Owner only.
func FinalizeSubmission(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(uint)

	var submission models.Submission
	if err := database.Database.Db.First(&submission, submissionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	if !submission.OwnedBy(principal.UserID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot finalize another student's submission!", nil)
	}

	if err := services.FinalizeSubmission(database.Database.Db, &submission); err != nil {
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded!", submission)
}

// MethodNotAllowed rejects the raw mutation verbs on submissions; the only
// write paths are the dedicated submit-answer and finalize actions.
func MethodNotAllowed(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusMethodNotAllowed, false, "Method not allowed. Use the dedicated submission actions.", nil)
}
