package quizRoutes

import (
	controllers "learnhub/controllers/quiz"
	"learnhub/middleware"
	validators "learnhub/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quizzes")

	quizGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllQuizzes)
	quizGroup.Post("/", middleware.JWTMiddleware, validators.CreateQuiz(), controllers.CreateQuiz)
	quizGroup.Get("/:id", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuizDetails)
	quizGroup.Patch("/:id", middleware.JWTMiddleware, validators.QuizID(), validators.UpdateQuiz(), controllers.UpdateQuiz)
	quizGroup.Delete("/:id", middleware.JWTMiddleware, validators.QuizID(), controllers.DeleteQuiz)
	quizGroup.Post("/:id/start-submission", middleware.JWTMiddleware, validators.QuizID(), controllers.StartSubmission)

	questionGroup := app.Group("/questions")
	questionGroup.Post("/", middleware.JWTMiddleware, validators.CreateQuestion(), controllers.CreateQuestion)
	questionGroup.Patch("/:id", middleware.JWTMiddleware, validators.QuestionID(), validators.UpdateQuestion(), controllers.UpdateQuestion)
	questionGroup.Delete("/:id", middleware.JWTMiddleware, validators.QuestionID(), controllers.DeleteQuestion)

	choiceGroup := app.Group("/choices")
	choiceGroup.Post("/", middleware.JWTMiddleware, validators.CreateChoice(), controllers.CreateChoice)
	choiceGroup.Patch("/:id", middleware.JWTMiddleware, validators.ChoiceID(), validators.UpdateChoice(), controllers.UpdateChoice)
	choiceGroup.Delete("/:id", middleware.JWTMiddleware, validators.ChoiceID(), controllers.DeleteChoice)

	submissionGroup := app.Group("/submissions")
	submissionGroup.Get("/", middleware.JWTMiddleware, controllers.GetSubmissions)
	submissionGroup.Get("/:id", middleware.JWTMiddleware, validators.SubmissionID(), controllers.GetSubmissionDetails)
	submissionGroup.Post("/:id/submit-answer", middleware.JWTMiddleware, validators.SubmissionID(), validators.SubmitAnswer(), controllers.SubmitAnswer)
	submissionGroup.Post("/:id/finalize", middleware.JWTMiddleware, validators.SubmissionID(), controllers.FinalizeSubmission)

	// Raw mutation of submissions is disabled; only the actions above write.
	submissionGroup.Put("/:id", middleware.JWTMiddleware, controllers.MethodNotAllowed)
	submissionGroup.Patch("/:id", middleware.JWTMiddleware, controllers.MethodNotAllowed)
	submissionGroup.Delete("/:id", middleware.JWTMiddleware, controllers.MethodNotAllowed)
}
