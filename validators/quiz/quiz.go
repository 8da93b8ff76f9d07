package quizValidator

import (
	"learnhub/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// paramID validates a positive integer route parameter and stores it in Locals.
func paramID(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+" ID!", nil)
		}

		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

func QuizID() fiber.Handler       { return paramID("id", "quizID", "Quiz") }
func QuestionID() fiber.Handler   { return paramID("id", "questionID", "Question") }
func ChoiceID() fiber.Handler     { return paramID("id", "choiceID", "Choice") }
func SubmissionID() fiber.Handler { return paramID("id", "submissionID", "Submission") }

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID         uint   `json:"course_id" validate:"required"`
			Title            string `json:"title" validate:"required,min=3,max=255"`
			Description      string `json:"description"`
			TimeLimitMinutes *uint  `json:"time_limit_minutes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            *string `json:"title"`
			Description      *string `json:"description"`
			TimeLimitMinutes *uint   `json:"time_limit_minutes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title must be at least 3 characters long!",
			})
		}

		c.Locals("validatedQuizUpdate", reqData)
		return c.Next()
	}
}

func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuizID uint   `json:"quiz_id" validate:"required"`
			Text   string `json:"text" validate:"required"`
			Type   string `json:"type" validate:"required,oneof=MC SC TF TEXT"`
			Order  int    `json:"order" validate:"gte=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func UpdateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text  *string `json:"text"`
			Type  *string `json:"type"`
			Order *int    `json:"order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Text != nil && strings.TrimSpace(*reqData.Text) == "" {
			errors["text"] = "Text must not be empty!"
		}
		if reqData.Type != nil {
			switch *reqData.Type {
			case "MC", "SC", "TF", "TEXT":
			default:
				errors["type"] = "Type must be one of: MC SC TF TEXT!"
			}
		}
		if reqData.Order != nil && *reqData.Order < 0 {
			errors["order"] = "Order must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestionUpdate", reqData)
		return c.Next()
	}
}

func CreateChoice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionID uint   `json:"question_id" validate:"required"`
			Text       string `json:"text" validate:"required"`
			IsCorrect  bool   `json:"is_correct"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChoice", reqData)
		return c.Next()
	}
}

func UpdateChoice() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text      *string `json:"text"`
			IsCorrect *bool   `json:"is_correct"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Text != nil && strings.TrimSpace(*reqData.Text) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"text": "Text must not be empty!",
			})
		}

		c.Locals("validatedChoiceUpdate", reqData)
		return c.Next()
	}
}

func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionID       uint    `json:"question_id" validate:"required"`
			SelectedChoiceID *uint   `json:"selected_choice_id"`
			TextAnswer       *string `json:"text_answer"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := middleware.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}

		// Exactly one of selected_choice_id / text_answer must be provided.
		if (reqData.SelectedChoiceID == nil) == (reqData.TextAnswer == nil) {
			errors["answer"] = "Provide exactly one of selected_choice_id or text_answer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}
