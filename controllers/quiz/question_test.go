package quizController_test

import (
	"testing"

	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateQuestion(t *testing.T) {
	env := newTestEnv(t)
	path := "/questions/" + itoa(env.question.ID)
	body := `{"text":"What does := do?","type":"TF","order":3}`

	// Only the course instructor or staff may edit.
	resp := env.request(t, env.student, fiber.MethodPatch, path, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.instructor, fiber.MethodPatch, path, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Question
	require.NoError(t, env.db.First(&stored, env.question.ID).Error)
	assert.Equal(t, "What does := do?", stored.Text)
	assert.Equal(t, models.QuestionTrueFalse, stored.Type)
	assert.Equal(t, 3, stored.Order)

	resp = env.request(t, env.admin, fiber.MethodPatch, path, `{"order":1}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, env.instructor, fiber.MethodPatch, path, `{"type":"ESSAY"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.request(t, env.instructor, fiber.MethodPatch, "/questions/9999", body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateChoice(t *testing.T) {
	env := newTestEnv(t)
	path := "/choices/" + itoa(env.correct.ID)
	body := `{"text":"right, actually","is_correct":false}`

	resp := env.request(t, env.student, fiber.MethodPatch, path, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.instructor, fiber.MethodPatch, path, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Choice
	require.NoError(t, env.db.First(&stored, env.correct.ID).Error)
	assert.Equal(t, "right, actually", stored.Text)
	assert.False(t, stored.IsCorrect)

	// Flip it back as staff.
	resp = env.request(t, env.admin, fiber.MethodPatch, path, `{"is_correct":true}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, env.db.First(&stored, env.correct.ID).Error)
	assert.True(t, stored.IsCorrect)

	resp = env.request(t, env.instructor, fiber.MethodPatch, "/choices/9999", body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
