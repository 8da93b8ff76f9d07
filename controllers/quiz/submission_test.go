package quizController_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/routers/quizRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app        *fiber.App
	db         *gorm.DB
	student    *models.User
	classmate  *models.User
	instructor *models.User
	admin      *models.User
	quiz       *models.Quiz
	question   *models.Question
	correct    *models.Choice
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		SaltRound:         4,
		AccessTokenHours:  1,
		RefreshTokenHours: 1,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	quizRoutes.SetupQuizRoutes(app)

	env := &testEnv{app: app, db: db}
	env.student = env.createUser(t, "learner", models.RoleStudent, false)
	env.classmate = env.createUser(t, "learner2", models.RoleStudent, false)
	env.instructor = env.createUser(t, "teach", models.RoleInstructor, false)
	env.admin = env.createUser(t, "root", models.RoleAdmin, true)

	course := models.Course{Title: "Go Basics", InstructorID: &env.instructor.ID, Status: models.CourseActive}
	require.NoError(t, db.Create(&course).Error)
	quiz := models.Quiz{CourseID: course.ID, Title: "Week 1"}
	require.NoError(t, db.Create(&quiz).Error)
	env.quiz = &quiz

	question := models.Question{QuizID: quiz.ID, Text: "q", Type: models.QuestionSingleChoice, Order: 1}
	require.NoError(t, db.Create(&question).Error)
	env.question = &question
	correct := models.Choice{QuestionID: question.ID, Text: "right", IsCorrect: true}
	require.NoError(t, db.Create(&correct).Error)
	env.correct = &correct
	wrong := models.Choice{QuestionID: question.ID, Text: "wrong"}
	require.NoError(t, db.Create(&wrong).Error)

	return env
}

func (env *testEnv) createUser(t *testing.T, username, role string, staff bool) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsStaff:  staff,
		Profile:  models.Profile{Role: role, Status: models.ProfileActive},
	}
	require.NoError(t, env.db.Create(&user).Error)
	return &user
}

func (env *testEnv) request(t *testing.T, user *models.User, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		token, err := middleware.GenerateJWT(user.ID, user.Username, user.Profile.Role, user.IsStaff)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// startSubmission runs the start flow for a user and returns the submission.
func (env *testEnv) startSubmission(t *testing.T, user *models.User) models.Submission {
	t.Helper()
	resp := env.request(t, user, fiber.MethodPost, "/quizzes/"+itoa(env.quiz.ID)+"/start-submission", "")
	require.Contains(t, []int{fiber.StatusOK, fiber.StatusCreated}, resp.StatusCode)
	var submission models.Submission
	decodeData(t, resp, &submission)
	return submission
}

func TestStartSubmissionEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, env.student, fiber.MethodPost, "/quizzes/"+itoa(env.quiz.ID)+"/start-submission", "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var first models.Submission
	decodeData(t, resp, &first)
	assert.Equal(t, models.SubmissionInProgress, first.Status)

	// Starting again resumes instead of duplicating.
	resp = env.request(t, env.student, fiber.MethodPost, "/quizzes/"+itoa(env.quiz.ID)+"/start-submission", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var second models.Submission
	decodeData(t, resp, &second)
	assert.Equal(t, first.ID, second.ID)

	resp = env.request(t, env.student, fiber.MethodPost, "/quizzes/9999/start-submission", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitAnswerOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	submission := env.startSubmission(t, env.student)
	path := "/submissions/" + itoa(submission.ID) + "/submit-answer"
	body := `{"question_id":` + itoa(env.question.ID) + `,"selected_choice_id":` + itoa(env.correct.ID) + `}`

	resp := env.request(t, env.classmate, fiber.MethodPost, path, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Not even staff can answer for someone else.
	resp = env.request(t, env.admin, fiber.MethodPost, path, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.student, fiber.MethodPost, path, body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFinalizeOwnerOnlyAndGrades(t *testing.T) {
	env := newTestEnv(t)
	submission := env.startSubmission(t, env.student)
	answerPath := "/submissions/" + itoa(submission.ID) + "/submit-answer"
	body := `{"question_id":` + itoa(env.question.ID) + `,"selected_choice_id":` + itoa(env.correct.ID) + `}`
	resp := env.request(t, env.student, fiber.MethodPost, answerPath, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	finalizePath := "/submissions/" + itoa(submission.ID) + "/finalize"

	resp = env.request(t, env.admin, fiber.MethodPost, finalizePath, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.student, fiber.MethodPost, finalizePath, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var graded models.Submission
	decodeData(t, resp, &graded)
	assert.Equal(t, models.SubmissionGraded, graded.Status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 100.0, *graded.Score)

	// Finalizing a graded submission is an invalid state, not a repeat.
	resp = env.request(t, env.student, fiber.MethodPost, finalizePath, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmissionVisibilityScoping(t *testing.T) {
	env := newTestEnv(t)
	submission := env.startSubmission(t, env.student)
	path := "/submissions/" + itoa(submission.ID)

	// Another student gets a 404, not a 403, so nothing leaks.
	resp := env.request(t, env.classmate, fiber.MethodGet, path, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Owner, course instructor and staff can all read it.
	for _, user := range []*models.User{env.student, env.instructor, env.admin} {
		resp = env.request(t, user, fiber.MethodGet, path, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	// List scoping: the classmate sees an empty list, the instructor sees
	// the submission against their course.
	var listing struct {
		Submissions []models.Submission `json:"submissions"`
	}
	resp = env.request(t, env.classmate, fiber.MethodGet, "/submissions/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, resp, &listing)
	assert.Empty(t, listing.Submissions)

	resp = env.request(t, env.instructor, fiber.MethodGet, "/submissions/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, resp, &listing)
	require.Len(t, listing.Submissions, 1)
	assert.Equal(t, submission.ID, listing.Submissions[0].ID)
}

func TestSubmissionRawMutationDisabled(t *testing.T) {
	env := newTestEnv(t)
	submission := env.startSubmission(t, env.student)
	path := "/submissions/" + itoa(submission.ID)

	for _, method := range []string{fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete} {
		resp := env.request(t, env.admin, method, path, `{"status":"GRADED"}`)
		assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode, method)
	}
}
