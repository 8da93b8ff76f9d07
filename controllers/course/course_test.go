package courseController_test

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
	"learnhub/routers/courseRoutes"

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
	instructor *models.User
	other      *models.User
	admin      *models.User
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
	courseRoutes.SetupCourseRoutes(app)

	env := &testEnv{app: app, db: db}
	env.student = env.createUser(t, "learner", models.RoleStudent, false)
	env.instructor = env.createUser(t, "teach", models.RoleInstructor, false)
	env.other = env.createUser(t, "teach2", models.RoleInstructor, false)
	env.admin = env.createUser(t, "root", models.RoleAdmin, true)
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

func (env *testEnv) createCourse(t *testing.T, instructorID uint, title string) *models.Course {
	t.Helper()
	course := models.Course{
		Title:        title,
		Description:  "a course",
		InstructorID: &instructorID,
		Status:       models.CourseActive,
	}
	require.NoError(t, env.db.Create(&course).Error)
	return &course
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

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestCreateCourseRoleGate(t *testing.T) {
	env := newTestEnv(t)
	body := `{"title":"Go Basics","description":"An introduction to Go"}`

	resp := env.request(t, env.student, fiber.MethodPost, "/courses/", body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.instructor, fiber.MethodPost, "/courses/", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Course
	payload := decode(t, resp)
	require.NoError(t, json.Unmarshal(payload.Data, &created))
	require.NotNil(t, created.InstructorID)
	assert.Equal(t, env.instructor.ID, *created.InstructorID)
	assert.Equal(t, models.CourseDraft, created.Status)

	// Staff can create too.
	resp = env.request(t, env.admin, fiber.MethodPost, "/courses/", body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCreateCourseValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, env.instructor, fiber.MethodPost, "/courses/", `{"title":"ab","description":"x"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.request(t, env.instructor, fiber.MethodPost, "/courses/",
		`{"title":"Go Basics","description":"An introduction to Go","price":-5}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateCourseOwnership(t *testing.T) {
	env := newTestEnv(t)
	course := env.createCourse(t, env.instructor.ID, "Go Basics")
	path := "/courses/" + itoa(course.ID)
	body := `{"title":"Go Basics, revised"}`

	resp := env.request(t, env.other, fiber.MethodPatch, path, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.student, fiber.MethodPatch, path, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.instructor, fiber.MethodPatch, path, body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Course
	require.NoError(t, env.db.First(&stored, course.ID).Error)
	assert.Equal(t, "Go Basics, revised", stored.Title)

	resp = env.request(t, env.admin, fiber.MethodPatch, path, `{"title":"Go Basics, final"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestReassignInstructorAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	course := env.createCourse(t, env.instructor.ID, "Go Basics")
	path := "/courses/" + itoa(course.ID)
	body := `{"instructor_id":` + itoa(env.other.ID) + `}`

	// Even the owner cannot hand the course to someone else.
	resp := env.request(t, env.instructor, fiber.MethodPatch, path, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// And the target has to actually hold the instructor role.
	resp = env.request(t, env.admin, fiber.MethodPatch, path,
		`{"instructor_id":`+itoa(env.student.ID)+`}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, env.admin, fiber.MethodPatch, path, body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Course
	require.NoError(t, env.db.First(&stored, course.ID).Error)
	require.NotNil(t, stored.InstructorID)
	assert.Equal(t, env.other.ID, *stored.InstructorID)
}

func TestDeleteAndRestoreCourse(t *testing.T) {
	env := newTestEnv(t)
	course := env.createCourse(t, env.instructor.ID, "Go Basics")
	path := "/courses/" + itoa(course.ID)

	resp := env.request(t, env.other, fiber.MethodDelete, path, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.instructor, fiber.MethodDelete, path, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// Gone from the default views.
	resp = env.request(t, env.student, fiber.MethodGet, path, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.request(t, env.student, fiber.MethodGet, "/courses/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listing struct {
		Courses []models.Course `json:"courses"`
	}
	payload := decode(t, resp)
	require.NoError(t, json.Unmarshal(payload.Data, &listing))
	assert.Empty(t, listing.Courses)

	// Deleting again answers 404, same as any other missing course.
	resp = env.request(t, env.instructor, fiber.MethodDelete, path, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The deleted view and restore are admin only.
	resp = env.request(t, env.instructor, fiber.MethodGet, "/courses/deleted", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.admin, fiber.MethodGet, "/courses/deleted", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload = decode(t, resp)
	require.NoError(t, json.Unmarshal(payload.Data, &listing))
	require.Len(t, listing.Courses, 1)
	assert.Equal(t, course.ID, listing.Courses[0].ID)

	resp = env.request(t, env.instructor, fiber.MethodPost, path+"/restore", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, env.admin, fiber.MethodPost, path+"/restore", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, env.student, fiber.MethodGet, path, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCourseListFilters(t *testing.T) {
	env := newTestEnv(t)
	env.createCourse(t, env.instructor.ID, "Go Basics")
	draft := env.createCourse(t, env.instructor.ID, "Advanced Go")
	require.NoError(t, env.db.Model(draft).Update("status", models.CourseDraft).Error)

	resp := env.request(t, env.student, fiber.MethodGet, "/courses/?status=ACTIVE", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listing struct {
		Courses []models.Course `json:"courses"`
	}
	payload := decode(t, resp)
	require.NoError(t, json.Unmarshal(payload.Data, &listing))
	require.Len(t, listing.Courses, 1)
	assert.Equal(t, "Go Basics", listing.Courses[0].Title)

	resp = env.request(t, env.student, fiber.MethodGet, "/courses/?search=Advanced", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload = decode(t, resp)
	require.NoError(t, json.Unmarshal(payload.Data, &listing))
	require.Len(t, listing.Courses, 1)
	assert.Equal(t, "Advanced Go", listing.Courses[0].Title)

	resp = env.request(t, env.student, fiber.MethodGet, "/courses/?status=BOGUS", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCourseRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, nil, fiber.MethodGet, "/courses/", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
