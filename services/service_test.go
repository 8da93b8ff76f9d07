package services

import (
	"learnhub/config"
	"learnhub/database"
	"learnhub/models"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	database.RunMigrations(db)
	return db
}

func testConfig() {
	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}
}

func createUser(t *testing.T, db *gorm.DB, username, role string, staff bool) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsStaff:  staff,
		Profile: models.Profile{
			Role:   role,
			Status: models.ProfileActive,
		},
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCourse(t *testing.T, db *gorm.DB, instructorID uint, title string) *models.Course {
	t.Helper()
	course := models.Course{
		Title:        title,
		Description:  "test course",
		InstructorID: &instructorID,
		Status:       models.CourseActive,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func createQuiz(t *testing.T, db *gorm.DB, courseID uint, title string) *models.Quiz {
	t.Helper()
	quiz := models.Quiz{CourseID: courseID, Title: title}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

// addQuestion attaches a question with one correct and one wrong choice,
// returning the question and its correct choice. TEXT questions get no
// choices.
func addQuestion(t *testing.T, db *gorm.DB, quizID uint, qType string, order int) (*models.Question, *models.Choice) {
	t.Helper()
	question := models.Question{QuizID: quizID, Text: "q", Type: qType, Order: order}
	require.NoError(t, db.Create(&question).Error)
	if qType == models.QuestionText {
		return &question, nil
	}
	correct := models.Choice{QuestionID: question.ID, Text: "right", IsCorrect: true}
	require.NoError(t, db.Create(&correct).Error)
	wrong := models.Choice{QuestionID: question.ID, Text: "wrong"}
	require.NoError(t, db.Create(&wrong).Error)
	return &question, &correct
}
