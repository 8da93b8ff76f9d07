package models

import "time"

// Question types
const (
	QuestionMultipleChoice = "MC"
	QuestionSingleChoice   = "SC"
	QuestionTrueFalse      = "TF"
	QuestionText           = "TEXT"
)

// AutoGradable reports whether a question type is graded automatically.
// TEXT answers need manual review and never count as correct.
func AutoGradable(questionType string) bool {
	switch questionType {
	case QuestionMultipleChoice, QuestionSingleChoice, QuestionTrueFalse:
		return true
	}
	return false
}

// Quiz belongs to a course and holds ordered questions.
type Quiz struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	CourseID         uint      `json:"course_id" gorm:"index;not null"`
	Title            string    `json:"title" gorm:"not null"`
	Description      string    `json:"description" gorm:"type:text"`
	TimeLimitMinutes *uint     `json:"time_limit_minutes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Course    Course     `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// Question is a single question within a quiz.
type Question struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	QuizID    uint      `json:"quiz_id" gorm:"index;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Type      string    `json:"type" gorm:"default:'MC'"` // MC, SC, TF, TEXT
	Order     int       `json:"order" gorm:"column:display_order;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Quiz    Quiz     `json:"-" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	Choices []Choice `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
}

// Choice is a possible answer for a choice-based question.
type Choice struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	QuestionID uint      `json:"question_id" gorm:"index;not null"`
	Text       string    `json:"text" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Question Question `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
