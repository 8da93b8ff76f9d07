package models

import "time"

// Submission statuses
const (
	SubmissionInProgress = "IN_PROGRESS"
	SubmissionSubmitted  = "SUBMITTED"
	SubmissionGraded     = "GRADED"
)

// Submission is a student's attempt at a quiz. The unique index on
// (student, quiz, status) is what actually enforces "one in-progress
// submission per student per quiz"; the application check before insert is
// only a fast path with a friendlier error.
type Submission struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	QuizID      uint       `json:"quiz_id" gorm:"not null;uniqueIndex:idx_submissions_student_quiz_status"`
	StudentID   uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_submissions_student_quiz_status"`
	Status      string     `json:"status" gorm:"default:'IN_PROGRESS';uniqueIndex:idx_submissions_student_quiz_status"` // IN_PROGRESS, SUBMITTED, GRADED
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Score       *float64   `json:"score" gorm:"type:decimal(5,2)"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Quiz    Quiz     `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	Student User     `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:SubmissionID"`
}

// OwnedBy reports whether the given user is the submitting student.
func (submission *Submission) OwnedBy(userID uint) bool {
	return submission.StudentID == userID
}

// Answer holds a student's answer to one question of a submission. Exactly one
// of SelectedChoiceID / TextAnswer is set; re-submitting replaces the row's
// payload entirely (upsert on the unique (submission, question) pair).
type Answer struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	SubmissionID     uint      `json:"submission_id" gorm:"not null;uniqueIndex:idx_answers_submission_question"`
	QuestionID       uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_submission_question"`
	SelectedChoiceID *uint     `json:"selected_choice_id"`
	TextAnswer       *string   `json:"text_answer"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Submission     Submission `json:"-" gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
	Question       Question   `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	SelectedChoice *Choice    `json:"selected_choice,omitempty" gorm:"foreignKey:SelectedChoiceID;constraint:OnDelete:SET NULL"`
}
