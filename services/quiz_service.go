package services

import (
	"learnhub/models"
	"learnhub/policy"
	"math"
	"time"

	"gorm.io/gorm"
)

// StartSubmission returns the principal's in-progress submission for the quiz,
// creating one if none exists. The second return value reports whether a new
// submission was created. The unique index on (student, quiz, status) backs
// the one-in-progress invariant under concurrent starts.
func StartSubmission(db *gorm.DB, p policy.Principal, quizID uint) (*models.Submission, bool, error) {
	var quiz models.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var existing models.Submission
	err := db.Where("quiz_id = ? AND student_id = ? AND status = ?",
		quizID, p.UserID, models.SubmissionInProgress).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	submission := models.Submission{
		QuizID:    quizID,
		StudentID: p.UserID,
		Status:    models.SubmissionInProgress,
		StartedAt: time.Now(),
	}
	if err := db.Create(&submission).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race to a concurrent start; hand back the winner's row.
			if err := db.Where("quiz_id = ? AND student_id = ? AND status = ?",
				quizID, p.UserID, models.SubmissionInProgress).First(&existing).Error; err != nil {
				return nil, false, err
			}
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &submission, true, nil
}

// SubmitAnswerInput distinguishes a choice answer from a text answer. Exactly
// one of the two must be provided.
type SubmitAnswerInput struct {
	QuestionID       uint
	SelectedChoiceID *uint
	TextAnswer       *string
}

// SubmitAnswer upserts the answer for (submission, question), replacing any
// prior value entirely: whichever of choice/text is not provided is nulled.
func SubmitAnswer(db *gorm.DB, submission *models.Submission, in SubmitAnswerInput) (*models.Answer, error) {
	if submission.Status != models.SubmissionInProgress {
		return nil, ErrInvalidState
	}
	if (in.SelectedChoiceID == nil) == (in.TextAnswer == nil) {
		return nil, ErrInvalidInput
	}

	var question models.Question
	if err := db.Where("id = ? AND quiz_id = ?", in.QuestionID, submission.QuizID).First(&question).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.SelectedChoiceID != nil {
		var choice models.Choice
		if err := db.Where("id = ? AND question_id = ?", *in.SelectedChoiceID, question.ID).First(&choice).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	var answer models.Answer
	err := db.Where("submission_id = ? AND question_id = ?", submission.ID, question.ID).First(&answer).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == gorm.ErrRecordNotFound {
		answer = models.Answer{
			SubmissionID:     submission.ID,
			QuestionID:       question.ID,
			SelectedChoiceID: in.SelectedChoiceID,
			TextAnswer:       in.TextAnswer,
		}
		createErr := db.Create(&answer).Error
		if createErr == nil {
			return &answer, nil
		}
		if !isUniqueViolation(createErr) {
			return nil, createErr
		}
		// Lost the race to a concurrent first answer; update the winner's row.
		if err := db.Where("submission_id = ? AND question_id = ?",
			submission.ID, question.ID).First(&answer).Error; err != nil {
			return nil, err
		}
	}

	answer.SelectedChoiceID = in.SelectedChoiceID
	answer.TextAnswer = in.TextAnswer
	if err := db.Model(&answer).Updates(map[string]interface{}{
		"selected_choice_id": in.SelectedChoiceID,
		"text_answer":        in.TextAnswer,
	}).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// FinalizeSubmission closes an in-progress submission and grades it. Every
// question counts toward the total; only MC/SC/TF questions whose answer
// selected a correct choice count as correct, so TEXT questions always score
// zero until re-graded by hand.
func FinalizeSubmission(db *gorm.DB, submission *models.Submission) error {
	if submission.Status != models.SubmissionInProgress {
		return ErrInvalidState
	}

	now := time.Now()
	submission.Status = models.SubmissionSubmitted
	submission.SubmittedAt = &now

	var questions []models.Question
	if err := db.Where("quiz_id = ?", submission.QuizID).Find(&questions).Error; err != nil {
		return err
	}

	total := len(questions)
	if total == 0 {
		score := 0.0
		submission.Score = &score
		submission.Status = models.SubmissionGraded
		return persistGrade(db, submission)
	}

	var answers []models.Answer
	if err := db.Preload("SelectedChoice").
		Where("submission_id = ?", submission.ID).Find(&answers).Error; err != nil {
		return err
	}
	answerByQuestion := make(map[uint]models.Answer, len(answers))
	for _, ans := range answers {
		answerByQuestion[ans.QuestionID] = ans
	}

	correct := 0
	for _, question := range questions {
		if !models.AutoGradable(question.Type) {
			continue
		}
		ans, ok := answerByQuestion[question.ID]
		if ok && ans.SelectedChoice != nil && ans.SelectedChoice.IsCorrect {
			correct++
		}
	}

	score := math.Round(float64(correct)/float64(total)*100*100) / 100
	submission.Score = &score
	submission.Status = models.SubmissionGraded
	return persistGrade(db, submission)
}

func persistGrade(db *gorm.DB, submission *models.Submission) error {
	return db.Model(submission).Updates(map[string]interface{}{
		"status":       submission.Status,
		"submitted_at": submission.SubmittedAt,
		"score":        submission.Score,
	}).Error
}
