package services

import (
	"learnhub/models"
	"learnhub/policy"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CreateEnrollment enrolls the principal in a course. Only students may
// enroll, and only for themselves. The duplicate check is a fast path; the
// unique index on (student, course, is_deleted) is the real guard against the
// read-then-write race, so a constraint violation here also reads as a
// duplicate.
func CreateEnrollment(db *gorm.DB, p policy.Principal, courseID uint) (*models.Enrollment, error) {
	if p.Role != models.RoleStudent {
		return nil, ErrRoleNotAllowed
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND is_deleted = ?", p.UserID, courseID, false).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEnrollment
	}

	enrollment := models.Enrollment{
		StudentID:      p.UserID,
		CourseID:       courseID,
		Status:         models.EnrollmentActive,
		EnrollmentDate: time.Now(),
	}
	if err := db.Create(&enrollment).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEnrollment
		}
		return nil, err
	}

	enrollment.Course = course
	return &enrollment, nil
}

// isUniqueViolation detects a unique-constraint error across the postgres and
// sqlite drivers without importing either.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
