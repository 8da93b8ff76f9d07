package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentCancelled = "CANCELLED"
)

// Enrollment links a student to a course. The unique index includes is_deleted
// so a student can re-enroll after unenrolling: the old soft-deleted row and
// the new active row coexist.
type Enrollment struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	StudentID      uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	CourseID       uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_student_course"`
	Status         string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED, CANCELLED
	EnrollmentDate time.Time  `json:"enrollment_date"`
	IsDeleted      bool       `json:"is_deleted" gorm:"default:false;uniqueIndex:idx_enrollments_student_course"`
	DeletedAt      *time.Time `json:"deleted_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Student User   `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course  Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// SoftDelete marks the enrollment deleted (unenroll). No-op if already deleted.
func (enrollment *Enrollment) SoftDelete(db *gorm.DB) error {
	if enrollment.IsDeleted {
		return nil
	}
	now := time.Now()
	enrollment.IsDeleted = true
	enrollment.DeletedAt = &now
	return db.Model(enrollment).Updates(map[string]interface{}{"is_deleted": true, "deleted_at": &now}).Error
}

// Restore clears the deletion flag. No-op if not currently deleted.
func (enrollment *Enrollment) Restore(db *gorm.DB) error {
	if !enrollment.IsDeleted {
		return nil
	}
	enrollment.IsDeleted = false
	enrollment.DeletedAt = nil
	return db.Model(enrollment).Updates(map[string]interface{}{"is_deleted": false, "deleted_at": nil}).Error
}

// OwnedBy reports whether the given user is the enrolled student.
func (enrollment *Enrollment) OwnedBy(userID uint) bool {
	return enrollment.StudentID == userID
}
