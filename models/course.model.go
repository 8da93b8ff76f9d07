package models

import (
	"time"

	"gorm.io/gorm"
)

// Course statuses
const (
	CourseDraft    = "DRAFT"
	CourseActive   = "ACTIVE"
	CourseInactive = "INACTIVE"
)

// Course is a course offered on the platform. Deleting a course through the
// API is always a soft delete; the row only disappears if the owning
// instructor is hard-deleted and the FK is set null instead.
type Course struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text"`
	Price        float64    `json:"price" gorm:"type:decimal(10,2);default:0"`
	InstructorID *uint      `json:"instructor_id" gorm:"index"`
	Status       string     `json:"status" gorm:"index;default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	ImageURL     string     `json:"image_url"`
	IsDeleted    bool       `json:"is_deleted" gorm:"index;default:false"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Instructor *User `json:"instructor,omitempty" gorm:"foreignKey:InstructorID;constraint:OnDelete:SET NULL"`
}

// SoftDelete marks the course deleted. No-op if already deleted.
func (course *Course) SoftDelete(db *gorm.DB) error {
	if course.IsDeleted {
		return nil
	}
	now := time.Now()
	course.IsDeleted = true
	course.DeletedAt = &now
	return db.Model(course).Updates(map[string]interface{}{"is_deleted": true, "deleted_at": &now}).Error
}

// Restore clears the deletion flag. No-op if not currently deleted.
func (course *Course) Restore(db *gorm.DB) error {
	if !course.IsDeleted {
		return nil
	}
	course.IsDeleted = false
	course.DeletedAt = nil
	return db.Model(course).Updates(map[string]interface{}{"is_deleted": false, "deleted_at": nil}).Error
}

// OwnedBy reports whether the given user is the course instructor.
func (course *Course) OwnedBy(userID uint) bool {
	return course.InstructorID != nil && *course.InstructorID == userID
}
