package models

import (
	"time"
)

// User roles
const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

// Profile statuses
const (
	ProfileActive   = "ACTIVE"
	ProfileInactive = "INACTIVE"
	ProfilePending  = "PENDING"
)

// User is the authentication identity. Users are only ever hard-deleted (by an
// admin), which cascades to the profile, enrollments and submissions.
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Username  string    `json:"username" gorm:"unique;not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	IsStaff   bool      `json:"is_staff" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile Profile `json:"profile" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Profile extends a User with role and account status. Every User has exactly
// one Profile; both are created in the same transaction.
type Profile struct {
	UserID    uint      `json:"user_id" gorm:"primarykey"`
	Role      string    `json:"role" gorm:"default:'STUDENT'"`   // STUDENT, INSTRUCTOR, ADMIN
	Status    string    `json:"status" gorm:"default:'ACTIVE'"`  // ACTIVE, INACTIVE, PENDING
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
