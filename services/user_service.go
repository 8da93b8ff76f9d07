package services

import (
	"fmt"
	"learnhub/config"
	"learnhub/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput is a validated registration payload. Role is restricted to
// STUDENT or INSTRUCTOR at the validation layer; admins are provisioned out of
// band, never through the public API.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// RegisterUser creates the User and its Profile in one transaction. There is
// no implicit hook creating profiles; the pair is a single atomic operation.
func RegisterUser(db *gorm.DB, in RegisterInput) (*models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("username taken: %w", ErrDuplicateResource)
	}
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("email taken: %w", ErrDuplicateResource)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), config.AppConfig.SaltRound)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		IsStaff:  false,
		Profile: models.Profile{
			Role:   in.Role,
			Status: models.ProfileActive,
		},
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return SyncStaffRole(tx, &user)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// SyncStaffRole enforces the invariant that a staff user's profile role is
// ADMIN. Called on every user mutation path rather than hidden in a hook.
func SyncStaffRole(db *gorm.DB, user *models.User) error {
	if !user.IsStaff || user.Profile.Role == models.RoleAdmin {
		return nil
	}
	user.Profile.Role = models.RoleAdmin
	return db.Model(&models.Profile{}).
		Where("user_id = ?", user.ID).
		Update("role", models.RoleAdmin).Error
}

// DeleteUser hard-deletes a user and cascades to dependents. Staff accounts
// cannot be removed this way.
func DeleteUser(db *gorm.DB, userID uint) error {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	if user.IsStaff {
		return fmt.Errorf("cannot delete staff user: %w", ErrInvalidInput)
	}
	return db.Delete(&user).Error
}
