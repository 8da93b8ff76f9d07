package middleware

import (
	"learnhub/database"
	"learnhub/models"
	"learnhub/policy"

	"github.com/gofiber/fiber/v2"
)

// GetPrincipal loads the authenticated user (with profile) for the userId set
// by JWTMiddleware and builds the policy principal from the fresh database
// state, so role changes take effect without waiting for token expiry.
func GetPrincipal(c *fiber.Ctx) (policy.Principal, *models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return policy.Principal{}, nil, fiber.ErrUnauthorized
	}

	var user models.User
	if err := database.Database.Db.Preload("Profile").First(&user, userID).Error; err != nil {
		return policy.Principal{}, nil, fiber.ErrUnauthorized
	}

	if user.Profile.Status == models.ProfileInactive {
		return policy.Principal{}, nil, fiber.ErrUnauthorized
	}

	p := policy.Principal{
		UserID:  user.ID,
		Role:    user.Profile.Role,
		IsStaff: user.IsStaff,
	}
	return p, &user, nil
}
