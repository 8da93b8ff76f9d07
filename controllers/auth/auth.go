package authController

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/services"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Username  string `json:"username" validate:"required,min=3,max=150"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		Password2 string `json:"password2" validate:"required"`
		Role      string `json:"role" validate:"required,oneof=STUDENT INSTRUCTOR"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := services.RegisterUser(database.Database.Db, services.RegisterInput{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: reqData.Password,
		Role:     reqData.Role,
	})
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return middleware.ServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", user)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Preload("Profile").
		Where("username = ?", reqData.Username).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if user.Profile.Status == models.ProfileInactive {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Account is inactive!", nil)
	}

	accessToken, err := middleware.GenerateJWT(user.ID, user.Username, user.Profile.Role, user.IsStaff)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}
	refreshToken, err := middleware.GenerateRefreshToken(user.ID)
	if err != nil {
		log.Printf("Error generating refresh token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"access":  accessToken,
		"refresh": refreshToken,
		"user":    user,
	})
}

func Refresh(c *fiber.Ctx) error {
	reqData := new(struct {
		Refresh string `json:"refresh"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Refresh == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Refresh token is required!", nil)
	}

	claims, err := middleware.ParseToken(reqData.Refresh)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token type", nil)
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	var user models.User
	if err := database.Database.Db.Preload("Profile").First(&user, uint(userID)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	accessToken, err := middleware.GenerateJWT(user.ID, user.Username, user.Profile.Role, user.IsStaff)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refresh token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token refreshed!", fiber.Map{
		"access": accessToken,
	})
}

// Me returns the authenticated user with profile.
func Me(c *fiber.Ctx) error {
	_, user, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}
