package courseController

import (
	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/policy"
	"learnhub/utils"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

func GetAllCourses(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !policy.Allowed(principal, policy.ActionList, policy.Resource{Entity: policy.EntityCourse}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page   int    `query:"page"`
		Limit  int    `query:"limit"`
		Status string `query:"status"`
		Search string `query:"search"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db.Model(&models.Course{}).Where("is_deleted = ?", false)
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}
	if reqData.Search != "" {
		pattern := "%" + reqData.Search + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	db.Count(&total)

	offset := (reqData.Page - 1) * reqData.Limit

	var courses []models.Course
	if err := db.Preload("Instructor").Offset(offset).Limit(reqData.Limit).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

func GetCourseDetails(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !policy.Allowed(principal, policy.ActionRetrieve, policy.Resource{Entity: policy.EntityCourse}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Preload("Instructor").
		Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func CreateCourse(c *fiber.Ctx) error {
	principal, user, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !policy.Allowed(principal, policy.ActionCreate, policy.Resource{Entity: policy.EntityCourse}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only instructors can create courses!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string  `json:"title" form:"title" validate:"required,min=3,max=255"`
		Description string  `json:"description" form:"description" validate:"required,min=5"`
		Price       float64 `json:"price" form:"price" validate:"gte=0"`
		Status      string  `json:"status" form:"status" validate:"omitempty,oneof=DRAFT ACTIVE INACTIVE"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	status := reqData.Status
	if status == "" {
		status = models.CourseDraft
	}

	// The instructor is always the creator, never client-supplied.
	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        reqData.Price,
		InstructorID: &user.ID,
		Status:       status,
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving course image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course image!", nil)
		}
		course.ImageURL = utils.GetFileURL(path)
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	ownerID := uint(0)
	if course.InstructorID != nil {
		ownerID = *course.InstructorID
	}
	if !policy.Allowed(principal, policy.ActionUpdate, policy.Resource{Entity: policy.EntityCourse, OwnerID: ownerID}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        *string  `json:"title" form:"title"`
		Description  *string  `json:"description" form:"description"`
		Price        *float64 `json:"price" form:"price"`
		Status       *string  `json:"status" form:"status"`
		InstructorID *uint    `json:"instructor_id" form:"instructor_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}

	// Reassigning the instructor is an admin-only operation.
	if reqData.InstructorID != nil {
		if !principal.IsStaff {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins can change the course instructor!", nil)
		}
		var instructor models.User
		if err := database.Database.Db.Preload("Profile").First(&instructor, *reqData.InstructorID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor not found!", nil)
		}
		if instructor.Profile.Role != models.RoleInstructor {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The target user is not an instructor!", nil)
		}
		course.InstructorID = reqData.InstructorID
	}

	// The image field is a tri-state: absent keeps the current image, an empty
	// form value removes it, an uploaded file replaces it.
	imageUpdate := resolveImageUpdate(c)
	if imageUpdate.Remove {
		course.ImageURL = ""
	} else if imageUpdate.File != nil {
		path, err := utils.SaveUploadedFile(imageUpdate.File, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving course image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course image!", nil)
		}
		course.ImageURL = utils.GetFileURL(path)
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func DeleteCourse(c *fiber.Ctx) error {
	principal, _, err := middleware.GetPrincipal(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	ownerID := uint(0)
	if course.InstructorID != nil {
		ownerID = *course.InstructorID
	}
	if !policy.Allowed(principal, policy.ActionDelete, policy.Resource{Entity: policy.EntityCourse, OwnerID: ownerID}) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete this course!", nil)
	}

	if err := course.SoftDelete(database.Database.Db); err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// imageUpdate is the tri-state of the image field on update: absent (neither
// flag nor file), present-and-empty (Remove), or present-with-file (File).
type imageUpdate struct {
	Remove bool
	File   *multipart.FileHeader
}

func resolveImageUpdate(c *fiber.Ctx) imageUpdate {
	if file, err := c.FormFile("image"); err == nil && file != nil {
		return imageUpdate{File: file}
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if values, exists := form.Value["image"]; exists && len(values) > 0 && values[0] == "" {
			return imageUpdate{Remove: true}
		}
	}
	return imageUpdate{}
}
