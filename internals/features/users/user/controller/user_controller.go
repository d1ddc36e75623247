package controller

import (
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
	activityModel "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/model"
	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	experienceModel "github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/model"
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	projectModel "github.com/RonaldMark17/agridata-backend/internals/features/research/projects/model"
	surveyModel "github.com/RonaldMark17/agridata-backend/internals/features/research/surveys/model"
	"github.com/RonaldMark17/agridata-backend/internals/features/users/user/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
	helpers "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

var validate = validator.New()

type UserController struct {
	DB       *gorm.DB
	Activity *activityService.ActivityService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Activity: activityService.NewActivityService(db)}
}

// GET /api/users
func (ctrl *UserController) GetAllUsers(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctrl.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	return helpers.JsonOK(c, "ok", users)
}

// GET /api/users/:id
func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	var user model.UserModel
	if err := ctrl.DB.First(&user, id).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helpers.JsonOK(c, "ok", user)
}

// PUT /api/users/:id
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, id).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, err)
	}

	if req.Username != nil && *req.Username != user.Username {
		var count int64
		ctrl.DB.Model(&model.UserModel{}).Where("username = ?", *req.Username).Count(&count)
		if count > 0 {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Username already taken")
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		var count int64
		ctrl.DB.Model(&model.UserModel{}).Where("email = ?", *req.Email).Count(&count)
		if count > 0 {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Email already registered")
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		if !constants.IsValidRole(*req.Role) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Unknown role")
		}
		user.Role = *req.Role
	}
	if req.OrganizationID != nil {
		user.OrganizationID = req.OrganizationID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.OTPEnabled != nil {
		user.OTPEnabled = *req.OTPEnabled
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
		}
	}

	if err := ctrl.DB.Save(&user).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Failed to update user")
	}
	return helpers.JsonUpdated(c, "User updated successfully", user)
}

// DELETE /api/users/:id
//
// Dependent rows are unlinked (author references set to NULL), not
// deleted, so encoded farmers, recorded experiences, led projects and the
// audit history all survive the account.
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	callerID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	// operator lockout guard
	if uint(id) == callerID {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Cannot delete the active admin account")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, id).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&farmerModel.FarmerModel{}).
			Where("data_encoder_id = ?", id).
			Update("data_encoder_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&experienceModel.FarmerExperienceModel{}).
			Where("interviewer_id = ?", id).
			Update("interviewer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&projectModel.ResearchProjectModel{}).
			Where("principal_investigator_id = ?", id).
			Update("principal_investigator_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&surveyModel.SurveyQuestionnaireModel{}).
			Where("created_by = ?", id).
			Update("created_by", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&activityModel.ActivityLogModel{}).
			Where("user_id = ?", id).
			Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		log.Printf("[ERROR] Delete user failed: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	ctrl.Activity.Log(c, &callerID, "USER_DELETED", "User", uint(id),
		fmt.Sprintf("Revoked account %s and unlinked records", user.Username))

	return helpers.JsonDeleted(c, "User identity revoked and data unlinked successfully", nil)
}
