package controller

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/organizations/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/organizations/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

var validate = validator.New()

type OrganizationController struct {
	DB       *gorm.DB
	Activity *activityService.ActivityService
}

func NewOrganizationController(db *gorm.DB) *OrganizationController {
	return &OrganizationController{DB: db, Activity: activityService.NewActivityService(db)}
}

// GET /api/organizations
func (ctrl *OrganizationController) GetOrganizations(c *fiber.Ctx) error {
	var orgs []model.OrganizationModel
	if err := ctrl.DB.Order("name ASC").Find(&orgs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch organizations")
	}
	return helper.JsonOK(c, "ok", orgs)
}

// GET /api/organizations/:id
func (ctrl *OrganizationController) GetOrganization(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	var org model.OrganizationModel
	if err := ctrl.DB.First(&org, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Organization not found")
	}
	return helper.JsonOK(c, "ok", org)
}

// POST /api/organizations
func (ctrl *OrganizationController) CreateOrganization(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.OrganizationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	org := model.OrganizationModel{
		Name:          req.Name,
		Type:          req.Type,
		Description:   req.Description,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
	}
	if err := ctrl.DB.Create(&org).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create organization")
	}

	ctrl.Activity.Log(c, &userID, "ORGANIZATION_CREATED", "Organization", org.ID,
		fmt.Sprintf("Registered organization %s", org.Name))

	return helper.JsonCreated(c, "Organization created successfully", org)
}

// PUT /api/organizations/:id
func (ctrl *OrganizationController) UpdateOrganization(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var org model.OrganizationModel
	if err := ctrl.DB.First(&org, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Organization not found")
	}

	var req dto.OrganizationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Type != nil {
		org.Type = *req.Type
	}
	if req.Description != nil {
		org.Description = *req.Description
	}
	if req.Address != nil {
		org.Address = *req.Address
	}
	if req.ContactPerson != nil {
		org.ContactPerson = *req.ContactPerson
	}
	if req.ContactEmail != nil {
		org.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		org.ContactPhone = *req.ContactPhone
	}

	if err := ctrl.DB.Save(&org).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update organization")
	}

	ctrl.Activity.Log(c, &userID, "ORGANIZATION_UPDATED", "Organization", org.ID,
		fmt.Sprintf("Updated organization %s", org.Name))

	return helper.JsonUpdated(c, "Organization updated successfully", org)
}

// DELETE /api/organizations/:id
//
// Members and farmers keep their rows; their organization link is cleared
// first so the delete never orphans a foreign key.
func (ctrl *OrganizationController) DeleteOrganization(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var org model.OrganizationModel
	if err := ctrl.DB.First(&org, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Organization not found")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&farmerModel.FarmerModel{}).
			Where("organization_id = ?", org.ID).
			Update("organization_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&userModel.UserModel{}).
			Where("organization_id = ?", org.ID).
			Update("organization_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&org).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete organization")
	}

	ctrl.Activity.Log(c, &userID, "ORGANIZATION_DELETED", "Organization", uint(id),
		fmt.Sprintf("Removed organization %s", org.Name))

	return helper.JsonDeleted(c, "Organization deleted successfully", nil)
}
