package controller

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

// Household succession records. A child row is only reachable through its
// farmer, so every handler re-checks the farmer_id pairing and returns 404
// on a mismatch rather than leaking another household's row.

func (ctrl *FarmerController) loadFarmerChild(c *fiber.Ctx) (*model.FarmerModel, *model.FarmerChildModel, error) {
	farmerID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	childID, err := strconv.Atoi(c.Params("childId"))
	if err != nil {
		return nil, nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var farmer model.FarmerModel
	if err := ctrl.DB.First(&farmer, farmerID).Error; err != nil {
		return nil, nil, helper.JsonError(c, fiber.StatusNotFound, "Farmer not found")
	}
	var child model.FarmerChildModel
	if err := ctrl.DB.Where("id = ? AND farmer_id = ?", childID, farmer.ID).First(&child).Error; err != nil {
		return nil, nil, helper.JsonError(c, fiber.StatusNotFound, "Child record not found")
	}
	return &farmer, &child, nil
}

// POST /api/farmers/:id/children
func (ctrl *FarmerController) AddFarmerChild(c *fiber.Ctx) error {
	farmerID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var farmer model.FarmerModel
	if err := ctrl.DB.First(&farmer, farmerID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Farmer not found")
	}

	var req dto.FarmerChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == nil || *req.Name == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "name is required")
	}

	child := model.FarmerChildModel{
		FarmerID:          farmer.ID,
		Name:              req.Name,
		Age:               req.Age,
		Gender:            req.Gender,
		EducationLevel:    req.EducationLevel,
		CurrentOccupation: req.CurrentOccupation,
		Notes:             req.Notes,
	}
	if req.ContinuesFarming != nil {
		child.ContinuesFarming = *req.ContinuesFarming
	}
	if req.InvolvementLevel != nil && *req.InvolvementLevel != "" {
		child.InvolvementLevel = *req.InvolvementLevel
	} else {
		child.InvolvementLevel = "None"
	}

	if err := ctrl.DB.Create(&child).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add child record")
	}

	ctrl.Activity.Log(c, &userID, "CHILD_ADDED", "FarmerChild", child.ID,
		fmt.Sprintf("Added child record for %s", farmer.FullName()))

	return helper.JsonCreated(c, "Child record added successfully", child)
}

// PUT /api/farmers/:id/children/:childId
func (ctrl *FarmerController) UpdateFarmerChild(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	farmer, child, errResp := ctrl.loadFarmerChild(c)
	if errResp != nil {
		return errResp
	}

	var req dto.FarmerChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name != nil {
		child.Name = req.Name
	}
	if req.Age != nil {
		child.Age = req.Age
	}
	if req.Gender != nil {
		child.Gender = req.Gender
	}
	if req.EducationLevel != nil {
		child.EducationLevel = req.EducationLevel
	}
	if req.ContinuesFarming != nil {
		child.ContinuesFarming = *req.ContinuesFarming
	}
	if req.InvolvementLevel != nil && *req.InvolvementLevel != "" {
		child.InvolvementLevel = *req.InvolvementLevel
	}
	if req.CurrentOccupation != nil {
		child.CurrentOccupation = req.CurrentOccupation
	}
	if req.Notes != nil {
		child.Notes = req.Notes
	}

	if err := ctrl.DB.Save(child).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update child record")
	}

	ctrl.Activity.Log(c, &userID, "CHILD_UPDATED", "FarmerChild", child.ID,
		fmt.Sprintf("Updated child record for %s", farmer.FullName()))

	return helper.JsonUpdated(c, "Child record updated successfully", child)
}

// DELETE /api/farmers/:id/children/:childId
func (ctrl *FarmerController) DeleteFarmerChild(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	farmer, child, errResp := ctrl.loadFarmerChild(c)
	if errResp != nil {
		return errResp
	}

	if err := ctrl.DB.Delete(child).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete child record")
	}

	ctrl.Activity.Log(c, &userID, "CHILD_DELETED", "FarmerChild", child.ID,
		fmt.Sprintf("Removed child record for %s", farmer.FullName()))

	return helper.JsonDeleted(c, "Child record deleted successfully", nil)
}
