package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	projectModel "github.com/RonaldMark17/agridata-backend/internals/features/research/projects/model"
	"github.com/RonaldMark17/agridata-backend/internals/features/research/surveys/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/research/surveys/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

var validate = validator.New()

type SurveyController struct {
	DB       *gorm.DB
	Activity *activityService.ActivityService
}

func NewSurveyController(db *gorm.DB) *SurveyController {
	return &SurveyController{DB: db, Activity: activityService.NewActivityService(db)}
}

// GET /api/surveys
func (ctrl *SurveyController) GetSurveys(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.SurveyQuestionnaireModel{})
	if projectID := strings.TrimSpace(c.Query("project_id")); projectID != "" {
		if id, err := strconv.Atoi(projectID); err == nil && id > 0 {
			q = q.Where("project_id = ?", id)
		}
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		q = q.Where("is_active = ?", active == "true" || active == "1")
	}

	var surveys []model.SurveyQuestionnaireModel
	if err := q.Order("created_at DESC").Find(&surveys).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch surveys")
	}
	return helper.JsonOK(c, "ok", surveys)
}

// GET /api/surveys/:id
func (ctrl *SurveyController) GetSurvey(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	var survey model.SurveyQuestionnaireModel
	if err := ctrl.DB.First(&survey, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Survey not found")
	}
	return helper.JsonOK(c, "ok", survey)
}

// POST /api/surveys
func (ctrl *SurveyController) CreateSurvey(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.SurveyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.ProjectID != nil {
		var project projectModel.ResearchProjectModel
		if err := ctrl.DB.First(&project, *req.ProjectID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown project")
		}
	}

	category := "General"
	if req.Category != nil && *req.Category != "" {
		category = *req.Category
	}

	survey := model.SurveyQuestionnaireModel{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		TargetGroup: req.TargetGroup,
		CreatedBy:   &userID,
		IsActive:    true,
	}
	if err := ctrl.DB.Create(&survey).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create survey")
	}

	ctrl.Activity.Log(c, &userID, "SURVEY_CREATED", "SurveyQuestionnaire", survey.ID,
		fmt.Sprintf("Created survey %q", survey.Title))

	return helper.JsonCreated(c, "Survey created successfully", survey)
}

// PUT /api/surveys/:id
func (ctrl *SurveyController) UpdateSurvey(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var survey model.SurveyQuestionnaireModel
	if err := ctrl.DB.First(&survey, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Survey not found")
	}

	var req dto.SurveyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.ProjectID != nil {
		var project projectModel.ResearchProjectModel
		if err := ctrl.DB.First(&project, *req.ProjectID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Unknown project")
		}
		survey.ProjectID = req.ProjectID
	}
	if req.Title != nil {
		survey.Title = *req.Title
	}
	if req.Description != nil {
		survey.Description = req.Description
	}
	if req.Category != nil && *req.Category != "" {
		survey.Category = *req.Category
	}
	if req.TargetGroup != nil {
		survey.TargetGroup = req.TargetGroup
	}
	if req.IsActive != nil {
		survey.IsActive = *req.IsActive
	}

	if err := ctrl.DB.Save(&survey).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update survey")
	}

	ctrl.Activity.Log(c, &userID, "SURVEY_UPDATED", "SurveyQuestionnaire", survey.ID,
		fmt.Sprintf("Updated survey %q", survey.Title))

	return helper.JsonUpdated(c, "Survey updated successfully", survey)
}

// DELETE /api/surveys/:id
func (ctrl *SurveyController) DeleteSurvey(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var survey model.SurveyQuestionnaireModel
	if err := ctrl.DB.First(&survey, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Survey not found")
	}

	if err := ctrl.DB.Delete(&survey).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete survey")
	}

	ctrl.Activity.Log(c, &userID, "SURVEY_DELETED", "SurveyQuestionnaire", uint(id),
		fmt.Sprintf("Deleted survey %q", survey.Title))

	return helper.JsonDeleted(c, "Survey deleted successfully", nil)
}
