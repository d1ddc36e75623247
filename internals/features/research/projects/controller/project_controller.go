package controller

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	"github.com/RonaldMark17/agridata-backend/internals/features/research/projects/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/research/projects/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

var validate = validator.New()

type ProjectController struct {
	DB       *gorm.DB
	Activity *activityService.ActivityService
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db, Activity: activityService.NewActivityService(db)}
}

func parseDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func (ctrl *ProjectController) serializeProject(p *model.ResearchProjectModel) fiber.Map {
	out := fiber.Map{
		"id":                        p.ID,
		"project_code":              p.ProjectCode,
		"title":                     p.Title,
		"description":               p.Description,
		"principal_investigator_id": p.PrincipalInvestigatorID,
		"organization_id":           p.OrganizationID,
		"start_date":                p.StartDate,
		"end_date":                  p.EndDate,
		"status":                    p.Status,
		"research_type":             p.ResearchType,
		"objectives":                p.Objectives,
		"methodology":               p.Methodology,
		"budget":                    p.Budget,
		"funding_source":            p.FundingSource,
		"created_at":                p.CreatedAt,
		"updated_at":                p.UpdatedAt,
	}
	if p.PrincipalInvestigator != nil {
		name := p.PrincipalInvestigator.FullName
		if name == "" {
			name = p.PrincipalInvestigator.Username
		}
		out["principal_investigator_name"] = name
	}
	if p.Organization != nil {
		out["organization_name"] = p.Organization.Name
	}
	return out
}

// GET /api/projects
func (ctrl *ProjectController) GetProjects(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ResearchProjectModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("LOWER(status) = LOWER(?)", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(project_code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count projects")
	}

	var projects []model.ResearchProjectModel
	if err := q.Preload("PrincipalInvestigator").Preload("Organization").
		Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&projects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	items := make([]fiber.Map, 0, len(projects))
	for i := range projects {
		items = append(items, ctrl.serializeProject(&projects[i]))
	}
	return helper.JsonList(c, items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/projects/:id
func (ctrl *ProjectController) GetProject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	var project model.ResearchProjectModel
	if err := ctrl.DB.Preload("PrincipalInvestigator").Preload("Organization").
		First(&project, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Project not found")
	}
	return helper.JsonOK(c, "ok", ctrl.serializeProject(&project))
}

// POST /api/projects
func (ctrl *ProjectController) CreateProject(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.ProjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.ProjectCode != nil && *req.ProjectCode != "" {
		var count int64
		ctrl.DB.Model(&model.ResearchProjectModel{}).
			Where("LOWER(project_code) = LOWER(?)", *req.ProjectCode).Count(&count)
		if count > 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Project code already exists")
		}
	}

	status := "Planning"
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	project := model.ResearchProjectModel{
		ProjectCode:             req.ProjectCode,
		Title:                   req.Title,
		Description:             req.Description,
		PrincipalInvestigatorID: &userID,
		OrganizationID:          req.OrganizationID,
		StartDate:               parseDate(req.StartDate),
		EndDate:                 parseDate(req.EndDate),
		Status:                  status,
		ResearchType:            req.ResearchType,
		Objectives:              req.Objectives,
		Methodology:             req.Methodology,
		Budget:                  req.Budget,
		FundingSource:           req.FundingSource,
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		return activityService.BroadcastNotification(tx, userID,
			"Research Initiative Launched",
			fmt.Sprintf("New %s project: %s", project.ResearchType, project.Title),
			nil)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create project")
	}

	ctrl.Activity.Log(c, &userID, "PROJECT_CREATED", "ResearchProject", project.ID,
		fmt.Sprintf("Launched project %q", project.Title))

	return helper.JsonCreated(c, "Project created successfully", ctrl.serializeProject(&project))
}

// PUT /api/projects/:id
func (ctrl *ProjectController) UpdateProject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var project model.ResearchProjectModel
	if err := ctrl.DB.First(&project, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Project not found")
	}

	var req dto.ProjectUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.ProjectCode != nil {
		if *req.ProjectCode != "" {
			var count int64
			ctrl.DB.Model(&model.ResearchProjectModel{}).
				Where("LOWER(project_code) = LOWER(?) AND id <> ?", *req.ProjectCode, project.ID).
				Count(&count)
			if count > 0 {
				return helper.JsonError(c, fiber.StatusBadRequest, "Project code already exists")
			}
		}
		project.ProjectCode = req.ProjectCode
	}
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.OrganizationID != nil {
		project.OrganizationID = req.OrganizationID
	}
	if req.StartDate != nil {
		project.StartDate = parseDate(req.StartDate)
	}
	if req.EndDate != nil {
		project.EndDate = parseDate(req.EndDate)
	}
	if req.Status != nil && *req.Status != "" {
		project.Status = *req.Status
	}
	if req.ResearchType != nil && *req.ResearchType != "" {
		project.ResearchType = *req.ResearchType
	}
	if req.Objectives != nil {
		project.Objectives = req.Objectives
	}
	if req.Methodology != nil {
		project.Methodology = req.Methodology
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.FundingSource != nil {
		project.FundingSource = req.FundingSource
	}

	if err := ctrl.DB.Save(&project).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update project")
	}

	ctrl.Activity.Log(c, &userID, "PROJECT_UPDATED", "ResearchProject", project.ID,
		fmt.Sprintf("Updated project %q", project.Title))

	return helper.JsonUpdated(c, "Project updated successfully", ctrl.serializeProject(&project))
}

// DELETE /api/projects/:id
func (ctrl *ProjectController) DeleteProject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var project model.ResearchProjectModel
	if err := ctrl.DB.First(&project, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Project not found")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		// attached questionnaires survive, detached from the project
		if err := tx.Table("survey_questionnaires").
			Where("project_id = ?", project.ID).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete project")
	}

	ctrl.Activity.Log(c, &userID, "PROJECT_DELETED", "ResearchProject", uint(id),
		fmt.Sprintf("Deleted project %q", project.Title))

	return helper.JsonDeleted(c, "Project deleted successfully", nil)
}
