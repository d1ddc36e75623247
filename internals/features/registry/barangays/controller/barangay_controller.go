package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/barangays/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/barangays/model"
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

type BarangayController struct {
	DB       *gorm.DB
	Activity *activityService.ActivityService
}

func NewBarangayController(db *gorm.DB) *BarangayController {
	return &BarangayController{DB: db, Activity: activityService.NewActivityService(db)}
}

// GET /api/barangays
func (ctrl *BarangayController) GetBarangays(c *fiber.Ctx) error {
	var barangays []model.BarangayModel
	if err := ctrl.DB.Order("name ASC").Find(&barangays).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch barangays")
	}

	items := make([]fiber.Map, 0, len(barangays))
	for i := range barangays {
		b := &barangays[i]
		var farmerCount int64
		ctrl.DB.Model(&farmerModel.FarmerModel{}).Where("barangay_id = ?", b.ID).Count(&farmerCount)
		items = append(items, fiber.Map{
			"id":                      b.ID,
			"name":                    b.Name,
			"latitude":                b.Latitude,
			"longitude":               b.Longitude,
			"municipality":            b.Municipality,
			"province":                b.Province,
			"region":                  b.Region,
			"population":              b.Population,
			"total_households":        b.TotalHouseholds,
			"agricultural_households": b.AgriculturalHouseholds,
			"farmer_count":            farmerCount,
			"created_at":              b.CreatedAt,
		})
	}
	return helper.JsonOK(c, "ok", items)
}

// GET /api/barangays/:id
func (ctrl *BarangayController) GetBarangay(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	var barangay model.BarangayModel
	if err := ctrl.DB.First(&barangay, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Barangay not found")
	}
	return helper.JsonOK(c, "ok", barangay)
}

// POST /api/barangays
func (ctrl *BarangayController) CreateBarangay(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.BarangayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "name is required")
	}

	name := strings.TrimSpace(*req.Name)
	var count int64
	ctrl.DB.Model(&model.BarangayModel{}).Where("LOWER(name) = LOWER(?)", name).Count(&count)
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Barangay already registered")
	}

	pick := func(p *string, def string) string {
		if p == nil || strings.TrimSpace(*p) == "" {
			return def
		}
		return strings.TrimSpace(*p)
	}

	barangay := model.BarangayModel{
		Name:                   name,
		Latitude:               req.Latitude,
		Longitude:              req.Longitude,
		Municipality:           pick(req.Municipality, "Unknown"),
		Province:               pick(req.Province, "Unknown"),
		Region:                 pick(req.Region, "Unknown"),
		Population:             req.Population,
		TotalHouseholds:        req.TotalHouseholds,
		AgriculturalHouseholds: req.AgriculturalHouseholds,
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&barangay).Error; err != nil {
			return err
		}
		return activityService.BroadcastNotification(tx, userID,
			"Geographic Registry",
			fmt.Sprintf("Barangay %s, %s was added to the registry", barangay.Name, barangay.Municipality),
			nil)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create barangay")
	}

	ctrl.Activity.Log(c, &userID, "BARANGAY_CREATED", "Barangay", barangay.ID,
		fmt.Sprintf("Registered barangay %s", barangay.Name))

	return helper.JsonCreated(c, "Barangay created successfully", barangay)
}
