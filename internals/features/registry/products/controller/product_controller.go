package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/products/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/products/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

var validate = validator.New()

type ProductController struct {
	DB       *gorm.DB
	Activity *activityService.ActivityService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db, Activity: activityService.NewActivityService(db)}
}

// GET /api/products
func (ctrl *ProductController) GetProducts(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.AgriculturalProductModel{})
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}

	var products []model.AgriculturalProductModel
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch products")
	}

	items := make([]fiber.Map, 0, len(products))
	for i := range products {
		p := &products[i]
		var growerCount int64
		ctrl.DB.Model(&farmerModel.FarmerProductModel{}).Where("product_id = ?", p.ID).Count(&growerCount)
		items = append(items, fiber.Map{
			"id":           p.ID,
			"name":         p.Name,
			"category":     p.Category,
			"description":  p.Description,
			"grower_count": growerCount,
			"created_at":   p.CreatedAt,
		})
	}
	return helper.JsonOK(c, "ok", items)
}

// POST /api/products
func (ctrl *ProductController) CreateProduct(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	name := strings.TrimSpace(req.Name)
	var count int64
	ctrl.DB.Model(&model.AgriculturalProductModel{}).
		Where("LOWER(name) = LOWER(?)", name).Count(&count)
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Product already exists")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "General"
	}

	product := model.AgriculturalProductModel{
		Name:        name,
		Category:    category,
		Description: req.Description,
	}
	if err := ctrl.DB.Create(&product).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create product")
	}

	ctrl.Activity.Log(c, &userID, "PRODUCT_CREATED", "AgriculturalProduct", product.ID,
		fmt.Sprintf("Added product %s", product.Name))

	return helper.JsonCreated(c, "Product created successfully", product)
}

// PUT /api/products/:id
func (ctrl *ProductController) UpdateProduct(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var product model.AgriculturalProductModel
	if err := ctrl.DB.First(&product, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Product not found")
	}

	var req dto.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, product.Name) {
			var count int64
			ctrl.DB.Model(&model.AgriculturalProductModel{}).
				Where("LOWER(name) = LOWER(?) AND id <> ?", name, product.ID).Count(&count)
			if count > 0 {
				return helper.JsonError(c, fiber.StatusBadRequest, "Product name already exists")
			}
		}
		product.Name = name
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	if err := ctrl.DB.Save(&product).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update product")
	}

	ctrl.Activity.Log(c, &userID, "PRODUCT_UPDATED", "AgriculturalProduct", product.ID,
		fmt.Sprintf("Updated product %s", product.Name))

	return helper.JsonUpdated(c, "Product updated successfully", product)
}

// DELETE /api/products/:id
//
// Refused while any farmer record still references the commodity.
func (ctrl *ProductController) DeleteProduct(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var product model.AgriculturalProductModel
	if err := ctrl.DB.First(&product, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Product not found")
	}

	var linked int64
	ctrl.DB.Model(&farmerModel.FarmerProductModel{}).
		Where("product_id = ?", product.ID).Count(&linked)
	if linked > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Cannot delete: This commodity is linked to existing farmer records.")
	}

	if err := ctrl.DB.Delete(&product).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete product")
	}

	ctrl.Activity.Log(c, &userID, "PRODUCT_DELETED", "AgriculturalProduct", product.ID,
		fmt.Sprintf("Removed product %s", product.Name))

	return helper.JsonDeleted(c, "Product deleted successfully", nil)
}
