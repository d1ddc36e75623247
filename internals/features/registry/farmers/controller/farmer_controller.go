package controller

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/RonaldMark17/agridata-backend/internals/configs"
	activityService "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/service"
	experienceModel "github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/model"
	barangayModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/barangays/model"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/dto"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	"github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/service"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
	helperAuth "github.com/RonaldMark17/agridata-backend/internals/helpers/auth"
)

var sortableFarmerColumns = map[string]bool{
	"created_at":         true,
	"updated_at":         true,
	"first_name":         true,
	"last_name":          true,
	"age":                true,
	"farm_size_hectares": true,
	"annual_income":      true,
}

type FarmerController struct {
	DB       *gorm.DB
	Activity *activityService.ActivityService
}

func NewFarmerController(db *gorm.DB) *FarmerController {
	return &FarmerController{DB: db, Activity: activityService.NewActivityService(db)}
}

// formValues flattens the submitted form regardless of encoding. Multipart
// is the normal path (profile image uploads); urlencoded is accepted too.
func formValues(c *fiber.Ctx) map[string]string {
	out := map[string]string{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for k, v := range form.Value {
			if len(v) > 0 {
				out[k] = v[0]
			} else {
				out[k] = ""
			}
		}
		return out
	}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		out[string(key)] = string(value)
	})
	return out
}

func parseProductsField(raw string) ([]dto.FarmerProductInput, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []dto.FarmerProductInput{}, nil
	}
	var inputs []dto.FarmerProductInput
	if err := sonic.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil, err
	}
	return inputs, nil
}

func (ctrl *FarmerController) serializeFarmer(f *model.FarmerModel) fiber.Map {
	out := fiber.Map{
		"id":                           f.ID,
		"farmer_code":                  f.FarmerCode,
		"first_name":                   f.FirstName,
		"middle_name":                  f.MiddleName,
		"last_name":                    f.LastName,
		"suffix":                       f.Suffix,
		"full_name":                    f.FullName(),
		"age":                          f.Age,
		"gender":                       f.Gender,
		"civil_status":                 f.CivilStatus,
		"birth_date":                   f.BirthDate,
		"barangay_id":                  f.BarangayID,
		"organization_id":              f.OrganizationID,
		"data_encoder_id":              f.DataEncoderID,
		"address":                      f.Address,
		"contact_number":               f.ContactNumber,
		"education_level":              f.EducationLevel,
		"annual_income":                f.AnnualIncome,
		"income_source":                f.IncomeSource,
		"number_of_children":           f.NumberOfChildren,
		"children_farming_involvement": f.ChildrenFarmingInvolvement,
		"primary_occupation":           f.PrimaryOccupation,
		"secondary_occupation":         f.SecondaryOccupation,
		"farm_size_hectares":           f.FarmSizeHectares,
		"land_ownership":               f.LandOwnership,
		"years_farming":                f.YearsFarming,
		"profile_image_url":            f.ImageURL(),
		"created_at":                   f.CreatedAt,
		"updated_at":                   f.UpdatedAt,
	}
	if f.Barangay != nil {
		out["barangay_name"] = f.Barangay.Name
	}
	if f.Organization != nil {
		out["organization_name"] = f.Organization.Name
	}
	return out
}

func (ctrl *FarmerController) farmerProducts(farmerID uint) []fiber.Map {
	var rows []model.FarmerProductModel
	ctrl.DB.Preload("Product").Where("farmer_id = ?", farmerID).Find(&rows)
	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		m := fiber.Map{
			"id":                r.ID,
			"product_id":        r.ProductID,
			"production_volume": r.ProductionVolume,
			"unit":              r.Unit,
			"is_primary":        r.IsPrimary,
			"selling_price":     r.SellingPrice,
		}
		if r.Product != nil {
			m["product_name"] = r.Product.Name
			m["category"] = r.Product.Category
		}
		out = append(out, m)
	}
	return out
}

// GET /api/farmers
func (ctrl *FarmerController) GetFarmers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.FarmerModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(farmer_code) LIKE ?",
			like, like, like,
		)
	}
	if barangayID := strings.TrimSpace(c.Query("barangay_id")); barangayID != "" {
		if id, err := strconv.Atoi(barangayID); err == nil && id > 0 {
			q = q.Where("barangay_id = ?", id)
		}
	}

	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if !sortableFarmerColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(c.Query("order"), "asc") {
		direction = "ASC"
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count farmers")
	}

	var farmers []model.FarmerModel
	if err := q.Preload("Barangay").
		Order(sortBy + " " + direction).
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&farmers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch farmers")
	}

	items := make([]fiber.Map, 0, len(farmers))
	for i := range farmers {
		row := ctrl.serializeFarmer(&farmers[i])
		row["products"] = ctrl.farmerProducts(farmers[i].ID)
		items = append(items, row)
	}

	return helper.JsonList(c, items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/farmers/:id
func (ctrl *FarmerController) GetFarmer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}

	var farmer model.FarmerModel
	if err := ctrl.DB.Preload("Barangay").Preload("Organization").First(&farmer, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Farmer not found")
	}

	detail := ctrl.serializeFarmer(&farmer)
	detail["products"] = ctrl.farmerProducts(farmer.ID)

	var children []model.FarmerChildModel
	ctrl.DB.Where("farmer_id = ?", farmer.ID).Order("id ASC").Find(&children)
	detail["children"] = children

	var experiences []experienceModel.FarmerExperienceModel
	ctrl.DB.Where("farmer_id = ?", farmer.ID).Order("created_at DESC").Find(&experiences)
	detail["experiences"] = experiences

	return helper.JsonOK(c, "ok", detail)
}

// POST /api/farmers
func (ctrl *FarmerController) CreateFarmer(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	form := formValues(c)

	firstName := dto.FormString(form["first_name"], "")
	lastName := dto.FormString(form["last_name"], "")
	if firstName == "" || lastName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "first_name and last_name are required")
	}

	barangayID := dto.FormInt(form["barangay_id"], 0)
	if barangayID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "barangay_id is required")
	}
	var barangay barangayModel.BarangayModel
	if err := ctrl.DB.First(&barangay, barangayID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown barangay")
	}

	products, err := parseProductsField(form["products"])
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "products must be a JSON array")
	}

	birthDate := dto.FormDate(form["birth_date"])
	farmSize := dto.FormFloat(form["farm_size_hectares"], 0)
	landOwnership := dto.FormString(form["land_ownership"], "Owner")

	farmer := model.FarmerModel{
		FarmerCode:                 dto.FormStringPtr(form["farmer_code"]),
		FirstName:                  firstName,
		MiddleName:                 dto.FormStringPtr(form["middle_name"]),
		LastName:                   lastName,
		Suffix:                     dto.FormStringPtr(form["suffix"]),
		Age:                        service.ResolveAge(birthDate, dto.FormInt(form["age"], 0)),
		Gender:                     dto.FormString(form["gender"], "Male"),
		CivilStatus:                dto.FormString(form["civil_status"], "Single"),
		BirthDate:                  birthDate,
		BarangayID:                 uint(barangayID),
		OrganizationID:             dto.FormUintPtr(form["organization_id"]),
		DataEncoderID:              &userID,
		Address:                    dto.FormStringPtr(form["address"]),
		ContactNumber:              dto.FormStringPtr(form["contact_number"]),
		EducationLevel:             dto.FormString(form["education_level"], "Elementary"),
		AnnualIncome:               dto.FormFloatPtr(form["annual_income"]),
		IncomeSource:               dto.FormStringPtr(form["income_source"]),
		NumberOfChildren:           dto.FormInt(form["number_of_children"], 0),
		ChildrenFarmingInvolvement: dto.FormBool(form["children_farming_involvement"], false),
		PrimaryOccupation:          dto.FormStringPtr(form["primary_occupation"]),
		SecondaryOccupation:        dto.FormStringPtr(form["secondary_occupation"]),
		FarmSizeHectares:           &farmSize,
		LandOwnership:              &landOwnership,
		YearsFarming:               dto.FormIntPtr(form["years_farming"]),
	}

	if fileHeader, err := c.FormFile("profile_image"); err == nil && fileHeader != nil {
		filename, err := helper.SaveProfileImage(configs.UploadDir, fileHeader)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		farmer.ProfileImage = &filename
	}

	if farmer.FarmerCode != nil {
		var count int64
		ctrl.DB.Model(&model.FarmerModel{}).
			Where("LOWER(farmer_code) = LOWER(?)", *farmer.FarmerCode).Count(&count)
		if count > 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Farmer code already exists")
		}
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&farmer).Error; err != nil {
			return err
		}
		if err := service.ReplaceProducts(tx, farmer.ID, products); err != nil {
			return err
		}
		return activityService.BroadcastNotification(tx, userID,
			"New Farmer Onboarded",
			fmt.Sprintf("%s was registered in %s", farmer.FullName(), barangay.Name),
			nil)
	})
	if err != nil {
		if farmer.ProfileImage != nil {
			helper.DeleteProfileImage(configs.UploadDir, *farmer.ProfileImage)
		}
		log.Printf("[ERROR] Create farmer failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create farmer")
	}

	ctrl.Activity.Log(c, &userID, "FARMER_CREATED", "Farmer", farmer.ID,
		fmt.Sprintf("Registered farmer %s", farmer.FullName()))

	detail := ctrl.serializeFarmer(&farmer)
	detail["products"] = ctrl.farmerProducts(farmer.ID)
	return helper.JsonCreated(c, "Farmer created successfully", detail)
}

// PUT /api/farmers/:id
//
// Partial update: only keys present in the form are applied. The products
// key, when present, replaces the whole product set.
func (ctrl *FarmerController) UpdateFarmer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var farmer model.FarmerModel
	if err := ctrl.DB.First(&farmer, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Farmer not found")
	}

	form := formValues(c)

	setters := map[string]func(v string){
		"farmer_code":                  func(v string) { farmer.FarmerCode = dto.FormStringPtr(v) },
		"first_name":                   func(v string) { farmer.FirstName = dto.FormString(v, farmer.FirstName) },
		"middle_name":                  func(v string) { farmer.MiddleName = dto.FormStringPtr(v) },
		"last_name":                    func(v string) { farmer.LastName = dto.FormString(v, farmer.LastName) },
		"suffix":                       func(v string) { farmer.Suffix = dto.FormStringPtr(v) },
		"age":                          func(v string) { farmer.Age = dto.FormInt(v, farmer.Age) },
		"gender":                       func(v string) { farmer.Gender = dto.FormString(v, farmer.Gender) },
		"civil_status":                 func(v string) { farmer.CivilStatus = dto.FormString(v, farmer.CivilStatus) },
		"birth_date":                   func(v string) { farmer.BirthDate = dto.FormDate(v) },
		"organization_id":              func(v string) { farmer.OrganizationID = dto.FormUintPtr(v) },
		"address":                      func(v string) { farmer.Address = dto.FormStringPtr(v) },
		"contact_number":               func(v string) { farmer.ContactNumber = dto.FormStringPtr(v) },
		"education_level":              func(v string) { farmer.EducationLevel = dto.FormString(v, farmer.EducationLevel) },
		"annual_income":                func(v string) { farmer.AnnualIncome = dto.FormFloatPtr(v) },
		"income_source":                func(v string) { farmer.IncomeSource = dto.FormStringPtr(v) },
		"number_of_children":           func(v string) { farmer.NumberOfChildren = dto.FormInt(v, farmer.NumberOfChildren) },
		"children_farming_involvement": func(v string) { farmer.ChildrenFarmingInvolvement = dto.FormBool(v, farmer.ChildrenFarmingInvolvement) },
		"primary_occupation":           func(v string) { farmer.PrimaryOccupation = dto.FormStringPtr(v) },
		"secondary_occupation":         func(v string) { farmer.SecondaryOccupation = dto.FormStringPtr(v) },
		"farm_size_hectares":           func(v string) { farmer.FarmSizeHectares = dto.FormFloatPtr(v) },
		"land_ownership":               func(v string) { farmer.LandOwnership = dto.FormStringPtr(v) },
		"years_farming":                func(v string) { farmer.YearsFarming = dto.FormIntPtr(v) },
	}

	for key, apply := range setters {
		if v, ok := form[key]; ok {
			apply(v)
		}
	}

	if v, ok := form["barangay_id"]; ok {
		barangayID := dto.FormInt(v, 0)
		if barangayID > 0 {
			var barangay barangayModel.BarangayModel
			if err := ctrl.DB.First(&barangay, barangayID).Error; err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Unknown barangay")
			}
			farmer.BarangayID = uint(barangayID)
		}
	}
	if _, ok := form["birth_date"]; ok && farmer.BirthDate != nil {
		farmer.Age = service.ResolveAge(farmer.BirthDate, farmer.Age)
	}

	if farmer.FarmerCode != nil {
		var count int64
		ctrl.DB.Model(&model.FarmerModel{}).
			Where("LOWER(farmer_code) = LOWER(?) AND id <> ?", *farmer.FarmerCode, farmer.ID).
			Count(&count)
		if count > 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Farmer code already exists")
		}
	}

	var productsInput []dto.FarmerProductInput
	replaceProducts := false
	if raw, ok := form["products"]; ok {
		replaceProducts = true
		productsInput, err = parseProductsField(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "products must be a JSON array")
		}
	}

	// New image saved before the old one is removed so a failed write never
	// leaves the record without its previous photo.
	oldImage := farmer.ProfileImage
	newImageSaved := false
	if fileHeader, err := c.FormFile("profile_image"); err == nil && fileHeader != nil {
		filename, err := helper.SaveProfileImage(configs.UploadDir, fileHeader)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		farmer.ProfileImage = &filename
		newImageSaved = true
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&farmer).Error; err != nil {
			return err
		}
		if replaceProducts {
			return service.ReplaceProducts(tx, farmer.ID, productsInput)
		}
		return nil
	})
	if err != nil {
		if newImageSaved && farmer.ProfileImage != nil {
			helper.DeleteProfileImage(configs.UploadDir, *farmer.ProfileImage)
		}
		log.Printf("[ERROR] Update farmer failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update farmer")
	}
	if newImageSaved && oldImage != nil {
		helper.DeleteProfileImage(configs.UploadDir, *oldImage)
	}

	ctrl.Activity.Log(c, &userID, "FARMER_UPDATED", "Farmer", farmer.ID,
		fmt.Sprintf("Updated farmer %s", farmer.FullName()))

	detail := ctrl.serializeFarmer(&farmer)
	detail["products"] = ctrl.farmerProducts(farmer.ID)
	return helper.JsonUpdated(c, "Farmer updated successfully", detail)
}

// DELETE /api/farmers/:id
func (ctrl *FarmerController) DeleteFarmer(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var farmer model.FarmerModel
	if err := ctrl.DB.First(&farmer, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Farmer not found")
	}

	name := farmer.FullName()
	image := farmer.ProfileImage

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return service.DeleteFarmerCascade(tx, farmer.ID)
	})
	if err != nil {
		log.Printf("[ERROR] Delete farmer failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete farmer")
	}

	if image != nil {
		helper.DeleteProfileImage(configs.UploadDir, *image)
	}

	ctrl.Activity.Log(c, &userID, "FARMER_DELETED", "Farmer", uint(id),
		fmt.Sprintf("Deleted farmer %s", name))

	return helper.JsonDeleted(c, "Farmer deleted successfully", nil)
}

// PUT /api/farmers/:id/products
func (ctrl *FarmerController) ReplaceFarmerProducts(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var farmer model.FarmerModel
	if err := ctrl.DB.First(&farmer, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Farmer not found")
	}

	var inputs []dto.FarmerProductInput
	if err := c.BodyParser(&inputs); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Expected a JSON array of products")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return service.ReplaceProducts(tx, farmer.ID, inputs)
	})
	if err != nil {
		log.Printf("[ERROR] Replace farmer products failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update products")
	}

	ctrl.Activity.Log(c, &userID, "FARMER_UPDATED", "Farmer", farmer.ID,
		fmt.Sprintf("Replaced product list of %s", farmer.FullName()))

	return helper.JsonUpdated(c, "Products updated successfully", ctrl.farmerProducts(farmer.ID))
}

// AddFarmerProducts links more products to an existing farmer, leaving the
// current links in place.
func (ctrl *FarmerController) AddFarmerProducts(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID format")
	}
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var farmer model.FarmerModel
	if err := ctrl.DB.First(&farmer, id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Farmer not found")
	}

	var inputs []dto.FarmerProductInput
	if err := c.BodyParser(&inputs); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Expected a JSON array of products")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return service.AppendProducts(tx, farmer.ID, inputs)
	})
	if err != nil {
		log.Printf("[ERROR] Add farmer products failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add products")
	}

	ctrl.Activity.Log(c, &userID, "FARMER_UPDATED", "Farmer", farmer.ID,
		fmt.Sprintf("Added products to %s", farmer.FullName()))

	return helper.JsonCreated(c, "Products added successfully", ctrl.farmerProducts(farmer.ID))
}
