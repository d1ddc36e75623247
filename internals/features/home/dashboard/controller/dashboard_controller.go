package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityModel "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/model"
	experienceModel "github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/model"
	barangayModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/barangays/model"
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	productModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/products/model"
	projectModel "github.com/RonaldMark17/agridata-backend/internals/features/research/projects/model"
	surveyModel "github.com/RonaldMark17/agridata-backend/internals/features/research/surveys/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
	helper "github.com/RonaldMark17/agridata-backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type groupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// windowCutoff maps ?range= to a created_at lower bound. Zero time means
// no windowing.
func windowCutoff(rangeParam string, now time.Time) time.Time {
	switch rangeParam {
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// GET /api/dashboard/stats
//
// Aggregate snapshot for the landing page. Averages report 0 on an empty
// registry instead of NULL.
func (ctrl *DashboardController) GetDashboard(c *fiber.Ctx) error {
	now := time.Now()
	cutoff := windowCutoff(c.Query("range", "all"), now)

	farmers := ctrl.DB.Model(&farmerModel.FarmerModel{})
	if !cutoff.IsZero() {
		farmers = farmers.Where("created_at >= ?", cutoff)
	}

	var totalFarmers int64
	if err := farmers.Count(&totalFarmers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	var totalBarangays, totalExperiences, totalProjects, totalUsers int64
	var totalProducts, totalChildren, totalSurveys int64
	ctrl.DB.Model(&barangayModel.BarangayModel{}).Count(&totalBarangays)
	ctrl.DB.Model(&experienceModel.FarmerExperienceModel{}).Count(&totalExperiences)
	ctrl.DB.Model(&projectModel.ResearchProjectModel{}).Count(&totalProjects)
	ctrl.DB.Model(&userModel.UserModel{}).Where("is_active = ?", true).Count(&totalUsers)
	ctrl.DB.Model(&productModel.AgriculturalProductModel{}).Count(&totalProducts)
	ctrl.DB.Model(&farmerModel.FarmerChildModel{}).Count(&totalChildren)
	ctrl.DB.Model(&surveyModel.SurveyQuestionnaireModel{}).Count(&totalSurveys)

	// education breakdown within the window
	var education []groupCount
	eduQ := ctrl.DB.Model(&farmerModel.FarmerModel{}).
		Select("education_level AS label, COUNT(*) AS count").
		Group("education_level").
		Order("count DESC")
	if !cutoff.IsZero() {
		eduQ = eduQ.Where("created_at >= ?", cutoff)
	}
	eduQ.Scan(&education)

	// five densest barangays
	var topBarangays []groupCount
	topQ := ctrl.DB.Table("farmers").
		Select("barangays.name AS label, COUNT(farmers.id) AS count").
		Joins("JOIN barangays ON barangays.id = farmers.barangay_id").
		Group("barangays.name").
		Order("count DESC").
		Limit(5)
	if !cutoff.IsZero() {
		topQ = topQ.Where("farmers.created_at >= ?", cutoff)
	}
	topQ.Scan(&topBarangays)

	type averages struct {
		Age      *float64
		FarmSize *float64
		Income   *float64
	}
	var avg averages
	avgQ := ctrl.DB.Model(&farmerModel.FarmerModel{}).
		Select("AVG(age) AS age, AVG(farm_size_hectares) AS farm_size, AVG(annual_income) AS income")
	if !cutoff.IsZero() {
		avgQ = avgQ.Where("created_at >= ?", cutoff)
	}
	avgQ.Scan(&avg)

	zeroIfNil := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}

	var genderSplit []groupCount
	genderQ := ctrl.DB.Model(&farmerModel.FarmerModel{}).
		Select("gender AS label, COUNT(*) AS count").
		Group("gender")
	if !cutoff.IsZero() {
		genderQ = genderQ.Where("created_at >= ?", cutoff)
	}
	genderQ.Scan(&genderSplit)

	var successionCount int64
	succQ := ctrl.DB.Model(&farmerModel.FarmerModel{}).
		Where("children_farming_involvement = ?", true)
	if !cutoff.IsZero() {
		succQ = succQ.Where("created_at >= ?", cutoff)
	}
	succQ.Count(&successionCount)

	var recent []activityModel.ActivityLogModel
	ctrl.DB.Order("created_at DESC").Limit(10).Find(&recent)
	recentItems := make([]fiber.Map, 0, len(recent))
	for i := range recent {
		l := &recent[i]
		recentItems = append(recentItems, fiber.Map{
			"id":          l.ID,
			"action":      l.Action,
			"entity_type": l.EntityType,
			"details":     l.Details,
			"created_at":  l.CreatedAt,
		})
	}

	successionRate := 0.0
	if totalFarmers > 0 {
		successionRate = float64(successionCount) / float64(totalFarmers) * 100
	}

	topEducation := "N/A"
	if len(education) > 0 {
		topEducation = education[0].Label
	}
	topBarangay := "N/A"
	if len(topBarangays) > 0 {
		topBarangay = topBarangays[0].Label
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"range": c.Query("range", "all"),
		"totals": fiber.Map{
			"farmers":          totalFarmers,
			"barangays":        totalBarangays,
			"products":         totalProducts,
			"experiences":      totalExperiences,
			"projects":         totalProjects,
			"surveys":          totalSurveys,
			"children":         totalChildren,
			"children_farming": successionCount,
			"active_users":     totalUsers,
		},
		"education_breakdown": education,
		"top_barangays":       topBarangays,
		"gender_breakdown":    genderSplit,
		"averages": fiber.Map{
			"age":                zeroIfNil(avg.Age),
			"farm_size_hectares": zeroIfNil(avg.FarmSize),
			"annual_income":      zeroIfNil(avg.Income),
		},
		"summary_analysis": fiber.Map{
			"top_education_level":     topEducation,
			"most_populated_barangay": topBarangay,
			"succession_rate_percent": successionRate,
			"farmers_with_successors": successionCount,
			"headline": fmt.Sprintf(
				"%d farmers across %d barangays, %.1f%% with children involved in farming",
				totalFarmers, totalBarangays, successionRate,
			),
		},
		"recent_activities": recentItems,
	})
}
