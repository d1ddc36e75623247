package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityRoute "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/route"
	dashboardRoute "github.com/RonaldMark17/agridata-backend/internals/features/home/dashboard/route"
	notificationRoute "github.com/RonaldMark17/agridata-backend/internals/features/home/notifications/route"
	experienceRoute "github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/route"
	barangayRoute "github.com/RonaldMark17/agridata-backend/internals/features/registry/barangays/route"
	farmerRoute "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/route"
	organizationRoute "github.com/RonaldMark17/agridata-backend/internals/features/registry/organizations/route"
	productRoute "github.com/RonaldMark17/agridata-backend/internals/features/registry/products/route"
	projectRoute "github.com/RonaldMark17/agridata-backend/internals/features/research/projects/route"
	surveyRoute "github.com/RonaldMark17/agridata-backend/internals/features/research/surveys/route"
	authRoute "github.com/RonaldMark17/agridata-backend/internals/features/users/auth/route"
	userRoute "github.com/RonaldMark17/agridata-backend/internals/features/users/user/route"
)

// SetupRoutes mounts every feature under /api. Role gating lives inside the
// feature route files, next to the handlers they guard.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	userRoute.UserRoutes(api, db)

	farmerRoute.FarmerRoutes(api, db)
	barangayRoute.BarangayRoutes(api, db)
	organizationRoute.OrganizationRoutes(api, db)
	productRoute.ProductRoutes(api, db)

	experienceRoute.ExperienceRoutes(api, db)

	projectRoute.ProjectRoutes(api, db)
	surveyRoute.SurveyRoutes(api, db)

	notificationRoute.NotificationRoutes(api, db)
	activityRoute.ActivityRoutes(api, db)
	dashboardRoute.DashboardRoutes(api, db)
}
