package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	activityModel "github.com/RonaldMark17/agridata-backend/internals/features/home/activity/model"
	notificationModel "github.com/RonaldMark17/agridata-backend/internals/features/home/notifications/model"
	experienceModel "github.com/RonaldMark17/agridata-backend/internals/features/knowledge/experiences/model"
	barangayModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/barangays/model"
	farmerModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/farmers/model"
	orgModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/organizations/model"
	productModel "github.com/RonaldMark17/agridata-backend/internals/features/registry/products/model"
	projectModel "github.com/RonaldMark17/agridata-backend/internals/features/research/projects/model"
	surveyModel "github.com/RonaldMark17/agridata-backend/internals/features/research/surveys/model"
	authModel "github.com/RonaldMark17/agridata-backend/internals/features/users/auth/model"
	userModel "github.com/RonaldMark17/agridata-backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=agridata&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // plays well with PgBouncer transaction pooling
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates/updates every table. Shared by main and the test suites
// (which run it against sqlite), so Postgres-only DDL is guarded.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orgModel.OrganizationModel{},
		&userModel.UserModel{},
		&authModel.TokenBlocklist{},
		&authModel.PasswordReset{},
		&barangayModel.BarangayModel{},
		&productModel.AgriculturalProductModel{},
		&farmerModel.FarmerModel{},
		&farmerModel.FarmerProductModel{},
		&farmerModel.FarmerChildModel{},
		&experienceModel.FarmerExperienceModel{},
		&experienceModel.ExperienceCommentModel{},
		&projectModel.ResearchProjectModel{},
		&surveyModel.SurveyQuestionnaireModel{},
		&activityModel.ActivityLogModel{},
		&notificationModel.NotificationModel{},
	); err != nil {
		return err
	}

	// Case-insensitive uniqueness for implicit product creation. An
	// application-level check-then-insert races under concurrency; the
	// index makes the conflict-handling insert in the farmer service safe.
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_agricultural_products_lower_name
			 ON agricultural_products (LOWER(name))`,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
