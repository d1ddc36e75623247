package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	UploadDir        string
	MailHost         string
	MailPort         string
	MailUsername     string
	MailPassword     string
	MailSender       string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("DEPLOY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in managed environment, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	UploadDir = GetEnv("UPLOAD_DIR", "static/uploads")

	MailHost = GetEnv("MAIL_SERVER", "smtp.gmail.com")
	MailPort = GetEnv("MAIL_PORT", "587")
	MailUsername = GetEnv("MAIL_USERNAME")
	MailPassword = GetEnv("MAIL_PASSWORD")
	MailSender = GetEnv("MAIL_DEFAULT_SENDER", MailUsername)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET is not set!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
