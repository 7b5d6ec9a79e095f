package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env  string
	Port string

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTKey    string
	SaltRound int

	SessionTTLHours int

	APIPageSize   int
	BooksPageSize int
	FeedPageSize  int

	RatingCron string

	EmailProvider  string // smtp or sendgrid
	EmailSender    string
	EmailPassword  string // SMTP Password
	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       string

	OpenLibraryURL string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Env:  getEnv("APP_ENV", "production"),
		Port: getEnv("PORT", "3000"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "goodreads"),

		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24*14),

		APIPageSize:   getEnvInt("API_PAGE_SIZE", 2),
		BooksPageSize: getEnvInt("BOOKS_PAGE_SIZE", 10),
		FeedPageSize:  getEnvInt("FEED_PAGE_SIZE", 10),

		RatingCron: getEnv("RATING_CRON", "*/15 * * * *"),

		EmailProvider:  getEnv("EMAIL_PROVIDER", "smtp"),
		EmailSender:    getEnv("EMAIL_SENDER", ""),
		EmailPassword:  getEnv("EMAIL_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),

		OpenLibraryURL: getEnv("OPEN_LIBRARY_URL", "https://openlibrary.org"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DBDriver == "sqlite" {
		log.Println("Warning: Using sqlite driver. Use postgres outside local development.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
