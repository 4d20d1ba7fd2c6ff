package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	EmailSender string
	SendgridKey string

	CheckoutApiURL    string // Hosted checkout provider base URL
	CheckoutApiKey    string // Hosted checkout API key
	CheckoutSecretKey string // Webhook signing secret
	CheckoutReturnURL string // Where the provider redirects after payment

	UploadDir string // Local directory for lesson attachments
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
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "learnhub"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", "no-reply@learnhub.io"),
		SendgridKey: getEnv("SENDGRID_API_KEY", ""),

		CheckoutApiURL:    getEnv("CHECKOUT_API_URL", "https://api.checkout.example.com/v1/"),
		CheckoutApiKey:    getEnv("CHECKOUT_API_KEY", ""),
		CheckoutSecretKey: getEnv("CHECKOUT_SECRET_KEY", ""),
		CheckoutReturnURL: getEnv("CHECKOUT_RETURN_URL", "http://localhost:3000/payment/return"),

		UploadDir: getEnv("UPLOAD_DIR", "./public/uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.CheckoutApiKey == "" {
		log.Println("Warning: CHECKOUT_API_KEY not set. Paid checkout will be unavailable.")
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
