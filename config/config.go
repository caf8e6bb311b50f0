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

	EmailSender    string
	Password       string // SMTP Password
	SendGridAPIKey string // When set, email goes through SendGrid instead of SMTP

	MeetingApiURL string // Live-meeting provider base URL
	MeetingApiKey string

	SchedulerTargetWeekday int  // 0=Sunday..6=Saturday, day the week preview targets
	SchedulerIncludeToday  bool // Whether "next target day" may resolve to today
	ReminderLeadMinutes    int  // Default lead time for session reminder emails
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "lms"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender:    getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:       getEnv("PASSWORD", "defaultSecret"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		MeetingApiURL: getEnv("MEETING_API_URL", ""),
		MeetingApiKey: getEnv("MEETING_API_KEY", ""),

		SchedulerTargetWeekday: getEnvInt("SCHEDULER_TARGET_WEEKDAY", 3), // Wednesday
		SchedulerIncludeToday:  getEnvBool("SCHEDULER_INCLUDE_TODAY", true),
		ReminderLeadMinutes:    getEnvInt("REMINDER_LEAD_MINUTES", 30),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SchedulerTargetWeekday < 0 || AppConfig.SchedulerTargetWeekday > 6 {
		log.Printf("Warning: SCHEDULER_TARGET_WEEKDAY %d out of range, falling back to Wednesday.", AppConfig.SchedulerTargetWeekday)
		AppConfig.SchedulerTargetWeekday = 3
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

// getEnvBool retrieves an environment variable as a boolean or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
