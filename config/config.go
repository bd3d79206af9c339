package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"easyapply/models"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type BrowserConfig struct {
	Headless    bool
	UserDataDir string
}

type AgentConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
}

type ArtifactConfig struct {
	Region string
	Bucket string
	Prefix string
}

type AppConfig struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Browser     BrowserConfig
	Agent       AgentConfig
	Artifacts   ArtifactConfig

	Mode        models.ApplyMode
	ProfilePath string
	ResumePath  string
	CoverPath   string
	MaxSteps    int
	RetryBudget int
}

func GetDatabaseConfig() DatabaseConfig {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "easyapply"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func GetAppConfig() AppConfig {
	maxSteps, _ := strconv.Atoi(getEnv("MAX_FORM_STEPS", "20"))
	retries, _ := strconv.Atoi(getEnv("STEP_RETRY_BUDGET", "3"))
	agentTimeout, err := time.ParseDuration(getEnv("AGENT_TIMEOUT", "3m"))
	if err != nil {
		agentTimeout = 3 * time.Minute
	}

	return AppConfig{
		Port:        getEnv("PORT", "8081"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Database:    GetDatabaseConfig(),
		Browser: BrowserConfig{
			Headless:    getEnv("BROWSER_HEADLESS", "true") == "true",
			UserDataDir: getEnv("BROWSER_USER_DATA_DIR", ""),
		},
		Agent: AgentConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:      agentTimeout,
		},
		Artifacts: ArtifactConfig{
			Region: getEnv("AWS_REGION", "us-east-1"),
			Bucket: getEnv("ARTIFACT_BUCKET", ""),
			Prefix: getEnv("ARTIFACT_PREFIX", "failures"),
		},
		Mode:        models.ParseApplyMode(getEnv("APPLY_MODE", "hybrid")),
		ProfilePath: getEnv("PROFILE_PATH", "profile.yaml"),
		ResumePath:  getEnv("RESUME_PATH", ""),
		CoverPath:   getEnv("COVER_LETTER_PATH", ""),
		MaxSteps:    maxSteps,
		RetryBudget: retries,
	}
}

// LoadProfile reads and validates the candidate profile YAML.
func LoadProfile(path string) (*models.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	var profile models.UserProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := validator.New().Struct(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	if profile.TechnologyDefault == 0 {
		profile.TechnologyDefault = 1
	}
	return &profile, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
