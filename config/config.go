package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	MongoURI           string
	GlobalDB           string
	TenantPrefix       string
	LegacyTenantPrefix string
	APIBaseURL         string
	Port               string
	JWTSecret          string
	BcryptCost         int
	Timeout            time.Duration
	LogLevel           string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// LoadConfig reads envFile (".env" when empty) into the environment and
// builds the Config. A missing env file is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFile); err != nil {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST: %d out of range", cost)
	}

	timeout, err := time.ParseDuration(getEnv("OP_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid OP_TIMEOUT: %w", err)
	}

	cfg := Config{
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		GlobalDB:           getEnv("MONGO_GLOBAL_DB", "hrms_global"),
		TenantPrefix:       getEnv("TENANT_DB_PREFIX", "tenant_"),
		LegacyTenantPrefix: getEnv("LEGACY_TENANT_DB_PREFIX", "hrms_tenant_"),
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:5000"),
		Port:               getEnv("PORT", "8000"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		BcryptCost:         cost,
		Timeout:            timeout,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
	return cfg, nil
}
