package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Allocation AllocationConfig
	Alerts     AlertConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// AllocationConfig tunes the automatic savings engine: the fraction of
// each income transaction distributed across auto-allocate goals, and
// the decimal precision allocations are rounded to.
type AllocationConfig struct {
	SavingsRate    float64
	MoneyPrecision int
}

// AlertConfig tunes budget alerting. ExceedBasis selects how a new
// expense is compared against a budget limit: "transaction" compares the
// single expense amount, "running-total" compares spent plus the expense.
type AlertConfig struct {
	ExceedBasis   string
	NotifyTimeout time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, environment variables are used directly
	// (useful for Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	savingsRate, _ := strconv.ParseFloat(getEnv("ALLOCATION_SAVINGS_RATE", "0.10"), 64)
	moneyPrecision, _ := strconv.Atoi(getEnv("ALLOCATION_MONEY_PRECISION", "2"))
	notifyTimeout, _ := strconv.Atoi(getEnv("ALERT_NOTIFY_TIMEOUT", "5"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "finwise"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Allocation: AllocationConfig{
			SavingsRate:    savingsRate,
			MoneyPrecision: moneyPrecision,
		},
		Alerts: AlertConfig{
			ExceedBasis:   getEnv("ALERT_EXCEED_BASIS", "transaction"),
			NotifyTimeout: time.Duration(notifyTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
