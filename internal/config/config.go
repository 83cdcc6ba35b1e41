package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	TrustedProxies []string

	JwtSecret     string
	TelegramToken string
	// FrontendURL is the public base URL embedded into Telegram deep links.
	FrontendURL string
	// CronSecret guards the POST /api/send-daily trigger endpoint.
	CronSecret string
	// ReminderWindowDays widens the due-date scan past today (1 = include
	// tomorrow).
	ReminderWindowDays int
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		DbHost:             getEnv("MYSQL_HOST", "db"),
		DbPort:             getEnv("MYSQL_PORT", "3306"),
		DbUser:             getEnv("MYSQL_USER", "taskmanager"),
		DbPassword:         getEnv("MYSQL_PASSWORD", "taskmanager"),
		DbName:             getEnv("MYSQL_DATABASE", "taskmanager"),
		DbParams:           getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies:     parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		JwtSecret:          getEnv("JWT_SECRET", ""),
		TelegramToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:8080"),
		CronSecret:         getEnv("CRON_SECRET", ""),
		ReminderWindowDays: getEnvInt("REMINDER_WINDOW_DAYS", 1),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
