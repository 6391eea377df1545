package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

type Config struct {
	AppPort        string
	DbDriver       string
	DbPath         string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	LogLevel       string
	LogFile        string
	SettingsFile   string
	EnvFile        string
	TrustedProxies []string
	Jira           JiraCredentials
}

func LoadConfig() *Config {
	return LoadConfigFile(getEnv("TIMETRACKER_ENV_FILE", ".env"))
}

// LoadConfigFile reads envFile into the process environment, without
// overriding variables already set, and builds the configuration from it.
func LoadConfigFile(envFile string) *Config {
	_ = godotenv.Load(envFile)

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbDriver:       getEnv("DB_DRIVER", DriverSQLite),
		DbPath:         getEnv("DB_PATH", "timetracker.db"),
		DbHost:         getEnv("MYSQL_HOST", "127.0.0.1"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "timetracker"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "timetracker"),
		DbName:         getEnv("MYSQL_DATABASE", "timetracker"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&clientFoundRows=true"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", "logs/time_tracker.log"),
		SettingsFile:   getEnv("SETTINGS_FILE", "settings.yaml"),
		EnvFile:        envFile,
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		Jira: JiraCredentials{
			Domain:     os.Getenv("JIRA_DOMAIN"),
			Email:      os.Getenv("JIRA_EMAIL"),
			APIToken:   os.Getenv("JIRA_API_TOKEN"),
			OAuthToken: os.Getenv("JIRA_OAUTH_TOKEN"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
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
