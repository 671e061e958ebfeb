package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port       string
	GinMode    string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string
	BcryptCost int
	LogLevel   string
	LogFile    string
	StaticDir  string
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "3000"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", defaultDBPort(getEnv("DB_DRIVER", "sqlite"))),
		DBUser:     getEnv("DB_USER", "listify"),
		DBPassword: getEnv("DB_PASSWORD", "listify"),
		DBName:     getEnv("DB_NAME", "listify"),
		DBPath:     getEnv("DB_PATH", "listify.db"),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    getEnv("LOG_FILE", ""),
		StaticDir:  getEnv("STATIC_DIR", ""),
	}
}

func defaultDBPort(driver string) string {
	switch driver {
	case "postgres":
		return "5432"
	case "mysql":
		return "3306"
	default:
		return ""
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
