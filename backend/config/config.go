package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver       string // "postgres" or "sqlite"
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	SQLitePath     string
	JWTSecret      string
	ServerPort     string
	CurriculumPath string
	MinDailyTasks  int
	CoreSubject    string // always part of the study plan, never platform-linked
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "study_planner"),
		SQLitePath:     getEnv("SQLITE_PATH", "site.db"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		CurriculumPath: getEnv("CURRICULUM_PATH", "static/data/curriculum.yaml"),
		MinDailyTasks:  getEnvInt("MIN_DAILY_TASKS", 3),
		CoreSubject:    getEnv("CORE_SUBJECT", "Psychology"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
