package config

import (
	"os"
	"strconv"
)

type envConfig struct {
	LogLevel            string
	ServerPort          int
	Version             string
	EMSBaseURL          string
	SessionFileLocation string
	HTTPTimeoutSeconds  int
	EmailTo             string
	EmailFrom           string
	AWSRegion           string
}

func NewEnvironmentConfig() *envConfig {
	return &envConfig{
		LogLevel:            getEnvString("LOG_LEVEL", "INFO"),
		ServerPort:          getEnvInt("SERVER_PORT", 0),
		Version:             getEnvString("VERSION", ""),
		EMSBaseURL:          getEnvString("EMS_API_BASE_URL", "http://localhost:8081"),
		SessionFileLocation: getEnvString("SESSION_FILE_LOCATION", ""),
		HTTPTimeoutSeconds:  getEnvInt("HTTP_TIMEOUT_SECONDS", 5),
		EmailTo:             getEnvString("EMAIL_TO", ""),
		EmailFrom:           getEnvString("EMAIL_FROM", ""),
		AWSRegion:           getEnvString("AWS_REGION", "ap-southeast-2"),
	}
}

// helper function to read an environment or return a default value
func getEnvString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

// helper function to read an environment or return a default value
func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(getEnvString(key, strconv.Itoa(defaultVal)))
	if err == nil {
		return val
	}

	return defaultVal
}
