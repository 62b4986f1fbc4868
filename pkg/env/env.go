package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	fmt.Printf("Environment variable %s not found, using default value: %s\n", key, defaultValue)
	return defaultValue
}

// GetEnvSecret behaves like GetEnvString but never echoes the value.
func GetEnvSecret(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	fmt.Printf("Environment variable %s not found\n", key)
	return ""
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		fmt.Printf("Environment variable %s not found, using default value: %t\n", key, defaultValue)
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		fmt.Printf("Environment variable %s is not a bool, using default value: %t\n", key, defaultValue)
		return defaultValue
	}
	return boolValue
}

func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		fmt.Printf("Environment variable %s not found, using default value: %d\n", key, defaultValue)
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		fmt.Printf("Environment variable %s is not an int, using default value: %d\n", key, defaultValue)
		return defaultValue
	}
	return intValue
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		fmt.Printf("Environment variable %s not found, using default value: %v\n", key, defaultValue)
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		fmt.Printf("Environment variable %s is not a duration, using default value: %v\n", key, defaultValue)
		return defaultValue
	}
	return duration
}
