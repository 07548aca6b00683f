package config

import (
	"errors"
	"os"
	"strings"
)

// Config holds everything the process needs at startup. Missing STS or
// database settings are a deployment error, so processing fails instead
// of falling back to per-request defaults.
type Config struct {
	Port            string
	DatabaseURL     string
	STSBaseURL      string
	STSUserIDs      []string
	STSUserPassword string
}

func ProcessEnvironmentVariables() (*Config, error) {
	env := Config{
		Port: "5000",
	}

	if envPort := os.Getenv("PORT"); len(envPort) != 0 {
		env.Port = envPort
	}

	env.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if len(env.DatabaseURL) == 0 {
		return nil, errors.New("DATABASE_URL is required")
	}

	env.STSBaseURL = strings.TrimSpace(os.Getenv("STS_API_BASE_URL"))
	if len(env.STSBaseURL) == 0 {
		return nil, errors.New("STS_API_BASE_URL is required")
	}

	env.STSUserPassword = os.Getenv("STS_USER_PASSWORD")
	if len(env.STSUserPassword) == 0 {
		return nil, errors.New("STS_USER_PASSWORD is required")
	}

	// STS_USER_IDS is an ordered, comma-separated credential pool.
	// Order matters: the first entry absorbs vend load first.
	for _, id := range strings.Split(os.Getenv("STS_USER_IDS"), ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		env.STSUserIDs = append(env.STSUserIDs, id)
	}
	if len(env.STSUserIDs) == 0 {
		return nil, errors.New("STS_USER_IDS must be a non-empty comma-separated list")
	}

	return &env, nil
}
