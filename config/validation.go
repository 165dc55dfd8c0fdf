package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)

	switch cfg.DBDriver {
	case "postgres":
		require("DB_HOST", cfg.DBHost)
		require("DB_PORT", cfg.DBPort)
		require("DB_USER", cfg.DBUser)
		require("DB_NAME", cfg.DBName)
	case "sqlite":
		require("DB_PATH", cfg.DBPath)
	case "":
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "is required"})
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	require("TOKEN_SECRET", cfg.TokenSecret)

	if cfg.Environment == Production {
		if cfg.DBDriver != "postgres" {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "must be postgres in production"})
		}
		require("DB_PASSWORD", cfg.DBPassword)
		if cfg.TokenSecret == DefaultTokenSecret {
			errs = append(errs, ValidationError{Field: "TOKEN_SECRET", Message: "must not use the development default"})
		}
	}
	if cfg.S3BucketName != "" {
		require("AWS_REGION", cfg.AWSRegion)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
