package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateData()...)

	// The database section only matters when records come from MySQL
	if c.Data.Source == "mysql" {
		errors = append(errors, c.validateDatabase("source", &c.Source)...)
	}

	errors = append(errors, c.validateCompletion()...)
	errors = append(errors, c.validateRunner()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateData() ValidationErrors {
	var errors ValidationErrors

	switch c.Data.Source {
	case "file", "":
		if c.Data.File == "" {
			errors = append(errors, ValidationError{
				Field:   "data.file",
				Message: "file is required when source is 'file'",
			})
		}
	case "mysql":
		if c.Data.Table == "" {
			errors = append(errors, ValidationError{
				Field:   "data.table",
				Message: "table is required when source is 'mysql'",
			})
		}
		if c.Data.Column == "" {
			errors = append(errors, ValidationError{
				Field:   "data.column",
				Message: "column is required when source is 'mysql'",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "data.source",
			Message: "source must be 'file' or 'mysql'",
		})
	}

	if c.Data.Limit < 0 {
		errors = append(errors, ValidationError{
			Field:   "data.limit",
			Message: "limit cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateCompletion() ValidationErrors {
	var errors ValidationErrors

	if c.Completion.Binding == "" {
		errors = append(errors, ValidationError{
			Field:   "completion.binding",
			Message: "binding is required",
		})
	}

	if c.Completion.MaxDepth < 0 {
		errors = append(errors, ValidationError{
			Field:   "completion.max_depth",
			Message: "max_depth cannot be negative",
		})
	}

	if c.Completion.MaxSuggestions < 0 {
		errors = append(errors, ValidationError{
			Field:   "completion.max_suggestions",
			Message: "max_suggestions cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateRunner() ValidationErrors {
	var errors ValidationErrors

	if c.Runner.MaxCallStack < 0 {
		errors = append(errors, ValidationError{
			Field:   "runner.max_call_stack",
			Message: "max_call_stack cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		errors = append(errors, ValidationError{
			Field:   "output.indent",
			Message: "indent must be between 0 and 8",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
