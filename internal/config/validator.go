package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/pqwriter/internal/writeropts"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("codec", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "none", "uncompressed", "snappy", "gzip", "zstd":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("writerversion", func(fl validator.FieldLevel) bool {
		_, err := writeropts.ParseWriterVersion(fl.Field().String())
		return err == nil
	})

	// Range checks belong to the builder; this only rejects malformed sizes.
	_ = validate.RegisterValidation("datasize", func(fl validator.FieldLevel) bool {
		_, err := writeropts.ParseDataSize(fl.Field().String())
		return err == nil
	})

	return validate
}

// ValidateConfig performs validation on the GlobalConfig structure, then
// checks that the storage settings build into writer options.
func ValidateConfig(cfg *GlobalConfig) error {
	if err := newValidator().Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var messages []string
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.StructNamespace(), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				messages = append(messages, msg)
			}
			return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}

	if _, err := cfg.StorageConfig.WriterOptions(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
