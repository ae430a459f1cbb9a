package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with Nebula4X's error formatting.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the default tag set.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks i against its validate struct tags.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError turns validator.ValidationErrors into a readable,
// multi-line message instead of the library's default single-line dump.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Field(), e.Tag(), e.Value(),
		))
	}
	return fmt.Errorf("invalid nebula4x configuration:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates a fully-populated FileConfig.
func ValidateConfig(cfg *FileConfig) error {
	return NewValidator().Validate(cfg)
}
