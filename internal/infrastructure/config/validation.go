package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/gametime"
)

// slotPattern keeps slot names usable as file names and table keys
var slotPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// Validator checks configuration structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the save slot and season rules
// registered. Errors name fields by their mapstructure key.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
		return IsValidSlot(fl.Field().String())
	})
	_ = v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		_, err := gametime.ParseSeason(fl.Field().String())
		return err == nil
	})

	return &Validator{validate: v}
}

// IsValidSlot reports whether name can be used as a save slot
func IsValidSlot(name string) bool {
	return slotPattern.MatchString(name)
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		// Namespace starts with the root struct name
		_, key, _ := strings.Cut(e.Namespace(), ".")
		messages = append(messages, fmt.Sprintf("%s: failed %s (value: '%v')", key, e.Tag(), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
