package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/thoreinstein/confcheck/internal/configuration"
	"github.com/thoreinstein/confcheck/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version other than 1.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidValue indicates any other rejected value.
	ErrInvalidValue = errors.New("invalid value")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their config key.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("appcontext", appContextValidator)
	_ = v.RegisterValidation("configtype", configTypeValidator)
	_ = v.RegisterValidation("cleanpath", cleanPathValidator)
	return v
}

func appContextValidator(fl validator.FieldLevel) bool {
	return configuration.Context(fl.Field().String()).Validate() == nil
}

func configTypeValidator(fl validator.FieldLevel) bool {
	_, err := configuration.ParseType(fl.Field().String())
	return err == nil
}

// cleanPathValidator checks that a path string is well-formed. It does not
// check that the path exists.
func cleanPathValidator(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if strings.ContainsRune(path, '\x00') {
		return false
	}
	cleaned := filepath.Clean(path)
	return cleaned != "" && cleaned != "."
}

// Validate checks a Config for validity.
// Returns nil if valid, or one error per offending field.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []error{errors.Wrap(err, "validating config")}
	}

	errs := make([]error, 0, len(ves))
	for _, fe := range ves {
		errs = append(errs, fieldError(fe))
	}
	return errs
}

func fieldError(fe validator.FieldError) *FieldError {
	out := &FieldError{Field: fe.Field(), Value: fe.Value()}
	switch fe.Tag() {
	case "eq":
		out.Err = ErrUnsupportedVersion
	case "appcontext":
		out.Err = errors.ErrUnknownContext
	case "configtype":
		out.Err = errors.ErrUnknownType
	case "cleanpath":
		out.Err = ErrInvalidPath
	default:
		out.Err = errors.Wrapf(ErrInvalidValue, "failed %q", fe.Tag())
	}
	return out
}

// FieldError represents a rejected configuration field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + formatValue(e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	default:
		return fmt.Sprint(v)
	}
}
