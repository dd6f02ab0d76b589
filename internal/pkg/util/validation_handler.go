package util

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var communityNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

var validate = validator.New()

// RegisterValidators adds custom tags to gin's validator and the standalone one
func RegisterValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("community_name", communityName); err != nil {
			return err
		}
	}
	return validate.RegisterValidation("community_name", communityName)
}

func communityName(fl validator.FieldLevel) bool {
	return IsValidCommunityName(fl.Field().String())
}

// IsValidCommunityName 3-30 chars of letters, digits, underscore or dash
func IsValidCommunityName(name string) bool {
	return communityNameRegex.MatchString(name)
}

// ValidationError first failing rule of a payload
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s failed rule %s", e.Field, e.Tag)
}

// IsValidationError reports whether err came from ValidateDTO
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ValidateDTO validates payloads that do not come through gin binding, such as socket events
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			first := vErrs[0]
			return &ValidationError{Field: first.Field(), Tag: first.Tag()}
		}
		return err
	}
	return nil
}
