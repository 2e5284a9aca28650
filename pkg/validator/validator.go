package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Input shapes accepted at the boundary. Plaintext passwords are
// validated here, before hashing; they never reach the storage layer.
var (
	personNameRegex = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)*$`)
	usernameRegex   = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	passwordRegex   = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]+$`)
	intlPhoneRegex  = regexp.MustCompile(`^\+\d{1,3}\d{4,14}(x\d+)?$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return personNameRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("password_charset", func(fl validator.FieldLevel) bool {
		return passwordRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("intl_phone", func(fl validator.FieldLevel) bool {
		return intlPhoneRegex.MatchString(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "required_if":
				errors[field] = field + " is required for this role"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "person_name":
				errors[field] = field + " must contain only English letters and spaces"
			case "username":
				errors[field] = field + " must contain only letters, numbers, _ or ."
			case "password_charset":
				errors[field] = field + " can only contain letters, numbers, and the special characters @$!%*?&"
			case "intl_phone":
				errors[field] = field + " must be a phone number with country code"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

// PasswordAllowed reports whether a plaintext password meets the length
// and charset policy. Used outside struct validation, e.g. for the
// bootstrap authority account.
func PasswordAllowed(password string, minLen int) bool {
	return len(password) >= minLen && passwordRegex.MatchString(password)
}
