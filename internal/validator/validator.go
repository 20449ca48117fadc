package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// specialCharacters is the set a password must draw at least one symbol from.
const specialCharacters = "!@#$%^&*"

// ValidationError describes a single violated field rule.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s", ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Messages returns every violation as a human-readable string, in field order.
func (ve ValidationErrors) Messages() []string {
	messages := make([]string, len(ve))
	for i, e := range ve {
		messages[i] = e.Message
	}
	return messages
}

// Validator wraps go-playground/validator with the platform's field rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	// Report field names from json/form tags so messages match the wire format
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	if err := validate.RegisterValidation("password", validatePassword); err != nil {
		panic(fmt.Sprintf("failed to register password rule: %v", err))
	}

	return &Validator{validate: validate}
}

// Validate checks s against its struct tags and returns ALL violated rules,
// not just the first. A nil return means the payload is valid.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}

	var errors ValidationErrors
	for _, fe := range fieldErrors {
		errors = append(errors, ValidationError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Rule:    fe.Tag(),
		})
	}
	return errors
}

// validatePassword requires at least one uppercase letter and one symbol from
// the defined special-character set. Length bounds are separate min/max tags.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	var hasUpper, hasSpecial bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if strings.ContainsRune(specialCharacters, r) {
			hasSpecial = true
		}
	}
	return hasUpper && hasSpecial
}

func errorMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Please provide a valid email address"
	case "password":
		return "Password must contain at least one uppercase letter and one special character"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// fieldLabel turns a wire field name like "currentPassword" into
// "Current password".
func fieldLabel(field string) string {
	if field == "" {
		return "Field"
	}

	var b strings.Builder
	for i, r := range field {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
