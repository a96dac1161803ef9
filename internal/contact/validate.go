package contact

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MinNameLength  = 2
	MinPhoneDigits = 9
	MaxPhoneDigits = 15
)

// Shared validator instance; validator caches struct metadata per type.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// trimmed_min=N: at least N code points once surrounding whitespace is gone.
	if err := v.RegisterValidation("trimmed_min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	}); err != nil {
		panic(fmt.Sprintf("contact: register trimmed_min: %v", err))
	}
	return v
}

// Validate checks the name and phone rules. Email and address are free-form.
// The returned error, if any, is a *ValidationError for the first failing
// field, name before phone.
func Validate(c Contact) error {
	return check(validate.Struct(c))
}

// ValidatePatch checks the fields p sets on c, the result of applying p.
// Untouched fields are not checked.
func ValidatePatch(c Contact, p Patch) error {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "Name")
	}
	if p.Phone != nil {
		fields = append(fields, "Phone")
	}
	if len(fields) == 0 {
		return nil
	}
	return check(validate.StructPartial(c, fields...))
}

func check(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate contact: %w", err)
	}
	return translate(fieldErrs[0])
}

func translate(fe validator.FieldError) *ValidationError {
	switch fe.StructField() {
	case "Name":
		return &ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("must have at least %d characters", MinNameLength),
		}
	case "Phone":
		if fe.Tag() == "number" {
			return &ValidationError{Field: "phone", Reason: "must contain digits only"}
		}
		return &ValidationError{
			Field:  "phone",
			Reason: fmt.Sprintf("must have between %d and %d digits", MinPhoneDigits, MaxPhoneDigits),
		}
	}
	return &ValidationError{Field: strings.ToLower(fe.Field()), Reason: fe.Tag()}
}
