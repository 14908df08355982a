package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a single field-level failure with a message intended
// for end-user display.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Error())
	}
	return strings.Join(parts, "; ")
}

func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator wraps go-playground/validator with the portal's form rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates struct tags for any request struct.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ToValidationErrors converts library errors into the portal's shape.
func ToValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{
			Field:   "request",
			Message: err.Error(),
			Rule:    "struct",
		}}
	}

	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "egypt_phone":
		return "must be 11 digits starting with 01"
	case "national_id":
		return "must be exactly 14 digits"
	case "arabic_text":
		return "must contain Arabic letters only"
	case "gpa4":
		return "must be between 0 and 4"
	case "gpa100":
		return "must be between 0 and 100"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}

// registerRules registers the portal's custom field validators.
func (v *Validator) registerRules() {
	// Phone: exactly 11 digits, must start with 01.
	v.validate.RegisterValidation("egypt_phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})

	// National ID: exactly 14 digits on the untouched string. Normalization
	// for comparison happens elsewhere; the raw validator accepts digits only.
	v.validate.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		return IsValidNationalID(fl.Field().String())
	})

	// Arabic-only text: Arabic letters and whitespace.
	v.validate.RegisterValidation("arabic_text", func(fl validator.FieldLevel) bool {
		return IsArabicText(fl.Field().String())
	})

	// GPA on the 0-4 scale (old-student forms).
	v.validate.RegisterValidation("gpa4", func(fl validator.FieldLevel) bool {
		gpa := fl.Field().Float()
		return gpa >= 0 && gpa <= 4
	})

	// GPA on the 0-100 scale (new-student forms).
	v.validate.RegisterValidation("gpa100", func(fl validator.FieldLevel) bool {
		gpa := fl.Field().Float()
		return gpa >= 0 && gpa <= 100
	})
}

// ===== FIELD RULES =====

// IsValidPhone reports whether s is exactly 11 digits starting with "01".
func IsValidPhone(s string) bool {
	if len(s) != 11 || !strings.HasPrefix(s, "01") {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidNationalID reports whether s is exactly 14 digits, untouched.
func IsValidNationalID(s string) bool {
	if len(s) != 14 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsArabicText reports whether every rune of s is an Arabic letter or
// whitespace. Empty strings fail; a name must carry at least one letter.
func IsArabicText(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.Is(unicode.Arabic, r) {
			return false
		}
	}
	return true
}

// ===== SANITIZERS =====

// DigitsOnly trims s and strips every non-digit rune. This is the
// normalization applied to both sides of national-id comparisons.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ArabicOnly strips every rune that is not an Arabic letter or whitespace.
// Applied on keystroke client-side; exposed here so server-side tests can
// assert the same behavior.
func ArabicOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.Is(unicode.Arabic, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
