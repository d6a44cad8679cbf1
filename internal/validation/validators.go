package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/benvon/contact-relay/internal/models"
	"github.com/go-playground/validator/v10"
)

const notEmailChars = `\s\p{Z}\x{0B}\x{FEFF}@`

var (
	// Validate is a shared validator instance
	Validate *validator.Validate

	// emailPattern accepts local@domain.tld with no whitespace and a single @.
	// Whitespace covers the Unicode space separators plus vertical tab and the
	// byte order mark, which \s alone does not match.
	emailPattern = regexp.MustCompile(`^[^` + notEmailChars + `]+@[^` + notEmailChars + `]+\.[^` + notEmailChars + `]+$`)
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("contact_email", validateContactEmail); err != nil {
		panic(fmt.Sprintf("failed to register contact_email validator: %v", err))
	}
}

// validateContactEmail checks the simple local@domain.tld syntax
func validateContactEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// IsValidEmail reports whether s matches the contact email syntax.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateSubmission turns a decoded JSON object into a ContactSubmission.
// Missing, empty or falsy fields fail with MissingFields; that check always
// wins over the email syntax check. Strings are passed through verbatim.
func ValidateSubmission(raw map[string]any) (*models.ContactSubmission, error) {
	submission := &models.ContactSubmission{
		Name:    stringField(raw, models.FieldName),
		Email:   stringField(raw, models.FieldEmail),
		Phone:   stringField(raw, models.FieldPhone),
		Subject: stringField(raw, models.FieldSubject),
		Message: stringField(raw, models.FieldMessage),
	}

	err := Validate.Struct(submission)
	if err == nil {
		return submission, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, models.NewRelayError(models.ErrorKindInternal, fmt.Errorf("validate submission: %w", err))
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return nil, models.NewRelayError(models.ErrorKindMissingFields, fmt.Errorf("field %s is required", fe.Field()))
		}
	}

	return nil, models.NewRelayError(models.ErrorKindInvalidEmailFormat, fmt.Errorf("field %s failed %s", fieldErrs[0].Field(), fieldErrs[0].Tag()))
}

// stringField reads a field as text. Non-zero numbers and true are kept in
// their JSON spelling; zero, false, null, objects and arrays read as empty.
func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
	}
	return ""
}
