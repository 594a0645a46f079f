package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
	"github.com/sirchsolutions/sirchweb/internal/api/sanitization"
)

// Field names a contact form field by its JSON name
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldMessage Field = "message"
	FieldConsent Field = "consent"

	// FieldHoneypot is the hidden anti-spam field; it has no rule
	FieldHoneypot Field = "honeypot"
)

// RequiredFields are the fields that decide whether a submission is valid
var RequiredFields = []Field{FieldName, FieldEmail, FieldMessage, FieldConsent}

const (
	minNameLength    = 2
	minMessageLength = 10
)

// Messages are the exact texts shown for each failing field, on both sides of the wire
var Messages = map[Field]string{
	FieldName:    "Name must be at least 2 characters.",
	FieldEmail:   "Please enter a valid email address.",
	FieldMessage: "Message must be at least 10 characters.",
	FieldConsent: "You must agree to the Privacy Policy.",
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// FieldErrors maps a field's JSON name to its error message
type FieldErrors map[string]string

// Has reports whether field failed
func (e FieldErrors) Has(field Field) bool {
	_, ok := e[string(field)]
	return ok
}

// Validator runs the contact form rules through go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the contact form tags registered
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(v)
	return &Validator{validate: v}
}

var defaultValidator = New()

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("trimmed_min", validateTrimmedMin)
	v.RegisterValidation("email_shape", validateEmail)
	v.RegisterValidation("accepted", validateAccepted)
}

// ValidateSubmission checks every required field of sub and returns the failures.
// Values are judged after sanitization.NormalizeSubmission, as the server
// delivers them. A nil result means the submission is valid.
func (v *Validator) ValidateSubmission(sub contact.Submission) FieldErrors {
	if err := v.validate.Struct(sanitization.NormalizeSubmission(sub)); err != nil {
		return Translate(err)
	}
	return nil
}

// ValidateSubmission validates sub with the package default validator
func ValidateSubmission(sub contact.Submission) FieldErrors {
	return defaultValidator.ValidateSubmission(sub)
}

// ValidateField checks a single value, normalized the same way as
// ValidateSubmission. It returns the error message and false when the value
// fails, or "" and true when it passes. Unknown fields and phone always pass.
func ValidateField(field Field, value any) (string, bool) {
	var ok bool
	switch field {
	case FieldName:
		s, _ := value.(string)
		ok = hasMinTrimmedLength(sanitization.SanitizeLine(s), minNameLength)
	case FieldEmail:
		s, _ := value.(string)
		ok = IsEmail(sanitization.SanitizeEmail(s))
	case FieldMessage:
		s, _ := value.(string)
		ok = hasMinTrimmedLength(sanitization.SanitizeText(s), minMessageLength)
	case FieldConsent:
		b, isBool := value.(bool)
		ok = isBool && b
	default:
		return "", true
	}
	if ok {
		return "", true
	}
	return Messages[field], false
}

// IsEmail reports whether s has the local@domain.tld shape
func IsEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// Translate converts validator errors into FieldErrors keyed by JSON name
func Translate(err error) FieldErrors {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make(FieldErrors, len(validationErrors))
	for _, e := range validationErrors {
		field := Field(e.Field())
		msg, ok := Messages[field]
		if !ok {
			msg = "Invalid value."
		}
		out[string(field)] = msg
	}
	return out
}

func hasMinTrimmedLength(s string, minLen int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= minLen
}

func validateTrimmedMin(fl validator.FieldLevel) bool {
	minLen, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return hasMinTrimmedLength(fl.Field().String(), minLen)
}

func validateEmail(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

func validateAccepted(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
