package validation

import (
	"errors"
	"testing"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
)

func validSubmission() contact.Submission {
	return contact.Submission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "I need a website for my bakery.",
		Consent: true,
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   any
		wantMsg string
		wantOK  bool
	}{
		{"name ok", FieldName, "Jo", "", true},
		{"name trimmed too short", FieldName, "  A  ", Messages[FieldName], false},
		{"name empty", FieldName, "", Messages[FieldName], false},
		{"name multibyte", FieldName, "Zé", "", true},
		{"email ok", FieldEmail, "jane@example.com", "", true},
		{"email plus tag", FieldEmail, "jane+web@mail.example.co.ke", "", true},
		{"email missing at", FieldEmail, "not-an-email", Messages[FieldEmail], false},
		{"email missing tld", FieldEmail, "jane@example", Messages[FieldEmail], false},
		{"email empty", FieldEmail, "", Messages[FieldEmail], false},
		{"message ok", FieldMessage, "0123456789", "", true},
		{"message short", FieldMessage, "short", Messages[FieldMessage], false},
		{"message padded", FieldMessage, "   123456789   ", Messages[FieldMessage], false},
		{"consent true", FieldConsent, true, "", true},
		{"consent false", FieldConsent, false, Messages[FieldConsent], false},
		{"consent string", FieldConsent, "true", Messages[FieldConsent], false},
		{"consent nil", FieldConsent, nil, Messages[FieldConsent], false},
		{"phone anything", FieldPhone, "call me maybe", "", true},
		{"phone empty", FieldPhone, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := ValidateField(tt.field, tt.value)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Errorf("ValidateField(%s, %v) = (%q, %v), want (%q, %v)", tt.field, tt.value, msg, ok, tt.wantMsg, tt.wantOK)
			}
		})
	}
}

func TestValidateSubmissionValid(t *testing.T) {
	if errs := ValidateSubmission(validSubmission()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}

	// phone and honeypot never block validity
	sub := validSubmission()
	sub.Phone = "???"
	sub.Honeypot = "http://spam.example"
	if errs := ValidateSubmission(sub); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateSubmissionSingleFieldInvalid(t *testing.T) {
	tests := []struct {
		field  Field
		mutate func(*contact.Submission)
	}{
		{FieldName, func(s *contact.Submission) { s.Name = "A" }},
		{FieldEmail, func(s *contact.Submission) { s.Email = "not-an-email" }},
		{FieldMessage, func(s *contact.Submission) { s.Message = "short" }},
		{FieldConsent, func(s *contact.Submission) { s.Consent = false }},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			errs := ValidateSubmission(sub)
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if got := errs[string(tt.field)]; got != Messages[tt.field] {
				t.Errorf("errors[%s] = %q, want %q", tt.field, got, Messages[tt.field])
			}
		})
	}
}

func TestValidateSubmissionMatchesValidateField(t *testing.T) {
	sub := contact.Submission{Name: "J", Email: "jane@example.com", Message: "Hi", Consent: true}

	errs := ValidateSubmission(sub)
	if !errs.Has(FieldName) || !errs.Has(FieldMessage) {
		t.Fatalf("expected name and message errors, got %v", errs)
	}
	if errs.Has(FieldEmail) || errs.Has(FieldConsent) {
		t.Fatalf("unexpected errors: %v", errs)
	}

	for field, msg := range errs {
		var value any
		switch Field(field) {
		case FieldName:
			value = sub.Name
		case FieldMessage:
			value = sub.Message
		}
		want, _ := ValidateField(Field(field), value)
		if msg != want {
			t.Errorf("field %s: struct message %q differs from field message %q", field, msg, want)
		}
	}
}

func TestTranslateIgnoresOtherErrors(t *testing.T) {
	if got := Translate(errors.New("boom")); got != nil {
		t.Errorf("Translate(non-validation error) = %v, want nil", got)
	}
}

func TestIsBot(t *testing.T) {
	if IsBot("") {
		t.Error("empty honeypot should not be a bot")
	}
	if !IsBot("http://spam.example") {
		t.Error("filled honeypot should be a bot")
	}
	if !IsBot("  ") {
		t.Error("whitespace-only honeypot should be a bot")
	}
}

func TestValidationJudgesNormalizedValues(t *testing.T) {
	tests := []struct {
		name   string
		field  Field
		mutate func(*contact.Submission)
		value  string
		wantOK bool
	}{
		{"control char does not pad name", FieldName, func(s *contact.Submission) { s.Name = "A\u0007" }, "A\u0007", false},
		{"tab in name counts as space", FieldName, func(s *contact.Submission) { s.Name = "J\tD" }, "J\tD", true},
		{"space inside email is dropped", FieldEmail, func(s *contact.Submission) { s.Email = "jane @example.com" }, "jane @example.com", true},
		{"nul bytes do not pad message", FieldMessage, func(s *contact.Submission) { s.Message = "123456789\u0000\u0000" }, "123456789\u0000\u0000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ValidateField(tt.field, tt.value)
			if ok != tt.wantOK {
				t.Errorf("ValidateField(%s, %q) ok = %v, want %v", tt.field, tt.value, ok, tt.wantOK)
			}

			sub := validSubmission()
			tt.mutate(&sub)
			if got := ValidateSubmission(sub).Has(tt.field); got == tt.wantOK {
				t.Errorf("ValidateSubmission flagged %s = %v, want %v", tt.field, got, !tt.wantOK)
			}
		})
	}
}
