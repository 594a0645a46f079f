package contact

// Submission is the contact form payload sent from the form to POST /api/contact.
// Phone, Honeypot and RecaptchaToken never affect validity; a non-empty
// Honeypot marks the submission as automated.
type Submission struct {
	Name           string `json:"name" validate:"trimmed_min=2"`
	Email          string `json:"email" validate:"email_shape"`
	Phone          string `json:"phone,omitempty"`
	Message        string `json:"message" validate:"trimmed_min=10"`
	Consent        bool   `json:"consent" validate:"accepted"`
	Honeypot       string `json:"honeypot,omitempty"`
	RecaptchaToken string `json:"recaptcha_token,omitempty"`
}

// User-facing messages returned by the contact endpoint
const (
	MessageSent               = "Message sent successfully! We will be in touch soon."
	MessageInvalidData        = "Please correct the highlighted fields."
	MessageMalformed          = "Failed to process request."
	MessageUnavailable        = "Email service is temporarily unavailable. Please try again later."
	MessageCaptchaFailed      = "reCAPTCHA verification failed."
	MessageCaptchaUnavailable = "Could not verify reCAPTCHA. Please try again later."
	MessageAdminLeg           = "admin notification"
	MessageUserLeg            = "user confirmation"
	MessageDispatchFailed     = "Failed to send message"
)
