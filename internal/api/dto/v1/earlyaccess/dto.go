package earlyaccess

// SignupRequest is the body of POST /api/early-access
type SignupRequest struct {
	Email string `json:"email"`
}

const (
	MessageSignedUp      = "Successfully signed up!"
	MessageEmailRequired = "Email is required"
	MessageEmailInvalid  = "Invalid email address"
	MessageServerError   = "Server error. Please try again later."
)
