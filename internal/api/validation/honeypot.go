package validation

// IsBot reports whether the hidden honeypot field was filled in.
// Humans never see the field, so any value marks an automated submission.
func IsBot(honeypot string) bool {
	return honeypot != ""
}
