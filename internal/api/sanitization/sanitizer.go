package sanitization

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
)

// NormalizeSubmission tidies user input before it is validated and mailed.
// HTML escaping is left to the email templates.
func NormalizeSubmission(sub contact.Submission) contact.Submission {
	sub.Name = SanitizeLine(sub.Name)
	sub.Email = SanitizeEmail(sub.Email)
	sub.Phone = SanitizeLine(sub.Phone)
	sub.Message = SanitizeText(sub.Message)
	return sub
}

// SanitizeLine strips control characters and collapses all whitespace,
// newlines included, into single spaces
func SanitizeLine(input string) string {
	safe := stripControl(input, false)
	safe = whitespaceRun.ReplaceAllString(safe, " ")
	return strings.TrimSpace(safe)
}

// SanitizeText strips control characters but keeps line breaks, squeezing
// runs of blank lines to one
func SanitizeText(input string) string {
	safe := strings.ReplaceAll(input, "\r\n", "\n")
	safe = stripControl(safe, true)
	safe = blankLineRun.ReplaceAllString(safe, "\n\n")
	return strings.TrimSpace(safe)
}

// SanitizeEmail removes whitespace and control characters from an email address
func SanitizeEmail(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
}

func stripControl(input string, keepNewlines bool) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' && keepNewlines:
			return r
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, input)
}
