package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
)

const companyName = "SIRCH SOLUTIONS KE"

var operatorNotificationTmpl = template.Must(template.New("operator").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>New Contact Form Submission</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>
  {{end}}<hr>
  <p><strong>Message:</strong></p>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</div>
`))

var userConfirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Thank you for contacting {{.Company}}</h2>
  <p>Hi {{.Name}},</p>
  <p>We have received your message and will get back to you shortly.</p>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
  <p>Kind regards,<br>The {{.Company}} team</p>
</div>
`))

var earlyAccessTmpl = template.Must(template.New("early-access").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>New Early Access Lead</h2>
  <p>A new user has signed up for early access to the SIRCH Academy.</p>
  <hr>
  <p><strong>Email:</strong> {{.Email}}</p>
  <hr>
  <p style="font-size: 0.8em; color: #888;">This lead was captured from the 'Future Initiatives' page on the {{.Company}} website.</p>
</div>
`))

type templateData struct {
	Company string
	Name    string
	Email   string
	Phone   string
	Message string
}

func newTemplateData(sub contact.Submission) templateData {
	return templateData{
		Company: companyName,
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Phone:   strings.TrimSpace(sub.Phone),
		Message: strings.TrimSpace(sub.Message),
	}
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// singleLine collapses whitespace so user input cannot break a subject line
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NewOperatorNotification builds the email sent to the site operator.
// ReplyTo is the submitter so a reply reaches them directly.
func NewOperatorNotification(sub contact.Submission, from, to string) (*EmailMessage, error) {
	data := newTemplateData(sub)
	html, err := render(operatorNotificationTmpl, data)
	if err != nil {
		return nil, err
	}
	return &EmailMessage{
		ID:      uuid.NewString(),
		From:    from,
		To:      to,
		Subject: "New Contact Form Submission from " + singleLine(data.Name),
		HTML:    html,
		ReplyTo: data.Email,
	}, nil
}

// NewUserConfirmation builds the acknowledgement sent to the submitter
func NewUserConfirmation(sub contact.Submission, from string) (*EmailMessage, error) {
	data := newTemplateData(sub)
	html, err := render(userConfirmationTmpl, data)
	if err != nil {
		return nil, err
	}
	return &EmailMessage{
		ID:      uuid.NewString(),
		From:    from,
		To:      data.Email,
		Subject: "We received your message - " + companyName,
		HTML:    html,
	}, nil
}

// NewEarlyAccessNotification builds the operator email for an early access signup
func NewEarlyAccessNotification(email, from, to string) (*EmailMessage, error) {
	data := templateData{Company: companyName, Email: strings.TrimSpace(email)}
	html, err := render(earlyAccessTmpl, data)
	if err != nil {
		return nil, err
	}
	return &EmailMessage{
		ID:      uuid.NewString(),
		From:    from,
		To:      to,
		Subject: "New Early Access Signup for SIRCH Academy!",
		HTML:    html,
		ReplyTo: data.Email,
	}, nil
}
