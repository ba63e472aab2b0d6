package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// AppName appears in email subjects and bodies.
const AppName = "Auth Starter"

// NewMagicLinkEmail composes the sign-in email for a magic link.
func NewMagicLinkEmail(to, link string, ttl time.Duration) (*Email, error) {
	data := struct {
		AppName   string
		URL       string
		ExpiresIn string
	}{AppName, link, humanizeDuration(ttl)}

	html, err := render("magic_link.html", data)
	if err != nil {
		return nil, err
	}

	return &Email{
		To:      []string{to},
		Subject: "Sign in to " + AppName,
		HTML:    html,
		Text:    fmt.Sprintf("Sign in to %s: %s\n\nThe link expires in %s.", AppName, link, data.ExpiresIn),
	}, nil
}

// NewContactEmail composes the notification for a contact form submission.
// Replies go to the submitter.
func NewContactEmail(to, name, email, message string) (*Email, error) {
	data := struct {
		Name    string
		Email   string
		Message string
	}{name, email, message}

	html, err := render("contact.html", data)
	if err != nil {
		return nil, err
	}

	return &Email{
		To:      []string{to},
		Subject: "New contact message from " + name,
		HTML:    html,
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message),
		ReplyTo: email,
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return pluralize(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return pluralize(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
