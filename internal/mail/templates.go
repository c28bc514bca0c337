package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var (
	otpTemplate = template.Must(template.New("otp").Parse(
		`<p>Hello,</p><p>{{.Intro}}</p><p style="font-size:24px;letter-spacing:4px"><strong>{{.Code}}</strong></p>` +
			`<p>The code expires in {{.Minutes}} minutes. If you did not request it, ignore this email.</p>`))
	resetTemplate = template.Must(template.New("reset").Parse(
		`<p>Hello,</p><p>We received a request to reset your NAPOWA password.</p>` +
			`<p><a href="{{.Link}}">Reset your password</a></p>` +
			`<p>The link expires in {{.Minutes}} minutes and can be used once.</p>`))
)

// VerificationCode renders the email verification message.
func VerificationCode(code string, ttl time.Duration) (subject, body string, err error) {
	body, err = render(otpTemplate, map[string]any{
		"Intro":   "Use this code to verify your NAPOWA email address:",
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
	return "Verify your email address", body, err
}

// LoginCode renders the two-factor login message.
func LoginCode(code string, ttl time.Duration) (subject, body string, err error) {
	body, err = render(otpTemplate, map[string]any{
		"Intro":   "Use this code to finish signing in to NAPOWA:",
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
	return "Your sign-in code", body, err
}

// ResetLink renders the password reset message.
func ResetLink(link string, ttl time.Duration) (subject, body string, err error) {
	body, err = render(resetTemplate, map[string]any{
		"Link":    link,
		"Minutes": int(ttl.Minutes()),
	})
	return "Reset your password", body, err
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}
