package email

import (
	"fmt"
	"html"
	"strings"

	"familyservices/internal/config"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #0f766e; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .success { color: #059669; }
        .error { color: #dc2626; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// RegistrationReceived confirms a new registration pending approval.
func (t *Templates) RegistrationReceived(name string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Registration Confirmation - %s", t.cfg.SiteTitle)

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>Thank you for registering with %s. Your account is currently pending approval.</p>
        <p>You will receive another email once your account has been approved.</p>
    `, html.EscapeString(name), html.EscapeString(t.cfg.SiteTitle))

	htmlBody = t.baseHTML("Registration Confirmation", content)
	textBody = fmt.Sprintf(
		"Hello %s,\n\nThank you for registering with %s. Your account is currently pending approval.\nYou will receive another email once your account has been approved.\n",
		name, t.cfg.SiteTitle)
	return subject, htmlBody, textBody
}

// AccountApproved informs a family their account was approved.
func (t *Templates) AccountApproved(name string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Account Approved - %s", t.cfg.SiteTitle)

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p class="success">Your account has been approved!</p>
        <p>You can now log in to access your dashboard and all our services.</p>
        <a href="%s" class="button">Go to your dashboard</a>
    `, html.EscapeString(name), t.cfg.BaseURL)

	htmlBody = t.baseHTML("Account Approved", content)
	textBody = fmt.Sprintf(
		"Hello %s,\n\nYour %s account has been approved! You can now log in to access your dashboard.\n",
		name, t.cfg.SiteTitle)
	return subject, htmlBody, textBody
}

// AccountBlocked informs a user their access was restricted.
func (t *Templates) AccountBlocked(name, reason string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Account Access Restricted - %s", t.cfg.SiteTitle)

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p class="error">Your access to %s has been restricted due to %s.</p>
        <p>If you believe this is an error or would like to discuss this further, please contact our support team.</p>
    `, html.EscapeString(name), html.EscapeString(t.cfg.SiteTitle), html.EscapeString(reason))

	htmlBody = t.baseHTML("Account Access Restricted", content)
	textBody = fmt.Sprintf(
		"Hello %s,\n\nYour access to %s has been restricted due to %s.\nIf you believe this is an error, please contact our support team.\n",
		name, t.cfg.SiteTitle, reason)
	return subject, htmlBody, textBody
}

// AccountActivated informs a user their account is active again.
func (t *Templates) AccountActivated(name string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Account Activated - %s", t.cfg.SiteTitle)

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p class="success">Your account has been activated!</p>
        <p>You can now log in to access your dashboard and all our services.</p>
    `, html.EscapeString(name))

	htmlBody = t.baseHTML("Account Activated", content)
	textBody = fmt.Sprintf(
		"Hello %s,\n\nYour %s account has been activated! You can now log in.\n",
		name, t.cfg.SiteTitle)
	return subject, htmlBody, textBody
}

// PasswordReset carries the password reset link.
func (t *Templates) PasswordReset(name, token string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Password Reset Request - %s", t.cfg.SiteTitle)
	resetURL := fmt.Sprintf("%s/reset-password/%s", t.cfg.BaseURL, token)

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>Please click the link below to reset your password:</p>
        <a href="%s" class="button">Reset Your Password</a>
        <p>This link will expire in 1 hour.</p>
        <p>If you didn't request a password reset, please ignore this email.</p>
    `, html.EscapeString(name), resetURL)

	htmlBody = t.baseHTML("Password Reset Request", content)
	textBody = fmt.Sprintf(
		"Hello %s,\n\nReset your password: %s\nThis link will expire in 1 hour.\nIf you didn't request a password reset, please ignore this email.\n",
		name, resetURL)
	return subject, htmlBody, textBody
}

// RequestProcessed informs a family their update request was resolved.
func (t *Templates) RequestProcessed(name, requestType string, approved bool) (subject, htmlBody, textBody string) {
	outcome := "Rejected"
	if approved {
		outcome = "Approved"
	}
	subject = fmt.Sprintf("Request %s - %s", outcome, t.cfg.SiteTitle)

	requestLabel := strings.ToLower(strings.ReplaceAll(requestType, "_", " "))

	followUp := "If you have any questions, please contact our support team."
	if approved {
		followUp = "The changes have been applied to your account."
	}

	content := fmt.Sprintf(`
        <p>Hello %s,</p>
        <p>Your recent request to %s has been <strong>%s</strong>.</p>
        <p>%s</p>
    `, html.EscapeString(name), html.EscapeString(requestLabel), strings.ToLower(outcome), followUp)

	htmlBody = t.baseHTML(fmt.Sprintf("Request %s", outcome), content)
	textBody = fmt.Sprintf(
		"Hello %s,\n\nYour recent request to %s has been %s.\n%s\n",
		name, requestLabel, strings.ToLower(outcome), followUp)
	return subject, htmlBody, textBody
}
