package email

import (
	"context"

	"familyservices/internal/config"
	"familyservices/internal/models"
)

// Notifier sends email notifications for account and request events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	if cfg.Site == nil {
		cfg.Site = config.DefaultSiteConfig()
	}
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
	}
}

// NotifyRegistration confirms a new registration. Fire and forget.
func (n *Notifier) NotifyRegistration(user *models.User) {
	if !n.service.IsEnabled() || !n.cfg.Site.Notifications.Registration {
		return
	}
	subject, htmlBody, textBody := n.templates.RegistrationReceived(user.FullName())
	n.service.SendAsync(user.Email, subject, htmlBody, textBody)
}

// NotifyAccountApproved informs a family their account was approved.
func (n *Notifier) NotifyAccountApproved(user *models.User) {
	if !n.service.IsEnabled() || !n.cfg.Site.Notifications.AccountApproval {
		return
	}
	subject, htmlBody, textBody := n.templates.AccountApproved(user.FullName())
	n.service.SendAsync(user.Email, subject, htmlBody, textBody)
}

// NotifyAccountBlocked informs a user their access was restricted.
func (n *Notifier) NotifyAccountBlocked(user *models.User, reason string) {
	if !n.service.IsEnabled() || !n.cfg.Site.Notifications.AccountStatus {
		return
	}
	subject, htmlBody, textBody := n.templates.AccountBlocked(user.FullName(), reason)
	n.service.SendAsync(user.Email, subject, htmlBody, textBody)
}

// NotifyAccountActivated informs a user their account is active again.
func (n *Notifier) NotifyAccountActivated(user *models.User) {
	if !n.service.IsEnabled() || !n.cfg.Site.Notifications.AccountStatus {
		return
	}
	subject, htmlBody, textBody := n.templates.AccountActivated(user.FullName())
	n.service.SendAsync(user.Email, subject, htmlBody, textBody)
}

// SendPasswordReset carries the reset link. Fire and forget so response
// timing doesn't leak whether the account exists.
func (n *Notifier) SendPasswordReset(user *models.User, token string) {
	if !n.service.IsEnabled() || !n.cfg.Site.Notifications.PasswordReset {
		return
	}
	subject, htmlBody, textBody := n.templates.PasswordReset(user.FullName(), token)
	n.service.SendAsync(user.Email, subject, htmlBody, textBody)
}

// SendRequestProcessed informs the owner of an update request about the
// outcome. Unlike the account notifications this one is synchronous: the
// approval workflow reports notification failure separately from the
// processing result, so the error must surface here.
func (n *Notifier) SendRequestProcessed(_ context.Context, to, name, requestType string, approved bool) error {
	if !n.service.IsEnabled() || !n.cfg.Site.Notifications.RequestProcessed {
		return nil
	}
	subject, htmlBody, textBody := n.templates.RequestProcessed(name, requestType, approved)
	return n.service.SendEmail(to, subject, htmlBody, textBody)
}
