package email

import (
	"context"
	"testing"

	"familyservices/internal/config"
	"familyservices/internal/models"
)

func TestNewNotifier(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "Family Services",
		BaseURL:   "https://family.example.com",
	}

	notifier := NewNotifier(cfg)

	if notifier.service == nil {
		t.Error("Notifier service is nil")
	}
	if notifier.templates == nil {
		t.Error("Notifier templates is nil")
	}
	if cfg.Site == nil {
		t.Error("NewNotifier should fall back to default site config")
	}
}

func TestNotifyRegistration_SMTPDisabled(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "Family Services",
		Site:      config.DefaultSiteConfig(),
	}
	notifier := NewNotifier(cfg)

	// Must be a silent no-op when SMTP is not configured.
	notifier.NotifyRegistration(&models.User{
		FirstName: "Anna", LastName: "Smith", Email: "anna@example.com",
	})
}

func TestSendRequestProcessed_ToggleDisabled(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "Family Services",
		SMTPHost:  "smtp.example.com",
		SMTPFrom:  "noreply@example.com",
		Site:      config.DefaultSiteConfig(),
	}
	cfg.Site.Notifications.RequestProcessed = false
	notifier := NewNotifier(cfg)

	// Disabled toggle means no send attempt, so no error either.
	err := notifier.SendRequestProcessed(context.Background(),
		"anna@example.com", "Anna Smith", models.RequestProfileUpdate, true)
	if err != nil {
		t.Fatalf("SendRequestProcessed with toggle off: %v", err)
	}
}
