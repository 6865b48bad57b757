package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SiteConfig represents the structure of the config.yaml file.
// Settings that are lists or per-event toggles are easier to manage in
// YAML than env vars.
type SiteConfig struct {
	Admins        []AdminAccount      `yaml:"admins"`
	Notifications NotificationToggles `yaml:"notifications"`
}

// AdminAccount defines a bootstrap admin in the YAML config.
type AdminAccount struct {
	Email string `yaml:"email"`
}

// NotificationToggles controls which events send email.
type NotificationToggles struct {
	Registration     bool `yaml:"registration"`
	AccountApproval  bool `yaml:"account_approval"`
	AccountStatus    bool `yaml:"account_status"`
	RequestProcessed bool `yaml:"request_processed"`
	PasswordReset    bool `yaml:"password_reset"`
}

func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Notifications: NotificationToggles{
			Registration:     true,
			AccountApproval:  true,
			AccountStatus:    true,
			RequestProcessed: true,
			PasswordReset:    true,
		},
	}
}

// LoadSiteConfig loads the YAML site configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns the defaults without error if the file doesn't exist.
func LoadSiteConfig() (*SiteConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return DefaultSiteConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultSiteConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
