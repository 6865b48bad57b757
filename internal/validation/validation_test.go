package validation

import (
	"strings"
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"simple address", "anna@example.com", true},
		{"plus tag", "anna+family@example.com", true},
		{"subdomain", "a.b@mail.example.co.uk", true},
		{"empty", "", false},
		{"missing at", "annaexample.com", false},
		{"missing tld", "anna@example", false},
		{"spaces inside", "anna smith@example.com", false},
		{"leading whitespace trimmed", "  anna@example.com", true},
		{"too long", strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateEmail(tt.email)
			if valid != tt.valid {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, valid, tt.valid)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	got := NormalizeEmail("  Anna.Smith@Example.COM ")
	if got != "anna.smith@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"minimum length", "12345678", true},
		{"too short", "1234567", false},
		{"empty", "", false},
		{"nearly too long", strings.Repeat("x", 72), true},
		{"over bcrypt limit", strings.Repeat("x", 73), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidatePassword(tt.password)
			if valid != tt.valid {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, valid, tt.valid)
			}
		})
	}
}

func TestValidateDateOfBirth(t *testing.T) {
	if valid, _ := ValidateDateOfBirth(time.Now().AddDate(0, 0, 1)); valid {
		t.Error("future date accepted")
	}
	if valid, _ := ValidateDateOfBirth(time.Now().AddDate(-200, 0, 0)); valid {
		t.Error("200-year-old date accepted")
	}
	if valid, msg := ValidateDateOfBirth(time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)); !valid {
		t.Errorf("plausible date rejected: %s", msg)
	}
}

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"16 digits", "4242424242424242", true},
		{"with spaces", "4242 4242 4242 4242", true},
		{"with hyphens", "4242-4242-4242-4242", true},
		{"13 digits", "4222222222222", true},
		{"too short", "424242424242", false},
		{"too long", "42424242424242424242", false},
		{"letters", "4242abcd42424242", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateCardNumber(tt.number)
			if valid != tt.valid {
				t.Errorf("ValidateCardNumber(%q) = %v, want %v", tt.number, valid, tt.valid)
			}
		})
	}
}

func TestValidateCVV(t *testing.T) {
	for cvv, want := range map[string]bool{"123": true, "1234": true, "12": false, "12345": false, "12a": false} {
		if valid, _ := ValidateCVV(cvv); valid != want {
			t.Errorf("ValidateCVV(%q) = %v, want %v", cvv, valid, want)
		}
	}
}
