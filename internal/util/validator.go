package util

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateEmail checks address syntax and rejects blanks.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	return nil
}

// ValidatePassword enforces the minimum signup password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password too short, min 8 characters")
	}
	if len(password) > 64 {
		return fmt.Errorf("password too long, max 64 characters")
	}
	return nil
}

// ValidateGPA checks a GPA is on the 0.0–4.0 scale.
func ValidateGPA(gpa float64) error {
	if gpa < 0 || gpa > 4.0 {
		return fmt.Errorf("gpa out of range, got %f", gpa)
	}
	return nil
}
