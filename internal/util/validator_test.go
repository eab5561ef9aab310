package util

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"alice@x.com", "bob.smith@university.edu", " spaced@x.com "}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("expected %q to be valid, got %v", email, err)
		}
	}

	invalid := []string{"", "not-an-email", "@x.com", "alice@"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("pw123456"); err != nil {
		t.Errorf("8-char password should pass, got %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("short password should fail")
	}
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidatePassword(string(long)); err == nil {
		t.Error("over-long password should fail")
	}
}

func TestValidateGPA(t *testing.T) {
	for _, gpa := range []float64{0, 2.5, 4.0} {
		if err := ValidateGPA(gpa); err != nil {
			t.Errorf("gpa %f should be valid, got %v", gpa, err)
		}
	}
	for _, gpa := range []float64{-0.1, 4.01, 10} {
		if err := ValidateGPA(gpa); err == nil {
			t.Errorf("gpa %f should be invalid", gpa)
		}
	}
}
