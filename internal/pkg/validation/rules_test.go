package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ada.lovelace@school.edu", true},
		{"a+tag@sub.domain.org", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@school.edu", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsValidStudentNumber(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"STU20260042", true},
		{"STU19990001", true},
		{"STU202610000", true},
		{"STU202642", false},
		{"stu20260042", false},
		{"20260042", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidStudentNumber(tt.number); got != tt.want {
			t.Errorf("IsValidStudentNumber(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestIsValidGrade(t *testing.T) {
	tests := []struct {
		grade float64
		want  bool
	}{
		{0, true},
		{20, true},
		{10.25, true},
		{-0.01, false},
		{20.01, false},
	}

	for _, tt := range tests {
		if got := IsValidGrade(tt.grade); got != tt.want {
			t.Errorf("IsValidGrade(%v) = %v, want %v", tt.grade, got, tt.want)
		}
	}
}
