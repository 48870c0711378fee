package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Student number pattern - STU + year + sequence padded to at least
	// four digits
	StudentNumberPattern = `^STU\d{4}\d{4,}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	StudentNumber *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	StudentNumber: regexp.MustCompile(StudentNumberPattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidStudentNumber reports whether the value matches the generated
// student number format.
func IsValidStudentNumber(number string) bool {
	return CompiledPatterns.StudentNumber.MatchString(number)
}

// GradeMin and GradeMax bound the accepted grade scale.
const (
	GradeMin = 0.0
	GradeMax = 20.0
)

// IsValidGrade reports whether a grade value is on the 0-20 scale.
func IsValidGrade(value float64) bool {
	return value >= GradeMin && value <= GradeMax
}
