package models

import (
	"time"
)

// User defines the user model based on the 'users' table. Users are created
// and updated by identity provider webhook events, never by direct signup.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	SubjectID string    `json:"subjectId" db:"subject_id" example:"user_2abc123"`         // Identity provider's stable subject id
	Email     string    `json:"email" db:"email" example:"user@school.edu"`               // User's email address
	FirstName string    `json:"firstName" db:"first_name" example:"Jean"`                 // User's first name
	LastName  string    `json:"lastName" db:"last_name" example:"Dupont"`                 // User's last name
	RoleType  RoleType  `json:"role" db:"role" example:"visitor"`                         // User's role (student, registrar, administrator, visitor)
	StudentID *int64    `json:"studentId,omitempty" db:"student_id"`                      // Linked student profile (nullable)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated

	// Relation (populated when needed)
	Student *Student `json:"student,omitempty"`
}
