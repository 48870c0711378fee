package models

import (
	"time"
)

// Student defines the student model based on the 'students' table.
// Students carry their own credentials for the self-service login scheme.
type Student struct {
	ID            int64      `json:"id" db:"id"`
	FirstName     string     `json:"firstName" db:"first_name"`
	LastName      string     `json:"lastName" db:"last_name"`
	Email         string     `json:"email" db:"email"`
	Password      string     `json:"-" db:"password"` // Hashed password (excluded from JSON)
	StudentNumber string     `json:"studentNumber" db:"student_number"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	UserID        *int64     `json:"userId,omitempty" db:"user_id"` // Linked provider account (nullable)
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	User *User `json:"user,omitempty"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
