package dto

import "time"

// StudentLoginRequest is the student self-service login payload.
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// StudentLoginResponse carries the issued token and the student profile.
type StudentLoginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expiresIn"` // seconds
	Student   *StudentProfile `json:"student"`
}

// StudentProfile is the password-free student view returned by auth endpoints.
type StudentProfile struct {
	ID            int64      `json:"id"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	StudentNumber string     `json:"studentNumber"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

// ChangePasswordRequest carries the current and replacement passwords.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
