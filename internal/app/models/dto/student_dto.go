package dto

// CreateStudentRequest is the staff-side student creation payload. The
// account password is generated server-side and delivered by email.
type CreateStudentRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// UpdateStudentRequest updates student fields; nil fields are left untouched.
type UpdateStudentRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// UpdateMyProfileRequest is the student self-service profile update payload.
type UpdateMyProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// CreatedStudentResponse is returned on staff creation. The temporary
// password is surfaced once so staff can relay it if email delivery fails.
type CreatedStudentResponse struct {
	Student      *StudentProfile `json:"student"`
	TempPassword string          `json:"tempPassword"`
}
