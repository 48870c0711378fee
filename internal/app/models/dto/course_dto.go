package dto

// CreateCourseRequest is the course creation payload.
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
	Credits     *int   `json:"credits,omitempty" binding:"omitempty,min=0"`
}

// UpdateCourseRequest updates course fields; nil fields are left untouched.
type UpdateCourseRequest struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	Credits     *int    `json:"credits,omitempty" binding:"omitempty,min=0"`
}
