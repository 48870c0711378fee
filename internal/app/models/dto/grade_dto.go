package dto

// CreateGradeRequest is the grade creation payload. Grade is a pointer so a
// missing field is distinguishable from a legitimate zero.
type CreateGradeRequest struct {
	StudentID int64    `json:"studentId" binding:"required"`
	CourseID  int64    `json:"courseId" binding:"required"`
	Grade     *float64 `json:"grade" binding:"required"`
}

// UpdateGradeRequest updates the grade value of an existing record.
type UpdateGradeRequest struct {
	Grade *float64 `json:"grade" binding:"required"`
}
