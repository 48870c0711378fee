package models

import "time"

// Grade represents a grade on the 'grades' table. At most one grade exists
// per (student, course) pair, enforced by a unique index.
type Grade struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Grade     float64   `json:"grade" db:"grade"` // 0-20 scale
	GradedAt  time.Time `json:"gradedAt" db:"graded_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated on list/detail reads)
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
