package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/validation"
)

// gradeStore is the repository surface the grade service needs.
type gradeStore interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	GetAll(ctx context.Context) ([]*models.Grade, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Grade, error)
	ExistsForStudentCourse(ctx context.Context, studentID, courseID int64) (bool, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

// gradeStudentStore resolves students referenced by grades.
type gradeStudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// gradeCourseStore resolves courses referenced by grades.
type gradeCourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// gradeNotifier queues a notification email after a grade write.
type gradeNotifier interface {
	NotifyGradePosted(ctx context.Context, studentEmail, studentName, courseName, courseCode string, grade float64, gradedAt time.Time)
}

// GradeService handles grade recording and retrieval
type GradeService struct {
	gradeRepo   gradeStore
	studentRepo gradeStudentStore
	courseRepo  gradeCourseStore
	notifier    gradeNotifier
	logger      zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(gradeRepo gradeStore, studentRepo gradeStudentStore, courseRepo gradeCourseStore, notifier gradeNotifier, logger zerolog.Logger) *GradeService {
	return &GradeService{
		gradeRepo:   gradeRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateGrade records a grade for a student in a course. A student can hold
// at most one grade per course. The student is notified by email after the
// write succeeds; notification failures never fail the write.
func (s *GradeService) CreateGrade(ctx context.Context, req *dto.CreateGradeRequest) (*models.Grade, error) {
	if req.Grade == nil || !validation.IsValidGrade(*req.Grade) {
		return nil, apperrors.ErrGradeOutOfRange
	}

	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.gradeRepo.ExistsForStudentCourse(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing grade: %w", err)
	}
	if exists {
		return nil, apperrors.ErrGradeAlreadyExists
	}

	grade := &models.Grade{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Grade:     *req.Grade,
		GradedAt:  time.Now().UTC(),
	}

	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}

	grade.Student = student
	grade.Course = course

	s.logger.Info().
		Int64("grade_id", grade.ID).
		Int64("student_id", student.ID).
		Str("course_code", course.Code).
		Msg("Grade recorded")

	s.notifier.NotifyGradePosted(ctx, student.Email, student.FullName(), course.Name, course.Code, grade.Grade, grade.GradedAt)

	return grade, nil
}

// GetAllGrades lists all grades with their students and courses
func (s *GradeService) GetAllGrades(ctx context.Context) ([]*models.Grade, error) {
	return s.gradeRepo.GetAll(ctx)
}

// GetGradeByID retrieves one grade
func (s *GradeService) GetGradeByID(ctx context.Context, id int64) (*models.Grade, error) {
	return s.gradeRepo.GetByID(ctx, id)
}

// GetGradesForStudent lists all grades recorded for one student
func (s *GradeService) GetGradesForStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	return s.gradeRepo.GetByStudentID(ctx, studentID)
}

// UpdateGrade replaces the grade value and refreshes the graded timestamp.
// The student is notified of the change.
func (s *GradeService) UpdateGrade(ctx context.Context, id int64, req *dto.UpdateGradeRequest) (*models.Grade, error) {
	if req.Grade == nil || !validation.IsValidGrade(*req.Grade) {
		return nil, apperrors.ErrGradeOutOfRange
	}

	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	grade.Grade = *req.Grade
	grade.GradedAt = time.Now().UTC()

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, err
	}

	if grade.Student != nil && grade.Course != nil {
		s.notifier.NotifyGradePosted(ctx, grade.Student.Email, grade.Student.FullName(), grade.Course.Name, grade.Course.Code, grade.Grade, grade.GradedAt)
	}

	return grade, nil
}

// DeleteGrade removes a grade by ID
func (s *GradeService) DeleteGrade(ctx context.Context, id int64) error {
	if err := s.gradeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("grade_id", id).Msg("Grade deleted")
	return nil
}
