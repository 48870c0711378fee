package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

// courseStore is the repository surface the course service needs.
type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseService handles course management
type CourseService struct {
	courseRepo courseStore
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo courseStore, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// defaultCredits applies when a create request leaves the credit count unset.
const defaultCredits = 3

// normalizeCourseCode uppercases and trims a course code
func normalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateCourse creates a new course with a unique code
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	code := normalizeCourseCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
	}

	exists, err := s.courseRepo.CodeExists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error checking course code: %w", err)
	}
	if exists {
		return nil, apperrors.ErrCourseCodeExists
	}

	course := &models.Course{
		Name:        strings.TrimSpace(req.Name),
		Code:        code,
		Description: strings.TrimSpace(req.Description),
		Credits:     defaultCredits,
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("course_id", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// GetAllCourses lists all courses
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetCourseByID retrieves one course
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// UpdateCourse applies a partial update
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		code := normalizeCourseCode(*req.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
		}
		if code != course.Code {
			exists, err := s.courseRepo.CodeExists(ctx, code)
			if err != nil {
				return nil, fmt.Errorf("error checking course code: %w", err)
			}
			if exists {
				return nil, apperrors.ErrCourseCodeExists
			}
		}
		course.Code = code
	}
	if req.Description != nil {
		course.Description = strings.TrimSpace(*req.Description)
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes a course and, via cascade, all grades recorded for it
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("course_id", id).Msg("Course deleted")
	return nil
}
