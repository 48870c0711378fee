package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/db"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/auth"
	"github.com/gradesphere/gradesphere/internal/pkg/validation"
)

// studentStore is the repository surface the student service needs.
type studentStore interface {
	NextStudentNumberTx(ctx context.Context, tx pgx.Tx) (string, error)
	CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// txRunner runs a function inside a database transaction.
type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// welcomeNotifier queues the credentials email for a freshly created student.
type welcomeNotifier interface {
	NotifyWelcome(ctx context.Context, studentEmail, studentName, studentNumber, tempPassword string)
}

// StudentService handles staff-side student management
type StudentService struct {
	studentRepo studentStore
	tx          txRunner
	notifier    welcomeNotifier
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo studentStore, tx txRunner, notifier welcomeNotifier, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		tx:          tx,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateStudent registers a new student with a generated student number and
// a server-generated temporary password. The credentials are queued for
// delivery by email; the temporary password is also returned so staff can
// relay it manually.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.CreatedStudentResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}

	exists, err := s.studentRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("error generating temporary password: %w", err)
	}

	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  hash,
		IsActive:  true,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		number, err := s.studentRepo.NextStudentNumberTx(ctx, tx)
		if err != nil {
			return err
		}
		student.StudentNumber = number

		return s.studentRepo.CreateTx(ctx, tx, student)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("student_id", student.ID).
		Str("student_number", student.StudentNumber).
		Msg("Student created")

	s.notifier.NotifyWelcome(ctx, student.Email, student.FullName(), student.StudentNumber, tempPassword)

	return &dto.CreatedStudentResponse{
		Student:      StudentToProfile(student),
		TempPassword: tempPassword,
	}, nil
}

// GetAllStudents lists all students
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*dto.StudentProfile, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]*dto.StudentProfile, 0, len(students))
	for _, student := range students {
		profiles = append(profiles, StudentToProfile(student))
	}

	return profiles, nil
}

// GetStudentByID retrieves one student
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*dto.StudentProfile, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return StudentToProfile(student), nil
}

// UpdateStudent applies a partial staff-side update
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentProfile, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		student.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validation.IsValidEmail(email) {
			return nil, apperrors.ErrInvalidEmail
		}
		student.Email = email
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return StudentToProfile(student), nil
}

// UpdateMyProfile applies a student self-service profile update
func (s *StudentService) UpdateMyProfile(ctx context.Context, studentID int64, req *dto.UpdateMyProfileRequest) (*dto.StudentProfile, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		student.LastName = strings.TrimSpace(*req.LastName)
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return StudentToProfile(student), nil
}

// DeleteStudent removes a student and, via cascade, all their grades
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("student_id", id).Msg("Student deleted")
	return nil
}
