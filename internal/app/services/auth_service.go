package services

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/auth"
)

// studentFinder is the repository surface the auth service needs.
type studentFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64) error
}

// tokenIssuer issues and validates student session tokens.
type tokenIssuer interface {
	GenerateStudentToken(studentID int64, email string) (string, int, error)
}

// AuthService handles student self-service authentication
type AuthService struct {
	studentRepo studentFinder
	jwtService  tokenIssuer
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(studentRepo studentFinder, jwtService tokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a student by email and password. Unknown email, wrong
// password and disabled account all surface as the same credential error so
// the endpoint does not leak which emails are registered.
func (s *AuthService) Login(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentLoginResponse, error) {
	student, err := s.studentRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up student: %w", err)
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !student.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateStudentToken(student.ID, student.Email)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.studentRepo.UpdateLastLogin(ctx, student.ID); err != nil {
		s.logger.Warn().Err(err).Int64("student_id", student.ID).Msg("Could not update last login time")
	}

	return &dto.StudentLoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		Student:   StudentToProfile(student),
	}, nil
}

// GetProfile returns the authenticated student's own profile
func (s *AuthService) GetProfile(ctx context.Context, studentID int64) (*dto.StudentProfile, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return StudentToProfile(student), nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *AuthService) ChangePassword(ctx context.Context, studentID int64, req *dto.ChangePasswordRequest) error {
	if err := validateNewPassword(req.NewPassword); err != nil {
		return err
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(student.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.studentRepo.UpdatePassword(ctx, studentID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("student_id", studentID).Msg("Student changed password")
	return nil
}

// validateNewPassword checks replacement password strength
func validateNewPassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// StudentToProfile maps a student model to its password-free API view
func StudentToProfile(student *models.Student) *dto.StudentProfile {
	if student == nil {
		return nil
	}

	return &dto.StudentProfile{
		ID:            student.ID,
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		Email:         student.Email,
		StudentNumber: student.StudentNumber,
		CreatedAt:     student.CreatedAt,
		LastLoginAt:   student.LastLoginAt,
	}
}
