package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/auth"
)

// userStore is the repository surface the user service needs.
type userStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateBySubjectID(ctx context.Context, subjectID, email, firstName, lastName string) error
	UpdateRole(ctx context.Context, id int64, role models.RoleType) error
	Delete(ctx context.Context, id int64) error
	DeleteBySubjectIDTx(ctx context.Context, tx pgx.Tx, subjectID string) error
}

// userStudentStore pairs provider accounts with student records.
type userStudentStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	NextStudentNumberTx(ctx context.Context, tx pgx.Tx) (string, error)
	CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error
	LinkUserTx(ctx context.Context, tx pgx.Tx, studentID, userID int64) error
	DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error
}

// UserService keeps the local user table in sync with the identity provider
// and handles role management.
type UserService struct {
	userRepo    userStore
	studentRepo userStudentStore
	tx          txRunner
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo userStore, studentRepo userStudentStore, tx txRunner, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		tx:          tx,
		logger:      logger,
	}
}

// Provider webhook event types.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// HandleProviderEvent applies one verified webhook event to the local user
// table. Unknown event types are acknowledged and ignored.
func (s *UserService) HandleProviderEvent(ctx context.Context, event *dto.ProviderWebhookEvent) error {
	switch event.Type {
	case EventUserCreated:
		return s.handleUserCreated(ctx, event.Data)
	case EventUserUpdated:
		return s.handleUserUpdated(ctx, event.Data)
	case EventUserDeleted:
		return s.handleUserDeleted(ctx, event.Data)
	default:
		s.logger.Debug().Str("event_type", event.Type).Msg("Ignoring unhandled webhook event")
		return nil
	}
}

// handleUserCreated inserts a local user for a new provider account with the
// student role and pairs it with a student profile. A student record already
// sharing the email is reused; otherwise a new profile is created with a
// generated student number. Both records are cross-linked in one transaction.
func (s *UserService) handleUserCreated(ctx context.Context, data dto.ProviderWebhookEventData) error {
	email := strings.ToLower(data.PrimaryEmail())
	if data.ID == "" || email == "" {
		return fmt.Errorf("%w: webhook event missing subject or email", apperrors.ErrValidationFailed)
	}

	// Webhooks can be redelivered; treat a replay as a no-op.
	if _, err := s.userRepo.GetBySubjectID(ctx, data.ID); err == nil {
		s.logger.Debug().Str("subject_id", data.ID).Msg("User already synced, skipping create")
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	user := &models.User{
		SubjectID: data.ID,
		Email:     email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		RoleType:  models.RoleStudent,
	}

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if student == nil {
			student, err = s.newStudentProfile(ctx, tx, data, email)
			if err != nil {
				return err
			}
		}
		user.StudentID = &student.ID

		if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return s.studentRepo.LinkUserTx(ctx, tx, student.ID, user.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("subject_id", user.SubjectID).
		Int64("student_id", *user.StudentID).
		Msg("User synced from provider")
	return nil
}

// newStudentProfile creates the paired student record for a synced account.
// The password is a random hash; the account signs in through the provider
// until staff issue local credentials.
func (s *UserService) newStudentProfile(ctx context.Context, tx pgx.Tx, data dto.ProviderWebhookEventData, email string) (*models.Student, error) {
	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("error generating password: %w", err)
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	number, err := s.studentRepo.NextStudentNumberTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		Email:         email,
		Password:      hash,
		StudentNumber: number,
		IsActive:      true,
	}
	if err := s.studentRepo.CreateTx(ctx, tx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// handleUserUpdated refreshes provider-owned profile fields
func (s *UserService) handleUserUpdated(ctx context.Context, data dto.ProviderWebhookEventData) error {
	email := strings.ToLower(data.PrimaryEmail())
	if data.ID == "" || email == "" {
		return fmt.Errorf("%w: webhook event missing subject or email", apperrors.ErrValidationFailed)
	}

	err := s.userRepo.UpdateBySubjectID(ctx, data.ID, email, data.FirstName, data.LastName)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		// Update for a user we never saw; sync it as a create.
		return s.handleUserCreated(ctx, data)
	}
	return err
}

// handleUserDeleted removes the local user and its linked student profile in
// one transaction.
func (s *UserService) handleUserDeleted(ctx context.Context, data dto.ProviderWebhookEventData) error {
	if data.ID == "" {
		return fmt.Errorf("%w: webhook event missing subject", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetBySubjectID(ctx, data.ID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		// Already gone; deletions are idempotent.
		return nil
	}
	if err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if user.StudentID != nil {
			if err := s.studentRepo.DeleteTx(ctx, tx, *user.StudentID); err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
				return err
			}
		}
		return s.userRepo.DeleteBySubjectIDTx(ctx, tx, data.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("subject_id", data.ID).Msg("User and linked student removed after provider deletion")
	return nil
}

// GetAllUsers lists all synced users
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// GetUserByID retrieves one user
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUserRole assigns a role to a user
func (s *UserService) UpdateUserRole(ctx context.Context, req *dto.UpdateUserRoleRequest) (*models.User, error) {
	role := models.RoleType(req.Role)
	if !models.IsValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, req.UserID, role); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", req.UserID).Str("role", string(role)).Msg("User role updated")
	return s.userRepo.GetByID(ctx, req.UserID)
}

// UpdateUser applies a partial update to a user record. The request is
// validated in full before the first write so a rejected field cannot leave
// a half-applied update behind.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if req.Role != nil && !models.IsValidRole(models.RoleType(*req.Role)) {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if req.Role != nil {
		role := models.RoleType(*req.Role)
		if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
			return nil, err
		}
		user.RoleType = role
	}

	return user, nil
}

// DeleteUser removes a user by ID
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Msg("User deleted")
	return nil
}
