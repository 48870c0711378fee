package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/dberrors"
)

// UserRepository handles database operations for staff accounts synced from
// the identity provider.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, subject_id, email, first_name, last_name, role_type, student_id, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.SubjectID, &user.Email, &user.FirstName, &user.LastName,
		&user.RoleType, &user.StudentID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return user, nil
}

// Create inserts a new user record
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.create(ctx, r.db, user)
}

// CreateTx inserts a new user record within an existing transaction
func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	return r.create(ctx, tx, user)
}

// rowQuerier and execQuerier are satisfied by both *pgxpool.Pool and pgx.Tx
// so repository helpers can run inside or outside a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type execQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *UserRepository) create(ctx context.Context, q rowQuerier, user *models.User) error {
	query := `
		INSERT INTO users (subject_id, email, first_name, last_name, role_type, student_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		user.SubjectID, user.Email, user.FirstName, user.LastName, user.RoleType, user.StudentID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetBySubjectID retrieves a user by the identity provider subject ID
func (r *UserRepository) GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE subject_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, subjectID))
}

// GetAll retrieves all users ordered by creation time, newest first
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.SubjectID, &user.Email, &user.FirstName, &user.LastName,
			&user.RoleType, &user.StudentID, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Update updates a user's profile fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateBySubjectID refreshes provider-owned profile fields after a webhook
func (r *UserRepository) UpdateBySubjectID(ctx context.Context, subjectID, email, firstName, lastName string) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE subject_id = $1
	`

	tag, err := r.db.Exec(ctx, query, subjectID, email, firstName, lastName)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateRole changes a user's role
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.RoleType) error {
	query := `UPDATE users SET role_type = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("error updating user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Delete removes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteBySubjectIDTx removes a user by subject ID within an existing transaction
func (r *UserRepository) DeleteBySubjectIDTx(ctx context.Context, tx pgx.Tx, subjectID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE subject_id = $1`, subjectID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
