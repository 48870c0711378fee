package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `id, first_name, last_name, email, password, student_number, is_active, last_login_at, user_id, created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.FirstName, &student.LastName, &student.Email,
		&student.Password, &student.StudentNumber, &student.IsActive,
		&student.LastLoginAt, &student.UserID, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return student, nil
}

// NextStudentNumberTx draws the next value from the student number sequence
// and formats it as STU<year><NNNN>.
func (r *StudentRepository) NextStudentNumberTx(ctx context.Context, tx pgx.Tx) (string, error) {
	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('student_number_seq')`).Scan(&seq); err != nil {
		return "", fmt.Errorf("error allocating student number: %w", err)
	}

	return formatStudentNumber(time.Now().UTC().Year(), seq), nil
}

// The numeric part is padded to four digits but never truncated, so the
// sequence stays collision-free past 9999 allocations in a year.
func formatStudentNumber(year int, seq int64) string {
	return fmt.Sprintf("STU%d%04d", year, seq)
}

// CreateTx inserts a new student within an existing transaction
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, email, password, student_number, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		student.FirstName, student.LastName, student.Email,
		student.Password, student.StudentNumber, student.IsActive,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_student_number_key") {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`
	return scanStudent(r.db.QueryRow(ctx, query, email))
}

// GetByStudentNumber retrieves a student by student number
func (r *StudentRepository) GetByStudentNumber(ctx context.Context, studentNumber string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_number = $1`
	return scanStudent(r.db.QueryRow(ctx, query, studentNumber))
}

// GetAll retrieves all students ordered by creation time, newest first
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.ID, &student.FirstName, &student.LastName, &student.Email,
			&student.Password, &student.StudentNumber, &student.IsActive,
			&student.LastLoginAt, &student.UserID, &student.CreatedAt, &student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// EmailExists checks if a student email is already registered
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student email: %w", err)
	}

	return exists, nil
}

// Update updates a student's profile fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $2, last_name = $3, email = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		student.ID, student.FirstName, student.LastName, student.Email, student.IsActive)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdatePassword replaces a student's password hash
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE students SET password = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("error updating student password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdateLastLogin stamps the student's last successful login time
func (r *StudentRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE students SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// LinkUserTx links a student record to a staff-synced user account
func (r *StudentRepository) LinkUserTx(ctx context.Context, tx pgx.Tx, studentID, userID int64) error {
	query := `UPDATE students SET user_id = $2, updated_at = NOW() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, studentID, userID)
	if err != nil {
		return fmt.Errorf("error linking student to user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. Grades referencing the student are removed by
// the ON DELETE CASCADE constraint.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, r.db, id)
}

// DeleteTx removes a student within an existing transaction
func (r *StudentRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	return r.delete(ctx, tx, id)
}

func (r *StudentRepository) delete(ctx context.Context, q execQuerier, id int64) error {
	tag, err := q.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
