package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/dberrors"
)

// GradeRepository handles database operations for grades
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
	}
}

// gradeJoinQuery hydrates each grade with its student and course so list
// responses do not need follow-up queries.
const gradeJoinQuery = `
	SELECT g.id, g.student_id, g.course_id, g.grade, g.graded_at, g.created_at, g.updated_at,
	       s.first_name, s.last_name, s.email, s.student_number,
	       c.name, c.code, c.credits
	FROM grades g
	JOIN students s ON s.id = g.student_id
	JOIN courses c ON c.id = g.course_id
`

func scanGradeJoin(row pgx.Row) (*models.Grade, error) {
	grade := &models.Grade{
		Student: &models.Student{},
		Course:  &models.Course{},
	}
	err := row.Scan(
		&grade.ID, &grade.StudentID, &grade.CourseID, &grade.Grade,
		&grade.GradedAt, &grade.CreatedAt, &grade.UpdatedAt,
		&grade.Student.FirstName, &grade.Student.LastName,
		&grade.Student.Email, &grade.Student.StudentNumber,
		&grade.Course.Name, &grade.Course.Code, &grade.Course.Credits,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error scanning grade: %w", err)
	}

	grade.Student.ID = grade.StudentID
	grade.Course.ID = grade.CourseID
	return grade, nil
}

// Create inserts a new grade. A student can hold at most one grade per
// course, enforced by a unique constraint.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (student_id, course_id, grade, graded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		grade.StudentID, grade.CourseID, grade.Grade, grade.GradedAt,
	).Scan(&grade.ID, &grade.CreatedAt, &grade.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrGradeAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating grade: %w", err)
	}

	return nil
}

// GetByID retrieves a grade with its student and course
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	query := gradeJoinQuery + ` WHERE g.id = $1`
	return scanGradeJoin(r.db.QueryRow(ctx, query, id))
}

// GetAll retrieves all grades with their students and courses
func (r *GradeRepository) GetAll(ctx context.Context) ([]*models.Grade, error) {
	query := gradeJoinQuery + ` ORDER BY g.graded_at DESC`
	return r.queryGrades(ctx, query)
}

// GetByStudentID retrieves all grades for one student
func (r *GradeRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	query := gradeJoinQuery + ` WHERE g.student_id = $1 ORDER BY g.graded_at DESC`
	return r.queryGrades(ctx, query, studentID)
}

func (r *GradeRepository) queryGrades(ctx context.Context, query string, args ...any) ([]*models.Grade, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade := &models.Grade{
			Student: &models.Student{},
			Course:  &models.Course{},
		}
		if err := rows.Scan(
			&grade.ID, &grade.StudentID, &grade.CourseID, &grade.Grade,
			&grade.GradedAt, &grade.CreatedAt, &grade.UpdatedAt,
			&grade.Student.FirstName, &grade.Student.LastName,
			&grade.Student.Email, &grade.Student.StudentNumber,
			&grade.Course.Name, &grade.Course.Code, &grade.Course.Credits,
		); err != nil {
			return nil, err
		}
		grade.Student.ID = grade.StudentID
		grade.Course.ID = grade.CourseID
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// ExistsForStudentCourse checks whether a grade already exists for the pair
func (r *GradeRepository) ExistsForStudentCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM grades WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking grade existence: %w", err)
	}

	return exists, nil
}

// Update changes the grade value and refreshes the graded timestamp
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET grade = $2, graded_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, grade.ID, grade.Grade, grade.GradedAt)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}

// Delete removes a grade by ID
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
