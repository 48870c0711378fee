package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	create     func(ctx context.Context, course *models.Course) error
	getByID    func(ctx context.Context, id int64) (*models.Course, error)
	getAll     func(ctx context.Context) ([]*models.Course, error)
	codeExists func(ctx context.Context, code string) (bool, error)
	update     func(ctx context.Context, course *models.Course) error
	delete     func(ctx context.Context, id int64) error
}

func (f *fakeCourseStore) Create(ctx context.Context, course *models.Course) error {
	return f.create(ctx, course)
}

func (f *fakeCourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return f.getByID(ctx, id)
}

func (f *fakeCourseStore) GetAll(ctx context.Context) ([]*models.Course, error) {
	return f.getAll(ctx)
}

func (f *fakeCourseStore) CodeExists(ctx context.Context, code string) (bool, error) {
	return f.codeExists(ctx, code)
}

func (f *fakeCourseStore) Update(ctx context.Context, course *models.Course) error {
	return f.update(ctx, course)
}

func (f *fakeCourseStore) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

func intPtr(n int) *int { return &n }

func TestCreateCourse_DefaultCredits(t *testing.T) {
	var stored *models.Course
	repo := &fakeCourseStore{
		codeExists: func(ctx context.Context, code string) (bool, error) { return false, nil },
		create: func(ctx context.Context, course *models.Course) error {
			course.ID = 5
			stored = course
			return nil
		},
	}

	svc := NewCourseService(repo, zerolog.Nop())
	course, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Name: "Maths",
		Code: "MATH101",
	})
	if err != nil {
		t.Fatalf("CreateCourse error: %v", err)
	}

	if course.Credits != 3 {
		t.Fatalf("expected default credits 3, got %d", course.Credits)
	}
	if stored == nil || stored.Credits != 3 {
		t.Fatalf("expected default credits persisted")
	}
}

func TestCreateCourse_ExplicitCredits(t *testing.T) {
	repo := &fakeCourseStore{
		codeExists: func(ctx context.Context, code string) (bool, error) { return false, nil },
		create: func(ctx context.Context, course *models.Course) error {
			course.ID = 6
			return nil
		},
	}

	svc := NewCourseService(repo, zerolog.Nop())

	tests := []struct {
		name    string
		credits int
	}{
		{name: "zero credits kept", credits: 0},
		{name: "explicit credits kept", credits: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
				Name:    "Physics",
				Code:    "PHYS101",
				Credits: intPtr(tt.credits),
			})
			if err != nil {
				t.Fatalf("CreateCourse error: %v", err)
			}
			if course.Credits != tt.credits {
				t.Fatalf("expected credits %d, got %d", tt.credits, course.Credits)
			}
		})
	}
}

func TestCreateCourse_NormalizesCode(t *testing.T) {
	repo := &fakeCourseStore{
		codeExists: func(ctx context.Context, code string) (bool, error) {
			if code != "MATH101" {
				t.Fatalf("expected normalized code in uniqueness check, got %q", code)
			}
			return false, nil
		},
		create: func(ctx context.Context, course *models.Course) error { return nil },
	}

	svc := NewCourseService(repo, zerolog.Nop())
	course, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Name: "Maths",
		Code: " math101 ",
	})
	if err != nil {
		t.Fatalf("CreateCourse error: %v", err)
	}
	if course.Code != "MATH101" {
		t.Fatalf("expected normalized code, got %q", course.Code)
	}
}

func TestCreateCourse_DuplicateCode(t *testing.T) {
	repo := &fakeCourseStore{
		codeExists: func(ctx context.Context, code string) (bool, error) { return true, nil },
		create: func(ctx context.Context, course *models.Course) error {
			t.Fatalf("create must not run for duplicate codes")
			return nil
		},
	}

	svc := NewCourseService(repo, zerolog.Nop())
	_, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Name: "Maths",
		Code: "MATH101",
	})
	if !errors.Is(err, apperrors.ErrCourseCodeExists) {
		t.Fatalf("expected ErrCourseCodeExists, got %v", err)
	}
}

func TestUpdateCourse_PartialUpdate(t *testing.T) {
	existing := &models.Course{ID: 5, Name: "Maths", Code: "MATH101", Credits: 3}
	repo := &fakeCourseStore{
		getByID: func(ctx context.Context, id int64) (*models.Course, error) {
			return existing, nil
		},
		update: func(ctx context.Context, course *models.Course) error { return nil },
	}

	svc := NewCourseService(repo, zerolog.Nop())
	course, err := svc.UpdateCourse(context.Background(), 5, &dto.UpdateCourseRequest{
		Credits: intPtr(4),
	})
	if err != nil {
		t.Fatalf("UpdateCourse error: %v", err)
	}

	if course.Credits != 4 {
		t.Fatalf("expected credits 4, got %d", course.Credits)
	}
	if course.Name != "Maths" || course.Code != "MATH101" {
		t.Fatalf("unset fields must be left untouched")
	}
}
