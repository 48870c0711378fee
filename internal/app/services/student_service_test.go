package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/db"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/auth"
)

type fakeStudentStore struct {
	nextNumberTx func(ctx context.Context, tx pgx.Tx) (string, error)
	createTx     func(ctx context.Context, tx pgx.Tx, student *models.Student) error
	getByID      func(ctx context.Context, id int64) (*models.Student, error)
	getAll       func(ctx context.Context) ([]*models.Student, error)
	emailExists  func(ctx context.Context, email string) (bool, error)
	update       func(ctx context.Context, student *models.Student) error
	delete       func(ctx context.Context, id int64) error
}

func (f *fakeStudentStore) NextStudentNumberTx(ctx context.Context, tx pgx.Tx) (string, error) {
	return f.nextNumberTx(ctx, tx)
}

func (f *fakeStudentStore) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	return f.createTx(ctx, tx, student)
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return f.getByID(ctx, id)
}

func (f *fakeStudentStore) GetAll(ctx context.Context) ([]*models.Student, error) {
	return f.getAll(ctx)
}

func (f *fakeStudentStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return f.emailExists(ctx, email)
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	return f.update(ctx, student)
}

func (f *fakeStudentStore) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

// fakeTxRunner runs the transactional function directly with a nil tx; the
// store fakes ignore the tx handle.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type welcomeRecorder struct {
	calls        int
	email        string
	number       string
	tempPassword string
}

func (w *welcomeRecorder) NotifyWelcome(ctx context.Context, studentEmail, studentName, studentNumber, tempPassword string) {
	w.calls++
	w.email = studentEmail
	w.number = studentNumber
	w.tempPassword = tempPassword
}

func TestCreateStudent_Success(t *testing.T) {
	var stored *models.Student
	store := &fakeStudentStore{
		emailExists: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		nextNumberTx: func(ctx context.Context, tx pgx.Tx) (string, error) {
			return "STU20260042", nil
		},
		createTx: func(ctx context.Context, tx pgx.Tx, student *models.Student) error {
			student.ID = 42
			stored = student
			return nil
		},
	}
	notifier := &welcomeRecorder{}

	svc := NewStudentService(store, fakeTxRunner{}, notifier, zerolog.Nop())
	resp, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Email:     " Ada.Lovelace@School.EDU ",
	})
	if err != nil {
		t.Fatalf("CreateStudent error: %v", err)
	}

	if stored == nil {
		t.Fatal("student was not written")
	}
	if stored.Email != "ada.lovelace@school.edu" {
		t.Fatalf("email not normalized: %s", stored.Email)
	}
	if stored.FirstName != "Ada" {
		t.Fatalf("first name not trimmed: %q", stored.FirstName)
	}
	if !stored.IsActive {
		t.Fatal("new students must be active")
	}
	if stored.StudentNumber != "STU20260042" {
		t.Fatalf("unexpected student number: %s", stored.StudentNumber)
	}

	if len(resp.TempPassword) != 16 {
		t.Fatalf("expected 16-char temporary password, got %d chars", len(resp.TempPassword))
	}
	if !auth.CheckPassword(stored.Password, resp.TempPassword) {
		t.Fatal("stored hash does not match returned password")
	}
	if resp.Student.ID != 42 {
		t.Fatalf("expected profile ID 42, got %d", resp.Student.ID)
	}

	if notifier.calls != 1 {
		t.Fatalf("expected 1 welcome notification, got %d", notifier.calls)
	}
	if notifier.email != "ada.lovelace@school.edu" || notifier.number != "STU20260042" {
		t.Fatalf("welcome notification carried wrong data: %s %s", notifier.email, notifier.number)
	}
	if notifier.tempPassword != resp.TempPassword {
		t.Fatal("welcome notification must carry the returned temporary password")
	}
}

func TestCreateStudent_DuplicateEmail(t *testing.T) {
	store := &fakeStudentStore{
		emailExists: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	notifier := &welcomeRecorder{}

	svc := NewStudentService(store, fakeTxRunner{}, notifier, zerolog.Nop())
	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada.lovelace@school.edu",
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if notifier.calls != 0 {
		t.Fatal("no notification expected on duplicate email")
	}
}

func TestCreateStudent_InvalidEmail(t *testing.T) {
	store := &fakeStudentStore{
		emailExists: func(ctx context.Context, email string) (bool, error) {
			t.Fatal("email check must not run for invalid addresses")
			return false, nil
		},
	}

	svc := NewStudentService(store, fakeTxRunner{}, &welcomeRecorder{}, zerolog.Nop())
	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "not-an-email",
	})
	if !errors.Is(err, apperrors.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestCreateStudent_TransactionFailure(t *testing.T) {
	dbErr := errors.New("nextval failed")
	store := &fakeStudentStore{
		emailExists: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		nextNumberTx: func(ctx context.Context, tx pgx.Tx) (string, error) {
			return "", dbErr
		},
	}
	notifier := &welcomeRecorder{}

	svc := NewStudentService(store, fakeTxRunner{}, notifier, zerolog.Nop())
	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada.lovelace@school.edu",
	})
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected transaction error, got %v", err)
	}
	if notifier.calls != 0 {
		t.Fatal("no notification expected when the write fails")
	}
}

func TestUpdateStudent_PartialUpdate(t *testing.T) {
	existing := &models.Student{
		ID:        7,
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace.hopper@school.edu",
		IsActive:  true,
	}

	var updated *models.Student
	store := &fakeStudentStore{
		getByID: func(ctx context.Context, id int64) (*models.Student, error) {
			return existing, nil
		},
		update: func(ctx context.Context, student *models.Student) error {
			updated = student
			return nil
		},
	}

	svc := NewStudentService(store, fakeTxRunner{}, &welcomeRecorder{}, zerolog.Nop())

	inactive := false
	newLast := "Murray"
	profile, err := svc.UpdateStudent(context.Background(), 7, &dto.UpdateStudentRequest{
		LastName: &newLast,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateStudent error: %v", err)
	}

	if updated.LastName != "Murray" {
		t.Fatalf("last name not updated: %s", updated.LastName)
	}
	if updated.FirstName != "Grace" {
		t.Fatalf("untouched field changed: %s", updated.FirstName)
	}
	if updated.IsActive {
		t.Fatal("expected student to be deactivated")
	}
	if profile.LastName != "Murray" {
		t.Fatalf("returned profile stale: %s", profile.LastName)
	}
}

func TestUpdateStudent_RejectsInvalidEmail(t *testing.T) {
	store := &fakeStudentStore{
		getByID: func(ctx context.Context, id int64) (*models.Student, error) {
			return &models.Student{ID: 7, Email: "grace.hopper@school.edu"}, nil
		},
		update: func(ctx context.Context, student *models.Student) error {
			t.Fatal("update must not run with an invalid email")
			return nil
		},
	}

	svc := NewStudentService(store, fakeTxRunner{}, &welcomeRecorder{}, zerolog.Nop())

	bad := "nope"
	_, err := svc.UpdateStudent(context.Background(), 7, &dto.UpdateStudentRequest{Email: &bad})
	if !errors.Is(err, apperrors.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestUpdateMyProfile_OnlyNames(t *testing.T) {
	existing := &models.Student{
		ID:        7,
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace.hopper@school.edu",
		IsActive:  true,
	}

	store := &fakeStudentStore{
		getByID: func(ctx context.Context, id int64) (*models.Student, error) {
			return existing, nil
		},
		update: func(ctx context.Context, student *models.Student) error {
			return nil
		},
	}

	svc := NewStudentService(store, fakeTxRunner{}, &welcomeRecorder{}, zerolog.Nop())

	newFirst := "  Gracie "
	profile, err := svc.UpdateMyProfile(context.Background(), 7, &dto.UpdateMyProfileRequest{FirstName: &newFirst})
	if err != nil {
		t.Fatalf("UpdateMyProfile error: %v", err)
	}
	if profile.FirstName != "Gracie" {
		t.Fatalf("first name not trimmed and updated: %q", profile.FirstName)
	}
	if profile.Email != "grace.hopper@school.edu" {
		t.Fatalf("email must not change via self-service: %s", profile.Email)
	}
}
