package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

type fakeUserStore struct {
	createTx          func(ctx context.Context, tx pgx.Tx, user *models.User) error
	getByID           func(ctx context.Context, id int64) (*models.User, error)
	getBySubjectID    func(ctx context.Context, subjectID string) (*models.User, error)
	getAll            func(ctx context.Context) ([]*models.User, error)
	update            func(ctx context.Context, user *models.User) error
	updateBySubjectID func(ctx context.Context, subjectID, email, firstName, lastName string) error
	updateRole        func(ctx context.Context, id int64, role models.RoleType) error
	delete            func(ctx context.Context, id int64) error
	deleteBySubjectTx func(ctx context.Context, tx pgx.Tx, subjectID string) error
}

func (f *fakeUserStore) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	return f.createTx(ctx, tx, user)
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return f.getByID(ctx, id)
}

func (f *fakeUserStore) GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error) {
	return f.getBySubjectID(ctx, subjectID)
}

func (f *fakeUserStore) GetAll(ctx context.Context) ([]*models.User, error) {
	return f.getAll(ctx)
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	return f.update(ctx, user)
}

func (f *fakeUserStore) UpdateBySubjectID(ctx context.Context, subjectID, email, firstName, lastName string) error {
	return f.updateBySubjectID(ctx, subjectID, email, firstName, lastName)
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, id int64, role models.RoleType) error {
	return f.updateRole(ctx, id, role)
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	return f.delete(ctx, id)
}

func (f *fakeUserStore) DeleteBySubjectIDTx(ctx context.Context, tx pgx.Tx, subjectID string) error {
	return f.deleteBySubjectTx(ctx, tx, subjectID)
}

type fakeStudentLinker struct {
	getByEmail   func(ctx context.Context, email string) (*models.Student, error)
	nextNumberTx func(ctx context.Context, tx pgx.Tx) (string, error)
	createTx     func(ctx context.Context, tx pgx.Tx, student *models.Student) error
	linkUserTx   func(ctx context.Context, tx pgx.Tx, studentID, userID int64) error
	deleteTx     func(ctx context.Context, tx pgx.Tx, id int64) error
}

func (f *fakeStudentLinker) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return f.getByEmail(ctx, email)
}

func (f *fakeStudentLinker) NextStudentNumberTx(ctx context.Context, tx pgx.Tx) (string, error) {
	return f.nextNumberTx(ctx, tx)
}

func (f *fakeStudentLinker) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	return f.createTx(ctx, tx, student)
}

func (f *fakeStudentLinker) LinkUserTx(ctx context.Context, tx pgx.Tx, studentID, userID int64) error {
	return f.linkUserTx(ctx, tx, studentID, userID)
}

func (f *fakeStudentLinker) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	return f.deleteTx(ctx, tx, id)
}

// noStudentLinker answers GetByEmail with not-found and backs the paired
// profile creation path with in-memory bookkeeping.
func noStudentLinker() *fakeStudentLinker {
	return &fakeStudentLinker{
		getByEmail: func(ctx context.Context, email string) (*models.Student, error) {
			return nil, apperrors.ErrStudentNotFound
		},
		nextNumberTx: func(ctx context.Context, tx pgx.Tx) (string, error) {
			return "STU20260001", nil
		},
		createTx: func(ctx context.Context, tx pgx.Tx, student *models.Student) error {
			student.ID = 3
			return nil
		},
		linkUserTx: func(ctx context.Context, tx pgx.Tx, studentID, userID int64) error {
			return nil
		},
	}
}

func createdEvent(subjectID, email string) *dto.ProviderWebhookEvent {
	return &dto.ProviderWebhookEvent{
		Type: EventUserCreated,
		Data: dto.ProviderWebhookEventData{
			ID:        subjectID,
			FirstName: "Alan",
			LastName:  "Turing",
			EmailAddresses: []dto.ProviderEmailAddress{
				{EmailAddress: email},
			},
		},
	}
}

func TestHandleProviderEvent_CreatedPairsStudentProfile(t *testing.T) {
	var created *models.User
	var pairedStudent *models.Student
	users := &fakeUserStore{
		getBySubjectID: func(ctx context.Context, subjectID string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
		createTx: func(ctx context.Context, tx pgx.Tx, user *models.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	students := noStudentLinker()
	students.createTx = func(ctx context.Context, tx pgx.Tx, student *models.Student) error {
		student.ID = 3
		pairedStudent = student
		return nil
	}

	svc := NewUserService(users, students, fakeTxRunner{}, zerolog.Nop())
	err := svc.HandleProviderEvent(context.Background(), createdEvent("sub_abc", "Alan.Turing@School.EDU"))
	if err != nil {
		t.Fatalf("HandleProviderEvent error: %v", err)
	}

	if created == nil {
		t.Fatal("user was not created")
	}
	if created.Email != "alan.turing@school.edu" {
		t.Fatalf("email not normalized: %s", created.Email)
	}
	if created.RoleType != models.RoleStudent {
		t.Fatalf("synced accounts carry the student role, got %s", created.RoleType)
	}
	if created.StudentID == nil || *created.StudentID != 3 {
		t.Fatalf("expected a paired student link, got %v", created.StudentID)
	}

	if pairedStudent == nil {
		t.Fatal("paired student profile was not created")
	}
	if pairedStudent.StudentNumber != "STU20260001" {
		t.Fatalf("paired student missing generated number: %q", pairedStudent.StudentNumber)
	}
	if pairedStudent.Email != "alan.turing@school.edu" || !pairedStudent.IsActive {
		t.Fatalf("paired student wrong shape: %+v", pairedStudent)
	}
	if pairedStudent.Password == "" {
		t.Fatal("paired student must get a password hash")
	}
}

func TestHandleProviderEvent_CreatedLinksStudent(t *testing.T) {
	var created *models.User
	var linkedStudentID, linkedUserID int64
	users := &fakeUserStore{
		getBySubjectID: func(ctx context.Context, subjectID string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
		createTx: func(ctx context.Context, tx pgx.Tx, user *models.User) error {
			user.ID = 9
			created = user
			return nil
		},
	}
	students := &fakeStudentLinker{
		getByEmail: func(ctx context.Context, email string) (*models.Student, error) {
			return &models.Student{ID: 3, Email: email}, nil
		},
		linkUserTx: func(ctx context.Context, tx pgx.Tx, studentID, userID int64) error {
			linkedStudentID = studentID
			linkedUserID = userID
			return nil
		},
	}

	svc := NewUserService(users, students, fakeTxRunner{}, zerolog.Nop())
	err := svc.HandleProviderEvent(context.Background(), createdEvent("sub_abc", "alan.turing@school.edu"))
	if err != nil {
		t.Fatalf("HandleProviderEvent error: %v", err)
	}

	if created.RoleType != models.RoleStudent {
		t.Fatalf("expected student role for matching email, got %s", created.RoleType)
	}
	if created.StudentID == nil || *created.StudentID != 3 {
		t.Fatalf("expected student link to ID 3, got %v", created.StudentID)
	}
	if linkedStudentID != 3 || linkedUserID != 9 {
		t.Fatalf("link wired wrong IDs: student %d user %d", linkedStudentID, linkedUserID)
	}
}

func TestHandleProviderEvent_CreatedReplayIsNoOp(t *testing.T) {
	users := &fakeUserStore{
		getBySubjectID: func(ctx context.Context, subjectID string) (*models.User, error) {
			return &models.User{ID: 1, SubjectID: subjectID}, nil
		},
		createTx: func(ctx context.Context, tx pgx.Tx, user *models.User) error {
			t.Fatal("replayed create must not insert")
			return nil
		},
	}

	svc := NewUserService(users, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())
	err := svc.HandleProviderEvent(context.Background(), createdEvent("sub_abc", "alan.turing@school.edu"))
	if err != nil {
		t.Fatalf("replayed event must be acknowledged: %v", err)
	}
}

func TestHandleProviderEvent_CreatedMissingFields(t *testing.T) {
	svc := NewUserService(&fakeUserStore{}, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())

	err := svc.HandleProviderEvent(context.Background(), &dto.ProviderWebhookEvent{
		Type: EventUserCreated,
		Data: dto.ProviderWebhookEventData{ID: "sub_abc"},
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestHandleProviderEvent_UpdatedFallsBackToCreate(t *testing.T) {
	var created *models.User
	users := &fakeUserStore{
		updateBySubjectID: func(ctx context.Context, subjectID, email, firstName, lastName string) error {
			return apperrors.ErrUserNotFound
		},
		getBySubjectID: func(ctx context.Context, subjectID string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
		createTx: func(ctx context.Context, tx pgx.Tx, user *models.User) error {
			created = user
			return nil
		},
	}

	svc := NewUserService(users, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())
	event := createdEvent("sub_new", "alan.turing@school.edu")
	event.Type = EventUserUpdated

	if err := svc.HandleProviderEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleProviderEvent error: %v", err)
	}
	if created == nil {
		t.Fatal("update for an unseen user must sync it as a create")
	}
}

func TestHandleProviderEvent_DeletedCascadesToStudent(t *testing.T) {
	var deletedStudentID int64
	var deletedSubject string
	users := &fakeUserStore{
		getBySubjectID: func(ctx context.Context, subjectID string) (*models.User, error) {
			sid := int64(3)
			return &models.User{ID: 9, SubjectID: subjectID, StudentID: &sid}, nil
		},
		deleteBySubjectTx: func(ctx context.Context, tx pgx.Tx, subjectID string) error {
			if deletedStudentID == 0 {
				t.Fatal("linked student must be removed before the user")
			}
			deletedSubject = subjectID
			return nil
		},
	}
	students := noStudentLinker()
	students.deleteTx = func(ctx context.Context, tx pgx.Tx, id int64) error {
		deletedStudentID = id
		return nil
	}

	svc := NewUserService(users, students, fakeTxRunner{}, zerolog.Nop())
	err := svc.HandleProviderEvent(context.Background(), &dto.ProviderWebhookEvent{
		Type: EventUserDeleted,
		Data: dto.ProviderWebhookEventData{ID: "sub_abc"},
	})
	if err != nil {
		t.Fatalf("HandleProviderEvent error: %v", err)
	}

	if deletedStudentID != 3 {
		t.Fatalf("expected linked student 3 removed, got %d", deletedStudentID)
	}
	if deletedSubject != "sub_abc" {
		t.Fatalf("expected user sub_abc removed, got %q", deletedSubject)
	}
}

func TestHandleProviderEvent_DeletedWithoutStudent(t *testing.T) {
	var deletedSubject string
	users := &fakeUserStore{
		getBySubjectID: func(ctx context.Context, subjectID string) (*models.User, error) {
			return &models.User{ID: 9, SubjectID: subjectID}, nil
		},
		deleteBySubjectTx: func(ctx context.Context, tx pgx.Tx, subjectID string) error {
			deletedSubject = subjectID
			return nil
		},
	}
	students := noStudentLinker()
	students.deleteTx = func(ctx context.Context, tx pgx.Tx, id int64) error {
		t.Fatal("no student delete expected for an unlinked user")
		return nil
	}

	svc := NewUserService(users, students, fakeTxRunner{}, zerolog.Nop())
	err := svc.HandleProviderEvent(context.Background(), &dto.ProviderWebhookEvent{
		Type: EventUserDeleted,
		Data: dto.ProviderWebhookEventData{ID: "sub_abc"},
	})
	if err != nil {
		t.Fatalf("HandleProviderEvent error: %v", err)
	}
	if deletedSubject != "sub_abc" {
		t.Fatalf("expected user sub_abc removed, got %q", deletedSubject)
	}
}

func TestHandleProviderEvent_DeletedIsIdempotent(t *testing.T) {
	users := &fakeUserStore{
		getBySubjectID: func(ctx context.Context, subjectID string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
	}

	svc := NewUserService(users, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())
	err := svc.HandleProviderEvent(context.Background(), &dto.ProviderWebhookEvent{
		Type: EventUserDeleted,
		Data: dto.ProviderWebhookEventData{ID: "sub_gone"},
	})
	if err != nil {
		t.Fatalf("deleting an already removed user must succeed: %v", err)
	}
}

func TestHandleProviderEvent_UnknownTypeIgnored(t *testing.T) {
	svc := NewUserService(&fakeUserStore{}, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())
	err := svc.HandleProviderEvent(context.Background(), &dto.ProviderWebhookEvent{Type: "session.created"})
	if err != nil {
		t.Fatalf("unknown events must be acknowledged: %v", err)
	}
}

// A request carrying an invalid role must be rejected before any field is
// persisted, so the name update cannot land without the role change.
func TestUpdateUser_InvalidRoleWritesNothing(t *testing.T) {
	users := &fakeUserStore{
		getByID: func(ctx context.Context, id int64) (*models.User, error) {
			t.Fatal("lookup must not run for invalid roles")
			return nil, nil
		},
		update: func(ctx context.Context, user *models.User) error {
			t.Fatal("profile update must not run for invalid roles")
			return nil
		},
		updateRole: func(ctx context.Context, id int64, role models.RoleType) error {
			t.Fatal("role update must not run for invalid roles")
			return nil
		},
	}

	svc := NewUserService(users, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())

	newFirst := "Ada"
	badRole := "superuser"
	_, err := svc.UpdateUser(context.Background(), 9, &dto.UpdateUserRequest{
		FirstName: &newFirst,
		Role:      &badRole,
	})
	if !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUpdateUser_NamesAndRole(t *testing.T) {
	existing := &models.User{ID: 9, FirstName: "Alan", LastName: "Turing", RoleType: models.RoleVisitor}

	var updated *models.User
	var assigned models.RoleType
	users := &fakeUserStore{
		getByID: func(ctx context.Context, id int64) (*models.User, error) {
			return existing, nil
		},
		update: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
		updateRole: func(ctx context.Context, id int64, role models.RoleType) error {
			assigned = role
			return nil
		},
	}

	svc := NewUserService(users, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())

	newFirst := "  Ada "
	role := "registrar"
	user, err := svc.UpdateUser(context.Background(), 9, &dto.UpdateUserRequest{
		FirstName: &newFirst,
		Role:      &role,
	})
	if err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}

	if updated == nil || updated.FirstName != "Ada" {
		t.Fatalf("expected trimmed first name persisted")
	}
	if assigned != models.RoleRegistrar {
		t.Fatalf("expected registrar assigned, got %s", assigned)
	}
	if user.RoleType != models.RoleRegistrar {
		t.Fatalf("returned user stale role: %s", user.RoleType)
	}
}

func TestUpdateUserRole_InvalidRole(t *testing.T) {
	users := &fakeUserStore{
		updateRole: func(ctx context.Context, id int64, role models.RoleType) error {
			t.Fatal("invalid roles must not reach the repository")
			return nil
		},
	}

	svc := NewUserService(users, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())
	_, err := svc.UpdateUserRole(context.Background(), &dto.UpdateUserRoleRequest{UserID: 1, Role: "superuser"})
	if !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUpdateUserRole_Success(t *testing.T) {
	var assigned models.RoleType
	users := &fakeUserStore{
		updateRole: func(ctx context.Context, id int64, role models.RoleType) error {
			assigned = role
			return nil
		},
		getByID: func(ctx context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, RoleType: assigned}, nil
		},
	}

	svc := NewUserService(users, noStudentLinker(), fakeTxRunner{}, zerolog.Nop())
	user, err := svc.UpdateUserRole(context.Background(), &dto.UpdateUserRoleRequest{UserID: 1, Role: "registrar"})
	if err != nil {
		t.Fatalf("UpdateUserRole error: %v", err)
	}
	if user.RoleType != models.RoleRegistrar {
		t.Fatalf("expected registrar, got %s", user.RoleType)
	}
}
