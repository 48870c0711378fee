package jobs

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeDecode_GradeNotification(t *testing.T) {
	payload := GradeNotificationPayload{
		StudentEmail: "jean.dupont@school.edu",
		StudentName:  "Jean Dupont",
		CourseName:   "Mathematics",
		CourseCode:   "MATH101",
		Grade:        15.5,
		GradedAt:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	b, err := EncodePayload(JobGradeNotification, payload)
	if err != nil {
		t.Fatalf("EncodePayload error: %v", err)
	}

	j, err := NewJob(JobGradeNotification, b)
	if err != nil {
		t.Fatalf("NewJob error: %v", err)
	}
	if j.ID == "" {
		t.Fatalf("expected job ID to be set")
	}

	decoded, err := DecodePayload(j)
	if err != nil {
		t.Fatalf("DecodePayload error: %v", err)
	}

	p, ok := decoded.(GradeNotificationPayload)
	if !ok {
		t.Fatalf("expected GradeNotificationPayload, got %T", decoded)
	}

	if p.StudentEmail != payload.StudentEmail {
		t.Fatalf("expected email %s, got %s", payload.StudentEmail, p.StudentEmail)
	}
	if p.Grade != payload.Grade {
		t.Fatalf("expected grade %v, got %v", payload.Grade, p.Grade)
	}
}

func TestEncodeDecode_WelcomeCredentials(t *testing.T) {
	payload := WelcomeCredentialsPayload{
		StudentEmail:  "marie.curie@school.edu",
		StudentName:   "Marie Curie",
		StudentNumber: "STU20260042",
		TempPassword:  "a1b2c3d4e5f6a7b8",
	}

	b, err := EncodePayload(JobWelcomeCredentials, payload)
	if err != nil {
		t.Fatalf("EncodePayload error: %v", err)
	}

	j, err := NewJob(JobWelcomeCredentials, b)
	if err != nil {
		t.Fatalf("NewJob error: %v", err)
	}

	decoded, err := DecodePayload(j)
	if err != nil {
		t.Fatalf("DecodePayload error: %v", err)
	}

	p, ok := decoded.(WelcomeCredentialsPayload)
	if !ok {
		t.Fatalf("expected WelcomeCredentialsPayload, got %T", decoded)
	}
	if p.StudentNumber != payload.StudentNumber {
		t.Fatalf("expected number %s, got %s", payload.StudentNumber, p.StudentNumber)
	}
}

func TestEncodePayload_TypeMismatch(t *testing.T) {
	_, err := EncodePayload(JobGradeNotification, WelcomeCredentialsPayload{
		StudentEmail: "x@school.edu",
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, ErrPayloadTypeMismatch) {
		t.Fatalf("expected ErrPayloadTypeMismatch, got %v", err)
	}
}

func TestEncodePayload_InvalidType(t *testing.T) {
	_, err := EncodePayload(JobType("unknown"), GradeNotificationPayload{})
	if !errors.Is(err, ErrInvalidJobType) {
		t.Fatalf("expected ErrInvalidJobType, got %v", err)
	}
}

func TestNewJob_InvalidType(t *testing.T) {
	_, err := NewJob(JobType("bogus"), []byte(`{}`))
	if !errors.Is(err, ErrInvalidJobType) {
		t.Fatalf("expected ErrInvalidJobType, got %v", err)
	}
}

func TestDecodePayload_EmptyPayload(t *testing.T) {
	j := Job{Type: JobAdminMessage}
	_, err := DecodePayload(j)
	if !errors.Is(err, ErrInvalidJobPayload) {
		t.Fatalf("expected ErrInvalidJobPayload, got %v", err)
	}
}

func TestDecodePayload_MalformedJSON(t *testing.T) {
	j := Job{Type: JobStudentMessage, Payload: []byte(`{not json`)}
	_, err := DecodePayload(j)
	if !errors.Is(err, ErrInvalidJobPayload) {
		t.Fatalf("expected ErrInvalidJobPayload, got %v", err)
	}
}
