package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/jobs"
)

type fakeProducer struct {
	jobs []jobs.Job
	err  error
}

func (f *fakeProducer) Enqueue(ctx context.Context, j jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, j)
	return nil
}

func TestNotifyGradePosted_EnqueuesJob(t *testing.T) {
	producer := &fakeProducer{}
	svc := NewNotificationService(producer, zerolog.Nop())

	svc.NotifyGradePosted(context.Background(), "ada@school.edu", "Ada Lovelace", "Physics", "PHYS101", 17, time.Now().UTC())

	if len(producer.jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(producer.jobs))
	}
	j := producer.jobs[0]
	if j.Type != jobs.JobGradeNotification {
		t.Fatalf("wrong job type: %s", j.Type)
	}

	payload, err := jobs.DecodePayload(j)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	p, ok := payload.(jobs.GradeNotificationPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", payload)
	}
	if p.StudentEmail != "ada@school.edu" || p.Grade != 17 || p.CourseCode != "PHYS101" {
		t.Fatalf("payload carries wrong data: %+v", p)
	}
}

func TestNotify_SwallowsQueueFailure(t *testing.T) {
	producer := &fakeProducer{err: errors.New("redis down")}
	svc := NewNotificationService(producer, zerolog.Nop())

	// None of these return errors; a dead queue must never reach the caller.
	svc.NotifyGradePosted(context.Background(), "ada@school.edu", "Ada Lovelace", "Physics", "PHYS101", 17, time.Now().UTC())
	svc.NotifyWelcome(context.Background(), "ada@school.edu", "Ada Lovelace", "STU20260001", "a1b2c3d4e5f60718")
	svc.NotifyAdminMessage(context.Background(), "ada@school.edu", "Ada Lovelace", "Subject", "Body", "Rita Vale")
	svc.NotifyStudentMessage(context.Background(), "ada@school.edu", "Ada Lovelace", "Subject", "Body")
}
