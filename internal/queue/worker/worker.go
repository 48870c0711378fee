package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gradesphere/gradesphere/internal/jobs"
	"github.com/gradesphere/gradesphere/internal/pkg/email"
	"github.com/gradesphere/gradesphere/internal/pkg/logger"
	"github.com/gradesphere/gradesphere/internal/queue"
)

// JobSource is the queue side the worker consumes from.
type JobSource interface {
	Dequeue(ctx context.Context, timeout time.Duration) (jobs.Job, error)
}

type Config struct {
	PopTimeout time.Duration
}

// Worker drains the notification queue and turns jobs into outbound emails.
// Delivery failures are logged and the job is dropped; mail is best effort.
type Worker struct {
	cfg    Config
	source JobSource
	mailer email.EmailService
}

func New(cfg Config, source JobSource, mailer email.EmailService) *Worker {
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = 5 * time.Second
	}

	return &Worker{
		cfg:    cfg,
		source: source,
		mailer: mailer,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Worker received shutdown signal")
			return nil
		default:
		}

		j, err := w.source.Dequeue(ctx, w.cfg.PopTimeout)
		if err != nil {
			if errors.Is(err, queue.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			logger.Error().Err(err).Msg("Failed to pop notification job")
			time.Sleep(time.Second)
			continue
		}

		if err := w.Process(j); err != nil {
			logger.Error().
				Err(err).
				Str("job_id", j.ID).
				Str("job_type", string(j.Type)).
				Msg("Failed to process notification job")
			continue
		}

		logger.Info().
			Str("job_id", j.ID).
			Str("job_type", string(j.Type)).
			Msg("Notification job processed")
	}
}

// Process dispatches a single job to the mailer.
func (w *Worker) Process(j jobs.Job) error {
	payload, err := jobs.DecodePayload(j)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	switch p := payload.(type) {
	case jobs.GradeNotificationPayload:
		return w.mailer.SendGradeNotification(p.StudentEmail, p.StudentName, p.CourseName, p.CourseCode, p.Grade, p.GradedAt)
	case jobs.WelcomeCredentialsPayload:
		return w.mailer.SendWelcomeWithCredentials(p.StudentEmail, p.StudentName, p.StudentNumber, p.TempPassword)
	case jobs.AdminMessagePayload:
		return w.mailer.SendAdminToStudent(p.StudentEmail, p.StudentName, p.Subject, p.Message, p.AdminName)
	case jobs.StudentMessagePayload:
		return w.mailer.SendStudentToAdmin(p.StudentEmail, p.StudentName, p.Subject, p.Message)
	default:
		return jobs.ErrInvalidJobType
	}
}
