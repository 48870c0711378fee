package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/jobs"
)

// JobProducer is the queue side the API pushes notification jobs onto.
type JobProducer interface {
	Enqueue(ctx context.Context, j jobs.Job) error
}

// NotificationService turns domain events into queued email jobs. Delivery
// is best effort: enqueue failures are logged and swallowed so a broken
// queue never fails the write that triggered the notification.
type NotificationService struct {
	producer JobProducer
	logger   zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(producer JobProducer, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		producer: producer,
		logger:   logger,
	}
}

func (s *NotificationService) enqueue(ctx context.Context, t jobs.JobType, payload any) {
	b, err := jobs.EncodePayload(t, payload)
	if err != nil {
		s.logger.Error().Err(err).Str("job_type", string(t)).Msg("Failed to encode notification payload")
		return
	}

	j, err := jobs.NewJob(t, b)
	if err != nil {
		s.logger.Error().Err(err).Str("job_type", string(t)).Msg("Failed to build notification job")
		return
	}

	if err := s.producer.Enqueue(ctx, j); err != nil {
		s.logger.Error().Err(err).Str("job_type", string(t)).Msg("Failed to enqueue notification job")
	}
}

// NotifyGradePosted queues a grade notification email for a student
func (s *NotificationService) NotifyGradePosted(ctx context.Context, studentEmail, studentName, courseName, courseCode string, grade float64, gradedAt time.Time) {
	s.enqueue(ctx, jobs.JobGradeNotification, jobs.GradeNotificationPayload{
		StudentEmail: studentEmail,
		StudentName:  studentName,
		CourseName:   courseName,
		CourseCode:   courseCode,
		Grade:        grade,
		GradedAt:     gradedAt,
	})
}

// NotifyWelcome queues the welcome email carrying one-time credentials
func (s *NotificationService) NotifyWelcome(ctx context.Context, studentEmail, studentName, studentNumber, tempPassword string) {
	s.enqueue(ctx, jobs.JobWelcomeCredentials, jobs.WelcomeCredentialsPayload{
		StudentEmail:  studentEmail,
		StudentName:   studentName,
		StudentNumber: studentNumber,
		TempPassword:  tempPassword,
	})
}

// NotifyAdminMessage queues a staff message addressed to one student
func (s *NotificationService) NotifyAdminMessage(ctx context.Context, studentEmail, studentName, subject, message, adminName string) {
	s.enqueue(ctx, jobs.JobAdminMessage, jobs.AdminMessagePayload{
		StudentEmail: studentEmail,
		StudentName:  studentName,
		Subject:      subject,
		Message:      message,
		AdminName:    adminName,
	})
}

// NotifyStudentMessage queues a student message addressed to the administration
func (s *NotificationService) NotifyStudentMessage(ctx context.Context, studentEmail, studentName, subject, message string) {
	s.enqueue(ctx, jobs.JobStudentMessage, jobs.StudentMessagePayload{
		StudentEmail: studentEmail,
		StudentName:  studentName,
		Subject:      subject,
		Message:      message,
	})
}
