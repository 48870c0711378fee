package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/models/dto"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

// messagingStudentStore resolves message recipients.
type messagingStudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// messageNotifier queues staff and student messages for delivery.
type messageNotifier interface {
	NotifyAdminMessage(ctx context.Context, studentEmail, studentName, subject, message, adminName string)
	NotifyStudentMessage(ctx context.Context, studentEmail, studentName, subject, message string)
}

// MessagingService handles ad hoc email between staff and students
type MessagingService struct {
	studentRepo messagingStudentStore
	notifier    messageNotifier
	logger      zerolog.Logger
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(studentRepo messagingStudentStore, notifier messageNotifier, logger zerolog.Logger) *MessagingService {
	return &MessagingService{
		studentRepo: studentRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SendToStudents queues a staff message for each addressed student. Unknown
// student IDs are skipped and reflected in the returned counts.
func (s *MessagingService) SendToStudents(ctx context.Context, sender *models.Principal, req *dto.SendToStudentsRequest) (*dto.BulkEmailResponse, error) {
	adminName := sender.FirstName + " " + sender.LastName

	successCount := 0
	for _, id := range req.StudentIDs {
		student, err := s.studentRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				s.logger.Warn().Int64("student_id", id).Msg("Skipping unknown student in bulk send")
				continue
			}
			return nil, err
		}

		s.notifier.NotifyAdminMessage(ctx, student.Email, student.FullName(), req.Subject, req.Message, adminName)
		successCount++
	}

	return &dto.BulkEmailResponse{
		Message:      fmt.Sprintf("Queued %d of %d emails", successCount, len(req.StudentIDs)),
		SuccessCount: successCount,
		TotalCount:   len(req.StudentIDs),
	}, nil
}

// SendToAdmin queues a message from the authenticated student to the
// administration inbox.
func (s *MessagingService) SendToAdmin(ctx context.Context, studentID int64, req *dto.SendToAdminRequest) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	s.notifier.NotifyStudentMessage(ctx, student.Email, student.FullName(), req.Subject, req.Message)
	return nil
}
