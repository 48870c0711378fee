package jobs

import (
	"time"

	"github.com/google/uuid"
)

// JobType tags the kind of notification work carried by a job.
type JobType string

const (
	JobGradeNotification  JobType = "grade_notification"
	JobWelcomeCredentials JobType = "welcome_credentials"
	JobAdminMessage       JobType = "admin_message"
	JobStudentMessage     JobType = "student_message"
)

// IsValid reports whether the job type is a known constant.
func (t JobType) IsValid() bool {
	switch t {
	case JobGradeNotification, JobWelcomeCredentials, JobAdminMessage, JobStudentMessage:
		return true
	default:
		return false
	}
}

// Job is one unit of asynchronous email work carried on the queue.
type Job struct {
	ID        string    `json:"id"`
	Type      JobType   `json:"type"`
	Payload   []byte    `json:"payload"` // raw json
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewJob creates a new job carrying an encoded payload.
func NewJob(t JobType, payloadJSON []byte) (Job, error) {
	if !t.IsValid() {
		return Job{}, ErrInvalidJobType
	}

	return Job{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payloadJSON,
		CreatedAt: time.Now().UTC(),
	}, nil
}
