package services

import (
	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/repositories"
	"github.com/gradesphere/gradesphere/internal/db"
	"github.com/gradesphere/gradesphere/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	StudentService      *StudentService
	CourseService       *CourseService
	GradeService        *GradeService
	UserService         *UserService
	MessagingService    *MessagingService
	NotificationService *NotificationService
}

// NewServices wires repositories, the transaction runner and the job queue
// into the service layer.
func NewServices(
	repos *repositories.Repositories,
	database *db.PostgresDB,
	jwtService *auth.JWTService,
	producer JobProducer,
	logger zerolog.Logger,
) *Services {
	notificationService := NewNotificationService(producer, logger)

	return &Services{
		AuthService:         NewAuthService(repos.StudentRepository, jwtService, logger),
		StudentService:      NewStudentService(repos.StudentRepository, database, notificationService, logger),
		CourseService:       NewCourseService(repos.CourseRepository, logger),
		GradeService:        NewGradeService(repos.GradeRepository, repos.StudentRepository, repos.CourseRepository, notificationService, logger),
		UserService:         NewUserService(repos.UserRepository, repos.StudentRepository, database, logger),
		MessagingService:    NewMessagingService(repos.StudentRepository, notificationService, logger),
		NotificationService: notificationService,
	}
}
