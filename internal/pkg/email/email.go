package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendGradeNotification(toEmail, studentName, courseName, courseCode string, grade float64, gradedAt time.Time) error
	SendWelcomeWithCredentials(toEmail, studentName, studentNumber, tempPassword string) error
	SendAdminToStudent(toEmail, studentName, subject, message, adminName string) error
	SendStudentToAdmin(studentEmail, studentName, subject, message string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromName   string
	FromEmail  string
	AdminEmail string
	UseTLS     bool
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendGradeNotification tells a student a grade was posted or changed.
func (s *EmailServiceImpl) SendGradeNotification(toEmail, studentName, courseName, courseCode string, grade float64, gradedAt time.Time) error {
	if s.skipDelivery("grade notification", toEmail) {
		return nil
	}

	subject := fmt.Sprintf("New grade available - %s", courseName)

	// Passing grades render green, failing grades red
	gradeColor := "#10b981"
	if grade < 10 {
		gradeColor = "#ef4444"
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New Grade Available</h2>
				<p>Hello %s,</p>
				<p>A new grade has been added to your academic record.</p>

				<div style="background: #f9f9f9; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0;">
					<h3 style="margin-top: 0; color: #667eea;">%s (%s)</h3>
					<div style="font-size: 48px; font-weight: bold; color: %s;">%.1f/20</div>
					<p style="color: #666; margin-bottom: 0;">Date: %s</p>
				</div>

				<p>Log in to your student portal to review your grades and statistics.</p>

				<p style="color: #666; font-size: 12px;">This email is sent automatically, please do not reply.</p>
			</div>
		</body>
		</html>
	`, studentName, courseName, courseCode, gradeColor, grade, gradedAt.Format("2006-01-02"))

	return s.sendHTMLEmail(toEmail, "", subject, body)
}

// SendWelcomeWithCredentials delivers the one-time login credentials of a
// newly created student account.
func (s *EmailServiceImpl) SendWelcomeWithCredentials(toEmail, studentName, studentNumber, tempPassword string) error {
	if s.skipDelivery("welcome email", toEmail) {
		return nil
	}

	subject := "Welcome - Your login credentials"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome, %s!</h2>
				<p>Your student account has been created. Use the credentials below for your first login:</p>

				<div style="background: #f9f9f9; padding: 20px; border-left: 4px solid #667eea; margin: 20px 0;">
					<p><strong>Student number:</strong> <code>%s</code></p>
					<p><strong>Email:</strong> <code>%s</code></p>
					<p><strong>Temporary password:</strong> <code>%s</code></p>
				</div>

				<div style="background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0;">
					Please change this password right after your first login.
				</div>

				<p style="color: #666; font-size: 12px;">This email is sent automatically, please do not reply.</p>
			</div>
		</body>
		</html>
	`, studentName, studentNumber, toEmail, tempPassword)

	return s.sendHTMLEmail(toEmail, "", subject, body)
}

// SendAdminToStudent relays a staff message to one student.
func (s *EmailServiceImpl) SendAdminToStudent(toEmail, studentName, subject, message, adminName string) error {
	if s.skipDelivery("admin message", toEmail) {
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Message from the Administration</h2>
				<p>Hello %s,</p>
				<div style="background: #f9f9f9; padding: 20px; border-left: 4px solid #667eea; margin: 20px 0;">
					%s
				</div>
				<p>Sent by %s. For any question, contact the administration office.</p>
			</div>
		</body>
		</html>
	`, studentName, message, adminName)

	return s.sendHTMLEmail(toEmail, "", subject, body)
}

// SendStudentToAdmin forwards a student message to the administration inbox.
// Reply-To carries the student address so staff can answer directly.
func (s *EmailServiceImpl) SendStudentToAdmin(studentEmail, studentName, subject, message string) error {
	if s.skipDelivery("student message", s.config.AdminEmail) {
		return nil
	}

	fullSubject := fmt.Sprintf("[Student] %s", subject)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Message from a Student</h2>
				<div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #667eea; margin: 20px 0;">
					<strong>From:</strong> %s<br>
					<strong>Email:</strong> %s<br>
					<strong>Subject:</strong> %s
				</div>
				<div style="background: #fff; padding: 20px; border: 1px solid #ddd; border-radius: 5px; margin: 20px 0;">
					%s
				</div>
				<p style="color: #666; font-size: 12px;">To reply, use the student's address directly: %s</p>
			</div>
		</body>
		</html>
	`, studentName, studentEmail, subject, message, studentEmail)

	return s.sendHTMLEmail(s.config.AdminEmail, studentEmail, fullSubject, body)
}

// skipDelivery logs and skips sending when SMTP credentials are not
// configured (development behavior).
func (s *EmailServiceImpl) skipDelivery(kind, toEmail string) bool {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("kind", kind).
			Str("toEmail", toEmail).
			Msg("SMTP credentials not configured - email not sent")
		return true
	}
	return false
}

// sendHTMLEmail sends an HTML email, optionally with a Reply-To address.
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, replyTo, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	if replyTo != "" {
		headers["Reply-To"] = replyTo
	}

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
