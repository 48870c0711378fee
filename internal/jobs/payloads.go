package jobs

import "time"

// GradeNotificationPayload tells a student a grade was posted or changed.
type GradeNotificationPayload struct {
	StudentEmail string    `json:"studentEmail"`
	StudentName  string    `json:"studentName"`
	CourseName   string    `json:"courseName"`
	CourseCode   string    `json:"courseCode"`
	Grade        float64   `json:"grade"`
	GradedAt     time.Time `json:"gradedAt"`
}

// WelcomeCredentialsPayload delivers one-time credentials to a new student.
type WelcomeCredentialsPayload struct {
	StudentEmail  string `json:"studentEmail"`
	StudentName   string `json:"studentName"`
	StudentNumber string `json:"studentNumber"`
	TempPassword  string `json:"tempPassword"`
}

// AdminMessagePayload relays a staff message to one student.
type AdminMessagePayload struct {
	StudentEmail string `json:"studentEmail"`
	StudentName  string `json:"studentName"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	AdminName    string `json:"adminName"`
}

// StudentMessagePayload forwards a student message to the administration.
type StudentMessagePayload struct {
	StudentEmail string `json:"studentEmail"`
	StudentName  string `json:"studentName"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}
