package school

import "time"

// Enrollment statuses
const (
	EnrollmentActive    = "active"
	EnrollmentWithdrawn = "withdrawn"
	EnrollmentCompleted = "completed"
)

type ClassSection struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	TeacherID string `json:"teacher_id"`
	YearLevel int    `json:"year_level"`
	Period    string `json:"period"`
	Room      string `json:"room"`
	Color     string `json:"color"`
	IsActive  bool   `json:"active"`
}

type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	ClassID    string    `json:"class_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Status     string    `json:"status"`
}

type TimetableSlot struct {
	ID        string `json:"id"`
	ClassID   string `json:"class_id"`
	Day       string `json:"day" validate:"weekday"`
	StartTime string `json:"start_time" validate:"hhmm"`
	EndTime   string `json:"end_time" validate:"hhmm"`
	Room      string `json:"room"`
	TeacherID string `json:"teacher_id"`
	Color     string `json:"color"`
}
