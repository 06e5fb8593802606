package gradebook

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Assignment statuses
const (
	AssignmentDraft     = "draft"
	AssignmentPublished = "published"
	AssignmentClosed    = "closed"
)

// Submission statuses
const (
	SubmissionSubmitted = "submitted"
	SubmissionGraded    = "graded"
	SubmissionReturned  = "returned"
	SubmissionLate      = "late"
)

type Assignment struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	DueDate     time.Time `json:"due_date"`
	MaxPoints   float64   `json:"max_points" validate:"gt=0"`
	Weight      float64   `json:"weight" validate:"gte=0,lte=1"`
	Status      string    `json:"status" validate:"oneof=draft published closed"`
}

// Submission holds at most one row per (assignment_id, student_id); submitting
// again for the same pair updates the existing row in place.
type Submission struct {
	ID           string       `json:"id"`
	AssignmentID string       `json:"assignment_id"`
	StudentID    string       `json:"student_id"`
	SubmittedAt  time.Time    `json:"submitted_at"`
	Content      string       `json:"content"`
	FileName     string       `json:"file_name,omitempty"`
	Grade        null.Float64 `json:"grade"`
	Feedback     null.String  `json:"feedback"`
	Status       string       `json:"status"`
}

// GradeRecord is append-only grade history: grading never updates an existing
// record in place, even though submissions are upsert-style.
type GradeRecord struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	ClassID      string    `json:"class_id"`
	AssignmentID string    `json:"assignment_id"`
	Points       float64   `json:"points"`
	MaxPoints    float64   `json:"max_points"`
	Weight       float64   `json:"weight"`
	Letter       string    `json:"letter_grade"`
	GradedBy     string    `json:"graded_by"`
	GradedAt     time.Time `json:"graded_at"`
	Comments     string    `json:"comments,omitempty"`
}
