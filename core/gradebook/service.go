package gradebook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/school"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Service owns the grading transitions. Submissions are upserted by their
// (assignment, student) natural key; grade records are append-only history.
type Service struct {
	store  core.Store
	school *school.Service
}

func NewService(store core.Store, schoolSvc *school.Service) *Service {
	return &Service{store: store, school: schoolSvc}
}

func (svc *Service) Assignments(ctx context.Context, classID string) ([]Assignment, error) {
	var assignments []Assignment
	if err := svc.store.Load(ctx, core.EntityAssignments, &assignments); err != nil {
		return nil, err
	}
	if classID == "" {
		return assignments, nil
	}
	out := make([]Assignment, 0)
	for _, a := range assignments {
		if a.ClassID == classID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Submit records a student's work for an assignment. An existing submission
// for the same (assignment, student) pair is updated in place, keeping its id;
// otherwise a new record is appended.
func (svc *Service) Submit(ctx context.Context, assignmentID, studentID, content, fileName string) (Submission, error) {
	var assignments []Assignment
	if err := svc.store.Load(ctx, core.EntityAssignments, &assignments); err != nil {
		return Submission{}, err
	}
	var assignment *Assignment
	for i := range assignments {
		if assignments[i].ID == assignmentID {
			assignment = &assignments[i]
			break
		}
	}
	if assignment == nil {
		return Submission{}, ErrAssignmentNotFound
	}

	now := time.Now().UTC()
	status := SubmissionSubmitted
	if !assignment.DueDate.IsZero() && now.After(assignment.DueDate) {
		status = SubmissionLate
	}

	var submissions []Submission
	if err := svc.store.Load(ctx, core.EntitySubmissions, &submissions); err != nil {
		return Submission{}, err
	}
	for i, sub := range submissions {
		if sub.AssignmentID == assignmentID && sub.StudentID == studentID {
			sub.SubmittedAt = now
			sub.Content = content
			sub.FileName = fileName
			sub.Status = status
			submissions[i] = sub
			if err := svc.store.Save(ctx, core.EntitySubmissions, submissions); err != nil {
				return Submission{}, err
			}
			return sub, nil
		}
	}

	sub := Submission{
		ID:           "s-" + uuid.New().String(),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		SubmittedAt:  now,
		Content:      content,
		FileName:     fileName,
		Status:       status,
	}
	submissions = append(submissions, sub)
	if err := svc.store.Save(ctx, core.EntitySubmissions, submissions); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Grade records points for a submission, moving it to the graded status and
// appending exactly one new GradeRecord. Points outside [0, max_points] are
// rejected before any mutation. Both arrays are fully built in memory before
// the first write so a validation failure can never leave a partial state;
// the two saves then happen back to back as one logical commit.
func (svc *Service) Grade(ctx context.Context, submissionID string, points float64, feedback, gradedBy string) (Submission, GradeRecord, error) {
	var submissions []Submission
	if err := svc.store.Load(ctx, core.EntitySubmissions, &submissions); err != nil {
		return Submission{}, GradeRecord{}, err
	}
	subIdx := -1
	for i := range submissions {
		if submissions[i].ID == submissionID {
			subIdx = i
			break
		}
	}
	if subIdx < 0 {
		return Submission{}, GradeRecord{}, ErrSubmissionNotFound
	}
	sub := submissions[subIdx]

	var assignments []Assignment
	if err := svc.store.Load(ctx, core.EntityAssignments, &assignments); err != nil {
		return Submission{}, GradeRecord{}, err
	}
	var assignment *Assignment
	for i := range assignments {
		if assignments[i].ID == sub.AssignmentID {
			assignment = &assignments[i]
			break
		}
	}
	if assignment == nil {
		return Submission{}, GradeRecord{}, ErrAssignmentNotFound
	}

	if points < 0 || points > assignment.MaxPoints {
		return Submission{}, GradeRecord{}, core.NewValidationError(
			fmt.Errorf("points must be between 0 and %g", assignment.MaxPoints),
			core.FieldError{Field: "points", Error: fmt.Sprintf("must be between 0 and %g", assignment.MaxPoints)},
		)
	}

	now := time.Now().UTC()
	sub.Grade = null.Float64From(points)
	sub.Feedback = null.StringFrom(feedback)
	sub.Status = SubmissionGraded
	submissions[subIdx] = sub

	pct, _ := WeightedAverage([]Entry{{Points: points, MaxPoints: assignment.MaxPoints, Weight: 1}})
	rec := GradeRecord{
		ID:           "g-" + uuid.New().String(),
		StudentID:    sub.StudentID,
		ClassID:      assignment.ClassID,
		AssignmentID: assignment.ID,
		Points:       points,
		MaxPoints:    assignment.MaxPoints,
		Weight:       assignment.Weight,
		Letter:       LetterGrade(pct),
		GradedBy:     gradedBy,
		GradedAt:     now,
		Comments:     feedback,
	}

	var grades []GradeRecord
	if err := svc.store.Load(ctx, core.EntityGrades, &grades); err != nil {
		return Submission{}, GradeRecord{}, err
	}
	grades = append(grades, rec)

	if err := svc.store.Save(ctx, core.EntitySubmissions, submissions); err != nil {
		return Submission{}, GradeRecord{}, pkgerrors.Wrap(err, "saving submissions")
	}
	if err := svc.store.Save(ctx, core.EntityGrades, grades); err != nil {
		return Submission{}, GradeRecord{}, pkgerrors.Wrap(err, "saving grade records")
	}
	return sub, rec, nil
}

// StudentSummary is one gradebook row. Percentage is null when the student has
// no graded, weighted work; the letter is empty then and callers render a
// placeholder.
type StudentSummary struct {
	StudentID  string       `json:"student_id"`
	Percentage null.Float64 `json:"percentage"`
	Letter     string       `json:"letter_grade,omitempty"`
}

// ClassSummary computes one StudentSummary per actively enrolled student of
// classID. When a student was regraded, the latest record per assignment wins.
func (svc *Service) ClassSummary(ctx context.Context, classID string) ([]StudentSummary, error) {
	roster, err := svc.school.ClassRoster(ctx, classID)
	if err != nil {
		return nil, err
	}

	var grades []GradeRecord
	if err := svc.store.Load(ctx, core.EntityGrades, &grades); err != nil {
		return nil, err
	}

	summaries := make([]StudentSummary, 0, len(roster))
	for _, studentID := range roster {
		latest := make(map[string]GradeRecord) // assignment id -> last record
		order := make([]string, 0)
		for _, g := range grades {
			if g.ClassID != classID || g.StudentID != studentID {
				continue
			}
			if _, seen := latest[g.AssignmentID]; !seen {
				order = append(order, g.AssignmentID)
			}
			latest[g.AssignmentID] = g
		}

		entries := make([]Entry, 0, len(order))
		for _, aid := range order {
			g := latest[aid]
			entries = append(entries, Entry{Points: g.Points, MaxPoints: g.MaxPoints, Weight: g.Weight})
		}

		summary := StudentSummary{StudentID: studentID}
		if pct, ok := WeightedAverage(entries); ok {
			summary.Percentage = null.Float64From(pct)
			summary.Letter = LetterGrade(pct)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
