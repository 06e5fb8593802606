package gradebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/gradebook"
	"github.com/openschool/backend/core/school"
	"github.com/openschool/backend/storage/inmem"
)

func setup(t *testing.T) (*gradebook.Service, *inmem.Store) {
	t.Helper()
	store := inmem.NewStore()
	store.Seed(core.EntityClasses, []school.ClassSection{
		{ID: "c-1", Name: "Mathematics 9A", TeacherID: "u-2", IsActive: true},
	})
	store.Seed(core.EntityEnrollments, []school.Enrollment{
		{ID: "e-1", StudentID: "u-3", ClassID: "c-1", Status: school.EnrollmentActive},
		{ID: "e-2", StudentID: "u-4", ClassID: "c-1", Status: school.EnrollmentActive},
	})
	store.Seed(core.EntityAssignments, []gradebook.Assignment{
		{ID: "as-1", ClassID: "c-1", Title: "Quiz 1", MaxPoints: 100, Weight: 0.5, DueDate: time.Now().Add(24 * time.Hour), Status: gradebook.AssignmentPublished},
		{ID: "as-2", ClassID: "c-1", Title: "Quiz 2", MaxPoints: 100, Weight: 0.5, DueDate: time.Now().Add(-24 * time.Hour), Status: gradebook.AssignmentPublished},
	})
	return gradebook.NewService(store, school.NewService(store)), store
}

func Test_Submit_upsertsByNaturalKey(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, "as-1", "u-3", "draft answer", "")
	require.NoError(t, err)
	assert.Equal(t, gradebook.SubmissionSubmitted, first.Status)

	second, err := svc.Submit(ctx, "as-1", "u-3", "final answer", "essay.txt")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "final answer", second.Content)

	var submissions []gradebook.Submission
	require.NoError(t, store.Load(ctx, core.EntitySubmissions, &submissions))
	assert.Len(t, submissions, 1)
}

func Test_Submit_lateAfterDueDate(t *testing.T) {
	svc, _ := setup(t)

	sub, err := svc.Submit(context.Background(), "as-2", "u-3", "better late", "")
	require.NoError(t, err)
	assert.Equal(t, gradebook.SubmissionLate, sub.Status)
}

func Test_Submit_unknownAssignment(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Submit(context.Background(), "as-404", "u-3", "", "")
	assert.Equal(t, gradebook.ErrAssignmentNotFound, err)
}

func Test_Grade_appendsExactlyOneRecord(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "as-1", "u-3", "answer", "")
	require.NoError(t, err)

	graded, rec, err := svc.Grade(ctx, sub.ID, 95, "nice work", "u-2")
	require.NoError(t, err)
	assert.Equal(t, gradebook.SubmissionGraded, graded.Status)
	assert.Equal(t, 95.0, graded.Grade.Float64)
	assert.Equal(t, "A", rec.Letter)
	assert.Equal(t, "u-2", rec.GradedBy)

	var grades []gradebook.GradeRecord
	require.NoError(t, store.Load(ctx, core.EntityGrades, &grades))
	require.Len(t, grades, 1)

	// regrading appends, never rewrites history
	_, _, err = svc.Grade(ctx, sub.ID, 80, "after review", "u-2")
	require.NoError(t, err)
	require.NoError(t, store.Load(ctx, core.EntityGrades, &grades))
	assert.Len(t, grades, 2)
}

func Test_Grade_rejectsOutOfRangeBeforeMutation(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "as-1", "u-3", "answer", "")
	require.NoError(t, err)

	for _, points := range []float64{-1, 100.5} {
		_, _, err = svc.Grade(ctx, sub.ID, points, "", "u-2")
		require.Error(t, err)
		assert.IsType(t, &core.ValidationError{}, err)
	}

	// nothing was written
	var grades []gradebook.GradeRecord
	require.NoError(t, store.Load(ctx, core.EntityGrades, &grades))
	assert.Empty(t, grades)

	var submissions []gradebook.Submission
	require.NoError(t, store.Load(ctx, core.EntitySubmissions, &submissions))
	require.Len(t, submissions, 1)
	assert.Equal(t, gradebook.SubmissionSubmitted, submissions[0].Status)
}

func Test_ClassSummary(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	now := time.Now().UTC()
	store.Seed(core.EntityGrades, []gradebook.GradeRecord{
		{ID: "g-1", StudentID: "u-3", ClassID: "c-1", AssignmentID: "as-1", Points: 80, MaxPoints: 100, Weight: 0.5, GradedAt: now},
		{ID: "g-2", StudentID: "u-3", ClassID: "c-1", AssignmentID: "as-2", Points: 60, MaxPoints: 100, Weight: 0.5, GradedAt: now},
		// u-3 regraded on as-2: the later record wins
		{ID: "g-3", StudentID: "u-3", ClassID: "c-1", AssignmentID: "as-2", Points: 90, MaxPoints: 100, Weight: 0.5, GradedAt: now},
	})

	summaries, err := svc.ClassSummary(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	graded := summaries[0]
	assert.Equal(t, "u-3", graded.StudentID)
	require.True(t, graded.Percentage.Valid)
	assert.InDelta(t, 85, graded.Percentage.Float64, 1e-9)
	assert.Equal(t, "B", graded.Letter)

	// u-4 has no graded work: null percentage, no letter
	ungraded := summaries[1]
	assert.Equal(t, "u-4", ungraded.StudentID)
	assert.False(t, ungraded.Percentage.Valid)
	assert.Empty(t, ungraded.Letter)
}
